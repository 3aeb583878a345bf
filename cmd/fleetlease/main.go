package main

import (
	"fleetlease/internal/reservation/handler"
	"fleetlease/internal/reservation/notify"
	"fleetlease/pkg/app"
	"fleetlease/pkg/client"
	"fleetlease/pkg/config"
	"fleetlease/pkg/kafka"
	kafka_config "fleetlease/pkg/kafka/config"
	kafka_middleware "fleetlease/pkg/kafka/middleware"
)

const ServiceName = "fleetlease"

func main() {
	cfg := config.Load(ServiceName)

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}

	cfg.LogConfiguration()
	cfg.Log.Info("Starting FleetLease workflow service")

	apiClient := client.NewClient()
	apiClient.SetFleetClient(cfg.FleetServiceURL)
	apiClient.SetContactClient(cfg.ContactServiceURL)
	apiClient.SetLeaseClient(cfg.LeaseServiceURL)

	serverApp := app.NewApplication()

	notifier := initNotifier(cfg, serverApp)

	sessions := handler.NewSessionManager(handler.SessionDeps{
		Fleet:             apiClient.Fleet,
		Contacts:          apiClient.Contacts,
		Leases:            apiClient.Leases,
		Notifier:          notifier,
		Log:               cfg.Log,
		PageSize:          cfg.PageSize,
		TypeaheadMinChars: cfg.TypeaheadMinChars,
		TypeaheadDebounce: cfg.TypeaheadDebounce,
	}, cfg.SessionTTL)
	serverApp.OnShutdown(sessions.Stop)

	reservationHandler := handler.NewReservationHandler(sessions, cfg.Log)
	healthHandler := handler.NewHealthHandler(cfg.Log, map[string]handler.Pinger{
		"fleet":   apiClient.Fleet,
		"contact": apiClient.Contacts,
		"lease":   apiClient.Leases,
	})

	serverApp.SetApp(cfg, reservationHandler, healthHandler)
	serverApp.Run()
}

// initNotifier wires the Kafka notifier when a topic is configured and
// falls back to the log otherwise.
func initNotifier(cfg *config.Config, serverApp *app.Application) notify.Notifier {
	if cfg.NotificationTopic == "" {
		cfg.Log.Info("No notification topic configured, using log notifier")
		return notify.NewLogNotifier(cfg.Log)
	}

	kafkaCfg := kafka_config.Load()
	producer, err := kafka.NewProducer(kafkaCfg, cfg.NotificationTopic, cfg.NotificationDLQTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	if kafkaCfg.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
	}
	serverApp.OnShutdown(func() {
		if err := producer.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka producer", "error", err)
		}
	})

	cfg.Log.Info("Kafka notifier enabled",
		"topic", cfg.NotificationTopic,
		"dlq_topic", cfg.NotificationDLQTopic,
		"brokers", kafkaCfg.Brokers,
	)
	return notify.NewKafkaNotifier(producer, cfg.Log)
}

package notify

import (
	"context"

	"fleetlease/pkg/kafka"
	"fleetlease/pkg/logger"
)

type Variant string

const (
	VariantSuccess Variant = "success"
	VariantError   Variant = "error"
)

// Notification is a fire-and-forget user-facing message.
type Notification struct {
	Title   string  `json:"title"`
	Message string  `json:"message"`
	Variant Variant `json:"variant"`
}

// Notifier delivers notifications. Delivery failures are logged, never
// surfaced to the workflow.
type Notifier interface {
	Notify(ctx context.Context, sessionID string, n Notification)
}

// LogNotifier writes notifications to the structured log. Used when no
// notification topic is configured.
type LogNotifier struct {
	log *logger.Logger
}

func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (ln *LogNotifier) Notify(_ context.Context, sessionID string, n Notification) {
	ln.log.Info("Notification",
		"session_id", sessionID,
		"title", n.Title,
		"message", n.Message,
		"variant", n.Variant,
	)
}

// publisher is the slice of the Kafka producer the notifier needs.
type publisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

const eventTypeNotification = "reservation.notification"

// KafkaNotifier publishes notifications keyed by session id so one
// session's notifications stay ordered.
type KafkaNotifier struct {
	producer publisher
	log      *logger.Logger
}

func NewKafkaNotifier(producer publisher, log *logger.Logger) *KafkaNotifier {
	return &KafkaNotifier{producer: producer, log: log}
}

func (kn *KafkaNotifier) Notify(ctx context.Context, sessionID string, n Notification) {
	msg := kafka.NewMessage().
		WithKey(sessionID).
		WithValue(n).
		WithEventType(eventTypeNotification).
		WithCorrelationID(sessionID).
		WithSource("fleetlease").
		Build()

	if err := kn.producer.Publish(ctx, msg); err != nil {
		kn.log.Error("Failed to publish notification",
			"session_id", sessionID,
			"title", n.Title,
			"error", err,
		)
	}
}

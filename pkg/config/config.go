package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"fleetlease/pkg/logger"
)

type Config struct {
	Port string

	FleetServiceURL   string
	ContactServiceURL string
	LeaseServiceURL   string

	PageSize          int
	TypeaheadMinChars int
	TypeaheadDebounce time.Duration

	// NotificationTopic empty means notifications fall back to the log.
	NotificationTopic    string
	NotificationDLQTopic string

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	SessionTTL     time.Duration

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	Log *logger.Logger
}

func Load(serviceName string) *Config {
	cfg := &Config{
		Port: getEnvStr(EnvPort, DefaultPort),

		FleetServiceURL:   getEnvStr(EnvFleetServiceURL, DefaultFleetServiceURL),
		ContactServiceURL: getEnvStr(EnvContactServiceURL, DefaultContactServiceURL),
		LeaseServiceURL:   getEnvStr(EnvLeaseServiceURL, DefaultLeaseServiceURL),

		PageSize:          getEnvNum(EnvPageSize, DefaultPageSize),
		TypeaheadMinChars: getEnvNum(EnvTypeaheadMinChars, DefaultTypeaheadMinChars),
		TypeaheadDebounce: getEnvDuration(EnvTypeaheadDebounce, DefaultTypeaheadDebounce),

		NotificationTopic:    getEnvStr(EnvNotificationTopic, ""),
		NotificationDLQTopic: getEnvStr(EnvNotificationDLQTopic, ""),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		SessionTTL:     getEnvDuration(EnvSessionTTL, DefaultSessionTTL),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
	}

	return cfg
}

func (cfg *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}
	if cfg.PageSize < 1 {
		errs = append(errs, fmt.Sprintf("PageSize must be at least 1, got: %d", cfg.PageSize))
	}
	if cfg.TypeaheadMinChars < 1 {
		errs = append(errs, fmt.Sprintf("TypeaheadMinChars must be at least 1, got: %d", cfg.TypeaheadMinChars))
	}
	if cfg.TypeaheadDebounce <= 0 {
		errs = append(errs, fmt.Sprintf("TypeaheadDebounce must be positive, got: %v", cfg.TypeaheadDebounce))
	}
	for name, url := range map[string]string{
		"FleetServiceURL":   cfg.FleetServiceURL,
		"ContactServiceURL": cfg.ContactServiceURL,
		"LeaseServiceURL":   cfg.LeaseServiceURL,
	} {
		if url == "" {
			errs = append(errs, fmt.Sprintf("%s cannot be empty", name))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded",
		"port", cfg.Port,
		"fleet_service_url", cfg.FleetServiceURL,
		"contact_service_url", cfg.ContactServiceURL,
		"lease_service_url", cfg.LeaseServiceURL,
		"page_size", cfg.PageSize,
		"typeahead_min_chars", cfg.TypeaheadMinChars,
		"typeahead_debounce", cfg.TypeaheadDebounce,
		"notification_topic", cfg.NotificationTopic,
		"session_ttl", cfg.SessionTTL,
	)
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

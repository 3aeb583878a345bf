package config

const (
	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvFleetServiceURL   = "FLEET_SERVICE_URL"
	EnvContactServiceURL = "CONTACT_SERVICE_URL"
	EnvLeaseServiceURL   = "LEASE_SERVICE_URL"

	EnvPageSize          = "PAGE_SIZE"
	EnvTypeaheadMinChars = "TYPEAHEAD_MIN_CHARS"
	EnvTypeaheadDebounce = "TYPEAHEAD_DEBOUNCE"

	EnvNotificationTopic    = "NOTIFICATION_TOPIC"
	EnvNotificationDLQTopic = "NOTIFICATION_DLQ_TOPIC"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvSessionTTL     = "SESSION_TTL"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
)

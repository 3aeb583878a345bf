package config

import "time"

const (
	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultFleetServiceURL   = "http://localhost:8081"
	DefaultContactServiceURL = "http://localhost:8082"
	DefaultLeaseServiceURL   = "http://localhost:8083"

	DefaultPageSize          = 5
	DefaultTypeaheadMinChars = 4
	DefaultTypeaheadDebounce = 300 * time.Millisecond

	DefaultRateLimitRequests = 60
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 10 * time.Second
	DefaultSessionTTL     = 30 * time.Minute

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
)

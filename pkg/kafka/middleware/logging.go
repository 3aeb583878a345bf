package kafka_middleware

import (
	"context"
	"time"

	"fleetlease/pkg/kafka"
	"fleetlease/pkg/logger"
)

// LoggingProducerMiddleware logs message publishing operations.
func LoggingProducerMiddleware(log *logger.Logger) kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		start := time.Now()

		err := next(ctx, msg)

		duration := time.Since(start)
		if err != nil {
			log.Error("Failed to publish message",
				"key", msg.Key,
				"event_id", msg.GetEventID(),
				"event_type", msg.GetEventType(),
				"correlation_id", msg.GetCorrelationID(),
				"duration_ms", duration.Milliseconds(),
				"error", err,
			)
			return err
		}

		log.Debug("Published message",
			"key", msg.Key,
			"event_id", msg.GetEventID(),
			"event_type", msg.GetEventType(),
			"correlation_id", msg.GetCorrelationID(),
			"duration_ms", duration.Milliseconds(),
		)
		return nil
	}
}

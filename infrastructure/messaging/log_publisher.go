// Package messaging holds event publisher implementations that do not need
// an external broker. The EventBridge publisher lives in the eventbridge
// subpackage.
package messaging

import (
	"context"

	"storefront-backend/application/ports"
	"storefront-backend/domain/events"

	"go.uber.org/zap"
)

// LogPublisher writes domain events to the log instead of a bus. It backs
// local development, where no EventBridge bus exists.
type LogPublisher struct {
	logger *zap.Logger
}

// NewLogPublisher creates a log-only event publisher
func NewLogPublisher(logger *zap.Logger) ports.EventPublisher {
	return &LogPublisher{logger: logger}
}

// Publish logs a single event
func (p *LogPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	p.logger.Info("Domain event",
		zap.String("eventType", event.GetEventType()),
		zap.String("aggregateID", event.GetAggregateID()),
		zap.Time("timestamp", event.GetTimestamp()),
	)
	return nil
}

// PublishBatch logs each event in turn
func (p *LogPublisher) PublishBatch(ctx context.Context, domainEvents []events.DomainEvent) error {
	for _, event := range domainEvents {
		if err := p.Publish(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

package providers

import (
	"context"

	"github.com/yeonwoo-dev/bodycheck-backend/internal/domain/entities"
)

// EventBus publishes prediction lifecycle events for interested consumers
// (statistics, notifications). Publishing is best-effort; the pipeline never
// fails because an event could not be delivered.
type EventBus interface {
	// Publish publishes an event to a channel
	Publish(ctx context.Context, channel string, event *entities.PredictionEvent) error

	// Close closes the event bus
	Close() error
}

// EventChannelPredictions is the channel for prediction lifecycle events.
const EventChannelPredictions = "predictions:updates"

package ports

import (
	"context"

	"github.com/carlsonrocha-octa/softtek-backend/internal/core/domain/events"
)

// EventHandler reacts to one published event. A returned error is reported by
// the bus and never reaches the publisher.
type EventHandler func(ctx context.Context, event events.Event) error

// EventPublisher delivers events to the handlers subscribed to their kind.
//
// Publish does not report handler outcomes. Publishing an event nobody
// subscribed to is a no-op.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event)
}

// EventSubscriber registers handlers. Subscriptions are made at start-up, before
// the first Publish; handlers for one kind run in registration order.
type EventSubscriber interface {
	Subscribe(kind events.Kind, handler EventHandler)
}

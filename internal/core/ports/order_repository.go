// Package ports defines the contracts between the order pipeline core and its
// adapters: storage, the event bus and the resource-planning system.
package ports

import (
	"context"

	"github.com/carlsonrocha-octa/softtek-backend/internal/core/domain/model/kernel"
	"github.com/carlsonrocha-octa/softtek-backend/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
//
// Implementations wrap storage failures in errs.PersistenceError and report a
// missing order with errs.ObjectNotFoundError.
type OrderRepository interface {
	// Add persists a new order aggregate.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the status of an existing order. Every other field is
	// immutable and is not written.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAll retrieves every order, newest creation time first.
	GetAll(ctx context.Context) ([]*order.Order, error)

	// CountByStatus returns the number of orders per status. Statuses without
	// orders may be absent from the map.
	CountByStatus(ctx context.Context) (map[order.Status]int, error)
}

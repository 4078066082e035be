package commands

import (
	"errors"

	"github.com/carlsonrocha-octa/softtek-backend/internal/core/domain/events"
	"github.com/carlsonrocha-octa/softtek-backend/internal/core/domain/model/kernel"
	"github.com/carlsonrocha-octa/softtek-backend/internal/pkg/guard"
)

var ErrSubmitOrderCommandIsNotConstructed = errors.New(
	"SubmitOrderCommand must be created via NewSubmitOrderCommand constructor",
)

// SubmitOrderCommand asks for an accepted order to be forwarded to the
// resource-planning system. It is built from the OrderCreated snapshot.
type SubmitOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewSubmitOrderCommand creates a submit command for the given order.
func NewSubmitOrderCommand(orderID kernel.UUID) (SubmitOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return SubmitOrderCommand{}, err
	}

	return SubmitOrderCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// NewSubmitOrderCommandFromEvent creates a submit command for the order the event describes.
func NewSubmitOrderCommandFromEvent(event events.OrderCreated) (SubmitOrderCommand, error) {
	return NewSubmitOrderCommand(event.OrderID())
}

// Validate ensures the command was created through the constructor.
func (c SubmitOrderCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOrderCommandIsNotConstructed)
}

// OrderID returns the order to submit.
func (c SubmitOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

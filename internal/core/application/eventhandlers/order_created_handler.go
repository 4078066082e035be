// Package eventhandlers adapts domain events delivered by the event bus to
// application commands.
package eventhandlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/carlsonrocha-octa/softtek-backend/internal/core/application/usecases/commands"
	"github.com/carlsonrocha-octa/softtek-backend/internal/core/domain/events"
	"github.com/carlsonrocha-octa/softtek-backend/internal/core/domain/model/order"
	"github.com/carlsonrocha-octa/softtek-backend/internal/core/ports"
)

// ErrUnexpectedEvent is returned when the handler receives an event of another kind.
var ErrUnexpectedEvent = errors.New("unexpected event")

// OrderSubmitter runs the submission of one order.
type OrderSubmitter interface {
	Handle(ctx context.Context, cmd commands.SubmitOrderCommand) (order.Status, error)
}

// OrderCreatedHandler forwards every accepted order to the resource-planning system.
type OrderCreatedHandler struct {
	submitter OrderSubmitter
	logger    *slog.Logger
}

func NewOrderCreatedHandler(submitter OrderSubmitter, logger *slog.Logger) *OrderCreatedHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &OrderCreatedHandler{
		submitter: submitter,
		logger:    logger.With("component", "order-created-handler"),
	}
}

// Register subscribes the handler for OrderCreated events.
func (h *OrderCreatedHandler) Register(subscriber ports.EventSubscriber) {
	subscriber.Subscribe(events.KindOrderCreated, h.Handle)
}

// Handle submits the order named by an OrderCreated event. A vanished order is
// logged and dropped; any other failure is returned to the bus.
func (h *OrderCreatedHandler) Handle(ctx context.Context, event events.Event) error {
	created, ok := event.(events.OrderCreated)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnexpectedEvent, event)
	}

	cmd, err := commands.NewSubmitOrderCommandFromEvent(created)
	if err != nil {
		return err
	}

	status, err := h.submitter.Handle(ctx, cmd)
	if err != nil {
		if errors.Is(err, commands.ErrOrderNotFound) {
			h.logger.WarnContext(ctx, "order vanished before processing",
				"order_id", created.OrderID().String())
			return nil
		}
		return err
	}

	h.logger.DebugContext(ctx, "order processed",
		"order_id", created.OrderID().String(),
		"status", status.String())
	return nil
}

package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/carlsonrocha-octa/softtek-backend/internal/core/domain/model/kernel"
	"github.com/carlsonrocha-octa/softtek-backend/internal/core/domain/model/order"
	"github.com/carlsonrocha-octa/softtek-backend/internal/core/ports"
	"github.com/carlsonrocha-octa/softtek-backend/internal/pkg/errs"
)

// ErrOrderNotFound is returned when the order named by a SubmitOrderCommand does
// not exist. Processing is abandoned and not retried.
var ErrOrderNotFound = errors.New("order to submit was not found")

// SubmitOrderCommandHandler drives an order through submission:
//
//	Pending -> Processing -> SentToSap   (planning system accepted it)
//	                      -> Failed      (planning system failed, or SentToSap could not be recorded)
//
// Each transition is a read-modify-write in its own unit of work, so the status
// is visible to readers as soon as it is committed.
type SubmitOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	client     ports.ResourcePlanningClient
	logger     *slog.Logger
}

// NewSubmitOrderCommandHandler creates the submission handler.
func NewSubmitOrderCommandHandler(
	uowFactory OrderUoWFactory,
	client ports.ResourcePlanningClient,
	logger *slog.Logger,
) SubmitOrderCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return SubmitOrderCommandHandler{
		uowFactory: uowFactory,
		client:     client,
		logger:     logger.With("component", "submit-order-handler"),
	}
}

// Handle submits the order and returns the final status it recorded.
//
// Returns:
//   - (SentToSap, nil) when the planning system accepted the order
//   - (Failed, nil) when the planning system failed; the failure is logged
//   - (Unknown, ErrOrderNotFound) when the order does not exist
//   - (Unknown, error) when processing could not start, e.g. the order is no
//     longer Pending or the store failed
//   - (Processing, error) when neither SentToSap nor Failed could be recorded
func (h *SubmitOrderCommandHandler) Handle(ctx context.Context, cmd SubmitOrderCommand) (order.Status, error) {
	if err := cmd.Validate(); err != nil {
		return order.Unknown, err
	}

	logger := h.logger.With("order_id", cmd.OrderID().String())

	processing, err := h.transition(ctx, cmd.OrderID(), (*order.Order).StartProcessing)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			logger.WarnContext(ctx, "order not found, abandoning submission")
			return order.Unknown, fmt.Errorf("%w: %s", ErrOrderNotFound, cmd.OrderID())
		}
		logger.ErrorContext(ctx, "failed to start processing", "error", err)
		return order.Unknown, err
	}

	submitErr := h.client.SubmitOrder(ctx, ports.ResourcePlanningOrder{
		OrderID:  processing.ID(),
		BranchID: processing.BranchID(),
		ItemID:   processing.ItemID(),
		Quantity: processing.Quantity(),
	})
	if submitErr == nil {
		if _, err = h.transition(ctx, cmd.OrderID(), (*order.Order).MarkSentToSap); err == nil {
			logger.InfoContext(ctx, "order sent to planning system")
			return order.SentToSap, nil
		}
		logger.ErrorContext(ctx, "failed to record accepted submission", "error", err)
		submitErr = err
	} else {
		logger.WarnContext(ctx, "planning system submission failed", "error", submitErr)
	}

	if _, err = h.transition(ctx, cmd.OrderID(), (*order.Order).MarkFailed); err != nil {
		logger.ErrorContext(ctx, "failed to record failed submission", "error", err)
		return order.Processing, errors.Join(submitErr, err)
	}

	return order.Failed, nil
}

func (h *SubmitOrderCommandHandler) transition(
	ctx context.Context,
	id kernel.UUID,
	apply func(*order.Order) error,
) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, errs.NewPersistenceError("begin transaction", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	current, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = apply(current); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, current); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, errs.NewPersistenceError("commit transaction", err)
	}

	return current, nil
}

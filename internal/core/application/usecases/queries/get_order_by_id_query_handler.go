package queries

import (
	"context"

	"github.com/carlsonrocha-octa/softtek-backend/internal/core/ports"
)

// GetOrderByIDQueryHandler reads a single order through the repository port, so
// every storage driver serves it the same way.
type GetOrderByIDQueryHandler struct {
	repo ports.OrderRepository
}

// NewGetOrderByIDQueryHandler creates the handler over a non-transactional repository.
func NewGetOrderByIDQueryHandler(repo ports.OrderRepository) GetOrderByIDQueryHandler {
	return GetOrderByIDQueryHandler{repo: repo}
}

// Handle returns the order, or errs.ObjectNotFoundError if it does not exist.
func (h GetOrderByIDQueryHandler) Handle(ctx context.Context, query GetOrderByIDQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	found, err := h.repo.Get(ctx, query.OrderID())
	if err != nil {
		return OrderResponse{}, err
	}

	return toOrderResponse(found), nil
}

package queries

import (
	"context"

	"github.com/carlsonrocha-octa/softtek-backend/internal/core/ports"
)

// GetAllOrdersQueryHandler lists orders in descending creation-time order.
type GetAllOrdersQueryHandler struct {
	repo ports.OrderRepository
}

func NewGetAllOrdersQueryHandler(repo ports.OrderRepository) GetAllOrdersQueryHandler {
	return GetAllOrdersQueryHandler{repo: repo}
}

// Handle returns every order, newest first. An empty store yields an empty, non-nil slice.
func (h GetAllOrdersQueryHandler) Handle(ctx context.Context, query GetAllOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	found, err := h.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	orders := make([]OrderResponse, 0, len(found))
	for _, o := range found {
		orders = append(orders, toOrderResponse(o))
	}

	return orders, nil
}

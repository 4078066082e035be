package queries

import (
	"context"

	"github.com/carlsonrocha-octa/softtek-backend/internal/core/domain/model/order"
	"github.com/carlsonrocha-octa/softtek-backend/internal/core/ports"
)

type GetOrderStatusSummaryQueryHandler struct {
	repo ports.OrderRepository
}

func NewGetOrderStatusSummaryQueryHandler(repo ports.OrderRepository) GetOrderStatusSummaryQueryHandler {
	return GetOrderStatusSummaryQueryHandler{repo: repo}
}

// Handle returns the zero-filled count per status.
func (h GetOrderStatusSummaryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderStatusSummaryQuery,
) (GetOrderStatusSummaryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderStatusSummaryQueryResponse{}, err
	}

	counts, err := h.repo.CountByStatus(ctx)
	if err != nil {
		return GetOrderStatusSummaryQueryResponse{}, err
	}

	var resp GetOrderStatusSummaryQueryResponse
	for _, status := range order.AllStatuses() {
		resp.Counts = append(resp.Counts, StatusCount{Status: status, Count: counts[status]})
		resp.Total += counts[status]
	}

	return resp, nil
}

package queries

import (
	"errors"

	"github.com/carlsonrocha-octa/softtek-backend/internal/core/domain/model/order"
	"github.com/carlsonrocha-octa/softtek-backend/internal/pkg/guard"
)

var (
	ErrGetOrderStatusSummaryQueryIsNotConstructed = errors.New(
		"GetOrderStatusSummaryQuery must be created via NewGetOrderStatusSummaryQuery constructor",
	)
)

// GetOrderStatusSummaryQuery counts orders per lifecycle status.
type GetOrderStatusSummaryQuery struct {
	guard guard.ConstructorGuard
}

func NewGetOrderStatusSummaryQuery() GetOrderStatusSummaryQuery {
	return GetOrderStatusSummaryQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetOrderStatusSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatusSummaryQueryIsNotConstructed)
}

// StatusCount is one row of the summary.
type StatusCount struct {
	Status order.Status
	Count  int
}

// GetOrderStatusSummaryQueryResponse lists every status in lifecycle order,
// including statuses with no orders.
type GetOrderStatusSummaryQueryResponse struct {
	Counts []StatusCount
	Total  int
}

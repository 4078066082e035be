// Package queries contains read operations over orders.
// Implements the Query side of the CQRS architecture: handlers never change state.
package queries

import (
	"time"

	"github.com/carlsonrocha-octa/softtek-backend/internal/core/domain/model/kernel"
	"github.com/carlsonrocha-octa/softtek-backend/internal/core/domain/model/order"
)

// OrderResponse is the read model of an order.
type OrderResponse struct {
	ID        kernel.UUID
	BranchID  string
	ItemID    string
	Quantity  int
	CreatedAt time.Time
	Status    order.Status
}

func toOrderResponse(o *order.Order) OrderResponse {
	return OrderResponse{
		ID:        o.ID(),
		BranchID:  o.BranchID(),
		ItemID:    o.ItemID(),
		Quantity:  o.Quantity(),
		CreatedAt: o.CreatedAt(),
		Status:    o.Status(),
	}
}

package events

import (
	"time"

	"github.com/carlsonrocha-octa/softtek-backend/internal/core/domain/model/kernel"
)

// OrderCreated is the snapshot of an order taken right after it was persisted.
// Handlers read from the snapshot and never see later changes to the order.
type OrderCreated struct {
	orderID   kernel.UUID
	branchID  string
	itemID    string
	quantity  int
	createdAt time.Time
}

// NewOrderCreated builds the snapshot. Callers are expected to pass the fields of
// an already validated order; see order.Order.CreatedEvent.
func NewOrderCreated(orderID kernel.UUID, branchID, itemID string, quantity int, createdAt time.Time) OrderCreated {
	return OrderCreated{
		orderID:   orderID,
		branchID:  branchID,
		itemID:    itemID,
		quantity:  quantity,
		createdAt: createdAt,
	}
}

func (OrderCreated) Kind() Kind { return KindOrderCreated }

func (OrderCreated) event() {}

func (e OrderCreated) OrderID() kernel.UUID { return e.orderID }

func (e OrderCreated) BranchID() string { return e.branchID }

func (e OrderCreated) ItemID() string { return e.itemID }

func (e OrderCreated) Quantity() int { return e.quantity }

func (e OrderCreated) CreatedAt() time.Time { return e.createdAt }

// Package orderrepo maps order aggregates to the "orders" table through GORM.
package orderrepo

import (
	"time"

	"github.com/carlsonrocha-octa/softtek-backend/internal/core/domain/model/kernel"
	"github.com/carlsonrocha-octa/softtek-backend/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the row shape of the orders table. Indexes match the embedded
// migration so AutoMigrate and goose produce the same schema.
type OrderDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	BranchID  string    `gorm:"type:varchar(50);not null;index:ix_orders_branch_id"`
	ItemID    string    `gorm:"type:varchar(50);not null;index:ix_orders_item_id"`
	Quantity  int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null;index:ix_orders_created_at"`
	Status    string    `gorm:"type:varchar(32);not null;index:ix_orders_status"`
}

// TableName overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	return OrderDTO{
		ID:        aggregate.ID().Bytes(),
		BranchID:  aggregate.BranchID(),
		ItemID:    aggregate.ItemID(),
		Quantity:  aggregate.Quantity(),
		CreatedAt: aggregate.CreatedAt(),
		Status:    aggregate.Status().String(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, dto.BranchID, dto.ItemID, dto.Quantity, dto.CreatedAt, status)
}

package ports

import (
	"context"

	"github.com/carlsonrocha-octa/softtek-backend/internal/core/domain/model/kernel"
)

// ResourcePlanningOrder is the payload submitted to the planning system.
type ResourcePlanningOrder struct {
	OrderID  kernel.UUID
	BranchID string
	ItemID   string
	Quantity int
}

// ResourcePlanningClient submits accepted orders to the external resource-planning
// (SAP) system. Any failure is returned as an error, typically errs.ExternalSubmissionError.
type ResourcePlanningClient interface {
	SubmitOrder(ctx context.Context, order ResourcePlanningOrder) error
}

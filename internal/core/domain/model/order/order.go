package order

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/carlsonrocha-octa/softtek-backend/internal/core/domain/events"
	"github.com/carlsonrocha-octa/softtek-backend/internal/core/domain/model/kernel"
	"github.com/carlsonrocha-octa/softtek-backend/internal/pkg/errs"
)

// MaxReferenceLength is the maximum length, in characters, of a branch or item reference.
const MaxReferenceLength = 50

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is a supply request from a branch for a quantity of one item. It is the
// aggregate root of the pipeline.
//
// Order follows these invariants:
//   - Must have a valid unique identifier
//   - Branch and item references are non-blank and at most MaxReferenceLength characters
//   - Quantity must be positive (greater than 0)
//   - Identity, references, quantity and creation time never change after construction
//   - Status transitions follow the Status state machine
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// branchID references the requesting branch
	branchID string

	// itemID references the requested item
	itemID string

	// quantity is the requested amount (must be positive)
	quantity int

	// createdAt is the UTC creation time with microsecond precision
	createdAt time.Time

	// status represents the current state in the order lifecycle
	status Status

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Pending order with validation.
//
// Parameters:
//   - id: Unique identifier for the order (must be valid UUID)
//   - branchID: Requesting branch reference
//   - itemID: Requested item reference
//   - quantity: Requested amount (must be positive)
//   - createdAt: Creation time; stored in UTC truncated to microseconds
//
// Returns:
//   - *Order: The created order if all validations pass
//   - error: every validation failure joined together
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), "BR-001", "ITEM-42", 10, time.Now())
//	if err != nil {
//	    // Handle validation error
//	}
func NewOrder(id kernel.UUID, branchID, itemID string, quantity int, createdAt time.Time) (*Order, error) {
	return RestoreOrder(id, branchID, itemID, quantity, createdAt, Pending)
}

// RestoreOrder rebuilds an order read back from storage in the given status.
// It applies the same validation as NewOrder.
func RestoreOrder(id kernel.UUID, branchID, itemID string, quantity int, createdAt time.Time, status Status) (*Order, error) {
	order := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setBranchID(branchID),
		order.setItemID(itemID),
		order.setQuantity(quantity),
		order.setCreatedAt(createdAt),
		order.setStatus(status),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// Validate ensures the Order instance was built by NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// BranchID returns the requesting branch reference.
func (o *Order) BranchID() string {
	return o.branchID
}

// ItemID returns the requested item reference.
func (o *Order) ItemID() string {
	return o.itemID
}

// Quantity returns the requested amount.
func (o *Order) Quantity() int {
	return o.quantity
}

// CreatedAt returns the UTC creation time.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// StartProcessing moves a Pending order to Processing.
//
// Returns:
//   - nil on success
//   - errs.ValueIsInvalidError if the order is not Pending
func (o *Order) StartProcessing() error {
	return o.apply(o.status.StartProcessing)
}

// MarkSentToSap records that the planning system accepted a Processing order.
func (o *Order) MarkSentToSap() error {
	return o.apply(o.status.MarkSentToSap)
}

// MarkFailed records that submission of a Processing order failed.
func (o *Order) MarkFailed() error {
	return o.apply(o.status.MarkFailed)
}

// Complete confirms fulfilment of an order already accepted by the planning system.
func (o *Order) Complete() error {
	return o.apply(o.status.Complete)
}

// CreatedEvent returns a snapshot of the order's creation data. The snapshot
// does not observe later changes to the order.
func (o *Order) CreatedEvent() events.OrderCreated {
	return events.NewOrderCreated(o.id, o.branchID, o.itemID, o.quantity, o.createdAt)
}

func (o *Order) apply(transition func() (Status, error)) error {
	newStatus, err := transition()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setBranchID(branchID string) error {
	if err := ValidateReference("branchId", branchID); err != nil {
		return err
	}
	o.branchID = branchID
	return nil
}

func (o *Order) setItemID(itemID string) error {
	if err := ValidateReference("itemId", itemID); err != nil {
		return err
	}
	o.itemID = itemID
	return nil
}

func (o *Order) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}
	o.quantity = quantity
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	o.createdAt = createdAt.UTC().Truncate(time.Microsecond)
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

// ValidateReference checks a branch or item reference: it must not be blank and
// must have at most MaxReferenceLength characters. Over-long values are
// reported as errs.ValueIsOutOfRangeError on "<name> length".
func ValidateReference(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return errs.NewValueIsRequiredError(name)
	}
	if length := utf8.RuneCountInString(value); length > MaxReferenceLength {
		return errs.NewValueIsOutOfRangeError(name+" length", length, 1, MaxReferenceLength)
	}
	return nil
}

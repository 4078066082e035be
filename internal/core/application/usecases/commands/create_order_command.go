package commands

import (
	"errors"
	"strings"

	"github.com/carlsonrocha-octa/softtek-backend/internal/core/domain/model/order"
	"github.com/carlsonrocha-octa/softtek-backend/internal/pkg/errs"
	"github.com/carlsonrocha-octa/softtek-backend/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrBranchIDIsRequired = errs.NewValueIsRequiredError("branchId")
	ErrItemIDIsRequired   = errs.NewValueIsRequiredError("itemId")
	ErrQuantityIsInvalid  = errs.NewValueIsInvalidErrorWithCause(
		"quantity", errors.New("must be greater than zero"))
)

// CreateOrderCommand represents a branch request for a quantity of one item.
// Every field is checked before anything is persisted.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand("BR-001", "ITEM-42", 10)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
//	fmt.Printf("Order %s accepted", created.ID())
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	branchID string
	itemID   string
	quantity int

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the request. Branch and item references must
// be non-blank and at most 50 characters; quantity must be positive.
// All violations are returned joined.
func NewCreateOrderCommand(branchID, itemID string, quantity int) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setBranchID(branchID),
		orderCommand.setItemID(itemID),
		orderCommand.setQuantity(quantity),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// BranchID returns the requesting branch reference.
func (c CreateOrderCommand) BranchID() string {
	return c.branchID
}

// ItemID returns the requested item reference.
func (c CreateOrderCommand) ItemID() string {
	return c.itemID
}

// Quantity returns the requested amount.
func (c CreateOrderCommand) Quantity() int {
	return c.quantity
}

func (c *CreateOrderCommand) setBranchID(branchID string) error {
	if strings.TrimSpace(branchID) == "" {
		return ErrBranchIDIsRequired
	}
	if err := order.ValidateReference("branchId", branchID); err != nil {
		return err
	}

	c.branchID = branchID
	return nil
}

func (c *CreateOrderCommand) setItemID(itemID string) error {
	if strings.TrimSpace(itemID) == "" {
		return ErrItemIDIsRequired
	}
	if err := order.ValidateReference("itemId", itemID); err != nil {
		return err
	}

	c.itemID = itemID
	return nil
}

func (c *CreateOrderCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return ErrQuantityIsInvalid
	}

	c.quantity = quantity
	return nil
}

package events

import (
	"fmt"

	"github.com/carlsonrocha-octa/softtek-backend/internal/pkg/errs"
)

// Kind identifies an event type.
type Kind int

const (
	// KindUnknown (0) catches uninitialized values.
	KindUnknown Kind = iota

	// KindOrderCreated is published once per accepted order.
	KindOrderCreated
)

func getKindStrings() map[Kind]string {
	return map[Kind]string{
		KindUnknown:      "Unknown",
		KindOrderCreated: "OrderCreated",
	}
}

func (k Kind) String() string {
	if str, ok := getKindStrings()[k]; ok {
		return str
	}
	return "Unknown"
}

// Validate rejects KindUnknown and undeclared values.
func (k Kind) Validate() error {
	if k == KindUnknown {
		return errs.NewValueIsInvalidErrorWithCause("event kind is invalid", fmt.Errorf("%d is not a declared event kind", k))
	}
	if _, ok := getKindStrings()[k]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("event kind is invalid", fmt.Errorf("%d is not a declared event kind", k))
	}
	return nil
}

// Event is implemented by every domain event. The unexported method keeps the set closed.
type Event interface {
	Kind() Kind
	event()
}

package eventbus

import (
	"fmt"

	"github.com/carlsonrocha-octa/softtek-backend/internal/core/domain/events"
)

// HandlerFault describes one handler invocation that returned an error or panicked.
type HandlerFault struct {
	Kind     events.Kind
	Index    int
	Panicked bool
	Cause    error
}

func (f HandlerFault) Error() string {
	if f.Panicked {
		return fmt.Sprintf("handler %d for %s panicked: %v", f.Index, f.Kind, f.Cause)
	}
	return fmt.Sprintf("handler %d for %s failed: %v", f.Index, f.Kind, f.Cause)
}

func (f HandlerFault) Unwrap() error {
	return f.Cause
}

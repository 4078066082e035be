package order

import (
	"context"
	"fmt"
	"sync"

	"github.com/carlsonrocha-octa/softtek-backend/internal/pkg/errs"

	"github.com/looplab/fsm"
)

// Status represents the lifecycle state of a supply order.
//
// State transitions:
//
//	Pending ──> Processing ──┬──> SentToSap ──> Completed
//	                         │
//	                         └──> Failed
//
// SentToSap and Failed end automatic processing. Completed is reachable only
// through an explicit Order.Complete call; the submission pipeline never drives it.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of a newly accepted order.
	Pending

	// Processing means the order is being submitted to the planning system.
	Processing

	// SentToSap means the planning system accepted the order.
	SentToSap

	// Completed means fulfilment was confirmed after submission.
	Completed

	// Failed means the submission was rejected or could not be recorded.
	Failed
)

const (
	eventStartProcessing = "start_processing"
	eventSubmitSucceeded = "submit_succeeded"
	eventSubmitFailed    = "submit_failed"
	eventConfirm         = "confirm"
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Pending:    "Pending",
		Processing: "Processing",
		SentToSap:  "SentToSap",
		Completed:  "Completed",
		Failed:     "Failed",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "Pending",
		Processing: "Processing",
		SentToSap:  "SentToSap",
		Completed:  "Completed",
		Failed:     "Failed",
	}
}

// AllStatuses returns every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{Pending, Processing, SentToSap, Completed, Failed}
}

// statusMachine holds the allowed transitions. It is re-seeded with the
// current status before every event, so access is serialised.
var statusMachine = struct {
	sync.Mutex
	fsm *fsm.FSM
}{
	fsm: fsm.NewFSM(
		Pending.String(),
		fsm.Events{
			{Name: eventStartProcessing, Src: []string{Pending.String()}, Dst: Processing.String()},
			{Name: eventSubmitSucceeded, Src: []string{Processing.String()}, Dst: SentToSap.String()},
			{Name: eventSubmitFailed, Src: []string{Processing.String()}, Dst: Failed.String()},
			{Name: eventConfirm, Src: []string{SentToSap.String()}, Dst: Completed.String()},
		},
		fsm.Callbacks{},
	),
}

// ParseStatus converts the persisted or transported name of a status back into a Status.
//
// Returns:
//   - the matching Status for "Pending", "Processing", "SentToSap", "Completed" or "Failed"
//   - (Unknown, error) for any other input, including "Unknown"
func ParseStatus(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of the declared lifecycle states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status. It is also the
// representation used by storage adapters and the HTTP API.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no automatic transition leaves this status.
func (s Status) IsTerminal() bool {
	return s == SentToSap || s == Failed || s == Completed
}

// StartProcessing transitions Pending -> Processing.
func (s Status) StartProcessing() (Status, error) {
	return s.fire(eventStartProcessing)
}

// MarkSentToSap transitions Processing -> SentToSap.
func (s Status) MarkSentToSap() (Status, error) {
	return s.fire(eventSubmitSucceeded)
}

// MarkFailed transitions Processing -> Failed.
func (s Status) MarkFailed() (Status, error) {
	return s.fire(eventSubmitFailed)
}

// Complete transitions SentToSap -> Completed.
func (s Status) Complete() (Status, error) {
	return s.fire(eventConfirm)
}

func (s Status) fire(event string) (Status, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}

	statusMachine.Lock()
	defer statusMachine.Unlock()

	statusMachine.fsm.SetState(s.String())
	if err := statusMachine.fsm.Event(context.Background(), event); err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to %s: %w", s.String(), event, err),
		)
	}

	return ParseStatus(statusMachine.fsm.Current())
}

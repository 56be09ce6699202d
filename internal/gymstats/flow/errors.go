package flow

import (
	"errors"
	"fmt"
)

var ErrStoreUnavailable = errors.New("store unavailable")

// SequenceError is an action that does not fit the current state.
type SequenceError struct {
	State  State
	Action ActionKind
	Reason string
}

func (e *SequenceError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("action %s not allowed in state %s: %s", e.Action, e.State, e.Reason)
	}
	return fmt.Sprintf("action %s not allowed in state %s", e.Action, e.State)
}

// ValidationError is malformed free text. Message is shown to the user.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Message
}

// StoreError wraps a failed reference data or set store call.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func (e *StoreError) Is(target error) bool {
	return target == ErrStoreUnavailable
}

func storeErr(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}

// IsRecoverable reports whether Handle produced a recovery render for err.
func IsRecoverable(err error) bool {
	var seqErr *SequenceError
	var valErr *ValidationError
	return errors.As(err, &seqErr) || errors.As(err, &valErr)
}

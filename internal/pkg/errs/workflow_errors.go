package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidTransition  = errors.New("invalid transition")
	ErrMissingProof       = errors.New("missing delivery proof")
	ErrPersistenceFailure = errors.New("persistence failure")

	// ErrOrderIsBusy is returned when another transition on the same order
	// holds its lock for longer than the caller is willing to wait.
	ErrOrderIsBusy = errors.New("order is busy")
)

// InvalidTransitionError reports a stage change that is not the immediate
// successor of the current stage.
type InvalidTransitionError struct {
	From string
	To   string
}

func NewInvalidTransitionError(from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// MissingProofError lists the proof parts that were absent or blank.
type MissingProofError struct {
	Missing []string
}

func NewMissingProofError(missing ...string) *MissingProofError {
	return &MissingProofError{Missing: missing}
}

func (e *MissingProofError) Error() string {
	if len(e.Missing) == 0 {
		return ErrMissingProof.Error()
	}
	return fmt.Sprintf("%s: %s", ErrMissingProof, strings.Join(e.Missing, ", "))
}

func (e *MissingProofError) Unwrap() error {
	return ErrMissingProof
}

// PersistenceFailureError wraps a failed durable-store, attachment-store or
// lock call. Both the sentinel and the cause are reachable with errors.Is.
type PersistenceFailureError struct {
	Operation string
	Cause     error
}

func NewPersistenceFailureError(operation string, cause error) *PersistenceFailureError {
	return &PersistenceFailureError{Operation: operation, Cause: cause}
}

func (e *PersistenceFailureError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrPersistenceFailure, e.Operation, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrPersistenceFailure, e.Operation)
}

func (e *PersistenceFailureError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrPersistenceFailure}
	}
	return []error{ErrPersistenceFailure, e.Cause}
}

// AsPersistenceFailure wraps err unless it already is a persistence failure.
// A nil err stays nil.
func AsPersistenceFailure(operation string, err error) error {
	if err == nil || errors.Is(err, ErrPersistenceFailure) {
		return err
	}
	return NewPersistenceFailureError(operation, err)
}

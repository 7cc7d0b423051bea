package costing

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure scenarios.
var (
	// Input errors
	ErrInvalidInput = errors.New("costing: invalid input")

	// Persisted state errors
	ErrCorruptState = errors.New("costing: corrupt persisted state")

	// Store errors
	ErrStoreClosed   = errors.New("costing: store is closed")
	ErrPersistFailed = errors.New("costing: persist failed")

	// Lifecycle errors
	ErrNotStarted     = errors.New("costing: ledger not started")
	ErrLedgerStopped  = errors.New("costing: ledger is stopped")
	ErrAlreadyStarted = errors.New("costing: ledger already started")
)

// ValidationError represents a validation failure for one input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("costing: validation failed for %s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is match ErrInvalidInput.
func (e ValidationError) Unwrap() error { return ErrInvalidInput }

// CorruptStateError reports a persisted payload that cannot be decoded
// into line items.
type CorruptStateError struct {
	Slot string
	Err  error
}

func (e *CorruptStateError) Error() string {
	if e.Slot == "" {
		return fmt.Sprintf("costing: corrupt persisted state: %v", e.Err)
	}
	return fmt.Sprintf("costing: corrupt persisted state in slot %q: %v", e.Slot, e.Err)
}

// Unwrap lets errors.Is match ErrCorruptState and the underlying cause.
func (e *CorruptStateError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrCorruptState}
	}
	return []error{ErrCorruptState, e.Err}
}

// MultiError represents multiple errors that occurred.
type MultiError struct {
	Errors []error
}

func (e MultiError) Error() string {
	if len(e.Errors) == 0 {
		return "costing: no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("costing: %d errors occurred: %v", len(e.Errors), errors.Join(e.Errors...))
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (e MultiError) Unwrap() []error { return e.Errors }

// Add adds an error to the multi-error.
func (e *MultiError) Add(err error) {
	if err != nil {
		e.Errors = append(e.Errors, err)
	}
}

// HasErrors returns true if there are any errors.
func (e MultiError) HasErrors() bool {
	return len(e.Errors) > 0
}

// First returns the first error or nil.
func (e MultiError) First() error {
	if len(e.Errors) > 0 {
		return e.Errors[0]
	}
	return nil
}

// IsValidation returns true if the error is an input validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsCorruptState returns true if the error reports an undecodable payload.
func IsCorruptState(err error) bool {
	return errors.Is(err, ErrCorruptState)
}

// IsRetryable returns true if the error is temporary and the operation can be retried.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrPersistFailed) && !errors.Is(err, ErrStoreClosed)
}

// InvalidFields lists the fields named by the validation errors in err,
// in the order they were reported.
func InvalidFields(err error) []string {
	var fields []string
	var walk func(error)
	walk = func(e error) {
		switch v := e.(type) {
		case nil:
			return
		case ValidationError:
			fields = append(fields, v.Field)
		case *ValidationError:
			fields = append(fields, v.Field)
		case interface{ Unwrap() []error }:
			for _, inner := range v.Unwrap() {
				walk(inner)
			}
		case interface{ Unwrap() error }:
			walk(v.Unwrap())
		}
	}
	walk(err)
	return fields
}

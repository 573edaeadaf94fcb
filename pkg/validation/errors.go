package validation

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalid is matched by every ValidationError.
	ErrInvalid = errors.New("invalid value")
	// ErrState is matched by every StateError.
	ErrState = errors.New("invalid builder state")
)

// ValidationError reports a single input value that breaks a static constraint,
// such as a blank or overlong string. It is raised at the setter that received it.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalid
}

// StateError reports a violation that only shows up once state has been
// accumulated, such as too few list elements at Done or a builder finalized twice.
type StateError struct {
	Field  string
	Reason string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *StateError) Unwrap() error {
	return ErrState
}

// Invalid builds a ValidationError.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// State builds a StateError.
func State(field, reason string) error {
	return &StateError{Field: field, Reason: reason}
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalid)
}

// IsState reports whether err carries a StateError.
func IsState(err error) bool {
	return errors.Is(err, ErrState)
}

// Kind names the error class for transport layers: "validation", "state" or "".
func Kind(err error) string {
	switch {
	case IsState(err):
		return "state"
	case IsValidation(err):
		return "validation"
	default:
		return ""
	}
}

// First returns the first non-nil error.
func First(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

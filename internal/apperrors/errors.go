// Package apperrors defines the error taxonomy shared by repositories,
// services and handlers: validation, not-found, conflict and infrastructure
// failures map onto distinct HTTP classes at the edge.
package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound signals that a referenced slug, id or category does not exist.
// Expected in normal operation, surfaced as a 404.
var ErrNotFound = errors.New("not found")

// ErrConflict signals a uniqueness violation, typically a duplicate slug.
var ErrConflict = errors.New("conflict")

// ValidationError reports caller-supplied data failing a field contract.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NewValidation builds a ValidationError for a single field.
func NewValidation(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// InfraError wraps a store-level failure (unreachable, timeout, pool
// exhaustion). The wrapped detail is logged but redacted from responses
// outside development mode.
type InfraError struct {
	Op  string
	Err error
}

func (e *InfraError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *InfraError) Unwrap() error { return e.Err }

// Infra wraps err as an infrastructure failure attributed to op.
func Infra(op string, err error) *InfraError {
	return &InfraError{Op: op, Err: err}
}

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsInfra(err error) bool {
	var ie *InfraError
	return errors.As(err, &ie)
}

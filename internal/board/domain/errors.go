package domain

import (
	"errors"
	"fmt"
)

// ValidationError rejects a malformed column payload before any persistence.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid column configuration: " + e.Reason
}

// NewValidationError builds a ValidationError with a formatted reason.
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// NotFoundError signals that an operation targeted a column, configuration
// or email that does not exist for the owner. No state changes.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// MigrationFailure records one migration-map entry that could not be applied.
type MigrationFailure struct {
	OldStatus string `json:"oldStatus"`
	NewStatus string `json:"newStatus"`
	Reason    string `json:"reason"`
}

// MigrationPartialFailure reports that one or more bulk status rewrites
// failed while others succeeded. It is a soft warning: the column commit
// still happens and a re-save corrects the stragglers.
type MigrationPartialFailure struct {
	Failures []MigrationFailure
}

func (e *MigrationPartialFailure) Error() string {
	return fmt.Sprintf("%d status migration entries failed", len(e.Failures))
}

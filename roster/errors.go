/*
errors.go - Validation error types for the roster domain

PURPOSE:
  Malformed or conflicting schedule input is the one error class this
  core raises. Each violation is a field-level error (field name,
  machine-readable code, human message) so the HTTP layer can aggregate
  several violations into a single response instead of failing on the
  first one.

ERROR CODES:
  overlap       Two intervals conflict (shift vs shift, break vs break)
  out_of_bounds A break extends outside its shift's window
  read_only     The target date is in the past and cannot be edited
  required      A required value is missing (e.g. fixed salary amount)
  invalid       A value fails a basic range or format check
*/
package roster

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrShiftNotFound is returned when a referenced shift doesn't exist.
	ErrShiftNotFound = errors.New("shift not found")

	// ErrStaffNotFound is returned when a referenced worker doesn't exist.
	ErrStaffNotFound = errors.New("staff not found")

	// ErrValidation marks any aggregated validation failure.
	ErrValidation = errors.New("validation failed")
)

// =============================================================================
// FIELD-LEVEL VALIDATION ERRORS
// =============================================================================

// Error codes carried by FieldError.Code.
const (
	CodeOverlap     = "overlap"
	CodeOutOfBounds = "out_of_bounds"
	CodeReadOnly    = "read_only"
	CodeRequired    = "required"
	CodeInvalid     = "invalid"
)

// FieldError is a single validation violation tied to an input field.
type FieldError struct {
	Field   string
	Code    string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Field, e.Message, e.Code)
}

// ValidationErrors aggregates every violation found in one validation
// pass. A nil/empty slice means the input is valid.
type ValidationErrors []FieldError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return strings.Join(msgs, "; ")
}

// Unwrap lets callers match the aggregate with errors.Is(err, ErrValidation).
func (e ValidationErrors) Unwrap() error { return ErrValidation }

// OrNil returns the aggregate as an error, or nil when empty, so
// validators can return their accumulated slice directly.
func (e ValidationErrors) OrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

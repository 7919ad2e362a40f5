// internals/errs/errs.go
package errs

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

/* ==========================
   Error taxonomy
   ==========================
   Services return these instead of *fiber.Error so the business layer
   stays transport-free. Controllers map them to an HTTP status via
   helpers.JsonAppError.
*/

// NotFoundError: a referenced entity is absent.
type NotFoundError struct {
	Entity string
	ID     uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with ID: %s", e.Entity, e.ID)
}

func NotFound(entity string, id uuid.UUID) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// OperationNotPermittedError: authorization or state-machine precondition
// violated. Reason is shown to the caller as-is.
type OperationNotPermittedError struct {
	Reason string
}

func (e *OperationNotPermittedError) Error() string { return e.Reason }

func NotPermitted(reason string) error {
	return &OperationNotPermittedError{Reason: reason}
}

// ValidationError: malformed or missing input, always the caller's fault.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func Invalid(message string) error {
	return &ValidationError{Message: message}
}

// ConflictError: duplicate-registration style failures.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func Conflict(message string) error {
	return &ConflictError{Message: message}
}

/* ==========================
   Matchers
========================== */

func IsNotFound(err error) bool {
	var t *NotFoundError
	return errors.As(err, &t)
}

func IsNotPermitted(err error) bool {
	var t *OperationNotPermittedError
	return errors.As(err, &t)
}

func IsValidation(err error) bool {
	var t *ValidationError
	return errors.As(err, &t)
}

func IsConflict(err error) bool {
	var t *ConflictError
	return errors.As(err, &t)
}

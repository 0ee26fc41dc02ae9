package domain

import (
	"errors"
	"fmt"
)

// Domain errors returned by the service and repository implementations.

var (
	// ErrListNotFound indicates the specified list does not exist.
	ErrListNotFound = errors.New("list not found")

	// ErrItemNotFound indicates the specified item does not exist in its list.
	ErrItemNotFound = errors.New("item not found")

	// ErrStoreUnavailable indicates the document store could not serve the request.
	// Store implementations wrap driver failures with it: fmt.Errorf("%w: %w", ErrStoreUnavailable, err).
	ErrStoreUnavailable = errors.New("document store unavailable")
)

// ErrValidation is the parent of every request validation error.
// Use errors.Is(err, ErrValidation) to classify; the concrete errors below
// carry the field and the reason.
var ErrValidation = errors.New("validation failed")

// Validation errors.
var (
	ErrTitleRequired      = newValidationError("titulo", "must not be blank")
	ErrTitleTooLong       = newValidationError("titulo", fmt.Sprintf("size must be between 1 and %d", MaxTitleLength))
	ErrCategoryTooLong    = newValidationError("categoria", fmt.Sprintf("size must be between 0 and %d", MaxCategoryLength))
	ErrDescriptionTooLong = newValidationError("descripcion", fmt.Sprintf("size must be between 0 and %d", MaxDescriptionLength))

	ErrTextRequired       = newValidationError("texto", "must not be blank")
	ErrTextTooLong        = newValidationError("texto", fmt.Sprintf("size must be between 1 and %d", MaxTextLength))
	ErrAssigneeTooLong    = newValidationError("integrante", fmt.Sprintf("size must be between 0 and %d", MaxAssigneeLength))
	ErrStatusTooLong      = newValidationError("estado", fmt.Sprintf("size must be between 0 and %d", MaxStatusInputLength))
	ErrCompletionRequired = newValidationError("completado", "must not be null")
)

// FieldError is a validation failure on a single request field.
type FieldError struct {
	Field  string
	Reason string
}

func newValidationError(field, reason string) *FieldError {
	return &FieldError{Field: field, Reason: reason}
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Reason
}

// Unwrap makes every FieldError match ErrValidation.
func (e *FieldError) Unwrap() error {
	return ErrValidation
}

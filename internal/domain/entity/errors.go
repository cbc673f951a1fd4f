package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain layer operations.
var (
	// ErrNotFound indicates that a requested entity was not found
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidInput indicates that the provided input is invalid
	ErrInvalidInput = errors.New("invalid input")
)

// NotFoundErrorType is the "type" reported in the JSON body of a 404.
const NotFoundErrorType = "EntityNotFoundException"

// NotFoundError reports a lookup miss for a single record.
// It matches ErrNotFound with errors.Is.
type NotFoundError struct {
	Entity string
	Key    any
}

// NewNotFoundError returns a NotFoundError for the given entity name and key.
func NewNotFoundError(entityName string, key any) *NotFoundError {
	return &NotFoundError{Entity: entityName, Key: key}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %v not found", e.Entity, e.Key)
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError represents a validation error with detailed field information.
// It implements the error interface and provides context about which field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// Is reports whether target is ErrInvalidInput.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

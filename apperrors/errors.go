// Package apperrors holds the error types shared by the store, the services
// and the HTTP layer.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError is returned when caller input is rejected before any state changes
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NotFoundError is returned when a member code is not in the dataset
type NotFoundError struct {
	Code string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("member %s not found", e.Code)
}

// ConflictError is returned when a newly allocated member code is already taken
type ConflictError struct {
	Code string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("member code %s is already in use", e.Code)
}

// StorageError wraps failures reading or writing the persisted dataset
type StorageError struct {
	Op  string // "load" or "save"
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NotificationError describes a failed delivery. It is logged, never returned
// to the caller of an operation.
type NotificationError struct {
	Contact string
	Err     error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("notification to %s failed: %v", e.Contact, e.Err)
}

func (e *NotificationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a validation error for a single field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NewStorageError wraps err as a storage failure for op
func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

// HTTPStatus maps an error to the status code the API responds with
func HTTPStatus(err error) int {
	var (
		validationErr *ValidationError
		notFoundErr   *NotFoundError
		conflictErr   *ConflictError
	)

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &conflictErr):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// IsStorage reports whether err is, or wraps, a StorageError
func IsStorage(err error) bool {
	var storageErr *StorageError
	return errors.As(err, &storageErr)
}

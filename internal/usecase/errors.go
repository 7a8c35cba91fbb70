package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrMissingJobTitle     = errors.New("job title is required")
	ErrInvalidStatus       = errors.New("invalid status")
	ErrApplicationNotFound = errors.New("application not found")
	ErrNothingToExport     = errors.New("no applications found to export")
	ErrUnsupportedFormat   = errors.New("unsupported export format")
	ErrJobTitleNotFound    = errors.New("job title not found")
	ErrJobTitleExists      = errors.New("job title already exists")
	ErrInternal            = errors.New("internal error")
)

// FieldError is a validation failure tied to one payload field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

func (e *FieldError) Unwrap() error {
	return ErrInvalidInput
}

func fieldErr(field, msg string) error {
	return &FieldError{Field: field, Message: msg}
}

package usecase

import (
	"errors"
	"fmt"
	"strings"
)

const (
	CodeMissingFields = "MISSING_FIELDS"
	CodeInvalidEnum   = "INVALID_ENUM"
	CodeInvalidType   = "INVALID_TYPE"
	CodeInvalidJSON   = "INVALID_JSON"
)

// ValidationError is a client mistake. It is always raised before any write.
type ValidationError struct {
	Code    string
	Field   string
	Allowed []string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func MissingFieldsError(fields []string) *ValidationError {
	return &ValidationError{
		Code:    CodeMissingFields,
		Message: "Missing required fields: " + strings.Join(fields, ", "),
	}
}

func InvalidEnumError(field string, allowed []string) *ValidationError {
	return &ValidationError{
		Code:    CodeInvalidEnum,
		Field:   field,
		Allowed: allowed,
		Message: fmt.Sprintf("Invalid %s. Must be one of: %s", field, strings.Join(allowed, ", ")),
	}
}

func InvalidTypeError(field, want string) *ValidationError {
	return &ValidationError{
		Code:    CodeInvalidType,
		Field:   field,
		Message: fmt.Sprintf("Invalid %s. Must be a %s", field, want),
	}
}

func InvalidJSONError() *ValidationError {
	return &ValidationError{
		Code:    CodeInvalidJSON,
		Message: "Invalid JSON body",
	}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// NotFoundError means the single resource asked for does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

func IsNotFoundError(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// StoreError wraps a failed store call. Op names the operation for logs.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}

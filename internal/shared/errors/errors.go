package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeNotFound indicates a resource was not found
	ErrorTypeNotFound ErrorType = "not_found"
	// ErrorTypeValidation indicates invalid input data
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeLookup indicates a selection that matched no reference data
	ErrorTypeLookup ErrorType = "lookup"
	// ErrorTypeQuery indicates an aggregation or reference query failed
	ErrorTypeQuery ErrorType = "query"
	// ErrorTypeConnection indicates the backing store is unreachable
	ErrorTypeConnection ErrorType = "connection"
	// ErrorTypeInternal indicates an internal server error
	ErrorTypeInternal ErrorType = "internal"
	// ErrorTypeMethodNotAllowed indicates an unsupported HTTP method
	ErrorTypeMethodNotAllowed ErrorType = "method_not_allowed"
	// ErrorTypeRateLimited indicates a client exceeded its request budget
	ErrorTypeRateLimited ErrorType = "rate_limited"
)

// AppError is the base error type for application errors
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFoundf creates a not found error with formatting
func NotFoundf(format string, args ...any) error {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf(format, args...),
	}
}

// Validation creates a validation error
func Validation(message string) error {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
	}
}

// Validationf creates a validation error with formatting
func Validationf(format string, args ...any) error {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapValidation wraps an error as a validation error
func WrapValidation(message string, err error) error {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Err:     err,
	}
}

// Lookupf creates a lookup error for a selection with no matching reference row
func Lookupf(format string, args ...any) error {
	return &AppError{
		Type:    ErrorTypeLookup,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapQuery wraps a failed query, naming it
func WrapQuery(name string, err error) error {
	return &AppError{
		Type:    ErrorTypeQuery,
		Message: fmt.Sprintf("query %s failed", name),
		Err:     err,
	}
}

// WrapConnection wraps a failure to reach the backing store
func WrapConnection(message string, err error) error {
	return &AppError{
		Type:    ErrorTypeConnection,
		Message: message,
		Err:     err,
	}
}

// WrapInternal wraps an error as an internal error
func WrapInternal(message string, err error) error {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Err:     err,
	}
}

// MethodNotAllowed creates a method not allowed error
func MethodNotAllowed(method string) error {
	return &AppError{
		Type:    ErrorTypeMethodNotAllowed,
		Message: fmt.Sprintf("method %s not allowed", method),
	}
}

// RateLimited creates a rate limit error for a client address
func RateLimited(client string) error {
	return &AppError{
		Type:    ErrorTypeRateLimited,
		Message: fmt.Sprintf("rate limit exceeded for %s", client),
	}
}

// GetType returns the error type of an error
func GetType(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}

// Is reports whether err carries the given error type
func Is(err error, errorType ErrorType) bool {
	return err != nil && GetType(err) == errorType
}

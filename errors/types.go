package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Validation errors - rejected before any state is mutated
	ErrCodeFileTooLarge ErrorCode = "FILE_TOO_LARGE"
	ErrCodeInvalidJSON  ErrorCode = "INVALID_JSON"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"

	// Configuration errors
	ErrCodeConfigNotFound   ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid    ErrorCode = "CONFIG_INVALID"
	ErrCodeConfigValidation ErrorCode = "CONFIG_VALIDATION"

	// Host/network errors - caught at the call boundary, surfaced as status text
	ErrCodeHostUnreachable ErrorCode = "HOST_UNREACHABLE"
	ErrCodeRequestFailed   ErrorCode = "REQUEST_FAILED"
	ErrCodeBadStatus       ErrorCode = "BAD_STATUS"
	ErrCodeRequestCanceled ErrorCode = "REQUEST_CANCELED"

	// State-consistency warnings - logged, never thrown
	ErrCodeItemNotVisible ErrorCode = "ITEM_NOT_VISIBLE"
)

// EaselError represents a structured error with context
type EaselError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *EaselError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *EaselError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *EaselError) WithDetail(key string, value interface{}) *EaselError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *EaselError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new EaselError
func New(code ErrorCode, message string) *EaselError {
	return &EaselError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with an EaselError
func Wrap(err error, code ErrorCode, message string) *EaselError {
	return &EaselError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error carries a specific error code
func Is(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}

	easelErr, ok := err.(*EaselError)
	if !ok {
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return Is(unwrapper.Unwrap(), code)
		}
		return false
	}

	return easelErr.Code == code
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}

	easelErr, ok := err.(*EaselError)
	if !ok {
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return GetCode(unwrapper.Unwrap())
		}
		return ""
	}

	return easelErr.Code
}

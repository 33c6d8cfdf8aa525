package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a machine-readable error code
type ErrorCode string

const (
	// Card Errors (CARD_*)
	ErrorCodeCardClientIDMissing ErrorCode = "CARD_CLIENT_ID_MISSING"
	ErrorCodeCardNumberMissing   ErrorCode = "CARD_NUMBER_MISSING"
	ErrorCodeCardExpiryInvalid   ErrorCode = "CARD_EXPIRY_INVALID"

	// Merchant Errors (MERCHANT_*)
	ErrorCodeMerchantInvalid ErrorCode = "MERCHANT_INVALID"

	// Validation Errors (VALIDATION_*)
	ErrorCodeValidationFailed        ErrorCode = "VALIDATION_FAILED"
	ErrorCodeValidationAmountInvalid ErrorCode = "VALIDATION_AMOUNT_INVALID"
	ErrorCodeValidationMissingField  ErrorCode = "VALIDATION_MISSING_FIELD"
)

// DomainError represents a structured domain error with error code and context
type DomainError struct {
	Err     error
	Details map[string]interface{}
	Code    ErrorCode
	Message string
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

// WithDetail adds a detail field to the error
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// NewDomainError creates a new domain error
func NewDomainError(code ErrorCode, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// WrapError wraps an existing error with a domain error code
func WrapError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Err:     err,
	}
}

// IsDomainError checks if an error is a DomainError with the given code
func IsDomainError(err error, code ErrorCode) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error, returns empty string if not a DomainError
func GetErrorCode(err error) ErrorCode {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return ""
}

// IsValidationError reports whether err rejects caller input before any gateway I/O.
func IsValidationError(err error) bool {
	switch GetErrorCode(err) {
	case ErrorCodeCardClientIDMissing,
		ErrorCodeCardNumberMissing,
		ErrorCodeCardExpiryInvalid,
		ErrorCodeMerchantInvalid,
		ErrorCodeValidationFailed,
		ErrorCodeValidationAmountInvalid,
		ErrorCodeValidationMissingField:
		return true
	}
	return false
}

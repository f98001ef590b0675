package domain

import "errors"

type ValidationErrorCode string

const (
	ErrCodeMissingField    ValidationErrorCode = "MISSING_FIELD"
	ErrCodeInvalidQuantity ValidationErrorCode = "INVALID_QUANTITY"
	ErrCodeUnknownArea     ValidationErrorCode = "UNKNOWN_AREA"
	ErrCodeEmptyBatch      ValidationErrorCode = "EMPTY_BATCH"
	ErrCodeInvalidDate     ValidationErrorCode = "INVALID_DATE"
)

// ValidationError signals a record that violates the contract of its area.
type ValidationError struct {
	Code    ValidationErrorCode
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return string(e.Code) + ": " + e.Message
	}
	return string(e.Code) + ": " + e.Field + ": " + e.Message
}

// IsValidationError reports whether err wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

package httperr

import (
	"errors"
	"net/http"
)

const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeNotFound         = "NOT_FOUND"
	CodeSlotUnavailable  = "SLOT_UNAVAILABLE"
	CodeInvalidTimeRange = "INVALID_TIME_RANGE"
	CodeInvalidState     = "INVALID_STATE"
	CodeDuplicate        = "DUPLICATE_RECORD"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeForbidden        = "FORBIDDEN"
	CodeFeatureDisabled  = "FEATURE_DISABLED"
	CodeRateLimited      = "RATE_LIMITED"
	CodeUnavailable      = "SERVICE_UNAVAILABLE"
	CodeInternal         = "INTERNAL_ERROR"
)

type BusinessError struct {
	Code    string
	Message string
	Details map[string]string
}

func (e BusinessError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return e.Code + ": " + e.Message
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func New(code, message string) error {
	return BusinessError{Code: code, Message: message}
}

func Validation(message string, details map[string]string) error {
	return BusinessError{Code: CodeValidation, Message: message, Details: details}
}

func NotFound(entity string) error {
	return BusinessError{Code: CodeNotFound, Message: entity + " not found"}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// StatusFor maps a domain error code to its HTTP status.
func StatusFor(code string) int {
	switch code {
	case CodeValidation, CodeSlotUnavailable, CodeInvalidTimeRange, CodeInvalidState:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeDuplicate:
		return http.StatusConflict
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden, CodeFeatureDisabled:
		return http.StatusForbidden
	case CodeRateLimited:
		return http.StatusTooManyRequests
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func defaultMessage(code string) string {
	switch code {
	case CodeValidation:
		return "invalid request"
	case CodeNotFound:
		return "resource not found"
	case CodeSlotUnavailable:
		return "the requested time slot is not available"
	case CodeInvalidTimeRange:
		return "invalid time range"
	case CodeInvalidState:
		return "operation not allowed in the current state"
	case CodeDuplicate:
		return "record already exists"
	case CodeUnauthorized:
		return "authentication required"
	case CodeForbidden:
		return "insufficient permissions"
	case CodeFeatureDisabled:
		return "feature disabled"
	case CodeRateLimited:
		return "too many requests"
	case CodeUnavailable:
		return "service unavailable"
	default:
		return "internal server error"
	}
}

package errors

import (
	stderrors "errors"
	"fmt"
)

const (
	ErrMissingCategory  = "MISSING_CATEGORY"
	ErrInvalidAmount    = "INVALID_AMOUNT"
	ErrRateUnavailable  = "RATE_UNAVAILABLE"
	ErrConversionFailed = "CONVERSION_FAILED"
	ErrExceedsBalance   = "EXCEEDS_BALANCE"
	ErrInvalidInput     = "INVALID_INPUT"
	ErrNotFound         = "NOT_FOUND"
	ErrInternal         = "INTERNAL"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e ErrorResponse) Error() string {
	return fmt.Sprintf("code: %s, message: %s", e.Code, e.Message)
}

// CodeOf returns the taxonomy code carried by err, unwrapping as needed.
// Anything that is not an ErrorResponse counts as INTERNAL.
func CodeOf(err error) string {
	var resp ErrorResponse
	if stderrors.As(err, &resp) {
		return resp.Code
	}
	return ErrInternal
}

// IsCode reports whether err carries the given taxonomy code.
func IsCode(err error, code string) bool {
	return err != nil && CodeOf(err) == code
}

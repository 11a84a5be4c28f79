package brain

import (
	"fmt"

	brainerrors "github.com/Aman-CERP/brainai/internal/errors"
)

// Error is the structured error returned by every Client operation.
type Error = brainerrors.BrainError

// RetryConfig controls the backoff applied to transient failures.
type RetryConfig = brainerrors.RetryConfig

// DefaultRetryConfig returns the backoff used when no WithRetryConfig option is given.
func DefaultRetryConfig() RetryConfig {
	return brainerrors.DefaultRetryConfig()
}

// Sentinels for errors.Is. Matching is by error code.
var (
	ErrNotFound          = brainerrors.New(brainerrors.ErrCodeNotFound, "not found", nil)
	ErrDimensionMismatch = brainerrors.New(brainerrors.ErrCodeDimensionMismatch, "vector dimension mismatch", nil)
	ErrInvalidInput      = brainerrors.New(brainerrors.ErrCodeInvalidInput, "invalid input", nil)
	ErrInvalidResponse   = brainerrors.New(brainerrors.ErrCodeInvalidResponse, "invalid response", nil)
	ErrClientClosed      = brainerrors.New(brainerrors.ErrCodeClientClosed, "client is closed", nil)
	ErrCircuitOpen       = brainerrors.ErrCircuitOpen
)

// IsRetryable reports whether err is a transient failure worth retrying.
func IsRetryable(err error) bool {
	return brainerrors.IsRetryable(err)
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	return brainerrors.StatusCode(err)
}

func invalidInput(format string, args ...any) error {
	return brainerrors.New(brainerrors.ErrCodeInvalidInput, fmt.Sprintf(format, args...), nil)
}

package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"
)

// BrainError is the structured error type for the Brain AI client.
// It provides rich context for error handling, logging, and user presentation.
type BrainError struct {
	// Code is the unique error code (e.g., "ERR_603_NOT_FOUND").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Config, IO, Network, etc.).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error

	// Retryable indicates if the operation can be retried.
	Retryable bool

	// Suggestion is an actionable suggestion for the user.
	Suggestion string
}

// Error implements the error interface.
func (e *BrainError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *BrainError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches the target error by code.
// This enables errors.Is() to work with BrainError.
func (e *BrainError) Is(target error) bool {
	if t, ok := target.(*BrainError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
// Returns the error for method chaining.
func (e *BrainError) WithDetail(key, value string) *BrainError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithSuggestion adds an actionable suggestion for the user.
// Returns the error for method chaining.
func (e *BrainError) WithSuggestion(suggestion string) *BrainError {
	e.Suggestion = suggestion
	return e
}

// New creates a new BrainError with the given code and message.
// Category, severity, and retryable flag are derived from the code.
func New(code string, message string, cause error) *BrainError {
	return &BrainError{
		Code:      code,
		Message:   message,
		Category:  categoryFromCode(code),
		Severity:  severityFromCode(code),
		Cause:     cause,
		Retryable: isRetryableCode(code),
	}
}

// Wrap creates a BrainError from an existing error.
// The error's message becomes the BrainError message.
func Wrap(code string, err error) *BrainError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// Sentinel returns a message-less BrainError usable as an errors.Is target.
func Sentinel(code string) *BrainError {
	return &BrainError{Code: code, Category: categoryFromCode(code)}
}

// ConfigError creates a configuration-related error.
func ConfigError(message string, cause error) *BrainError {
	return New(ErrCodeConfigInvalid, message, cause)
}

// IOError creates an I/O-related error.
func IOError(message string, cause error) *BrainError {
	return New(ErrCodeFileNotFound, message, cause)
}

// NetworkError creates a network-related error.
// Network errors are typically retryable.
func NetworkError(message string, cause error) *BrainError {
	return New(ErrCodeNetworkUnavailable, message, cause)
}

// ValidationError creates a validation-related error.
func ValidationError(message string, cause error) *BrainError {
	return New(ErrCodeInvalidInput, message, cause)
}

// InternalError creates an internal error.
func InternalError(message string, cause error) *BrainError {
	return New(ErrCodeInternal, message, cause)
}

// DimensionMismatch reports two vectors that must share a length but do not.
func DimensionMismatch(op string, left, right int) *BrainError {
	return New(ErrCodeDimensionMismatch,
		fmt.Sprintf("%s: vectors must have the same length (%d vs %d)", op, left, right), nil).
		WithDetail("left_len", strconv.Itoa(left)).
		WithDetail("right_len", strconv.Itoa(right))
}

// maxBodyInMessage caps how many bytes of a response body FromStatus keeps.
const maxBodyInMessage = 512

// FromStatus maps a non-2xx HTTP response to a BrainError.
// The response body, trimmed, becomes part of the message.
func FromStatus(status int, body string) *BrainError {
	var code string
	switch {
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		code = ErrCodeBadRequest
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		code = ErrCodeUnauthorized
	case status == http.StatusNotFound:
		code = ErrCodeNotFound
	case status == http.StatusTooManyRequests:
		code = ErrCodeRateLimited
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		code = ErrCodeNetworkTimeout
	case status >= 500:
		code = ErrCodeServerError
	default:
		code = ErrCodeRejected
	}

	msg := fmt.Sprintf("HTTP error! status: %d", status)
	if trimmed := strings.TrimSpace(body); trimmed != "" {
		if len(trimmed) > maxBodyInMessage {
			cut := maxBodyInMessage
			for cut > 0 && !utf8.RuneStart(trimmed[cut]) {
				cut--
			}
			trimmed = trimmed[:cut] + "..."
		}
		msg += ": " + trimmed
	}

	e := New(code, msg, nil).WithDetail("status", strconv.Itoa(status))
	switch code {
	case ErrCodeUnauthorized:
		e.Suggestion = "Check the API key (BRAINAI_API_KEY or client.api_key)"
	case ErrCodeRateLimited:
		e.Suggestion = "Slow down requests or raise the service rate limit"
	}
	return e
}

// FromTransport classifies an error returned by the HTTP transport.
// Context cancellation is passed through unchanged so callers can match it.
func FromTransport(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return New(ErrCodeNetworkTimeout, "request timed out", err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return New(ErrCodeNetworkTimeout, "request timed out", err)
	}
	return New(ErrCodeNetworkUnavailable, "service unreachable: "+err.Error(), err).
		WithSuggestion("Check that the Brain AI service is running and base_url is correct")
}

// IsRetryable checks if an error is retryable.
// Returns true if the error chain contains a BrainError with Retryable set.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var be *BrainError
	if errors.As(err, &be) {
		return be.Retryable
	}
	return false
}

// IsFatal checks if an error has fatal severity.
// Fatal errors should abort the current operation.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	var be *BrainError
	if errors.As(err, &be) {
		return be.Severity == SeverityFatal
	}
	return false
}

// GetCode extracts the error code from a BrainError.
// Returns empty string if not a BrainError.
func GetCode(err error) string {
	var be *BrainError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

// GetCategory extracts the category from a BrainError.
// Returns empty string if not a BrainError.
func GetCategory(err error) Category {
	var be *BrainError
	if errors.As(err, &be) {
		return be.Category
	}
	return ""
}

// StatusCode returns the HTTP status recorded on err, or 0 when there is none.
func StatusCode(err error) int {
	var be *BrainError
	if !errors.As(err, &be) || be.Details == nil {
		return 0
	}
	status, convErr := strconv.Atoi(be.Details["status"])
	if convErr != nil {
		return 0
	}
	return status
}

package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrainError_Unwrap_PreservesOriginalError(t *testing.T) {
	// Given: an original error
	originalErr := errors.New("original error")

	// When: wrapping with BrainError
	brainErr := New(ErrCodeDecodeFailed, "failed to decode response", originalErr)

	// Then: unwrapping returns original error
	require.NotNil(t, brainErr)
	assert.Equal(t, originalErr, errors.Unwrap(brainErr))
	assert.True(t, errors.Is(brainErr, originalErr))
}

func TestBrainError_Error_ReturnsFormattedMessage(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		message  string
		expected string
	}{
		{
			name:     "config error",
			code:     ErrCodeConfigNotFound,
			message:  "config file not found",
			expected: "[ERR_101_CONFIG_NOT_FOUND] config file not found",
		},
		{
			name:     "dimension mismatch",
			code:     ErrCodeDimensionMismatch,
			message:  "vectors differ",
			expected: "[ERR_402_DIMENSION_MISMATCH] vectors differ",
		},
		{
			name:     "not found",
			code:     ErrCodeNotFound,
			message:  "memory missing",
			expected: "[ERR_603_NOT_FOUND] memory missing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message, nil)
			assert.Equal(t, tt.expected, err.Error())
		})
	}
}

func TestBrainError_Is_MatchesByCode(t *testing.T) {
	err1 := New(ErrCodeNotFound, "memory A not found", nil)
	err2 := New(ErrCodeNotFound, "memory B not found", nil)

	assert.True(t, errors.Is(err1, err2))
	assert.True(t, errors.Is(fmt.Errorf("wrapped: %w", err1), Sentinel(ErrCodeNotFound)))
}

func TestBrainError_Is_DoesNotMatchDifferentCodes(t *testing.T) {
	err1 := New(ErrCodeNotFound, "not found", nil)
	err2 := New(ErrCodeBadRequest, "bad request", nil)

	assert.False(t, errors.Is(err1, err2))
}

func TestBrainError_WithDetails_AddsContext(t *testing.T) {
	err := New(ErrCodeNotFound, "memory not found", nil).
		WithDetail("id", "mem-1").
		WithDetail("status", "404")

	assert.Equal(t, "mem-1", err.Details["id"])
	assert.Equal(t, "404", err.Details["status"])
}

func TestBrainError_CategoryFromCode(t *testing.T) {
	tests := []struct {
		code         string
		wantCategory Category
	}{
		{ErrCodeConfigNotFound, CategoryConfig},
		{ErrCodeConfigInvalid, CategoryConfig},
		{ErrCodeFileNotFound, CategoryIO},
		{ErrCodeNetworkTimeout, CategoryNetwork},
		{ErrCodeServerError, CategoryNetwork},
		{ErrCodeInvalidInput, CategoryValidation},
		{ErrCodeDimensionMismatch, CategoryValidation},
		{ErrCodeInvalidRange, CategoryValidation},
		{ErrCodeInternal, CategoryInternal},
		{ErrCodeDecodeFailed, CategoryInternal},
		{ErrCodeBadRequest, CategoryAPI},
		{ErrCodeNotFound, CategoryAPI},
		{"short", CategoryInternal},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := New(tt.code, "test message", nil)
			assert.Equal(t, tt.wantCategory, err.Category)
		})
	}
}

func TestBrainError_SeverityAndRetryableFromCode(t *testing.T) {
	tests := []struct {
		code          string
		wantSeverity  Severity
		wantRetryable bool
	}{
		{ErrCodeClientClosed, SeverityFatal, false},
		{ErrCodeDiskFull, SeverityFatal, false},
		{ErrCodeNetworkTimeout, SeverityWarning, true},
		{ErrCodeNetworkUnavailable, SeverityWarning, true},
		{ErrCodeServerError, SeverityWarning, true},
		{ErrCodeRateLimited, SeverityWarning, true},
		{ErrCodeNotFound, SeverityError, false},
		{ErrCodeDimensionMismatch, SeverityError, false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := New(tt.code, "test message", nil)
			assert.Equal(t, tt.wantSeverity, err.Severity)
			assert.Equal(t, tt.wantRetryable, err.Retryable)
		})
	}
}

func TestWrap_CreatesBrainErrorFromError(t *testing.T) {
	originalErr := errors.New("something went wrong")

	brainErr := Wrap(ErrCodeInternal, originalErr)

	require.NotNil(t, brainErr)
	assert.Equal(t, ErrCodeInternal, brainErr.Code)
	assert.Equal(t, "something went wrong", brainErr.Message)
	assert.Equal(t, originalErr, brainErr.Cause)
	assert.Nil(t, Wrap(ErrCodeInternal, nil))
}

func TestDimensionMismatch_RecordsLengths(t *testing.T) {
	err := DimensionMismatch("cosine similarity", 2, 3)

	assert.Equal(t, ErrCodeDimensionMismatch, err.Code)
	assert.Contains(t, err.Message, "2 vs 3")
	assert.Equal(t, "2", err.Details["left_len"])
	assert.Equal(t, "3", err.Details["right_len"])
}

func TestFromStatus_MapsStatusCodes(t *testing.T) {
	tests := []struct {
		status        int
		wantCode      string
		wantRetryable bool
	}{
		{400, ErrCodeBadRequest, false},
		{422, ErrCodeBadRequest, false},
		{401, ErrCodeUnauthorized, false},
		{403, ErrCodeUnauthorized, false},
		{404, ErrCodeNotFound, false},
		{409, ErrCodeRejected, false},
		{408, ErrCodeNetworkTimeout, true},
		{429, ErrCodeRateLimited, true},
		{500, ErrCodeServerError, true},
		{503, ErrCodeServerError, true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status_%d", tt.status), func(t *testing.T) {
			err := FromStatus(tt.status, `{"detail":"nope"}`)
			assert.Equal(t, tt.wantCode, err.Code)
			assert.Equal(t, tt.wantRetryable, err.Retryable)
			assert.Equal(t, tt.status, StatusCode(err))
			assert.Contains(t, err.Message, fmt.Sprintf("status: %d", tt.status))
		})
	}
}

func TestFromStatus_TruncatesLongBody(t *testing.T) {
	body := make([]byte, 2000)
	for i := range body {
		body[i] = 'x'
	}

	err := FromStatus(500, string(body))

	assert.Less(t, len(err.Message), 600)
	assert.True(t, len(err.Message) > 512)
}

func TestFromStatus_TruncatesOnRuneBoundary(t *testing.T) {
	// Given: a body whose 512th byte falls inside a two-byte rune
	body := "x" + strings.Repeat("é", 1000)

	// When
	err := FromStatus(502, body)

	// Then: the message stays valid UTF-8 and is marked as truncated
	assert.True(t, utf8.ValidString(err.Message))
	assert.True(t, strings.HasSuffix(err.Message, "é..."))
}

func TestFromTransport_ClassifiesErrors(t *testing.T) {
	// Given: a cancelled context error
	// Then: it passes through so callers can match context.Canceled
	assert.Equal(t, context.Canceled, FromTransport(context.Canceled))

	// Given: a deadline error
	err := FromTransport(fmt.Errorf("get: %w", context.DeadlineExceeded))
	assert.Equal(t, ErrCodeNetworkTimeout, GetCode(err))
	assert.True(t, IsRetryable(err))

	// Given: a generic dial failure
	err = FromTransport(errors.New("dial tcp: connection refused"))
	assert.Equal(t, ErrCodeNetworkUnavailable, GetCode(err))
	assert.Equal(t, CategoryNetwork, GetCategory(err))

	assert.NoError(t, FromTransport(nil))
}

func TestIsRetryable_ChecksRetryableFlag(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"retryable BrainError", New(ErrCodeNetworkTimeout, "timeout", nil), true},
		{"non-retryable BrainError", New(ErrCodeNotFound, "not found", nil), false},
		{"wrapped retryable error", fmt.Errorf("call: %w", New(ErrCodeServerError, "boom", nil)), true},
		{"standard error", errors.New("standard error"), false},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsRetryable(tt.err))
		})
	}
}

func TestIsFatal_ChecksFatalSeverity(t *testing.T) {
	assert.True(t, IsFatal(New(ErrCodeClientClosed, "closed", nil)))
	assert.False(t, IsFatal(New(ErrCodeNotFound, "missing", nil)))
	assert.False(t, IsFatal(errors.New("standard error")))
	assert.False(t, IsFatal(nil))
}

func TestStatusCode_NoStatus(t *testing.T) {
	assert.Equal(t, 0, StatusCode(errors.New("plain")))
	assert.Equal(t, 0, StatusCode(New(ErrCodeInternal, "no details", nil)))
}

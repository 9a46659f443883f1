package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name      string
		err       *StandardError
		code      ErrorCode
		retryable bool
		soft      bool
	}{
		{"provider failed", NewProviderFailedError(stderrors.New("502")), ErrCodeProviderFailed, true, true},
		{"provider timeout", NewProviderTimeoutError(3 * time.Second), ErrCodeProviderTimeout, true, true},
		{"provider unavailable", NewProviderUnavailableError(stderrors.New("open")), ErrCodeProviderUnavailable, true, true},
		{"empty result", NewEmptyResultError("0 results"), ErrCodeEmptyResult, true, true},
		{"normalization", NewNormalizationError("distance", "string"), ErrCodeNormalizationFailed, false, true},
		{"geolocation", NewGeolocationDeniedError("denied"), ErrCodeGeolocationDenied, false, true},
		{"invalid request", NewInvalidRequestError("bad"), ErrCodeInvalidRequest, false, false},
		{"maintenance", NewMaintenanceModeError(), ErrCodeMaintenanceMode, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.retryable, tt.err.Retryable)
			assert.Equal(t, tt.retryable, IsRetryable(tt.err))
			assert.Equal(t, tt.soft, IsSoft(tt.err))
			assert.False(t, tt.err.Timestamp.IsZero())
			assert.Contains(t, tt.err.Error(), string(tt.code))
		})
	}
}

func TestIsSoft_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("fetch: %w", NewEmptyResultError(""))
	assert.True(t, IsSoft(wrapped))
	assert.False(t, IsSoft(stderrors.New("plain")))
	assert.False(t, IsRetryable(nil))
}

func TestNewProviderFailedError_NilCause(t *testing.T) {
	err := NewProviderFailedError(nil)
	assert.Empty(t, err.Details)
	assert.NotEmpty(t, err.Notice)
}

func TestWithMetadata(t *testing.T) {
	err := NewInvalidRequestError("x").WithMetadata("field", "answers")
	assert.Equal(t, "answers", err.Metadata["field"])
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(ErrCodeInvalidRequest))
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(ErrCodeMaintenanceMode))
	assert.Equal(t, http.StatusBadGateway, HTTPStatus(ErrCodeShareFailed))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(ErrCodeInternal))
	assert.Equal(t, http.StatusOK, HTTPStatus(ErrCodeEmptyResult))
}

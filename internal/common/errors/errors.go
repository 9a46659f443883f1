// Package errors provides the structured error taxonomy shared by the
// recommendation pipeline and the HTTP surface.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeProviderFailed      ErrorCode = "PROVIDER_FAILED"
	ErrCodeProviderTimeout     ErrorCode = "PROVIDER_TIMEOUT"
	ErrCodeProviderUnavailable ErrorCode = "PROVIDER_UNAVAILABLE"
	ErrCodeEmptyResult         ErrorCode = "EMPTY_RESULT"

	ErrCodeNormalizationFailed ErrorCode = "NORMALIZATION_FAILED"
	ErrCodeGeolocationDenied   ErrorCode = "GEOLOCATION_DENIED"

	ErrCodeCatalogUnavailable ErrorCode = "CATALOG_UNAVAILABLE"
	ErrCodeInvalidRequest     ErrorCode = "INVALID_REQUEST"
	ErrCodeShareFailed        ErrorCode = "SHARE_FAILED"
	ErrCodeMaintenanceMode    ErrorCode = "MAINTENANCE_MODE"
	ErrCodeInternal           ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error. Notice is the
// short, user-facing text shown next to degraded results.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Notice    string                 `json:"notice,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// WithMetadata returns the error with key set in its metadata.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. Error Constructors
// ==========================

// NewProviderFailedError reports a live provider failure; results fall back to the curated list.
func NewProviderFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeProviderFailed,
		Message:   "Live restaurant search failed",
		Details:   detailsOf(err),
		Notice:    "Live search is unavailable right now, so here are our local favorites instead.",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewProviderTimeoutError reports a live provider that exceeded its deadline.
func NewProviderTimeoutError(timeout time.Duration) *StandardError {
	return &StandardError{
		Code:      ErrCodeProviderTimeout,
		Message:   "Live restaurant search timed out",
		Details:   fmt.Sprintf("provider call exceeded %s", timeout),
		Notice:    "Live search is taking too long, so here are our local favorites instead.",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewProviderUnavailableError reports an open circuit breaker.
func NewProviderUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeProviderUnavailable,
		Message:   "Live restaurant search temporarily disabled",
		Details:   detailsOf(err),
		Notice:    "Live search is paused for a moment, so here are our local favorites instead.",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewEmptyResultError reports a provider that answered with zero restaurants.
func NewEmptyResultError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeEmptyResult,
		Message:   "No live results matched the preferences",
		Details:   details,
		Notice:    "We couldn't find live matches, so here are some local favorites.",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNormalizationError reports a quiz answer that did not fit its expected shape.
func NewNormalizationError(field, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNormalizationFailed,
		Message:   fmt.Sprintf("Answer for %q was ignored", field),
		Details:   details,
		Retryable: false,
		Metadata:  map[string]interface{}{"field": field},
		Timestamp: time.Now().UTC(),
	}
}

// NewGeolocationDeniedError reports that no user location could be obtained.
func NewGeolocationDeniedError(status string) *StandardError {
	return &StandardError{
		Code:      ErrCodeGeolocationDenied,
		Message:   "Location access was not available",
		Details:   fmt.Sprintf("locationStatus: %s", status),
		Notice:    "We couldn't get your location, so distances aren't shown.",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewCatalogUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogUnavailable,
		Message:   "Curated restaurant catalog could not be loaded",
		Details:   detailsOf(err),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewInvalidRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   "Request body is invalid",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewShareFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeShareFailed,
		Message:   "Sharing recommendations failed",
		Details:   fmt.Sprintf("channel: %s, error: %s", channel, detailsOf(err)),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewMaintenanceModeError() *StandardError {
	return &StandardError{
		Code:      ErrCodeMaintenanceMode,
		Message:   "Service is under maintenance",
		Notice:    "We're tuning up the kitchen. Please check back soon.",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Internal error",
		Details:   detailsOf(err),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Helpers
// ==========================

func detailsOf(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// softCodes are conditions rendered as dismissible notices next to usable data.
var softCodes = map[ErrorCode]bool{
	ErrCodeProviderFailed:      true,
	ErrCodeProviderTimeout:     true,
	ErrCodeProviderUnavailable: true,
	ErrCodeEmptyResult:         true,
	ErrCodeNormalizationFailed: true,
	ErrCodeGeolocationDenied:   true,
}

// IsSoft reports whether err is a StandardError that should not block results.
func IsSoft(err error) bool {
	var se *StandardError
	if !stderrors.As(err, &se) {
		return false
	}
	return softCodes[se.Code]
}

// IsRetryable reports whether err is a retryable StandardError.
func IsRetryable(err error) bool {
	var se *StandardError
	if !stderrors.As(err, &se) {
		return false
	}
	return se.Retryable
}

// HTTPStatus maps an error code to the status the API answers with.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case ErrCodeMaintenanceMode:
		return http.StatusServiceUnavailable
	case ErrCodeShareFailed:
		return http.StatusBadGateway
	case ErrCodeInternal, ErrCodeCatalogUnavailable:
		return http.StatusInternalServerError
	}
	// soft conditions travel with a 200 and usable data
	return http.StatusOK
}

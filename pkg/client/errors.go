package client

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors returned by the client.
var (
	// ErrRetryExhausted is returned when all retry attempts are exhausted.
	ErrRetryExhausted = errors.New("retry attempts exhausted")

	// ErrContextCancelled is returned when the context is cancelled during retry.
	ErrContextCancelled = errors.New("context cancelled")
)

// ErrorKind classifies API failures.
type ErrorKind string

const (
	// KindNetwork represents transport-level failures (DNS, timeout, reset).
	KindNetwork ErrorKind = "network"

	// KindUnauthorized represents 401/403 authentication failures.
	KindUnauthorized ErrorKind = "unauthorized"

	// KindRateLimited represents 429 responses.
	KindRateLimited ErrorKind = "rate_limited"

	// KindNotFound represents 404 responses.
	KindNotFound ErrorKind = "not_found"

	// KindServer represents 5xx server errors.
	KindServer ErrorKind = "server"

	// KindValidation represents malformed caller input or an API payload
	// that does not match the expected shape.
	KindValidation ErrorKind = "validation"
)

// APIError is a classified Yango Tech B2B API failure.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("yango %s error (status %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("yango %s error: %s", e.Kind, e.Message)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *APIError) Unwrap() error {
	return e.Err
}

// newValidationError builds a validation APIError for malformed caller input.
func newValidationError(format string, args ...any) *APIError {
	return &APIError{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// classifyStatus maps an HTTP status code to an error kind.
func classifyStatus(status int) ErrorKind {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return KindUnauthorized
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusTooManyRequests:
		return KindRateLimited
	case status >= 500:
		return KindServer
	default:
		return KindValidation
	}
}

// shouldRetry determines if an error kind is eligible for retry.
// Unauthorized, NotFound and Validation failures are never retried.
func shouldRetry(kind ErrorKind) bool {
	switch kind {
	case KindNetwork, KindServer, KindRateLimited:
		return true
	default:
		return false
	}
}

// KindOf extracts the kind from an error, defaulting to network for
// unclassified transport failures. Works through wrapping, so the kind of
// a retry-exhausted error is the kind of its final attempt.
func KindOf(err error) ErrorKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindNetwork
}

// errorKind is the internal alias used by the retry loop.
func errorKind(err error) ErrorKind {
	return KindOf(err)
}

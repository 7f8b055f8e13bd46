package models

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput indicates that a caller-supplied parameter is missing or malformed
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingAPIKey indicates that the upstream API key is not configured
	ErrMissingAPIKey = errors.New("SNCF_API_KEY environment variable is not set")

	// ErrCacheMiss indicates that no fresh entry exists for the key
	ErrCacheMiss = errors.New("cache miss")

	// ErrMalformedPayload indicates that the upstream answered 2xx with a body that is not JSON
	ErrMalformedPayload = errors.New("malformed upstream payload")

	// ErrPayloadTooLarge indicates that the upstream body exceeded the read limit
	ErrPayloadTooLarge = errors.New("upstream payload too large")

	// ErrUpstreamTimeout indicates that the upstream call hit its deadline
	ErrUpstreamTimeout = errors.New("timeout while calling upstream API")
)

// UpstreamError describes a failed call against one upstream endpoint
type UpstreamError struct {
	Endpoint   string
	StatusCode int
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("upstream %s: %s: %v", e.Endpoint, e.Message, e.Err)
	}
	return fmt.Sprintf("upstream %s: %s (HTTP %d)", e.Endpoint, e.Message, e.StatusCode)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NewUpstreamError creates a new endpoint-specific error
func NewUpstreamError(endpoint string, statusCode int, message string, err error) *UpstreamError {
	return &UpstreamError{
		Endpoint:   endpoint,
		StatusCode: statusCode,
		Message:    message,
		Err:        err,
	}
}

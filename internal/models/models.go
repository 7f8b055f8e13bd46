package models

import (
	"encoding/json"
	"time"
)

// ResultKind tags the outcome of an upstream call
type ResultKind int

const (
	ResultSuccess ResultKind = iota
	ResultTransportFailure
	ResultUpstreamError
)

func (k ResultKind) String() string {
	switch k {
	case ResultSuccess:
		return "success"
	case ResultTransportFailure:
		return "transport_failure"
	case ResultUpstreamError:
		return "upstream_error"
	default:
		return "unknown"
	}
}

// UpstreamResult is the normalized outcome of one call to the transit API.
// Payload is set for ResultSuccess, Body for ResultUpstreamError and Err for
// ResultTransportFailure.
type UpstreamResult struct {
	Kind       ResultKind
	Endpoint   string
	StatusCode int
	Payload    json.RawMessage
	Body       string
	Err        error
}

// Success builds a successful result
func Success(endpoint string, statusCode int, payload json.RawMessage) UpstreamResult {
	return UpstreamResult{Kind: ResultSuccess, Endpoint: endpoint, StatusCode: statusCode, Payload: payload}
}

// TransportFailure builds a result for network, timeout and malformed payload failures
func TransportFailure(endpoint string, err error) UpstreamResult {
	return UpstreamResult{Kind: ResultTransportFailure, Endpoint: endpoint, Err: err}
}

// UpstreamFailure builds a result for a non-2xx upstream response
func UpstreamFailure(endpoint string, statusCode int, body string) UpstreamResult {
	return UpstreamResult{Kind: ResultUpstreamError, Endpoint: endpoint, StatusCode: statusCode, Body: body}
}

// OK reports whether the call succeeded
func (r UpstreamResult) OK() bool {
	return r.Kind == ResultSuccess
}

// AsError converts a failed result into an error suitable for logging
func (r UpstreamResult) AsError() error {
	switch r.Kind {
	case ResultTransportFailure:
		return NewUpstreamError(r.Endpoint, 0, "transport failure", r.Err)
	case ResultUpstreamError:
		return NewUpstreamError(r.Endpoint, r.StatusCode, "upstream returned an error", nil)
	default:
		return nil
	}
}

// ProxyResponse is what the HTTP layer writes back to the browser
type ProxyResponse struct {
	StatusCode int
	Body       []byte
}

// ErrorResponse represents an error response body
type ErrorResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message,omitempty"`
	StatusCode int    `json:"status_code,omitempty"`
	Body       string `json:"body,omitempty"`
}

// BoardType selects the station board requested from the upstream
type BoardType string

const (
	BoardDepartures BoardType = "departures"
	BoardArrivals   BoardType = "arrivals"
)

// LogSeverity represents the severity level of a log entry
type LogSeverity string

const (
	LogSeverityLow    LogSeverity = "low"
	LogSeverityMedium LogSeverity = "medium"
	LogSeverityHigh   LogSeverity = "high"
)

// ProcessType represents the type of process that created the log
type ProcessType string

const (
	ProcessTypeRequest  ProcessType = "request"
	ProcessTypeInternal ProcessType = "internal"
)

// LogEvent represents a process-specific logging context
type LogEvent struct {
	ProcessID   string      `json:"process_id"`
	ProcessType ProcessType `json:"process_type"`
	StartTime   time.Time   `json:"start_time"`
	ClientIP    string      `json:"client_ip,omitempty"`
}

// LogEntry represents a structured log entry
type LogEntry struct {
	ID          string                 `json:"id"`
	Timestamp   time.Time              `json:"timestamp"`
	Severity    LogSeverity            `json:"severity,omitempty"`
	Message     string                 `json:"message"`
	Operation   string                 `json:"operation"`
	TargetName  string                 `json:"target_name,omitempty"`
	ProcessID   string                 `json:"process_id"`
	ProcessType ProcessType            `json:"process_type"`
	ClientIP    string                 `json:"client_ip,omitempty"`
	Error       string                 `json:"error,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

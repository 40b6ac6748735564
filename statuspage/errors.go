package statuspage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Common errors returned by the client.
var (
	// ErrContainerRequired is returned when a request body is supplied
	// without an envelope container name and raw mode is off.
	ErrContainerRequired = errors.New("envelope container is required when a body is supplied")
)

// statusRateLimited is the non-standard status the API uses to signal
// rate limiting. It never carries an error payload.
const statusRateLimited = 420

// ErrorEntry is a single structured error returned by the API.
type ErrorEntry struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Details  string `json:"details,omitempty"`
	Resource string `json:"resource,omitempty"`
	Field    string `json:"field,omitempty"`
}

// String renders the entry for error messages.
func (e ErrorEntry) String() string {
	s := e.Code
	if e.Message != "" {
		if s != "" {
			s += ": "
		}
		s += e.Message
	}
	if e.Field != "" {
		s += fmt.Sprintf(" (field %s)", e.Field)
	}
	return s
}

// ErrorPayload is the list of structured errors carried by a failed
// API response.
type ErrorPayload []ErrorEntry

func (p ErrorPayload) String() string {
	parts := make([]string, 0, len(p))
	for _, entry := range p {
		parts = append(parts, entry.String())
	}
	return strings.Join(parts, "; ")
}

// ConfigurationError indicates invalid client configuration, e.g. a
// missing API key or a malformed base URL. It is returned before any
// network call is attempted.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("statuspage: invalid configuration: %s", e.Message)
}

// RequestError indicates the request itself was invalid, e.g. an
// unknown query parameter or a bad body envelope (HTTP 4xx other than
// 422 and 420).
type RequestError struct {
	StatusCode int
	Payload    ErrorPayload
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("statuspage: invalid request (status %d): %s", e.StatusCode, e.Payload)
}

// ResourceError indicates the submitted resource attributes were
// rejected (HTTP 422).
type ResourceError struct {
	StatusCode int
	Payload    ErrorPayload
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("statuspage: invalid resource (status %d): %s", e.StatusCode, e.Payload)
}

// ServerError indicates the API servers encountered an unexpected
// condition (HTTP 5xx).
type ServerError struct {
	StatusCode int
	Payload    ErrorPayload
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("statuspage: server error (status %d): %s", e.StatusCode, e.Payload)
}

// RateLimitError indicates the rate limit was exceeded (HTTP 420).
// The API attaches no payload to this status.
type RateLimitError struct{}

func (e *RateLimitError) Error() string {
	return "statuspage: rate limit exceeded"
}

// UnknownError indicates the server violated the error contract by
// returning a non-JSON body on a failed request. It carries the raw
// response text verbatim and wraps the decode failure.
type UnknownError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *UnknownError) Error() string {
	return fmt.Sprintf("statuspage: unknown error response (status %d): %s", e.StatusCode, e.Body)
}

func (e *UnknownError) Unwrap() error {
	return e.Err
}

// UnexpectedStatusError indicates a non-2xx status outside the ranges
// the error contract covers, with a body that decoded fine.
type UnexpectedStatusError struct {
	StatusCode int
	Body       string
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("statuspage: unexpected status %d: %s", e.StatusCode, e.Body)
}

// classifyError maps a non-2xx response onto the error taxonomy.
// Status 420 is handled before body decoding since it carries no
// payload by convention.
func classifyError(statusCode int, body []byte) error {
	if statusCode == statusRateLimited {
		return &RateLimitError{}
	}

	payload, err := parseErrorPayload(body)
	if err != nil {
		return &UnknownError{StatusCode: statusCode, Body: string(body), Err: err}
	}

	switch {
	case statusCode == 422:
		return &ResourceError{StatusCode: statusCode, Payload: payload}
	case statusCode >= 400 && statusCode < 500:
		return &RequestError{StatusCode: statusCode, Payload: payload}
	case statusCode >= 500 && statusCode < 600:
		return &ServerError{StatusCode: statusCode, Payload: payload}
	}

	return &UnexpectedStatusError{StatusCode: statusCode, Body: string(body)}
}

// parseErrorPayload decodes an error response body. The API returns
// either a JSON array of error entries or a single error object.
func parseErrorPayload(body []byte) (ErrorPayload, error) {
	var payload ErrorPayload
	if err := json.Unmarshal(body, &payload); err == nil {
		return payload, nil
	}

	var entry ErrorEntry
	if err := json.Unmarshal(body, &entry); err != nil {
		return nil, err
	}
	return ErrorPayload{entry}, nil
}

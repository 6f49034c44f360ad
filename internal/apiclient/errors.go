package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// APIError is a non-2xx answer of the upstream API.
type APIError struct {
	StatusCode int
	// Message is the `message` field of the JSON error body, empty when the
	// body was not JSON or had no such field.
	Message string
	Body    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upstream status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("upstream status %d", e.StatusCode)
}

type errorBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func newAPIError(status int, payload []byte) *APIError {
	apiErr := &APIError{StatusCode: status, Body: strings.TrimSpace(string(payload))}
	var parsed errorBody
	if err := json.Unmarshal(payload, &parsed); err == nil {
		apiErr.Message = strings.TrimSpace(parsed.Message)
	}
	return apiErr
}

// MessageOr returns the human-readable upstream message carried by err, or
// fallback when err is a transport failure or the body had no message.
func MessageOr(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// StatusCode returns the upstream HTTP status carried by err, 0 if none.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

package apiclient

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/avaskin/contentforge/internal/errs"
)

// APIError is the single error shape every failed operation yields.
// It carries a best-effort human-readable message and the HTTP status
// (0 when the failure happened before any response arrived).
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

// Unwrap maps well-known statuses onto sentinels so callers can errors.Is
// without inspecting status codes.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case 0:
		return errs.ErrNetwork
	case http.StatusUnauthorized:
		return errs.ErrUnauthorized
	case http.StatusNotFound:
		return errs.ErrNotFound
	}
	return nil
}

// fallbackDetail mirrors the message the backend uses when it has nothing better.
const fallbackDetail = "An error occurred"

// newAPIError normalizes a non-2xx response into an APIError. Total over any
// (status, body) pair: a detail field from a valid JSON body wins, a valid
// body without detail falls back to a generic message, and an unparseable
// body folds the status code into the message.
func newAPIError(status int, body []byte) *APIError {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return &APIError{Status: status, Message: fmt.Sprintf("HTTP %d", status)}
	}
	if payload.Detail == "" {
		return &APIError{Status: status, Message: fallbackDetail}
	}
	return &APIError{Status: status, Message: payload.Detail}
}

// newTransportError normalizes a transport-level failure (no response at all).
func newTransportError(err error) *APIError {
	msg := "request failed"
	if err != nil {
		msg = "request failed: " + err.Error()
	}
	return &APIError{Status: 0, Message: msg}
}

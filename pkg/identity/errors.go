package identity

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

const (
	ErrorCodeInvalidCredentials = "invalid_credentials"
	ErrorCodeUnauthorized       = "unauthorized"
	ErrorCodeNotFound           = "not_found"
	ErrorCodeInvalidRequest     = "invalid_request"
	ErrorCodeServerError        = "server_error"
)

// APIError represents an error response from the identity service. It is
// used both by the client (to represent classified failures) and by the
// mock HR server (to shape its error payloads).
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the machine-readable error code (e.g. "invalid_credentials")
	Code string `json:"code"`

	// Description is a human-readable description of the error
	Description string `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Is lets parsed response errors match the predefined sentinels by code,
// so callers can use errors.Is(err, identity.ErrNotFound).
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

var (
	// ErrInvalidCredentials is returned when a login is rejected (401).
	ErrInvalidCredentials = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidCredentials,
		Description: "invalid employee id or password",
	}

	// ErrUnauthorized is returned when a bearer token is missing, invalid
	// or expired on an authenticated endpoint (401).
	ErrUnauthorized = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeUnauthorized,
		Description: "the session token is missing, invalid or expired",
	}

	// ErrNotFound is returned when the requested profile does not exist (404).
	ErrNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "profile not found",
	}

	// ErrInvalidRequest is returned for malformed request bodies (400).
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required fields",
	}

	// ErrServerError is returned when the service fails unexpectedly (500).
	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)

// NetworkError reports that no HTTP response was received at all: timeout,
// DNS failure, connection refused. It is distinct from every APIError so
// callers can tell "the service said no" from "the service never answered".
type NetworkError struct {
	Err error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	return fmt.Sprintf("identity service unreachable: %v", e.Err)
}

// Unwrap exposes the underlying transport error.
func (e *NetworkError) Unwrap() error { return e.Err }

// parseErrorResponse turns a non-2xx HTTP response into a typed *APIError.
// Returns nil for success responses.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	// Try parsing the {code, message} payload the service emits.
	var errResp APIError
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Code != "" {
		errResp.StatusCode = resp.StatusCode
		return &errResp
	}

	// Fallback: create a generic error from the status code.
	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}

// classify maps the raw error shapes onto the sentinels the badge flows
// care about: the endpoint-specific meaning of a 401 (login rejection on
// /login, expired token elsewhere) and the 404 profile miss. Anything else
// passes through unchanged.
func classify(err error, on401 *APIError) error {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return err
	}

	switch apiErr.StatusCode {
	case http.StatusUnauthorized:
		return on401
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return err
	}
}

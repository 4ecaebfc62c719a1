package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrAuthentication is returned when the backend rejects the credentials or the token,
	// or when there is no token to send.
	ErrAuthentication = errors.New("authentication failed")

	// ErrAuthorization is returned when the account lacks the rights for the call.
	ErrAuthorization = errors.New("not authorized")

	// ErrNetwork is returned when the backend could not be reached or did not answer in time.
	ErrNetwork = errors.New("backend unreachable")

	// ErrUnexpectedResponse is returned for undecodable bodies and unexpected status codes.
	ErrUnexpectedResponse = errors.New("unexpected backend response")

	// ErrInvalidRequest is returned when a request fails local validation and was not sent.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrNoToken is returned by the token source when no token is persisted.
	ErrNoToken = errors.New("no session token")
)

// APIError is a non 2xx answer of the backend.
type APIError struct {
	StatusCode int
	Message    string
	kind       error
}

// Error implements error.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: backend returned %d: %s", e.kind, e.StatusCode, e.Message)
}

// Unwrap returns the sentinel the status code maps to.
func (e *APIError) Unwrap() error {
	return e.kind
}

// scope decides how 401 answers are read.
type scope int

const (
	scopePublic scope = iota
	scopeUser
	scopeAdmin
)

// errorBody is the error document of the backend.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func newAPIError(status int, body []byte, s scope) *APIError {
	e := &APIError{StatusCode: status, Message: backendMessage(status, body)}

	switch {
	case status == http.StatusUnauthorized && s == scopeAdmin:
		// the admin endpoints answer 401 for valid tokens without the admin role
		e.kind = ErrAuthorization
	case status == http.StatusUnauthorized:
		e.kind = ErrAuthentication
	case status == http.StatusForbidden:
		e.kind = ErrAuthorization
	default:
		e.kind = ErrUnexpectedResponse
	}

	return e
}

// backendMessage extracts the human readable message of an error answer.
func backendMessage(status int, body []byte) string {
	var eb errorBody

	if err := json.Unmarshal(body, &eb); err == nil {
		if eb.Error != "" {
			return eb.Error
		}

		if eb.Message != "" {
			return eb.Message
		}
	}

	if msg := strings.TrimSpace(string(body)); msg != "" && !strings.HasPrefix(msg, "{") && len(msg) <= maxPlainMessage {
		return msg
	}

	return http.StatusText(status)
}

// Message returns the backend message of err or "" when err carries none.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}

	return ""
}

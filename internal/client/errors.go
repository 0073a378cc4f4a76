package client

import (
	"errors"
	"fmt"
)

// NetworkError reports a failed product fetch.
//
// Transport failures, non-2xx responses and undecodable bodies are all
// reported with this type. StatusCode is zero when no response was received.
type NetworkError struct {
	// URL is the requested URL.
	URL string

	// StatusCode is the HTTP status code, or 0 for transport failures.
	StatusCode int

	// RequestID is the X-Request-ID sent with the request.
	RequestID string

	// ServerMessage is the "error" or "message" field of a JSON error body,
	// if the server provided one.
	ServerMessage string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	switch {
	case e.Err != nil && e.StatusCode != 0:
		return fmt.Sprintf("fetch %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	case e.ServerMessage != "":
		return fmt.Sprintf("fetch %s: status %d: %s", e.URL, e.StatusCode, e.ServerMessage)
	default:
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
	}
}

// Unwrap returns the underlying cause.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ServerMessage returns the server-provided message carried by err, or ""
// when err is not a [*NetworkError] or has none.
func ServerMessage(err error) string {
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return netErr.ServerMessage
	}
	return ""
}

package registry

import (
	"errors"
	"fmt"
)

// ErrUnauthenticated is returned when the registry rejects the ambient
// session credential (no session, or session expired).
var ErrUnauthenticated = errors.New("registry: not authenticated")

// ErrDenied is returned when a protected-file download is refused. The
// console shows a fixed denial message for it and must not surface any
// detail about why verification failed.
var ErrDenied = errors.New("registry: access denied")

// APIError is a server-reported validation or business error: a non-2xx
// response with a structured message. The message is surfaced verbatim.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("registry: request failed with status %d", e.Status)
}

// ConnectionError wraps a transport-level failure: the registry could not
// be reached at all. Handlers render these as a generic connection notice.
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("registry: %s: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// IsConnection reports whether err is a transport failure rather than a
// response the registry produced.
func IsConnection(err error) bool {
	var ce *ConnectionError
	return errors.As(err, &ce)
}

// UserMessage maps any registry error to the text shown to the user,
// following the error taxonomy: connection failures collapse to a generic
// notice, API messages pass through verbatim.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if IsConnection(err) {
		return "Connection error. Please try again."
	}
	var ae *APIError
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	return fallback
}

// Package api - api/errors.go
package api

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure taxonomy. Callers branch with
// errors.Is; the wrapped *Error carries the operation and HTTP detail.
var (
	// ErrTransport: the request never reached the backend or no response came back.
	ErrTransport = errors.New("transport failure")
	// ErrUnauthorized: missing, invalid or expired token. Callers must
	// treat this as session-invalid and force re-login.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound: the backend rejected an operation on a stale identifier.
	ErrNotFound = errors.New("not found")
	// ErrServer: any other backend-side rejection.
	ErrServer = errors.New("server error")
)

// Error is the concrete error returned by every client operation.
type Error struct {
	Op     string // e.g. "ListEvents"
	Status int    // HTTP status, 0 for transport failures
	Detail string // backend-provided detail message, if any
	kind   error  // one of the sentinels above
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("api: %s: %v", e.Op, e.kind)
	}
	if e.Detail != "" {
		return fmt.Sprintf("api: %s: %v (status %d: %s)", e.Op, e.kind, e.Status, e.Detail)
	}
	return fmt.Sprintf("api: %s: %v (status %d)", e.Op, e.kind, e.Status)
}

// Unwrap exposes the taxonomy sentinel for errors.Is.
func (e *Error) Unwrap() error { return e.kind }

// kindForStatus maps an HTTP status to a taxonomy sentinel.
func kindForStatus(status int) error {
	switch {
	case status == 401 || status == 403:
		return ErrUnauthorized
	case status == 404 || status == 409:
		return ErrNotFound
	default:
		return ErrServer
	}
}

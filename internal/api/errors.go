package api

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure taxonomy. Item-level callers recover
// locally from NetworkFailure; ValidationFailure means the request was
// never sent.
var (
	// ErrAnomalousRedirect marks a note-level call answered with a
	// redirect to the site root. The server does this when the session is
	// invalid, so it must not be treated as success.
	ErrAnomalousRedirect = errors.New("api: redirect to site root")

	// ErrValidation marks a request rejected client-side before any
	// network traffic (missing id, empty selection, bad context).
	ErrValidation = errors.New("api: validation failure")
)

// StatusError is a non-2xx response from the platform.
type StatusError struct {
	Code int
	Body string
}

// Error renders the status and a body excerpt.
func (e *StatusError) Error() string {
	body := e.Body
	if len(body) > 120 {
		body = body[:120] + "..."
	}
	return fmt.Sprintf("api: status %d: %s", e.Code, body)
}

// IsNetworkFailure reports whether the error is a transport or status
// failure (as opposed to validation or an anomalous redirect).
func IsNetworkFailure(err error) bool {
	if err == nil {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return true
	}
	return !errors.Is(err, ErrValidation) && !errors.Is(err, ErrAnomalousRedirect)
}

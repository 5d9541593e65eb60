package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies backend call failures. Every failure the client
// surfaces is one of these; no error is suppressed silently.
type ErrorKind string

const (
	// KindValidation is detected client-side, before any network call.
	KindValidation ErrorKind = "validation"
	// KindAuthentication means the backend rejected the credentials or
	// the bearer token (401).
	KindAuthentication ErrorKind = "authentication"
	// KindNotFound means the backend reported 404 for a specific entity.
	KindNotFound ErrorKind = "not_found"
	// KindServer covers any other non-2xx response.
	KindServer ErrorKind = "server"
	// KindTransport means no usable response was obtained (network
	// unreachable, malformed body).
	KindTransport ErrorKind = "transport"
)

// Error is the typed failure returned by the resource client.
// Status is the HTTP status code, or 0 when no response was received.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewValidationError builds a client-side validation failure.
func NewValidationError(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

// kindFromStatus maps a non-2xx HTTP status to an error kind.
func kindFromStatus(status int) ErrorKind {
	switch status {
	case http.StatusUnauthorized:
		return KindAuthentication
	case http.StatusNotFound:
		return KindNotFound
	default:
		return KindServer
	}
}

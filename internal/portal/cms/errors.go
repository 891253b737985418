package cms

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is returned when credentials are rejected or a previously
// valid token is no longer accepted. Match with errors.Is.
var ErrUnauthorized = errors.New("unauthorized")

// TransportError reports a backend response that could not be interpreted as
// structured data (wrong content type or an unparseable body), typically an
// error page from a misconfigured backend or an intermediary. The raw body is
// kept for diagnosis; user-facing layers render it as a generic connection
// failure.
type TransportError struct {
	Status      int
	ContentType string
	Body        []byte
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("unexpected %s response (status %d)", e.ContentType, e.Status)
}

// APIError is a well-formed backend error for a specific operation, carrying
// the backend's own message when present.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed (status %d)", e.Status)
}

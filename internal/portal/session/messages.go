package session

import (
	"errors"

	"github.com/cruisyconcierge/cruisy-ambassador/internal/portal/cms"
)

// UserMessage translates an operation error into the message shown to the
// user, distinct from the internal detail that goes to the log. Transport
// problems always render as a generic connection failure; the raw body never
// reaches the user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, ErrValidation) {
		return "Email and password are required."
	}
	if errors.Is(err, cms.ErrUnauthorized) {
		return "Invalid email or password."
	}

	var apiErr *cms.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}

	return "Connection failed — please try again."
}

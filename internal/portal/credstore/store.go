// Package credstore persists the session token across portal runs. It is the
// single source of truth for "is a user logged in": the token lives in one
// durable key–value entry under a fixed namespace, written only by
// login/logout/restore-failure paths and never inspected by anything else.
package credstore

import (
	"context"
	"errors"
)

// ErrNoToken reports that no token is persisted. Load returns it both when
// the entry is absent and when the store is unavailable, so callers treat
// either case as "not logged in".
var ErrNoToken = errors.New("no persisted token")

// Store is the credential store contract.
type Store interface {
	// Save persists the token, overwriting any existing value.
	Save(ctx context.Context, token string) error

	// Load returns the persisted token or ErrNoToken.
	Load(ctx context.Context) (string, error)

	// Clear removes the persisted token. Idempotent.
	Clear(ctx context.Context) error
}

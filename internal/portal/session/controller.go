// Package session owns the authenticated-user record. The Controller is the
// portal's session state machine: it restores a persisted session on startup,
// performs login/logout, and runs the optimistic profile mutation flow.
//
// The in-memory profile is the single mutable shared resource of the portal;
// only this package writes it. Readers get deep copies.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/cruisyconcierge/cruisy-ambassador/internal/logging"
	"github.com/cruisyconcierge/cruisy-ambassador/internal/portal/cms"
	"github.com/cruisyconcierge/cruisy-ambassador/internal/portal/credstore"
	"github.com/cruisyconcierge/cruisy-ambassador/internal/portal/models"
)

// State is the session lifecycle state.
type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StateRestoring       State = "restoring"
	StateAuthenticated   State = "authenticated"
)

var (
	// ErrNotAuthenticated is returned by operations that require a session.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrValidation marks input rejected before any network call.
	ErrValidation = errors.New("validation error")
)

// Notifier receives non-fatal, user-visible notices (e.g. a failed save).
type Notifier func(msg string)

// saveJob is one queued profile save: the delta to transmit plus the rollback
// snapshot taken immediately before that call's optimistic apply.
type saveJob struct {
	ctx      context.Context
	seq      uint64
	snapshot *models.Profile
	update   models.ProfileUpdate
	token    string
	userID   int
}

// Controller is the session state machine. Safe for concurrent use.
type Controller struct {
	gateway cms.Gateway
	creds   credstore.Store
	log     logging.Logger
	notify  Notifier

	mu      sync.Mutex
	state   State
	token   string
	profile *models.Profile

	seq    uint64 // last issued mutation sequence
	queue  []saveJob
	saving bool
	wg     sync.WaitGroup
}

// NewController builds a Controller in the Unauthenticated state. notify may
// be nil, in which case notices are only logged.
func NewController(gateway cms.Gateway, creds credstore.Store, log logging.Logger, notify Notifier) *Controller {
	return &Controller{
		gateway: gateway,
		creds:   creds,
		log:     log.With("component", "session"),
		notify:  notify,
		state:   StateUnauthenticated,
	}
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Profile returns a deep copy of the current profile, or nil when logged out.
func (c *Controller) Profile() *models.Profile {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.profile.Clone()
}

// Token returns the in-memory session token ("" when logged out). The token
// is opaque: callers pass it to gateway operations and nothing else.
func (c *Controller) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// Restore attempts to resume a persisted session. A missing token leaves the
// controller Unauthenticated; a rejected or unusable token is an implicit
// logout — the store is cleared and no user-facing error is raised, since the
// user never explicitly tried to log in on this path.
func (c *Controller) Restore(ctx context.Context) {
	token, err := c.creds.Load(ctx)
	if err != nil {
		c.setState(StateUnauthenticated)
		return
	}

	c.setState(StateRestoring)

	profile, err := c.gateway.FetchProfile(ctx, token)
	if err != nil {
		c.log.Info(ctx, "session restore failed, logging out", "err", err)
		if err := c.creds.Clear(ctx); err != nil {
			c.log.Warn(ctx, "failed to clear credential store", "err", err)
		}
		c.setState(StateUnauthenticated)
		return
	}

	c.mu.Lock()
	c.token = token
	c.profile = profile
	c.state = StateAuthenticated
	c.mu.Unlock()

	c.log.Info(ctx, "session restored", "user", profile.ID, "slug", profile.Slug)
}

// Login authenticates and loads the profile. On full success the token is
// persisted; a persist failure is swallowed (the session degrades to
// in-memory only for this run). On any failure the controller remains
// Unauthenticated. Translate the returned error with UserMessage before
// showing it.
func (c *Controller) Login(ctx context.Context, identifier, secret string) error {
	if strings.TrimSpace(identifier) == "" || secret == "" {
		return fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	token, err := c.gateway.Authenticate(ctx, identifier, secret)
	if err != nil {
		return fmt.Errorf("authenticate: %w", err)
	}

	profile, err := c.gateway.FetchProfile(ctx, token)
	if err != nil {
		return fmt.Errorf("fetch profile: %w", err)
	}

	if err := c.creds.Save(ctx, token); err != nil {
		c.log.Warn(ctx, "token not persisted, session is in-memory only", "err", err)
	}

	c.mu.Lock()
	c.token = token
	c.profile = profile
	c.state = StateAuthenticated
	c.mu.Unlock()

	c.log.Info(ctx, "logged in", "user", profile.ID, "slug", profile.Slug)
	return nil
}

// Logout discards the session. Always succeeds, idempotent, no network
// dependency.
func (c *Controller) Logout(ctx context.Context) {
	if err := c.creds.Clear(ctx); err != nil {
		c.log.Warn(ctx, "failed to clear credential store", "err", err)
	}

	c.mu.Lock()
	c.token = ""
	c.profile = nil
	c.state = StateUnauthenticated
	c.mu.Unlock()
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

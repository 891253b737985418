package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/cruisyconcierge/cruisy-ambassador/internal/logging"
	"github.com/cruisyconcierge/cruisy-ambassador/internal/portal/cms"
	"github.com/cruisyconcierge/cruisy-ambassador/internal/portal/config"
	"github.com/cruisyconcierge/cruisy-ambassador/internal/portal/credstore"
	"github.com/cruisyconcierge/cruisy-ambassador/internal/portal/search"
	"github.com/cruisyconcierge/cruisy-ambassador/internal/portal/session"

	_ "modernc.org/sqlite"
)

// App owns the portal's long-lived components and implements the REPL
// command surface.
type App struct {
	config     *config.Config
	log        logging.Logger
	gateway    cms.Gateway
	store      *credstore.SQLiteStore
	controller *session.Controller
	searcher   *search.Searcher
	reader     *bufio.Reader
}

// NewApp builds the portal from configuration: local credential store, HTTP
// gateway, session controller and catalog searcher. ctx bounds background
// search queries for the life of the app.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	store, err := credstore.InitDatabase(ctx, c.CredentialsDSN)
	if err != nil {
		return nil, fmt.Errorf("init credential store: %w", err)
	}

	gateway := cms.NewHTTPGateway(c.BaseURL, c.RequestTimeout, c.SearchPageSize, log)

	notify := func(msg string) { printlnFn("! " + msg) }

	controller := session.NewController(gateway, store, log, notify)
	searcher := search.NewSearcher(ctx, gateway, log, notify, c.SearchDebounce, c.SearchMinLength)

	return &App{
		config:     c,
		log:        log,
		gateway:    gateway,
		store:      store,
		controller: controller,
		searcher:   searcher,
		reader:     bufio.NewReader(os.Stdin),
	}, nil
}

// Run restores any persisted session, then enters the REPL until the user
// exits or stdin closes.
func (a *App) Run(ctx context.Context) {
	defer func() { _ = a.store.Close() }()

	a.controller.Restore(ctx)
	if a.isLoggedIn() {
		printlnFn("Welcome back, " + a.controller.Profile().Name + "!")
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)

	// Let any queued profile saves resolve before the process exits.
	a.controller.Wait()
}

func (a *App) isLoggedIn() bool {
	return a.controller.State() == session.StateAuthenticated
}

// status is the prompt fragment: the ambassador's slug, or the lifecycle
// state while logged out.
func (a *App) status() string {
	if p := a.controller.Profile(); p != nil {
		return p.Slug
	}
	return string(a.controller.State())
}

// siteRoot derives the public site URL from the API base URL.
func (a *App) siteRoot() string {
	return strings.TrimSuffix(a.config.BaseURL, "/wp-json")
}

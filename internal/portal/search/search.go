// Package search implements the debounced catalog lookup used by the
// featured-itineraries picker. Keystrokes feed Input; the Searcher waits for
// a quiet period before issuing a backend query, cancels superseded timers,
// and discards responses that arrive after a newer query was dispatched, so
// the visible results always correspond to the latest term.
package search

import (
	"context"
	"sync"
	"time"

	"github.com/cruisyconcierge/cruisy-ambassador/internal/logging"
	"github.com/cruisyconcierge/cruisy-ambassador/internal/portal/cms"
	"github.com/cruisyconcierge/cruisy-ambassador/internal/portal/models"
)

// unavailableNotice is the user-visible message for a failed lookup. The
// internal error detail goes to the log.
const unavailableNotice = "Search is unavailable right now — please try again."

// Notifier receives non-fatal, user-visible notices.
type Notifier func(msg string)

// Searcher coalesces a stream of search terms into backend queries. Safe for
// concurrent use.
type Searcher struct {
	ctx       context.Context
	gateway   cms.Gateway
	log       logging.Logger
	notify    Notifier
	debounce  time.Duration
	minLength int

	mu        sync.Mutex
	timer     *time.Timer
	seq       uint64 // latest dispatched query; older completions are stale
	results   []models.CatalogEntry
	searching bool
	done      chan struct{} // closed when the current burst settles; nil when idle
}

// NewSearcher builds a Searcher. ctx bounds the lifetime of every query the
// Searcher dispatches; notify may be nil.
func NewSearcher(ctx context.Context, gateway cms.Gateway, log logging.Logger, notify Notifier, debounce time.Duration, minLength int) *Searcher {
	return &Searcher{
		ctx:       ctx,
		gateway:   gateway,
		log:       log.With("component", "search"),
		notify:    notify,
		debounce:  debounce,
		minLength: minLength,
		results:   []models.CatalogEntry{},
	}
}

// Input feeds the current value of the search field. Terms shorter than the
// minimum clear the results and cancel any pending or in-flight query; longer
// terms (re)arm the debounce timer, so only the final term of a burst reaches
// the backend.
func (s *Searcher) Input(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}

	if len([]rune(term)) < s.minLength {
		// Invalidate any query already in flight.
		s.seq++
		s.results = []models.CatalogEntry{}
		s.settle()
		return
	}

	s.searching = true
	if s.done == nil {
		s.done = make(chan struct{})
	}
	s.timer = time.AfterFunc(s.debounce, func() { s.dispatch(term) })
}

// settle marks the searcher idle and releases every Wait caller. Must be
// called with the mutex held.
func (s *Searcher) settle() {
	s.searching = false
	if s.done != nil {
		close(s.done)
		s.done = nil
	}
}

// dispatch runs after the debounce period with the term that survived it.
func (s *Searcher) dispatch(term string) {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	entries, err := s.gateway.SearchCatalog(s.ctx, term)

	s.mu.Lock()
	if seq != s.seq {
		// A newer query was dispatched (or the field was cleared) while this
		// one was in flight.
		s.mu.Unlock()
		return
	}
	notify := s.notify
	if err != nil {
		s.log.Error(s.ctx, "catalog search failed", "term", term, "err", err)
		s.results = []models.CatalogEntry{}
		s.settle()
		s.mu.Unlock()
		if notify != nil {
			notify(unavailableNotice)
		}
		return
	}
	s.results = entries
	s.settle()
	s.mu.Unlock()
}

// Wait blocks until the current query burst has settled (results arrived,
// the lookup failed, or the field was cleared). Returns immediately when no
// query is pending or in flight.
func (s *Searcher) Wait() {
	s.mu.Lock()
	ch := s.done
	s.mu.Unlock()
	if ch != nil {
		<-ch
	}
}

// Results returns a copy of the current result rows. Never nil.
func (s *Searcher) Results() []models.CatalogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CatalogEntry, len(s.results))
	copy(out, s.results)
	return out
}

// Searching reports whether a query is pending or in flight.
func (s *Searcher) Searching() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searching
}

// Merge builds the picker rows: the already-selected entries first, then the
// search results that are not selected. An entry appearing in both lists is
// shown once, in its selected position.
func Merge(selected, results []models.CatalogEntry) []models.CatalogEntry {
	out := make([]models.CatalogEntry, 0, len(selected)+len(results))
	seen := make(map[int]bool, len(selected))
	for _, e := range selected {
		if seen[e.ID] {
			continue
		}
		seen[e.ID] = true
		out = append(out, e)
	}
	for _, e := range results {
		if seen[e.ID] {
			continue
		}
		seen[e.ID] = true
		out = append(out, e)
	}
	return out
}

// Toggle flips an entry's membership in the selection: present entries are
// removed, absent ones are appended. The input slice is not modified.
func Toggle(selected []models.CatalogEntry, entry models.CatalogEntry) []models.CatalogEntry {
	out := make([]models.CatalogEntry, 0, len(selected)+1)
	removed := false
	for _, e := range selected {
		if e.ID == entry.ID {
			removed = true
			continue
		}
		out = append(out, e)
	}
	if !removed {
		out = append(out, entry)
	}
	return out
}

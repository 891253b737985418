package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/cruisyconcierge/cruisy-ambassador/internal/portal/models"
	"github.com/cruisyconcierge/cruisy-ambassador/internal/portal/search"
	"github.com/cruisyconcierge/cruisy-ambassador/internal/portal/session"
)

// Tours searches the itinerary catalog and prints the picker rows: featured
// itineraries first (marked with *), then matching catalog entries. Without
// an argument it lists only the featured ones.
func (a *App) Tours(ctx context.Context, args []string) error {
	p := a.controller.Profile()
	if p == nil {
		printlnFn("Not logged in.")
		return session.ErrNotAuthenticated
	}

	if len(args) > 0 {
		a.searcher.Input(strings.Join(args, " "))
		a.searcher.Wait()
	}

	rows := search.Merge(p.FeaturedActivities, a.searcher.Results())
	if len(rows) == 0 {
		printlnFn("No itineraries.")
		return nil
	}

	featured := make(map[int]bool, len(p.FeaturedActivities))
	for _, e := range p.FeaturedActivities {
		featured[e.ID] = true
	}

	for _, e := range rows {
		mark := " "
		if featured[e.ID] {
			mark = "*"
		}
		printlnFn(fmt.Sprintf("%s %4d  %s", mark, e.ID, describeEntry(e)))
	}
	return nil
}

// Feature toggles an itinerary in the featured list: feature <id>.
func (a *App) Feature(ctx context.Context, args []string) error {
	p := a.controller.Profile()
	if p == nil {
		printlnFn("Not logged in.")
		return session.ErrNotAuthenticated
	}
	if len(args) == 0 {
		printlnFn("Usage: feature <id>")
		return nil
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		printlnFn("Usage: feature <id>")
		return nil
	}

	selected := search.Toggle(p.FeaturedActivities, a.findEntry(p, id))
	if err := a.apply(ctx, models.ProfileUpdate{FeaturedActivities: &selected}); err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Featured itineraries: %d", len(selected)))
	return nil
}

// findEntry resolves an itinerary ID against the current search results and
// the featured list, so a toggled entry keeps its title and price locally.
// An unknown ID degrades to a bare reference.
func (a *App) findEntry(p *models.Profile, id int) models.CatalogEntry {
	for _, e := range a.searcher.Results() {
		if e.ID == id {
			return e
		}
	}
	for _, e := range p.FeaturedActivities {
		if e.ID == id {
			return e
		}
	}
	return models.CatalogEntry{ID: id}
}

func describeEntry(e models.CatalogEntry) string {
	title := e.Title
	if title == "" {
		title = "(untitled)"
	}
	parts := []string{title}
	if e.Location != "" {
		parts = append(parts, e.Location)
	}
	if e.Price > 0 {
		parts = append(parts, fmt.Sprintf("$%.2f", e.Price))
	}
	return strings.Join(parts, " — ")
}

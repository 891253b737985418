package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/cruisyconcierge/cruisy-ambassador/internal/portal/session"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for an email and password and authenticates against the CMS.
// Failures are translated to a user-facing message; the raw error stays in
// the log.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.controller.Login(ctx, email, string(password)); err != nil {
		printlnFn(session.UserMessage(err))
		return err
	}

	printlnFn("Welcome, " + a.controller.Profile().Name + "!")
	return nil
}

// Logout discards the session and the persisted token.
func (a *App) Logout(ctx context.Context) error {
	a.controller.Logout(ctx)
	printlnFn("Logged out.")
	return nil
}

// WhoAmI prints the current profile.
func (a *App) WhoAmI(ctx context.Context) error {
	p := a.controller.Profile()
	if p == nil {
		printlnFn("Not logged in.")
		return session.ErrNotAuthenticated
	}

	printlnFn(fmt.Sprintf("%s (%s)", p.Name, p.Email))
	printlnFn("Plan: " + string(p.Tier))
	if p.Bio != "" {
		printlnFn("Bio: " + p.Bio)
	}
	printlnFn(fmt.Sprintf("Featured itineraries: %d, gallery photos: %d", len(p.FeaturedActivities), len(p.Gallery)))
	return nil
}

// Link prints the ambassador's shareable links. Without an argument it is
// the public profile URL; with an activity URL it is a trackable version of
// that URL carrying the referral attribution: link [url].
func (a *App) Link(ctx context.Context, args []string) error {
	p := a.controller.Profile()
	if p == nil {
		printlnFn("Not logged in.")
		return session.ErrNotAuthenticated
	}

	if len(args) == 0 {
		printlnFn(fmt.Sprintf("%s/?ref=%s", a.siteRoot(), p.Slug))
		return nil
	}

	printlnFn(trackableLink(args[0], p.Slug))
	return nil
}

// trackableLink strips any existing query from rawURL and appends the
// referral attribution for slug, so clicks on the shared URL credit the
// ambassador.
func trackableLink(rawURL, slug string) string {
	base, _, _ := strings.Cut(rawURL, "?")
	return base + "?ref=" + slug + "&utm_source=ambassador"
}

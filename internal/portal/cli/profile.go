package cli

import (
	"context"
	"os"

	"github.com/cruisyconcierge/cruisy-ambassador/internal/portal/models"
	"github.com/cruisyconcierge/cruisy-ambassador/internal/portal/session"
)

// apply queues a sparse profile update and waits for it to resolve, so a
// rollback notice (if any) prints before the next prompt.
func (a *App) apply(ctx context.Context, update models.ProfileUpdate) error {
	if err := a.controller.Apply(ctx, update); err != nil {
		printlnFn(session.UserMessage(err))
		return err
	}
	a.controller.Wait()
	return nil
}

// EditName prompts for a new display name. An empty line keeps the current
// name.
func (a *App) EditName(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter display name (empty to keep current)", os.Stdout)
	if err != nil {
		return err
	}
	if name == "" {
		return nil
	}
	return a.apply(ctx, models.ProfileUpdate{Name: &name})
}

// EditBio prompts for a new bio. Submitting nothing clears it.
func (a *App) EditBio(ctx context.Context) error {
	bio, err := GetMultiline(a.reader, "Enter bio (empty to clear)", os.Stdout)
	if err != nil {
		return err
	}
	return a.apply(ctx, models.ProfileUpdate{Bio: &bio})
}

// Plan shows the membership plan, or changes it when called with an
// argument: plan elite | plan standard.
func (a *App) Plan(ctx context.Context, args []string) error {
	p := a.controller.Profile()
	if p == nil {
		printlnFn("Not logged in.")
		return session.ErrNotAuthenticated
	}

	if len(args) == 0 {
		printlnFn("Current plan: " + string(p.Tier))
		return nil
	}

	tier := models.ParseTier(args[0])
	if tier == p.Tier {
		printlnFn("Already on the " + string(tier) + " plan.")
		return nil
	}
	if err := a.apply(ctx, models.ProfileUpdate{Tier: &tier}); err != nil {
		return err
	}
	printlnFn("Switched to the " + string(tier) + " plan.")
	return nil
}

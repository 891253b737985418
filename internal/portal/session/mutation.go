package session

import (
	"context"
	"errors"

	"github.com/cruisyconcierge/cruisy-ambassador/internal/portal/cms"
	"github.com/cruisyconcierge/cruisy-ambassador/internal/portal/models"
)

// saveFailedNotice is the user-visible message for a failed profile save.
// The internal error detail goes to the log, not to the user.
const saveFailedNotice = "Your changes could not be saved — please retry."

// Apply runs the optimistic mutation flow for a sparse profile update:
//
//  1. capture the current profile as a rollback snapshot;
//  2. merge the update into the in-memory profile, immediately visible;
//  3. queue the delta for persistence — queued saves run strictly in
//     initiation order, so the backend observes mutations in the order they
//     were applied locally, whatever order responses would otherwise arrive;
//  4. a successful save confirms the optimistic state, nothing further;
//  5. a failed save restores that call's snapshot — unless a newer apply has
//     superseded it — and emits exactly one user-visible notice.
//
// Apply returns once the optimistic merge is visible; persistence is
// asynchronous. A failed save never forces logout: even a rejected token
// during save surfaces as a notice and leaves the session authenticated
// until the user acts.
func (c *Controller) Apply(ctx context.Context, update models.ProfileUpdate) error {
	if update.IsZero() {
		return nil
	}

	c.mu.Lock()
	if c.state != StateAuthenticated {
		c.mu.Unlock()
		return ErrNotAuthenticated
	}

	c.seq++
	job := saveJob{
		ctx:      ctx,
		seq:      c.seq,
		snapshot: c.profile.Clone(),
		update:   update,
		token:    c.token,
		userID:   c.profile.ID,
	}

	update.ApplyTo(c.profile)

	c.queue = append(c.queue, job)
	if !c.saving {
		c.saving = true
		c.wg.Add(1)
		go c.drainSaves()
	}
	c.mu.Unlock()

	return nil
}

// Wait blocks until all queued saves have resolved. Useful for callers that
// want to report the outcome synchronously, and for shutdown.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// drainSaves is the single worker that persists queued mutations one at a
// time, in initiation order.
func (c *Controller) drainSaves() {
	defer c.wg.Done()

	for {
		c.mu.Lock()
		if len(c.queue) == 0 {
			c.saving = false
			c.mu.Unlock()
			return
		}
		job := c.queue[0]
		c.queue = c.queue[1:]
		c.mu.Unlock()

		_, err := c.gateway.SaveProfile(job.ctx, job.token, job.userID, job.update)

		c.mu.Lock()
		if err != nil {
			c.log.Error(job.ctx, "profile save failed", "seq", job.seq, "err", err)
			if errors.Is(err, cms.ErrUnauthorized) {
				c.log.Warn(job.ctx, "token rejected during save; session kept until user acts")
			}
			// Roll back only when this was the newest apply: a later update,
			// pending or confirmed, must not be stomped by an older failure.
			if c.state == StateAuthenticated && job.seq == c.seq {
				c.profile = job.snapshot
			}
			notify := c.notify
			c.mu.Unlock()

			if notify != nil {
				notify(saveFailedNotice)
			}
			continue
		}
		c.mu.Unlock()
	}
}

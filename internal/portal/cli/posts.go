package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/cruisyconcierge/cruisy-ambassador/internal/portal/models"
	"github.com/cruisyconcierge/cruisy-ambassador/internal/portal/session"
)

// Posts lists the ambassador's blog posts, drafts included.
func (a *App) Posts(ctx context.Context) error {
	p := a.controller.Profile()
	if p == nil {
		printlnFn("Not logged in.")
		return session.ErrNotAuthenticated
	}

	posts, err := a.gateway.ListPosts(ctx, a.controller.Token(), p.ID)
	if err != nil {
		printlnFn(session.UserMessage(err))
		return err
	}
	if len(posts) == 0 {
		printlnFn("No posts yet.")
		return nil
	}

	for _, post := range posts {
		printlnFn(fmt.Sprintf("%4d  [%s]  %s  (%s)", post.ID, post.Status, post.Title, post.Date.Format("2006-01-02")))
	}
	return nil
}

// Draft prompts for a title and body and creates a draft post.
func (a *App) Draft(ctx context.Context) error {
	p := a.controller.Profile()
	if p == nil {
		printlnFn("Not logged in.")
		return session.ErrNotAuthenticated
	}

	title, err := getSimpleText(a.reader, "Enter post title", os.Stdout)
	if err != nil {
		return err
	}
	content, err := GetMultiline(a.reader, "Enter post body", os.Stdout)
	if err != nil {
		return err
	}

	created, err := a.gateway.UpsertPost(ctx, a.controller.Token(), models.BlogPost{
		Title:   title,
		Content: content,
		Status:  models.PostDraft,
	})
	if err != nil {
		printlnFn(session.UserMessage(err))
		return err
	}

	printlnFn(fmt.Sprintf("Draft #%d saved.", created.ID))
	return nil
}

// Publish flips an existing post to the publish status: post <id>.
func (a *App) Publish(ctx context.Context, args []string) error {
	p := a.controller.Profile()
	if p == nil {
		printlnFn("Not logged in.")
		return session.ErrNotAuthenticated
	}
	id, ok := parsePostID(args, "post")
	if !ok {
		return nil
	}

	updated, err := a.gateway.UpsertPost(ctx, a.controller.Token(), models.BlogPost{
		ID:     id,
		Status: models.PostPublished,
	})
	if err != nil {
		printlnFn(session.UserMessage(err))
		return err
	}

	if updated.Link != "" {
		printlnFn("Published: " + updated.Link)
	} else {
		printlnFn(fmt.Sprintf("Published #%d.", updated.ID))
	}
	return nil
}

// DelPost deletes a post: delpost <id>.
func (a *App) DelPost(ctx context.Context, args []string) error {
	p := a.controller.Profile()
	if p == nil {
		printlnFn("Not logged in.")
		return session.ErrNotAuthenticated
	}
	id, ok := parsePostID(args, "delpost")
	if !ok {
		return nil
	}

	if err := a.gateway.DeletePost(ctx, a.controller.Token(), id); err != nil {
		printlnFn(session.UserMessage(err))
		return err
	}

	printlnFn(fmt.Sprintf("Deleted #%d.", id))
	return nil
}

func parsePostID(args []string, cmd string) (int, bool) {
	if len(args) == 0 {
		printlnFn("Usage: " + cmd + " <id>")
		return 0, false
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		printlnFn("Usage: " + cmd + " <id>")
		return 0, false
	}
	return id, true
}

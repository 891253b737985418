package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = func(args ...any) { fmt.Println(args...) }

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Link(ctx context.Context, args []string) error
	EditName(ctx context.Context) error
	EditBio(ctx context.Context) error
	Plan(ctx context.Context, args []string) error
	Tours(ctx context.Context, args []string) error
	Feature(ctx context.Context, args []string) error
	Gallery(ctx context.Context) error
	AddPhoto(ctx context.Context, args []string) error
	DelPhoto(ctx context.Context, args []string) error
	Posts(ctx context.Context) error
	Draft(ctx context.Context) error
	Publish(ctx context.Context, args []string) error
	DelPost(ctx context.Context, args []string) error
}

// runREPL starts a simple read-eval-print loop for the portal CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - login          — authenticate
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help           — show available commands
//	  - whoami         — show the current profile
//	  - link [url]     — print the referral link, or a trackable version of url
//	  - name           — edit the display name
//	  - bio            — edit the bio
//	  - plan [tier]    — show or change the membership plan
//	  - tours <term>   — search the itinerary catalog
//	  - feature <id>   — toggle an itinerary in the featured list
//	  - gallery        — list gallery photos
//	  - addphoto <ref> — add a photo (local file or URL)
//	  - delphoto <id>  — remove a photo
//	  - posts          — list blog posts
//	  - draft          — write a new draft post
//	  - post <id>      — publish a draft
//	  - delpost <id>   — delete a post
//	  - logout         — log out
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers print
// their own messages. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("portal> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, link, name, bio, plan, tours, feature, gallery, addphoto, delphoto, posts, draft, post, delpost, logout, exit")
			} else {
				printlnFn("Available commands: login, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "link":
			_ = a.Link(ctx, args)

		case "name":
			_ = a.EditName(ctx)

		case "bio":
			_ = a.EditBio(ctx)

		case "plan":
			_ = a.Plan(ctx, args)

		case "tours":
			_ = a.Tours(ctx, args)

		case "feature":
			_ = a.Feature(ctx, args)

		case "gallery":
			_ = a.Gallery(ctx)

		case "addphoto":
			_ = a.AddPhoto(ctx, args)

		case "delphoto":
			_ = a.DelPhoto(ctx, args)

		case "posts":
			_ = a.Posts(ctx)

		case "draft":
			_ = a.Draft(ctx)

		case "post":
			_ = a.Publish(ctx, args)

		case "delpost":
			_ = a.DelPost(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

package cli

import (
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/cruisyconcierge/cruisy-ambassador/internal/portal/models"
	"github.com/cruisyconcierge/cruisy-ambassador/internal/portal/session"
)

// Gallery lists the profile's gallery photos.
func (a *App) Gallery(ctx context.Context) error {
	p := a.controller.Profile()
	if p == nil {
		printlnFn("Not logged in.")
		return session.ErrNotAuthenticated
	}

	if len(p.Gallery) == 0 {
		printlnFn("Gallery is empty.")
		return nil
	}
	for i, photo := range p.Gallery {
		printlnFn(fmt.Sprintf("%2d  %s  %s", i+1, photo.ID, summarizeRef(photo.Ref)))
	}
	return nil
}

// AddPhoto appends a photo to the gallery: addphoto <file-or-url>. Local
// files are embedded as data URIs; URLs are passed through as-is.
func (a *App) AddPhoto(ctx context.Context, args []string) error {
	p := a.controller.Profile()
	if p == nil {
		printlnFn("Not logged in.")
		return session.ErrNotAuthenticated
	}
	if len(args) == 0 {
		printlnFn("Usage: addphoto <file-or-url>")
		return nil
	}

	ref, err := photoRef(args[0])
	if err != nil {
		printlnFn("Cannot read photo: " + err.Error())
		return err
	}

	gallery := append(append([]models.GalleryPhoto{}, p.Gallery...), models.GalleryPhoto{
		ID:  uuid.NewString(),
		Ref: ref,
	})
	if err := a.apply(ctx, models.ProfileUpdate{Gallery: &gallery}); err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Gallery photos: %d", len(gallery)))
	return nil
}

// DelPhoto removes a photo by its position or ID: delphoto <n|id>.
func (a *App) DelPhoto(ctx context.Context, args []string) error {
	p := a.controller.Profile()
	if p == nil {
		printlnFn("Not logged in.")
		return session.ErrNotAuthenticated
	}
	if len(args) == 0 {
		printlnFn("Usage: delphoto <n|id>")
		return nil
	}

	gallery := make([]models.GalleryPhoto, 0, len(p.Gallery))
	removed := false
	for i, photo := range p.Gallery {
		if photo.ID == args[0] || fmt.Sprint(i+1) == args[0] {
			removed = true
			continue
		}
		gallery = append(gallery, photo)
	}
	if !removed {
		printlnFn("No such photo: " + args[0])
		return nil
	}

	if err := a.apply(ctx, models.ProfileUpdate{Gallery: &gallery}); err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Gallery photos: %d", len(gallery)))
	return nil
}

// photoRef turns the user's argument into a gallery reference: http(s) URLs
// are kept, anything else is read as a local file and embedded as a data URI.
func photoRef(arg string) (string, error) {
	if strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://") {
		return arg, nil
	}

	data, err := os.ReadFile(arg)
	if err != nil {
		return "", err
	}

	contentType := mime.TypeByExtension(filepath.Ext(arg))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// summarizeRef keeps gallery listings readable: data URIs collapse to their
// media type and size, URLs print as-is.
func summarizeRef(ref string) string {
	if !strings.HasPrefix(ref, "data:") {
		return ref
	}
	meta, payload, _ := strings.Cut(strings.TrimPrefix(ref, "data:"), ",")
	mediaType, _, _ := strings.Cut(meta, ";")
	return fmt.Sprintf("[%s, %d bytes]", mediaType, base64.StdEncoding.DecodedLen(len(payload)))
}

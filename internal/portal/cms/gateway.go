// Package cms is the backend gateway: it translates logical portal
// operations into authenticated REST calls against the content backend and
// normalizes its wire shapes into the portal's models.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Gateway interface) covering
//     authentication, profile read/write, catalog search, and blog posts.
//  2. A concrete HTTP/JSON implementation (see HTTPGateway) that owns every
//     detail of the backend's wire format. Nothing outside this package may
//     reason about optional or missing upstream fields: past this boundary
//     every record is fully populated (empty strings, zero prices, empty
//     slices — never absent values).
//
// # Error Handling
//
// Rejected credentials and rejected tokens surface as ErrUnauthorized
// (errors.Is). A response that is not structured data at all becomes a
// *TransportError carrying the raw body; a well-formed backend error becomes
// an *APIError with the backend's message. Decoding problems never raise a
// secondary parse error that masks the root cause.
//
// Concurrency & Contexts
//
// HTTPGateway is safe for concurrent use. All operations accept a
// context.Context and honor cancellation; timeouts come from the underlying
// http.Client.
package cms

import (
	"context"

	"github.com/cruisyconcierge/cruisy-ambassador/internal/portal/models"
)

// Gateway is the portal's contract with the content backend.
type Gateway interface {
	// Authenticate exchanges credentials for an opaque session token.
	Authenticate(ctx context.Context, identifier, secret string) (string, error)

	// FetchProfile returns the authenticated user's normalized profile.
	FetchProfile(ctx context.Context, token string) (*models.Profile, error)

	// SaveProfile applies a sparse update to the user's profile and returns
	// the backend's echo of the updated record. Only fields set on the update
	// are transmitted: an absent field means "leave unchanged", an explicit
	// empty value clears.
	SaveProfile(ctx context.Context, token string, userID int, update models.ProfileUpdate) (*models.Profile, error)

	// SearchCatalog returns catalog entries matching term. Zero matches is an
	// empty slice, not an error.
	SearchCatalog(ctx context.Context, term string) ([]models.CatalogEntry, error)

	// ListPosts returns the posts authored by the given user.
	ListPosts(ctx context.Context, token string, authorID int) ([]models.BlogPost, error)

	// UpsertPost creates the post when its ID is zero, updates it otherwise.
	UpsertPost(ctx context.Context, token string, post models.BlogPost) (*models.BlogPost, error)

	// DeletePost removes a post by identifier.
	DeletePost(ctx context.Context, token string, id int) error
}

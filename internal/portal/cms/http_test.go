package cms

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cruisyconcierge/cruisy-ambassador/internal/logging"
	"github.com/cruisyconcierge/cruisy-ambassador/internal/portal/models"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newGateway(t *testing.T, handler http.Handler) *HTTPGateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPGateway(srv.URL, 0, 20, testLogger())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ---- authenticate ----

func TestAuthenticate_Success(t *testing.T) {
	g := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/jwt-auth/v1/token", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "a@b.com", body["username"])
		require.Equal(t, "secret", body["password"])

		writeJSON(w, http.StatusOK, map[string]string{"token": "T"})
	}))

	token, err := g.Authenticate(context.Background(), "a@b.com", "secret")
	require.NoError(t, err)
	require.Equal(t, "T", token)
}

func TestAuthenticate_InvalidCredentials(t *testing.T) {
	g := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusForbidden, map[string]string{
			"code":    "invalid_credentials",
			"message": "Unknown username or bad password.",
		})
	}))

	_, err := g.Authenticate(context.Background(), "a@b.com", "wrong")
	require.ErrorIs(t, err, ErrUnauthorized)
	require.Contains(t, err.Error(), "Unknown username")
}

func TestAuthenticate_HTMLErrorPageIsTransportError(t *testing.T) {
	g := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("<html>fatal error</html>"))
	}))

	_, err := g.Authenticate(context.Background(), "a@b.com", "secret")

	var te *TransportError
	require.ErrorAs(t, err, &te)
	require.Equal(t, http.StatusInternalServerError, te.Status)
	require.Contains(t, string(te.Body), "fatal error")
}

// ---- profile read ----

func TestFetchProfile_NormalizesMissingFields(t *testing.T) {
	g := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/wp/v2/users/me", r.URL.Path)
		require.Equal(t, "Bearer T", r.Header.Get("Authorization"))
		require.Equal(t, "edit", r.URL.Query().Get("context"))

		// No bio, no tier, no list fields at all.
		writeJSON(w, http.StatusOK, map[string]any{
			"id":   7,
			"name": "Alex Smith",
			"slug": "alex-travels",
			"acf":  map[string]any{},
		})
	}))

	p, err := g.FetchProfile(context.Background(), "T")
	require.NoError(t, err)

	require.Equal(t, 7, p.ID)
	require.Equal(t, "", p.Bio)
	require.Equal(t, models.TierStandard, p.Tier)
	require.NotNil(t, p.FeaturedActivities)
	require.Empty(t, p.FeaturedActivities)
	require.NotNil(t, p.Gallery)
	require.Empty(t, p.Gallery)
}

func TestFetchProfile_NormalizesPopulatedFields(t *testing.T) {
	g := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"id":    7,
			"name":  "Alex Smith",
			"email": "a@b.com",
			"slug":  "alex-travels",
			"acf": map[string]any{
				"bio":            "aloha",
				"membership_tier": "pro",
				// Relationship field expanded to objects.
				"featured_itineraries": []map[string]any{{"id": 42, "title": "x"}, {"id": 43}},
				// Gallery stored serialized.
				"gallery": `[{"id":"g1","ref":"https://img/1.jpg"}]`,
			},
		})
	}))

	p, err := g.FetchProfile(context.Background(), "T")
	require.NoError(t, err)

	require.Equal(t, "aloha", p.Bio)
	require.Equal(t, models.TierElite, p.Tier)
	require.Equal(t, []models.CatalogEntry{{ID: 42}, {ID: 43}}, p.FeaturedActivities)
	require.Equal(t, []models.GalleryPhoto{{ID: "g1", Ref: "https://img/1.jpg"}}, p.Gallery)
}

func TestFetchProfile_RejectedToken(t *testing.T) {
	g := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{
			"code":    "jwt_auth_invalid_token",
			"message": "Expired token",
		})
	}))

	_, err := g.FetchProfile(context.Background(), "stale")
	require.ErrorIs(t, err, ErrUnauthorized)
}

// ---- profile write ----

func TestSaveProfile_SparseBody(t *testing.T) {
	var got map[string]any
	g := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/wp/v2/users/7", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusOK, map[string]any{"id": 7, "acf": map[string]any{"bio": ""}})
	}))

	bio := ""
	featured := []models.CatalogEntry{{ID: 42, Title: "Sunset Sail"}, {ID: 43}}
	update := models.ProfileUpdate{Bio: &bio, FeaturedActivities: &featured}

	_, err := g.SaveProfile(context.Background(), "T", 7, update)
	require.NoError(t, err)

	// Absent key means unchanged: name must not be transmitted.
	_, hasName := got["name"]
	require.False(t, hasName)

	acf, ok := got["acf"].(map[string]any)
	require.True(t, ok)

	// Explicit empty value is transmitted to clear the field.
	require.Equal(t, "", acf["bio"])

	// Featured activities travel as bare identifiers.
	require.Equal(t, []any{float64(42), float64(43)}, acf["featured_itineraries"])

	_, hasGallery := acf["gallery"]
	require.False(t, hasGallery)
}

func TestSaveProfile_GallerySerialized(t *testing.T) {
	var got map[string]any
	g := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusOK, map[string]any{"id": 7})
	}))

	gallery := []models.GalleryPhoto{{ID: "g1", Ref: "data:image/png;base64,AAA"}}
	update := models.ProfileUpdate{Gallery: &gallery}

	_, err := g.SaveProfile(context.Background(), "T", 7, update)
	require.NoError(t, err)

	acf := got["acf"].(map[string]any)
	serialized, ok := acf["gallery"].(string)
	require.True(t, ok, "gallery must travel as a serialized list")

	var photos []models.GalleryPhoto
	require.NoError(t, json.Unmarshal([]byte(serialized), &photos))
	require.Equal(t, gallery, photos)
}

func TestSaveProfile_ValidationFailureIsAPIError(t *testing.T) {
	g := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"code":    "rest_invalid_param",
			"message": "Invalid parameter: name",
		})
	}))

	name := "x"
	_, err := g.SaveProfile(context.Background(), "T", 7, models.ProfileUpdate{Name: &name})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "Invalid parameter: name", apiErr.Message)
	require.NotErrorIs(t, err, ErrUnauthorized)
}

// ---- catalog search ----

func TestSearchCatalog_Normalization(t *testing.T) {
	g := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/wp/v2/itinerary", r.URL.Path)
		require.Equal(t, "sail", r.URL.Query().Get("search"))
		require.Equal(t, "20", r.URL.Query().Get("per_page"))

		writeJSON(w, http.StatusOK, []map[string]any{
			{
				"id":    42,
				"title": map[string]any{"rendered": "Key West Sunset Sail"},
				"acf":   map[string]any{"location": "Key West, FL", "price": "85"},
			},
			{
				// Bare title, numeric price, image from media URL.
				"id":                 43,
				"title":              "Dry Tortugas Seaplane",
				"acf":                map[string]any{"price": 450},
				"featured_media_url": "https://img/seaplane.jpg",
			},
			{
				// Everything optional missing.
				"id": 44,
			},
		})
	}))

	entries, err := g.SearchCatalog(context.Background(), "sail")
	require.NoError(t, err)
	require.Equal(t, []models.CatalogEntry{
		{ID: 42, Title: "Key West Sunset Sail", Location: "Key West, FL", Price: 85},
		{ID: 43, Title: "Dry Tortugas Seaplane", Price: 450, ImageURL: "https://img/seaplane.jpg"},
		{ID: 44},
	}, entries)
}

func TestSearchCatalog_ZeroResults(t *testing.T) {
	g := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []any{})
	}))

	entries, err := g.SearchCatalog(context.Background(), "nothing")
	require.NoError(t, err)
	require.NotNil(t, entries)
	require.Empty(t, entries)
}

// ---- posts ----

func TestListPosts(t *testing.T) {
	g := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/wp/v2/posts", r.URL.Path)
		require.Equal(t, "7", r.URL.Query().Get("author"))
		require.Equal(t, "any", r.URL.Query().Get("status"))

		writeJSON(w, http.StatusOK, []map[string]any{
			{
				"id":      9,
				"title":   map[string]any{"rendered": "My first trip"},
				"content": map[string]any{"rendered": "<p>hello</p>"},
				"status":  "draft",
				"date":    "2025-06-01T10:30:00",
			},
		})
	}))

	posts, err := g.ListPosts(context.Background(), "T", 7)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Equal(t, 9, posts[0].ID)
	require.Equal(t, "My first trip", posts[0].Title)
	require.Equal(t, models.PostDraft, posts[0].Status)
	require.Equal(t, 2025, posts[0].Date.Year())
}

func TestUpsertPost_CreateVersusUpdate(t *testing.T) {
	var paths []string
	g := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]any{"id": 9, "status": "draft"})
	}))

	_, err := g.UpsertPost(context.Background(), "T", models.BlogPost{Title: "new"})
	require.NoError(t, err)

	_, err = g.UpsertPost(context.Background(), "T", models.BlogPost{ID: 9, Title: "edited"})
	require.NoError(t, err)

	require.Equal(t, []string{"/wp/v2/posts", "/wp/v2/posts/9"}, paths)
}

func TestUpsertPost_PublishDoesNotBlankTitle(t *testing.T) {
	g := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.NotContains(t, body, "title")
		require.NotContains(t, body, "content")
		require.Equal(t, "publish", body["status"])
		writeJSON(w, http.StatusOK, map[string]any{"id": 9, "status": "publish"})
	}))

	_, err := g.UpsertPost(context.Background(), "T", models.BlogPost{ID: 9, Status: models.PostPublished})
	require.NoError(t, err)
}

func TestDeletePost(t *testing.T) {
	g := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/wp/v2/posts/9", r.URL.Path)
		require.Equal(t, "true", r.URL.Query().Get("force"))
		writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
	}))

	require.NoError(t, g.DeletePost(context.Background(), "T", 9))
}

func TestDeletePost_NotFound(t *testing.T) {
	g := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"code":    "rest_post_invalid_id",
			"message": "Invalid post ID.",
		})
	}))

	err := g.DeletePost(context.Background(), "T", 999)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.Status)
}

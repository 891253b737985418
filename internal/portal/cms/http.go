package cms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cruisyconcierge/cruisy-ambassador/internal/logging"
	"github.com/cruisyconcierge/cruisy-ambassador/internal/portal/models"
)

// HTTPGateway implements Gateway over the backend's HTTP/JSON surface.
type HTTPGateway struct {
	baseURL  string
	pageSize int
	client   *http.Client
	log      logging.Logger
}

// NewHTTPGateway builds a gateway against baseURL (the backend's API root,
// e.g. "https://cruisytravel.com/wp-json"). pageSize bounds list endpoints.
func NewHTTPGateway(baseURL string, timeout time.Duration, pageSize int, log logging.Logger) *HTTPGateway {
	return &HTTPGateway{
		baseURL:  strings.TrimRight(baseURL, "/"),
		pageSize: pageSize,
		client:   &http.Client{Timeout: timeout},
		log:      log.With("component", "cms"),
	}
}

// do performs one JSON request/response cycle. Every response first passes
// the content-type gate: anything that is not JSON becomes a *TransportError
// carrying the raw body, so a backend error page can never surface as a
// secondary decode error.
func (g *HTTPGateway) do(ctx context.Context, method, path string, query url.Values, token string, body, out any) error {
	endpoint := g.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, payload)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		g.log.Error(ctx, "non-json response from backend",
			"method", method, "path", path,
			"status", resp.StatusCode, "content_type", mediaType, "body", string(raw))
		return &TransportError{Status: resp.StatusCode, ContentType: mediaType, Body: raw}
	}

	if resp.StatusCode >= 400 {
		var er errorResponse
		if err := json.Unmarshal(raw, &er); err != nil {
			return &TransportError{Status: resp.StatusCode, ContentType: mediaType, Body: raw}
		}
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			if er.Message == "" {
				return ErrUnauthorized
			}
			return fmt.Errorf("%s: %w", er.Message, ErrUnauthorized)
		}
		return &APIError{Status: resp.StatusCode, Code: er.Code, Message: er.Message}
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			g.log.Error(ctx, "undecodable response from backend",
				"method", method, "path", path, "status", resp.StatusCode, "body", string(raw))
			return &TransportError{Status: resp.StatusCode, ContentType: mediaType, Body: raw}
		}
	}
	return nil
}

func (g *HTTPGateway) Authenticate(ctx context.Context, identifier, secret string) (string, error) {
	body := map[string]string{"username": identifier, "password": secret}

	var resp tokenResponse
	err := g.do(ctx, http.MethodPost, "/jwt-auth/v1/token", nil, "", body, &resp)
	if err != nil {
		// The token endpoint reports invalid credentials as a structured 4xx.
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status < 500 {
			return "", fmt.Errorf("%s: %w", apiErr.Error(), ErrUnauthorized)
		}
		return "", err
	}
	if resp.Token == "" {
		return "", &APIError{Status: http.StatusOK, Message: "token missing from response"}
	}
	return resp.Token, nil
}

func (g *HTTPGateway) FetchProfile(ctx context.Context, token string) (*models.Profile, error) {
	query := url.Values{"context": {"edit"}}

	var user wireUser
	if err := g.do(ctx, http.MethodGet, "/wp/v2/users/me", query, token, nil, &user); err != nil {
		return nil, err
	}
	return user.toProfile(), nil
}

func (g *HTTPGateway) SaveProfile(ctx context.Context, token string, userID int, update models.ProfileUpdate) (*models.Profile, error) {
	body := map[string]any{}
	if update.Name != nil {
		body["name"] = *update.Name
	}

	fields := map[string]any{}
	if update.Bio != nil {
		fields["bio"] = *update.Bio
	}
	if update.Tier != nil {
		fields["membership_tier"] = string(*update.Tier)
	}
	if update.FeaturedActivities != nil {
		ids := make([]int, 0, len(*update.FeaturedActivities))
		for _, entry := range *update.FeaturedActivities {
			ids = append(ids, entry.ID)
		}
		fields["featured_itineraries"] = ids
	}
	if update.Gallery != nil {
		serialized, err := json.Marshal(*update.Gallery)
		if err != nil {
			return nil, fmt.Errorf("encoding gallery: %w", err)
		}
		fields["gallery"] = string(serialized)
	}
	if len(fields) > 0 {
		body["acf"] = fields
	}

	var user wireUser
	path := "/wp/v2/users/" + strconv.Itoa(userID)
	if err := g.do(ctx, http.MethodPost, path, nil, token, body, &user); err != nil {
		return nil, err
	}
	return user.toProfile(), nil
}

func (g *HTTPGateway) SearchCatalog(ctx context.Context, term string) ([]models.CatalogEntry, error) {
	query := url.Values{
		"search":   {term},
		"per_page": {strconv.Itoa(g.pageSize)},
		"_fields":  {"id,title,acf,featured_media_url"},
	}

	var items []wireItinerary
	if err := g.do(ctx, http.MethodGet, "/wp/v2/itinerary", query, "", nil, &items); err != nil {
		return nil, err
	}

	entries := make([]models.CatalogEntry, 0, len(items))
	for _, it := range items {
		entries = append(entries, it.toEntry())
	}
	return entries, nil
}

func (g *HTTPGateway) ListPosts(ctx context.Context, token string, authorID int) ([]models.BlogPost, error) {
	query := url.Values{
		"author":   {strconv.Itoa(authorID)},
		"status":   {"any"},
		"per_page": {strconv.Itoa(g.pageSize)},
		"_fields":  {"id,title,content,status,date,link,featured_media_url"},
	}

	var items []wirePost
	if err := g.do(ctx, http.MethodGet, "/wp/v2/posts", query, token, nil, &items); err != nil {
		return nil, err
	}

	posts := make([]models.BlogPost, 0, len(items))
	for _, p := range items {
		posts = append(posts, p.toPost())
	}
	return posts, nil
}

func (g *HTTPGateway) UpsertPost(ctx context.Context, token string, post models.BlogPost) (*models.BlogPost, error) {
	// Updates transmit only the fields that are set, so publishing an
	// existing draft does not blank its title or body.
	body := map[string]any{}
	if post.ID == 0 || post.Title != "" {
		body["title"] = post.Title
	}
	if post.ID == 0 || post.Content != "" {
		body["content"] = post.Content
	}
	if post.Status != "" {
		body["status"] = string(post.Status)
	}

	path := "/wp/v2/posts"
	if post.ID != 0 {
		path += "/" + strconv.Itoa(post.ID)
	}

	var saved wirePost
	if err := g.do(ctx, http.MethodPost, path, nil, token, body, &saved); err != nil {
		return nil, err
	}
	result := saved.toPost()
	return &result, nil
}

func (g *HTTPGateway) DeletePost(ctx context.Context, token string, id int) error {
	query := url.Values{"force": {"true"}}
	path := "/wp/v2/posts/" + strconv.Itoa(id)
	return g.do(ctx, http.MethodDelete, path, query, token, nil, nil)
}

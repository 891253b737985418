// Package cmstest provides an in-process fake of the CMS REST API for
// integration-style tests. It speaks the same wire shapes as the production
// backend: JWT issuance, the users endpoint with ACF fields, the itinerary
// catalog, and the posts collection.
package cmstest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Account is a login the fake server accepts.
type Account struct {
	ID       int
	Email    string
	Password string
	Name     string
	Slug     string
}

// Itinerary is one row of the fake catalog.
type Itinerary struct {
	ID       int
	Title    string
	Location string
	Price    float64
	ImageURL string
}

// Post is one row of the fake posts collection.
type Post struct {
	ID      int
	Author  int
	Title   string
	Content string
	Status  string
	Date    string
	Link    string
}

// profileFields is the mutable ACF state of an account's profile.
type profileFields struct {
	Bio       string
	Tier      string
	Featured  []int
	GalleryJS string // serialized JSON string, stored as the backend does
}

// Server is a fake CMS. Zero value is not usable; construct with New.
type Server struct {
	httpServer *httptest.Server
	secret     []byte

	mu          sync.Mutex
	accounts    []Account
	profiles    map[int]*profileFields
	itineraries []Itinerary
	posts       map[int]*Post
	nextPostID  int
}

// New starts a fake CMS with the given accounts and catalog. Call Close when
// done.
func New(accounts []Account, itineraries []Itinerary) *Server {
	s := &Server{
		secret:      []byte("cmstest-secret"),
		accounts:    accounts,
		profiles:    make(map[int]*profileFields),
		itineraries: itineraries,
		posts:       make(map[int]*Post),
		nextPostID:  1,
	}
	for _, a := range accounts {
		s.profiles[a.ID] = &profileFields{Tier: "standard", Featured: []int{}, GalleryJS: "[]"}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /jwt-auth/v1/token", s.handleToken)
	mux.HandleFunc("GET /wp/v2/users/me", s.handleMe)
	mux.HandleFunc("POST /wp/v2/users/{id}", s.handleUpdateUser)
	mux.HandleFunc("GET /wp/v2/itinerary", s.handleItineraries)
	mux.HandleFunc("GET /wp/v2/posts", s.handleListPosts)
	mux.HandleFunc("POST /wp/v2/posts", s.handleCreatePost)
	mux.HandleFunc("POST /wp/v2/posts/{id}", s.handleUpdatePost)
	mux.HandleFunc("DELETE /wp/v2/posts/{id}", s.handleDeletePost)

	s.httpServer = httptest.NewServer(mux)
	return s
}

// URL is the base URL of the fake API, the equivalent of the site's /wp-json
// root.
func (s *Server) URL() string { return s.httpServer.URL }

// Close shuts the fake server down.
func (s *Server) Close() { s.httpServer.Close() }

// Profile returns a copy of the stored ACF state for an account, for
// assertions.
func (s *Server) Profile(userID int) (bio, tier string, featured []int, gallery string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.profiles[userID]
	if p == nil {
		return "", "", nil, ""
	}
	featured = append([]int{}, p.Featured...)
	return p.Bio, p.Tier, featured, p.GalleryJS
}

// IssueToken mints a valid token for an account without going through the
// login endpoint. Useful for seeding a credential store in tests.
func (s *Server) IssueToken(userID int) string {
	return s.signToken(userID, time.Hour)
}

// ExpiredToken mints a token that verification will reject.
func (s *Server) ExpiredToken(userID int) string {
	return s.signToken(userID, -time.Hour)
}

func (s *Server) signToken(userID int, ttl time.Duration) string {
	claims := jwt.RegisteredClaims{
		Subject:   strconv.Itoa(userID),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		panic(err)
	}
	return signed
}

// authenticate extracts and verifies the bearer token, returning the account
// ID or an error response already written to w.
func (s *Server) authenticate(w http.ResponseWriter, r *http.Request) (int, bool) {
	header := r.Header.Get("Authorization")
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		writeError(w, http.StatusUnauthorized, "jwt_auth_no_auth_header", "Authorization header not found.")
		return 0, false
	}

	parsed, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		writeError(w, http.StatusForbidden, "jwt_auth_invalid_token", "Signature verification failed")
		return 0, false
	}

	sub, err := parsed.Claims.GetSubject()
	if err != nil {
		writeError(w, http.StatusForbidden, "jwt_auth_invalid_token", "Malformed subject")
		return 0, false
	}
	id, err := strconv.Atoi(sub)
	if err != nil {
		writeError(w, http.StatusForbidden, "jwt_auth_invalid_token", "Malformed subject")
		return 0, false
	}
	return id, true
}

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "rest_invalid_json", "Invalid JSON body.")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.Email == body.Username && a.Password == body.Password {
			writeJSON(w, http.StatusOK, map[string]any{
				"token":             s.signToken(a.ID, time.Hour),
				"user_email":        a.Email,
				"user_display_name": a.Name,
			})
			return
		}
	}
	writeError(w, http.StatusForbidden, "jwt_auth_failed", "Invalid credentials.")
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.account(userID)
	if !ok {
		writeError(w, http.StatusNotFound, "rest_user_invalid_id", "Invalid user ID.")
		return
	}
	p := s.profiles[userID]

	writeJSON(w, http.StatusOK, map[string]any{
		"id":    account.ID,
		"name":  account.Name,
		"email": account.Email,
		"slug":  account.Slug,
		"acf": map[string]any{
			"bio":                  p.Bio,
			"membership_tier":      p.Tier,
			"featured_itineraries": p.Featured,
			"gallery":              p.GalleryJS,
		},
	})
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	pathID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || pathID != userID {
		writeError(w, http.StatusForbidden, "rest_cannot_edit", "Sorry, you are not allowed to edit this user.")
		return
	}

	var body struct {
		Name *string `json:"name"`
		ACF  *struct {
			Bio      *string `json:"bio"`
			Tier     *string `json:"membership_tier"`
			Featured *[]int  `json:"featured_itineraries"`
			Gallery  *string `json:"gallery"`
		} `json:"acf"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "rest_invalid_json", "Invalid JSON body.")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.profiles[userID]
	if body.Name != nil {
		for i := range s.accounts {
			if s.accounts[i].ID == userID {
				s.accounts[i].Name = *body.Name
			}
		}
	}
	if body.ACF != nil {
		if body.ACF.Bio != nil {
			p.Bio = *body.ACF.Bio
		}
		if body.ACF.Tier != nil {
			p.Tier = *body.ACF.Tier
		}
		if body.ACF.Featured != nil {
			p.Featured = append([]int{}, (*body.ACF.Featured)...)
		}
		if body.ACF.Gallery != nil {
			p.GalleryJS = *body.ACF.Gallery
		}
	}

	account, _ := s.account(userID)
	writeJSON(w, http.StatusOK, map[string]any{
		"id":    account.ID,
		"name":  account.Name,
		"email": account.Email,
		"slug":  account.Slug,
		"acf": map[string]any{
			"bio":                  p.Bio,
			"membership_tier":      p.Tier,
			"featured_itineraries": p.Featured,
			"gallery":              p.GalleryJS,
		},
	})
}

func (s *Server) handleItineraries(w http.ResponseWriter, r *http.Request) {
	term := strings.ToLower(r.URL.Query().Get("search"))
	limit := len(s.itineraries)
	if v := r.URL.Query().Get("per_page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]map[string]any, 0)
	for _, it := range s.itineraries {
		if term != "" && !strings.Contains(strings.ToLower(it.Title), term) &&
			!strings.Contains(strings.ToLower(it.Location), term) {
			continue
		}
		if len(out) >= limit {
			break
		}
		out = append(out, map[string]any{
			"id":    it.ID,
			"title": map[string]any{"rendered": it.Title},
			"acf": map[string]any{
				"location": it.Location,
				"price":    it.Price,
			},
			"featured_media_url": it.ImageURL,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	author := r.URL.Query().Get("author")

	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]map[string]any, 0)
	for _, p := range s.posts {
		if author != "" && author != strconv.Itoa(p.Author) {
			continue
		}
		if p.Author != userID {
			continue
		}
		out = append(out, postJSON(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	var body struct {
		Title   string `json:"title"`
		Content string `json:"content"`
		Status  string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "rest_invalid_json", "Invalid JSON body.")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p := &Post{
		ID:      s.nextPostID,
		Author:  userID,
		Title:   body.Title,
		Content: body.Content,
		Status:  body.Status,
		Date:    time.Now().Format("2006-01-02T15:04:05"),
		Link:    fmt.Sprintf("%s/?p=%d", s.httpServer.URL, s.nextPostID),
	}
	s.nextPostID++
	s.posts[p.ID] = p
	writeJSON(w, http.StatusCreated, postJSON(p))
}

func (s *Server) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	id, _ := strconv.Atoi(r.PathValue("id"))

	var body struct {
		Title   *string `json:"title"`
		Content *string `json:"content"`
		Status  *string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "rest_invalid_json", "Invalid JSON body.")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok || p.Author != userID {
		writeError(w, http.StatusNotFound, "rest_post_invalid_id", "Invalid post ID.")
		return
	}
	if body.Title != nil {
		p.Title = *body.Title
	}
	if body.Content != nil {
		p.Content = *body.Content
	}
	if body.Status != nil {
		p.Status = *body.Status
	}
	writeJSON(w, http.StatusOK, postJSON(p))
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	id, _ := strconv.Atoi(r.PathValue("id"))

	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok || p.Author != userID {
		writeError(w, http.StatusNotFound, "rest_post_invalid_id", "Invalid post ID.")
		return
	}
	delete(s.posts, id)
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true, "previous": postJSON(p)})
}

func (s *Server) account(id int) (Account, bool) {
	for _, a := range s.accounts {
		if a.ID == id {
			return a, true
		}
	}
	return Account{}, false
}

func postJSON(p *Post) map[string]any {
	return map[string]any{
		"id":      p.ID,
		"title":   map[string]any{"rendered": p.Title},
		"content": map[string]any{"rendered": p.Content},
		"status":  p.Status,
		"date":    p.Date,
		"link":    p.Link,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]any{
		"code":    code,
		"message": message,
		"data":    map[string]any{"status": status},
	})
}

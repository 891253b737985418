package cms

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/cruisyconcierge/cruisy-ambassador/internal/portal/models"
)

// Wire DTOs. The backend's field presence depends on which plugins are
// installed, so every optional shape here tolerates absence and falls back to
// the documented defaults during normalization.

type tokenResponse struct {
	Token string `json:"token"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// wireText accepts either a bare JSON string or the backend's rendered-text
// object form {"rendered": "..."}.
type wireText string

func (t *wireText) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = wireText(s)
		return nil
	}
	var obj struct {
		Rendered string `json:"rendered"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		*t = wireText(obj.Rendered)
		return nil
	}
	*t = ""
	return nil
}

// wireNumber accepts a JSON number, a numeric string, or nothing, defaulting
// to zero.
type wireNumber float64

func (n *wireNumber) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*n = wireNumber(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*n = wireNumber(f)
			return nil
		}
	}
	*n = 0
	return nil
}

// wireIDList accepts a list of identifiers in any of the shapes the
// relationship field is known to emit: [3,7], ["3","7"], or
// [{"id":3,...},...]. Anything else normalizes to empty.
type wireIDList []int

func (l *wireIDList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		*l = nil
		return nil
	}
	ids := make([]int, 0, len(raw))
	for _, item := range raw {
		var id int
		if err := json.Unmarshal(item, &id); err == nil {
			ids = append(ids, id)
			continue
		}
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
				ids = append(ids, v)
			}
			continue
		}
		var obj struct {
			ID int `json:"id"`
		}
		if err := json.Unmarshal(item, &obj); err == nil && obj.ID != 0 {
			ids = append(ids, obj.ID)
		}
	}
	*l = ids
	return nil
}

// wireGallery accepts the gallery field either as a JSON array of photos or
// as a serialized JSON string containing that array (the backend stores it
// the second way, older records the first).
type wireGallery []models.GalleryPhoto

func (g *wireGallery) UnmarshalJSON(data []byte) error {
	var photos []models.GalleryPhoto
	if err := json.Unmarshal(data, &photos); err == nil {
		*g = photos
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil && s != "" {
		if err := json.Unmarshal([]byte(s), &photos); err == nil {
			*g = photos
			return nil
		}
	}
	*g = nil
	return nil
}

type wireUserFields struct {
	Bio                 string      `json:"bio"`
	MembershipTier      string      `json:"membership_tier"`
	FeaturedItineraries wireIDList  `json:"featured_itineraries"`
	Gallery             wireGallery `json:"gallery"`
}

type wireUser struct {
	ID     int            `json:"id"`
	Name   string         `json:"name"`
	Email  string         `json:"email"`
	Slug   string         `json:"slug"`
	Fields wireUserFields `json:"acf"`
}

func (u wireUser) toProfile() *models.Profile {
	featured := make([]models.CatalogEntry, 0, len(u.Fields.FeaturedItineraries))
	for _, id := range u.Fields.FeaturedItineraries {
		featured = append(featured, models.CatalogEntry{ID: id})
	}
	gallery := make([]models.GalleryPhoto, 0, len(u.Fields.Gallery))
	gallery = append(gallery, u.Fields.Gallery...)

	return &models.Profile{
		ID:                 u.ID,
		Name:               u.Name,
		Email:              u.Email,
		Slug:               u.Slug,
		Bio:                u.Fields.Bio,
		Tier:               models.ParseTier(u.Fields.MembershipTier),
		FeaturedActivities: featured,
		Gallery:            gallery,
	}
}

type wireItineraryFields struct {
	Location string     `json:"location"`
	Price    wireNumber `json:"price"`
	Image    string     `json:"image"`
}

type wireItinerary struct {
	ID               int                 `json:"id"`
	Title            wireText            `json:"title"`
	Fields           wireItineraryFields `json:"acf"`
	FeaturedMediaURL string              `json:"featured_media_url"`
}

func (it wireItinerary) toEntry() models.CatalogEntry {
	image := it.FeaturedMediaURL
	if image == "" {
		image = it.Fields.Image
	}
	return models.CatalogEntry{
		ID:       it.ID,
		Title:    string(it.Title),
		Location: it.Fields.Location,
		Price:    float64(it.Fields.Price),
		ImageURL: image,
	}
}

// postDateFormat is the backend's local-time post date layout.
const postDateFormat = "2006-01-02T15:04:05"

type wirePost struct {
	ID               int      `json:"id"`
	Title            wireText `json:"title"`
	Content          wireText `json:"content"`
	Status           string   `json:"status"`
	Date             string   `json:"date"`
	Link             string   `json:"link"`
	FeaturedMediaURL string   `json:"featured_media_url"`
}

func (p wirePost) toPost() models.BlogPost {
	date, err := time.Parse(postDateFormat, p.Date)
	if err != nil {
		date = time.Time{}
	}
	return models.BlogPost{
		ID:       p.ID,
		Title:    string(p.Title),
		Content:  string(p.Content),
		Status:   models.PostStatus(p.Status),
		Date:     date,
		Link:     p.Link,
		ImageURL: p.FeaturedMediaURL,
	}
}

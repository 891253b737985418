package models

// CatalogEntry is a bookable item (activity, stay, cruise) owned by the
// backend catalog. ID matches the backend identifier and is the
// de-duplication key for featured selections.
type CatalogEntry struct {
	ID       int
	Title    string
	Location string  // may be empty
	Price    float64 // 0 when absent upstream
	ImageURL string  // may be empty
}

// GalleryPhoto is a locally-identified image on the ambassador's page.
type GalleryPhoto struct {
	// ID is generated client-side and unique within a session.
	ID string `json:"id"`
	// Ref is the image payload reference: a data URI or a hosted URL.
	Ref string `json:"ref"`
}

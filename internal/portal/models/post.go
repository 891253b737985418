package models

import "time"

// PostStatus is the backend-defined publication status of a blog post.
type PostStatus string

const (
	PostDraft     PostStatus = "draft"
	PostPending   PostStatus = "pending"
	PostPublished PostStatus = "publish"
)

// BlogPost is an ambassador-authored post. ID 0 marks an unsaved draft; the
// upsert operation dispatches on its presence.
type BlogPost struct {
	ID       int
	Title    string
	Content  string
	Status   PostStatus
	Date     time.Time
	Link     string // may be empty
	ImageURL string // may be empty
}

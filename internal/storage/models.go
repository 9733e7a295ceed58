package storage

import (
	"time"
)

// Bookmark is a saved location. Only the location is authoritative; the
// title is a label captured when it was saved.
type Bookmark struct {
	Location  string    `json:"location"`
	Title     string    `json:"title"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	KindArticle  = "article"
	KindResearch = "research"
	KindListing  = "listing"
)

package store

import (
	"database/sql"
	"time"
)

// Bookmark is one saved link with its enrichment fields.
type Bookmark struct {
	ID           string         `json:"id"`
	UserID       string         `json:"user_id"`
	CategoryID   sql.NullString `json:"category_id,omitempty"`
	URL          string         `json:"url"`
	Title        string         `json:"title"`
	Description  string         `json:"description,omitempty"`
	OGImageURL   string         `json:"og_image_url,omitempty"`
	FaviconURL   string         `json:"favicon_url,omitempty"`
	MediaType    string         `json:"media_type"`
	MediaEmbedID string         `json:"media_embed_id,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// Category groups bookmarks per user. (UserID, Name) is unique.
type Category struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon,omitempty"`
	Color     string    `json:"color,omitempty"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}

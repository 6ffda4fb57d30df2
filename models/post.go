// File: /models/post.go
package models

import (
	"time"
)

type Post struct {
	ID        string    `json:"id" gorm:"primaryKey;size:191"`
	AuthorID  string    `json:"author_id" gorm:"not null;size:191;index"`
	Text      string    `json:"text" gorm:"not null;type:text"`
	Options   JSONMap   `json:"options,omitempty" gorm:"type:json"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostResponse pairs a post with its author's summary. The summary is
// filled in by the request layer, never preloaded by the post collection.
type PostResponse struct {
	Post
	Author UserSummary `json:"author"`
}

// FeedResponse is the paginated shape for post listings and the home feed.
type FeedResponse struct {
	Posts      []PostResponse `json:"posts"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	Total      int64          `json:"total"`
	HasMore    bool           `json:"has_more"`
	TotalPages int            `json:"total_pages"`
}

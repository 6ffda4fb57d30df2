package models

import (
	"time"
)

// Comment attaches to an item that may be a post or another comment.
// ItemID is deliberately untyped; the request layer resolves what it is.
type Comment struct {
	ID        string    `json:"id" gorm:"primaryKey;size:191"`
	AuthorID  string    `json:"author_id" gorm:"not null;size:191;index"`
	ItemID    string    `json:"item_id" gorm:"not null;size:191;index"`
	Body      string    `json:"body" gorm:"not null;type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CommentResponse struct {
	Comment
	Author UserSummary `json:"author"`
}

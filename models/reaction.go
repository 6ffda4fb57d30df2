// File: /models/reaction.go
package models

import "time"

// Reaction is a typed tag ("like", "laugh", ...) an author attaches to an
// item. Like comments, the item may be a post or a comment. A given author
// can hold each reaction type at most once per item.
type Reaction struct {
	ID        string    `json:"id" gorm:"primaryKey;size:191"`
	AuthorID  string    `json:"author_id" gorm:"not null;size:191;index"`
	ItemID    string    `json:"item_id" gorm:"not null;size:191;index"`
	Type      string    `json:"type" gorm:"not null;size:50"`
	CreatedAt time.Time `json:"created_at"`
}

type ReactionResponse struct {
	Reaction
	Author UserSummary `json:"author"`
}

// File: /models/score.go
package models

import "time"

// Score is a numeric rating attached to any item (user, post or comment).
// One record per item, seeded with value 0 when the item is created. What
// the value means is up to whoever updates it.
type Score struct {
	ID        string    `json:"id" gorm:"primaryKey;size:191"`
	ItemID    string    `json:"item_id" gorm:"uniqueIndex;not null;size:191"`
	Value     float64   `json:"value" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

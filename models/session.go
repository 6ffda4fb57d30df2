// File: /models/session.go
package models

import "time"

// Session is a server-side login session. The row id is the opaque handle
// carried inside the bearer token, so deleting or unbinding the row
// invalidates every copy of the token.
//
// UserID is nil while the session is not bound to an identity. UpdatedAt
// moves on every bind/unbind and drives stale-session cleanup.
type Session struct {
	ID        string    `json:"id" gorm:"primaryKey;size:191"`
	UserID    *string   `json:"user_id" gorm:"size:191;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

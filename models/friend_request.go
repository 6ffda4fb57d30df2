package models

import "time"

type FriendRequestStatus string

const (
	FriendRequestStatusPending  FriendRequestStatus = "pending"
	FriendRequestStatusAccepted FriendRequestStatus = "accepted"
	FriendRequestStatusRejected FriendRequestStatus = "rejected"
)

// FriendRequest moves through pending -> accepted|rejected exactly once.
// The pending row is deleted when the request is resolved or withdrawn; a
// resolved request is kept as a terminal-status history row.
type FriendRequest struct {
	ID        uint                `json:"id" gorm:"primaryKey"`
	FromID    string              `json:"from_id" gorm:"not null;size:191;index"`
	ToID      string              `json:"to_id" gorm:"not null;size:191;index"`
	Status    FriendRequestStatus `json:"status" gorm:"not null;default:'pending';size:20"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// Friendship stores the unordered pair as an ordered one, User1ID < User2ID,
// so one row answers both directions.
type Friendship struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	User1ID   string    `json:"user1_id" gorm:"not null;size:191;index"`
	User2ID   string    `json:"user2_id" gorm:"not null;size:191;index"`
	CreatedAt time.Time `json:"created_at"`
}

// FriendRequestResponse names the counterpart of a pending request.
type FriendRequestResponse struct {
	User      UserSummary `json:"user"`
	CreatedAt time.Time   `json:"created_at"`
}

// File: /models/user.go
package models

import (
	"time"
)

type User struct {
	ID        string    `json:"id" gorm:"primaryKey;size:191"`
	Username  string    `json:"username" gorm:"uniqueIndex;not null;size:50"`
	Password  string    `json:"-" gorm:"not null;size:255"`
	Email     *string   `json:"email,omitempty" gorm:"size:255"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Follow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  string    `json:"follower_id" gorm:"not null;size:191;index"`
	FollowingID string    `json:"following_id" gorm:"not null;size:191;index"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserSummary is the shape other resources embed when naming a user.
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username}
}

// ProfileResponse aggregates a user's record with counts drawn from the
// social collections. Email is only set on the owner's own profile.
type ProfileResponse struct {
	User           UserSummary `json:"user"`
	Email          *string     `json:"email,omitempty"`
	FollowersCount int64       `json:"followers_count"`
	FollowingCount int64       `json:"following_count"`
	FriendsCount   int64       `json:"friends_count"`
	PostsCount     int64       `json:"posts_count"`
	CreatedAt      time.Time   `json:"created_at"`
}

// PublicProfileResponse adds the viewer's relationship to the profiled user.
type PublicProfileResponse struct {
	ProfileResponse
	IsFollowing     bool `json:"is_following"`
	IsFriend        bool `json:"is_friend"`
	RequestSent     bool `json:"request_sent"`
	RequestReceived bool `json:"request_received"`
}

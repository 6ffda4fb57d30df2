// File: /models/notification.go
package models

import (
	"time"
)

type NotificationType string

const (
	NotificationTypeFollow        NotificationType = "follow"
	NotificationTypeComment       NotificationType = "comment"
	NotificationTypeReaction      NotificationType = "reaction"
	NotificationTypeFriendRequest NotificationType = "friend_request"
	NotificationTypeFriendAccept  NotificationType = "friend_accept"
)

type Notification struct {
	ID          string           `json:"id" gorm:"primaryKey;size:191"`
	Type        NotificationType `json:"type" gorm:"not null;size:50"`
	ActorID     string           `json:"actor_id" gorm:"not null;size:191"`
	RecipientID string           `json:"recipient_id" gorm:"not null;size:191;index"`
	ItemID      *string          `json:"item_id,omitempty" gorm:"size:191"`
	IsRead      bool             `json:"is_read" gorm:"default:false"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// Message returns a human-readable phrase for the notification type,
// completed by the actor's name on the client side.
func (n *Notification) Message() string {
	switch n.Type {
	case NotificationTypeFollow:
		return "started following you"
	case NotificationTypeComment:
		return "commented on your item"
	case NotificationTypeReaction:
		return "reacted to your item"
	case NotificationTypeFriendRequest:
		return "sent you a friend request"
	case NotificationTypeFriendAccept:
		return "accepted your friend request"
	default:
		return "interacted with your content"
	}
}

// NotificationResponse is the API shape; the actor summary is resolved by
// the request layer.
type NotificationResponse struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	Actor     UserSummary      `json:"actor"`
	ItemID    *string          `json:"item_id,omitempty"`
	Message   string           `json:"message"`
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}

// PaginatedNotifications is the paginated listing with the unread count the
// client badges with.
type PaginatedNotifications struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int64                  `json:"unread_count"`
	Page          int                    `json:"page"`
	Limit         int                    `json:"limit"`
	Total         int64                  `json:"total"`
	TotalPages    int                    `json:"total_pages"`
}

// File: /services/notification_service.go
package services

import (
	"log"

	"loopline-api/events"
	"loopline-api/models"
	"loopline-api/repositories"
)

// NotificationService turns activity events into notification rows.
// Acting on your own items never notifies.
type NotificationService struct {
	notifications *repositories.NotificationRepository
}

func NewNotificationService(notifications *repositories.NotificationRepository) *NotificationService {
	return &NotificationService{notifications: notifications}
}

// HandleEvent is subscribed on the event bus.
func (s *NotificationService) HandleEvent(event interface{}) {
	switch e := event.(type) {
	case events.CommentCreated:
		s.notify(models.NotificationTypeComment, e.AuthorID, e.ItemAuthorID, &e.ItemID)
	case events.ReactionCreated:
		s.notify(models.NotificationTypeReaction, e.AuthorID, e.ItemAuthorID, &e.ItemID)
	case events.FollowCreated:
		s.notify(models.NotificationTypeFollow, e.FollowerID, e.FollowingID, nil)
	case events.FriendRequestSent:
		s.notify(models.NotificationTypeFriendRequest, e.FromID, e.ToID, nil)
	case events.FriendRequestAccepted:
		s.notify(models.NotificationTypeFriendAccept, e.ToID, e.FromID, nil)
	}
}

func (s *NotificationService) notify(notificationType models.NotificationType, actorID, recipientID string, itemID *string) {
	if recipientID == "" || actorID == recipientID {
		return
	}
	if _, err := s.notifications.Create(notificationType, actorID, recipientID, itemID); err != nil {
		log.Printf("notification service: failed to record %s for %s: %v", notificationType, recipientID, err)
	}
}

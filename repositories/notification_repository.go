// File: /repositories/notification_repository.go
package repositories

import (
	"time"

	"gorm.io/gorm"

	"loopline-api/apperr"
	"loopline-api/models"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(notificationType models.NotificationType, actorID, recipientID string, itemID *string) (*models.Notification, error) {
	notification := models.Notification{
		ID:          models.NewID(),
		Type:        notificationType,
		ActorID:     actorID,
		RecipientID: recipientID,
		ItemID:      itemID,
	}
	if err := r.db.Create(&notification).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

// ListForRecipient returns the user's notifications newest first, with the
// total and unread counts for the page header.
func (r *NotificationRepository) ListForRecipient(recipientID string, page, limit int) ([]models.Notification, int64, int64, error) {
	query := r.db.Model(&models.Notification{}).Where("recipient_id = ?", recipientID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, 0, err
	}

	var unread int64
	err := r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&unread).Error
	if err != nil {
		return nil, 0, 0, err
	}

	var notifications []models.Notification
	err = query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, 0, 0, err
	}
	return notifications, total, unread, nil
}

// MarkRead flags one notification, scoped to its recipient so nobody can
// acknowledge someone else's.
func (r *NotificationRepository) MarkRead(id, recipientID string) error {
	res := r.db.Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Updates(map[string]interface{}{
			"is_read":    true,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("notification", id)
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(recipientID string) error {
	return r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Updates(map[string]interface{}{
			"is_read":    true,
			"updated_at": time.Now(),
		}).Error
}

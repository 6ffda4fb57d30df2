// File: /controllers/notification_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"loopline-api/models"
	"loopline-api/repositories"
	"loopline-api/utils"
)

type NotificationController struct {
	notifications *repositories.NotificationRepository
	users         *repositories.UserRepository
}

func NewNotificationController(notifications *repositories.NotificationRepository, users *repositories.UserRepository) *NotificationController {
	return &NotificationController{
		notifications: notifications,
		users:         users,
	}
}

// GetNotifications gets paginated notifications for the current user
func (nc *NotificationController) GetNotifications(c *gin.Context) {
	userID := c.GetString("user_id")
	page, limit := pagination(c)

	notifications, total, unread, err := nc.notifications.ListForRecipient(userID, page, limit)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	actorIDs := make([]string, 0, len(notifications))
	for _, n := range notifications {
		actorIDs = append(actorIDs, n.ActorID)
	}
	summaries, err := nc.users.SummariesByID(actorIDs)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	responses := make([]models.NotificationResponse, len(notifications))
	for i, n := range notifications {
		responses[i] = models.NotificationResponse{
			ID:        n.ID,
			Type:      n.Type,
			Actor:     summaries[n.ActorID],
			ItemID:    n.ItemID,
			Message:   n.Message(),
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		}
	}

	c.JSON(http.StatusOK, models.PaginatedNotifications{
		Notifications: responses,
		UnreadCount:   unread,
		Page:          page,
		Limit:         limit,
		Total:         total,
		TotalPages:    totalPages(total, limit),
	})
}

// MarkRead marks a single notification as read, scoped to the recipient
// so one user cannot touch another's rows.
func (nc *NotificationController) MarkRead(c *gin.Context) {
	userID := c.GetString("user_id")
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := nc.notifications.MarkRead(id, userID); err != nil {
		utils.SendAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

func (nc *NotificationController) MarkAllRead(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := nc.notifications.MarkAllRead(userID); err != nil {
		utils.SendAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unlinked-app/unlinked/model"
)

// GetUserNotifications lists the caller's notifications, newest first.
func (h *Handler) GetUserNotifications(c *gin.Context, user *model.User) {
	notifications := []*model.Notification{}
	if err := h.DB.
		Preload("RelatedUser").
		Preload("RelatedPost").
		Where("recipient_id = ?", user.Id).
		Order("created_at desc").
		Find(&notifications).Error; err != nil {
		internalError(c, "GetUserNotifications", err)
		return
	}

	c.JSON(http.StatusOK, notifications)
}

// MarkNotificationAsRead flips the read flag. Scoped to the recipient, a
// notification id belonging to somebody else reads as absent.
func (h *Handler) MarkNotificationAsRead(c *gin.Context, user *model.User) {
	notificationId := c.Param("id")

	var notification model.Notification
	result := h.DB.Where("id = ? AND recipient_id = ?", notificationId, user.Id).First(&notification)
	if result.RowsAffected != 1 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Notification not found"})
		return
	}

	if err := h.DB.Model(&notification).Update("read", true).Error; err != nil {
		internalError(c, "MarkNotificationAsRead", err)
		return
	}

	c.JSON(http.StatusOK, &notification)
}

// DeleteNotification removes a notification, scoped to the recipient.
func (h *Handler) DeleteNotification(c *gin.Context, user *model.User) {
	notificationId := c.Param("id")

	if err := h.DB.
		Where("id = ? AND recipient_id = ?", notificationId, user.Id).
		Delete(&model.Notification{}).Error; err != nil {
		internalError(c, "DeleteNotification", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted successfully"})
}

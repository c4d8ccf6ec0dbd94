package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ecommerce-api/internal/models"
)

// ListNotifications handles GET /notifications
func (h *Handler) ListNotifications(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var notifications []models.Notification
	err := h.db.Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		Find(&notifications).Error
	if err != nil {
		h.internalError(c, "Failed to fetch notifications", err)
		return
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	c.JSON(http.StatusOK, notifications)
}

// MarkNotificationRead handles PUT /notifications/:id/read
func (h *Handler) MarkNotificationRead(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	res := h.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if res.Error != nil {
		h.internalError(c, "Failed to update notification", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"internship_admin/internal/notify"
	"internship_admin/pkg/apperrors"
)

type NotificationHandler struct {
	*BaseHandler
	center *notify.Center
}

func NewNotificationHandler(base *BaseHandler, center *notify.Center) *NotificationHandler {
	return &NotificationHandler{
		BaseHandler: base,
		center:      center,
	}
}

func (h *NotificationHandler) RegisterRoutes(r *gin.RouterGroup) {
	notifications := r.Group("/notifications")
	{
		notifications.GET("", h.GetActive)
		notifications.DELETE("/:notificationId", h.Dismiss)
	}
}

func (h *NotificationHandler) GetActive(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"notifications": h.center.Active(),
		"ttl_ms":        h.center.TTL().Milliseconds(),
	})
}

func (h *NotificationHandler) Dismiss(c *gin.Context) {
	id := c.Param("notificationId")
	if !h.center.Dismiss(id) {
		h.HandleServiceError(c, apperrors.ErrNotFound(nil, "notifications", "Notification not found"))
		return
	}
	c.Status(http.StatusNoContent)
}

// internal/handlers/notification.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/delivery-storefront/internal/i18n"
	"github.com/javajoker/delivery-storefront/internal/services"
	"github.com/javajoker/delivery-storefront/internal/utils"
)

type NotificationHandler struct {
	sessions *services.SessionManager
}

func NewNotificationHandler(sessions *services.SessionManager) *NotificationHandler {
	return &NotificationHandler{sessions: sessions}
}

// GET /notifications
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	session, ok := currentSession(c, h.sessions)
	if !ok {
		return
	}

	utils.SuccessResponse(c, gin.H{
		"notifications": session.Notifications.Active(),
	})
}

// DELETE /notifications/:id
func (h *NotificationHandler) DismissNotification(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	session, ok := currentSession(c, h.sessions)
	if !ok {
		return
	}

	if err := session.Notifications.Dismiss(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeySuccess),
	})
}

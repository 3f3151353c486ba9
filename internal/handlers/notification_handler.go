package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/SerraVetServices/vet-scheduler/internal/httperr"
	"github.com/SerraVetServices/vet-scheduler/internal/httpresp"
	"github.com/SerraVetServices/vet-scheduler/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type NotificationHandler struct {
	db *gorm.DB
}

func NewNotificationHandler(db *gorm.DB) *NotificationHandler {
	return &NotificationHandler{db: db}
}

// ======================================================
// LIST / READ
// ======================================================

func (h *NotificationHandler) List(c *gin.Context) {
	userID, _ := actor(c)

	q := h.db.Where("user_id = ?", userID)
	if c.Query("unread") == "true" {
		q = q.Where("read = ?", false)
	}

	var notifications []models.Notification
	q.Order("created_at DESC").Find(&notifications)

	httpresp.List(c, notifications)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, _ := actor(c)

	id, ok := paramID(c)
	if !ok {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var n models.Notification
	if err := h.db.First(&n, id).Error; err != nil {
		httperr.NotFound(c, "notification_not_found", "Notificação não encontrada.")
		return
	}
	if n.UserID != userID {
		httperr.Forbidden(c, "not_owner", "Notificação de outro usuário.")
		return
	}

	if !n.Read {
		n.Read = true
		if err := h.db.Save(&n).Error; err != nil {
			httperr.Internal(c, "failed_to_update_notification", "Erro ao atualizar notificação.")
			return
		}
	}

	httpresp.OK(c, n)
}

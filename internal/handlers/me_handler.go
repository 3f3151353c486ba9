package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	userdomain "github.com/SerraVetServices/vet-scheduler/internal/domain/user"
	"github.com/SerraVetServices/vet-scheduler/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userID, role := actor(c)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user_not_found"})
		return
	}

	resp := gin.H{"user": publicUser(&user)}

	if role == userdomain.RoleVeterinarian {
		var profile models.VetProfile
		if err := h.db.Where("user_id = ?", userID).First(&profile).Error; err == nil {
			resp["crmv"] = profile.CRMV
		}
	}

	c.JSON(http.StatusOK, resp)
}

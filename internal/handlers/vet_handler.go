package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/SerraVetServices/vet-scheduler/internal/httperr"
	"github.com/SerraVetServices/vet-scheduler/internal/httpresp"
	"github.com/SerraVetServices/vet-scheduler/internal/models"
)

// ======================================================
// HANDLER — diretório de veterinários
// ======================================================

// VetHandler lista os veterinários da clínica. É daqui que o tutor tira
// o veterinarian_id usado no agendamento.
type VetHandler struct {
	db *gorm.DB
}

func NewVetHandler(db *gorm.DB) *VetHandler {
	return &VetHandler{db: db}
}

func (h *VetHandler) List(c *gin.Context) {
	var profiles []models.VetProfile
	if err := h.db.
		Preload("User").
		Joins("JOIN users ON users.id = vet_profiles.user_id").
		Order("users.name ASC").
		Find(&profiles).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro ao listar veterinários.")
		return
	}

	out := make([]gin.H, 0, len(profiles))
	for i := range profiles {
		out = append(out, publicVet(&profiles[i]))
	}

	httpresp.List(c, out)
}

func (h *VetHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var profile models.VetProfile
	if err := h.db.
		Preload("User").
		Where("user_id = ?", id).
		First(&profile).Error; err != nil {
		httperr.NotFound(c, "veterinarian_not_found", "Veterinário não encontrado.")
		return
	}

	httpresp.OK(c, publicVet(&profile))
}

func publicVet(p *models.VetProfile) gin.H {
	v := publicUser(&p.User)
	v["crmv"] = p.CRMV
	return v
}

package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/SerraVetServices/vet-scheduler/internal/audit"
	"github.com/SerraVetServices/vet-scheduler/internal/httperr"
	"github.com/SerraVetServices/vet-scheduler/internal/httpresp"
	"github.com/SerraVetServices/vet-scheduler/internal/infra/storage"
	"github.com/SerraVetServices/vet-scheduler/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type PetHandler struct {
	db    *gorm.DB
	blobs storage.BlobStore
	audit *audit.Dispatcher
}

func NewPetHandler(db *gorm.DB, blobs storage.BlobStore, audit *audit.Dispatcher) *PetHandler {
	return &PetHandler{db: db, blobs: blobs, audit: audit}
}

// ======================================================
// REQUESTS
// ======================================================

var validSpecies = map[string]bool{
	"dog":     true,
	"cat":     true,
	"bird":    true,
	"rodent":  true,
	"reptile": true,
	"other":   true,
}

type PetRequest struct {
	Name       string  `json:"name" binding:"required"`
	Species    string  `json:"species" binding:"required"`
	Breed      string  `json:"breed"`
	Weight     float64 `json:"weight"`
	Vaccinated bool    `json:"vaccinated"`
	Allergies  string  `json:"allergies"`
	Diseases   string  `json:"diseases"`
}

// ======================================================
// CRUD (tutor)
// ======================================================

func (h *PetHandler) List(c *gin.Context) {
	userID, _ := actor(c)

	var pets []models.Pet
	h.db.Where("tutor_id = ?", userID).Order("name ASC").Find(&pets)

	httpresp.List(c, pets)
}

func (h *PetHandler) Create(c *gin.Context) {
	userID, _ := actor(c)

	var req PetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}
	if !validSpecies[req.Species] {
		httperr.BadRequest(c, "invalid_species", "Espécie inválida.")
		return
	}

	pet := models.Pet{
		TutorID:    userID,
		Name:       req.Name,
		Species:    req.Species,
		Breed:      req.Breed,
		Weight:     req.Weight,
		Vaccinated: req.Vaccinated,
		Allergies:  req.Allergies,
		Diseases:   req.Diseases,
	}

	if err := h.db.Create(&pet).Error; err != nil {
		httperr.Internal(c, "failed_to_create_pet", "Erro ao cadastrar pet.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "pet_created",
		Entity:   "pet",
		EntityID: &pet.ID,
	})

	httpresp.Created(c, pet)
}

func (h *PetHandler) Update(c *gin.Context) {
	userID, _ := actor(c)

	id, ok := paramID(c)
	if !ok {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	pet, ok := h.ownPet(c, id, userID)
	if !ok {
		return
	}

	var req PetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}
	if !validSpecies[req.Species] {
		httperr.BadRequest(c, "invalid_species", "Espécie inválida.")
		return
	}

	pet.Name = req.Name
	pet.Species = req.Species
	pet.Breed = req.Breed
	pet.Weight = req.Weight
	pet.Vaccinated = req.Vaccinated
	pet.Allergies = req.Allergies
	pet.Diseases = req.Diseases

	if err := h.db.Save(pet).Error; err != nil {
		httperr.Internal(c, "failed_to_update_pet", "Erro ao atualizar pet.")
		return
	}

	httpresp.OK(c, pet)
}

// Delete: somente o tutor remove o próprio pet.
func (h *PetHandler) Delete(c *gin.Context) {
	userID, _ := actor(c)

	id, ok := paramID(c)
	if !ok {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	pet, ok := h.ownPet(c, id, userID)
	if !ok {
		return
	}

	if err := h.db.Delete(pet).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_pet", "Erro ao remover pet.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "pet_deleted",
		Entity:   "pet",
		EntityID: &id,
	})

	c.Status(http.StatusNoContent)
}

// ======================================================
// FOTO
// ======================================================

func (h *PetHandler) UploadPhoto(c *gin.Context) {
	userID, _ := actor(c)

	id, ok := paramID(c)
	if !ok {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	pet, ok := h.ownPet(c, id, userID)
	if !ok {
		return
	}

	file, err := c.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "missing_photo", "Arquivo de foto obrigatório.")
		return
	}

	src, err := file.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_photo", "Erro ao ler a foto.")
		return
	}
	defer src.Close()

	normalized, err := storage.NormalizePetPhoto(src)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Imagem inválida.")
		return
	}

	url, err := h.blobs.Put(
		c.Request.Context(),
		"pets",
		file.Filename+".webp",
		"image/webp",
		bytes.NewReader(normalized),
	)
	if err != nil {
		httperr.Internal(c, "failed_to_store_photo", "Erro ao guardar a foto.")
		return
	}

	pet.PhotoURL = url
	if err := h.db.Save(pet).Error; err != nil {
		httperr.Internal(c, "failed_to_update_pet", "Erro ao atualizar pet.")
		return
	}

	httpresp.OK(c, gin.H{"photo_url": url})
}

func (h *PetHandler) ownPet(c *gin.Context, id, userID uint) (*models.Pet, bool) {
	var pet models.Pet
	if err := h.db.First(&pet, id).Error; err != nil {
		httperr.NotFound(c, "pet_not_found", "Pet não encontrado.")
		return nil, false
	}
	if pet.TutorID != userID {
		httperr.Forbidden(c, "not_owner", "Este pet pertence a outro tutor.")
		return nil, false
	}
	return &pet, true
}

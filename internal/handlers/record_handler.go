package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	userdomain "github.com/SerraVetServices/vet-scheduler/internal/domain/user"
	"github.com/SerraVetServices/vet-scheduler/internal/httperr"
	"github.com/SerraVetServices/vet-scheduler/internal/httpresp"
	"github.com/SerraVetServices/vet-scheduler/internal/infra/storage"
	"github.com/SerraVetServices/vet-scheduler/internal/models"
	ucRecord "github.com/SerraVetServices/vet-scheduler/internal/usecase/record"
)

// ======================================================
// HANDLER
// ======================================================

type RecordHandler struct {
	db    *gorm.DB
	blobs storage.BlobStore
	save  *ucRecord.SaveRecord
}

func NewRecordHandler(
	db *gorm.DB,
	blobs storage.BlobStore,
	save *ucRecord.SaveRecord,
) *RecordHandler {
	return &RecordHandler{
		db:    db,
		blobs: blobs,
		save:  save,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type SaveRecordRequest struct {
	ClinicalSigns   string `json:"clinical_signs"`
	Diagnosis       string `json:"diagnosis"`
	Exams           string `json:"exams"`
	Immunizations   string `json:"immunizations"`
	PrescriptionURL string `json:"prescription_url"`
	Notes           string `json:"notes"`
	Finalize        bool   `json:"finalize"`
}

// ======================================================
// GET / SAVE
// ======================================================

func (h *RecordHandler) Get(c *gin.Context) {
	actorID, role := actor(c)

	id, ok := paramID(c)
	if !ok {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var ap models.Appointment
	if err := h.db.Preload("Pet").First(&ap, id).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", "Consulta não encontrada.")
		return
	}

	// tutor da consulta, veterinário dela ou balcão/administração
	switch role {
	case userdomain.RoleClient:
		if ap.Pet.TutorID != actorID {
			httperr.Forbidden(c, "not_authorized", "Prontuário de outro tutor.")
			return
		}
	case userdomain.RoleVeterinarian:
		if ap.VeterinarianID != actorID {
			httperr.Forbidden(c, "not_authorized", "Consulta de outro veterinário.")
			return
		}
	}

	var rec models.ClinicalRecord
	if err := h.db.Where("appointment_id = ?", id).First(&rec).Error; err != nil {
		httperr.NotFound(c, "record_not_found", "Prontuário não encontrado.")
		return
	}

	httpresp.OK(c, rec)
}

func (h *RecordHandler) Save(c *gin.Context) {
	actorID, role := actor(c)

	id, ok := paramID(c)
	if !ok {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var req SaveRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	rec, err := h.save.Execute(c.Request.Context(), ucRecord.SaveRecordInput{
		ActorID:         actorID,
		ActorRole:       role,
		AppointmentID:   id,
		ClinicalSigns:   req.ClinicalSigns,
		Diagnosis:       req.Diagnosis,
		Exams:           req.Exams,
		Immunizations:   req.Immunizations,
		PrescriptionURL: req.PrescriptionURL,
		Notes:           req.Notes,
		Finalize:        req.Finalize,
	})
	if err != nil {
		httperr.WriteBusiness(c, err, "Não foi possível salvar o prontuário.")
		return
	}

	httpresp.OK(c, rec)
}

// ======================================================
// RECEITA (upload)
// ======================================================

// UploadPrescription guarda o arquivo e devolve a URL para o prontuário.
func (h *RecordHandler) UploadPrescription(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Arquivo obrigatório.")
		return
	}

	src, err := file.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_file", "Erro ao ler o arquivo.")
		return
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := h.blobs.Put(
		c.Request.Context(),
		"prescriptions",
		file.Filename,
		contentType,
		src,
	)
	if err != nil {
		httperr.Internal(c, "failed_to_store_file", "Erro ao guardar o arquivo.")
		return
	}

	httpresp.OK(c, gin.H{"url": url})
}

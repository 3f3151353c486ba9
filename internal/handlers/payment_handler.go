package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	userdomain "github.com/SerraVetServices/vet-scheduler/internal/domain/user"
	"github.com/SerraVetServices/vet-scheduler/internal/httperr"
	"github.com/SerraVetServices/vet-scheduler/internal/httpresp"
	"github.com/SerraVetServices/vet-scheduler/internal/infra/storage"
	"github.com/SerraVetServices/vet-scheduler/internal/models"
	ucPayment "github.com/SerraVetServices/vet-scheduler/internal/usecase/payment"
)

// ======================================================
// HANDLER
// ======================================================

type PaymentHandler struct {
	db          *gorm.DB
	blobs       storage.BlobStore
	setPrice    *ucPayment.SetPrice
	submitProof *ucPayment.SubmitProof
	decide      *ucPayment.DecidePayment
}

func NewPaymentHandler(
	db *gorm.DB,
	blobs storage.BlobStore,
	setPrice *ucPayment.SetPrice,
	submitProof *ucPayment.SubmitProof,
	decide *ucPayment.DecidePayment,
) *PaymentHandler {
	return &PaymentHandler{
		db:          db,
		blobs:       blobs,
		setPrice:    setPrice,
		submitProof: submitProof,
		decide:      decide,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type SetPriceRequest struct {
	Amount float64 `json:"amount" binding:"required"`
}

type DecideRequest struct {
	Decision string `json:"decision" binding:"required"`
	Note     string `json:"note"`
}

// ======================================================
// GET (resumo do pagamento)
// ======================================================

func (h *PaymentHandler) Get(c *gin.Context) {
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

	// mesmo recorte do prontuário: tutor, veterinário da consulta ou balcão
	switch role {
	case userdomain.RoleClient:
		if ap.Pet.TutorID != actorID {
			httperr.Forbidden(c, "not_authorized", "Pagamento de outro tutor.")
			return
		}
	case userdomain.RoleVeterinarian:
		if ap.VeterinarianID != actorID {
			httperr.Forbidden(c, "not_authorized", "Consulta de outro veterinário.")
			return
		}
	}

	var quote *models.PriceQuote
	var q models.PriceQuote
	if err := h.db.Where("appointment_id = ?", id).First(&q).Error; err == nil {
		quote = &q
	}

	var proofs []models.PaymentProof
	h.db.Where("appointment_id = ?", id).Order("created_at ASC").Find(&proofs)

	var review *models.PaymentReview
	var r models.PaymentReview
	if err := h.db.Where("appointment_id = ?", id).First(&r).Error; err == nil {
		review = &r
	}

	httpresp.OK(c, gin.H{
		"payment_status": ap.PaymentStatus,
		"quote":          quote,
		"proofs":         proofs,
		"review":         review,
	})
}

// ======================================================
// PRICE
// ======================================================

func (h *PaymentHandler) SetPrice(c *gin.Context) {
	actorID, role := actor(c)

	id, ok := paramID(c)
	if !ok {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var req SetPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	quote, err := h.setPrice.Execute(c.Request.Context(), ucPayment.SetPriceInput{
		ActorID:       actorID,
		ActorRole:     role,
		AppointmentID: id,
		Amount:        req.Amount,
	})
	if err != nil {
		httperr.WriteBusiness(c, err, "Não foi possível definir o valor.")
		return
	}

	httpresp.OK(c, quote)
}

// ======================================================
// PROOF (multipart)
// ======================================================

func (h *PaymentHandler) SubmitProof(c *gin.Context) {
	actorID, role := actor(c)

	id, ok := paramID(c)
	if !ok {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Comprovante obrigatório.")
		return
	}

	// guardas antes do upload: envio recusado não pode deixar arquivo
	// órfão no bucket
	if err := h.submitProof.Validate(c.Request.Context(), ucPayment.SubmitProofInput{
		ActorID:       actorID,
		ActorRole:     role,
		AppointmentID: id,
	}); err != nil {
		httperr.WriteBusiness(c, err, "Não foi possível enviar o comprovante.")
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
		"payment-proofs",
		file.Filename,
		contentType,
		src,
	)
	if err != nil {
		httperr.Internal(c, "failed_to_store_file", "Erro ao guardar o comprovante.")
		return
	}

	proof, err := h.submitProof.Execute(c.Request.Context(), ucPayment.SubmitProofInput{
		ActorID:       actorID,
		ActorRole:     role,
		AppointmentID: id,
		FileURL:       url,
	})
	if err != nil {
		httperr.WriteBusiness(c, err, "Não foi possível enviar o comprovante.")
		return
	}

	httpresp.Created(c, proof)
}

// ======================================================
// DECISION
// ======================================================

func (h *PaymentHandler) Decide(c *gin.Context) {
	actorID, role := actor(c)

	id, ok := paramID(c)
	if !ok {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var req DecideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	review, err := h.decide.Execute(c.Request.Context(), ucPayment.DecidePaymentInput{
		ActorID:       actorID,
		ActorRole:     role,
		AppointmentID: id,
		Decision:      req.Decision,
		Note:          req.Note,
	})
	if err != nil {
		httperr.WriteBusiness(c, err, "Não foi possível registrar a decisão.")
		return
	}

	httpresp.OK(c, review)
}

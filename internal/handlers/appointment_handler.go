package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/SerraVetServices/vet-scheduler/internal/domain/appointment"
	userdomain "github.com/SerraVetServices/vet-scheduler/internal/domain/user"
	"github.com/SerraVetServices/vet-scheduler/internal/httperr"
	"github.com/SerraVetServices/vet-scheduler/internal/httpresp"
	"github.com/SerraVetServices/vet-scheduler/internal/timezone"
	ucAppointment "github.com/SerraVetServices/vet-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	book   *ucAppointment.BookAppointment
	cancel *ucAppointment.CancelAppointment
	start  *ucAppointment.StartConsultation
	list   *ucAppointment.ListAppointments
}

func NewAppointmentHandler(
	book *ucAppointment.BookAppointment,
	cancel *ucAppointment.CancelAppointment,
	start *ucAppointment.StartConsultation,
	list *ucAppointment.ListAppointments,
) *AppointmentHandler {
	return &AppointmentHandler{
		book:   book,
		cancel: cancel,
		start:  start,
		list:   list,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BookAppointmentRequest struct {
	PetID          uint   `json:"pet_id" binding:"required"`
	VeterinarianID uint   `json:"veterinarian_id" binding:"required"`
	SlotID         uint   `json:"slot_id" binding:"required"`
	Reason         string `json:"reason" binding:"required"`
}

// ======================================================
// BOOK
// ======================================================

func (h *AppointmentHandler) Book(c *gin.Context) {
	actorID, role := actor(c)

	if !userdomain.CanBook(role) {
		httperr.Forbidden(c, "not_authorized", "Somente clientes agendam consultas.")
		return
	}

	var req BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.book.Execute(c.Request.Context(), ucAppointment.BookAppointmentInput{
		ClientID:       actorID,
		PetID:          req.PetID,
		VeterinarianID: req.VeterinarianID,
		SlotID:         req.SlotID,
		Reason:         req.Reason,
	})
	if err != nil {
		httperr.WriteBusiness(c, err, "Não foi possível agendar a consulta.")
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// LIST (escopo por papel)
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	actorID, role := actor(c)

	f := domain.ListFilter{}

	if fromStr := c.Query("from"); fromStr != "" {
		from, err := timezone.ParseDate(fromStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data inválida.")
			return
		}
		f.From = &from
	}
	if toStr := c.Query("to"); toStr != "" {
		to, err := timezone.ParseDate(toStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data inválida.")
			return
		}
		f.To = &to
	}

	aps, err := h.list.Execute(c.Request.Context(), ucAppointment.ListAppointmentsInput{
		ActorID:   actorID,
		ActorRole: role,
		Filter:    f,
	})
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar consultas.")
		return
	}

	httpresp.List(c, aps)
}

// ======================================================
// CANCEL
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	actorID, role := actor(c)

	id, ok := paramID(c)
	if !ok {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), ucAppointment.CancelAppointmentInput{
		AppointmentID: id,
		ActorID:       actorID,
		ActorRole:     role,
	})
	if err != nil {
		httperr.WriteBusiness(c, err, "Não foi possível cancelar a consulta.")
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// START
// ======================================================

func (h *AppointmentHandler) Start(c *gin.Context) {
	actorID, role := actor(c)

	id, ok := paramID(c)
	if !ok {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	ap, err := h.start.Execute(c.Request.Context(), ucAppointment.StartConsultationInput{
		AppointmentID: id,
		ActorID:       actorID,
		ActorRole:     role,
	})
	if err != nil {
		httperr.WriteBusiness(c, err, "Não foi possível iniciar o atendimento.")
		return
	}

	httpresp.OK(c, ap)
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/SerraVetServices/vet-scheduler/internal/httperr"
	"github.com/SerraVetServices/vet-scheduler/internal/httpresp"
	"github.com/SerraVetServices/vet-scheduler/internal/timezone"
	ucAbsence "github.com/SerraVetServices/vet-scheduler/internal/usecase/absence"
)

// ======================================================
// HANDLER
// ======================================================

type AbsenceHandler struct {
	declare *ucAbsence.DeclareAbsence
	list    *ucAbsence.ListAbsences
}

func NewAbsenceHandler(
	declare *ucAbsence.DeclareAbsence,
	list *ucAbsence.ListAbsences,
) *AbsenceHandler {
	return &AbsenceHandler{
		declare: declare,
		list:    list,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type DeclareAbsenceRequest struct {
	VeterinarianID uint   `json:"veterinarian_id" binding:"required"`
	Start          string `json:"start" binding:"required"`
	End            string `json:"end" binding:"required"`
	Reason         string `json:"reason"`
}

// ======================================================
// DECLARE
// ======================================================

func (h *AbsenceHandler) Declare(c *gin.Context) {
	actorID, role := actor(c)

	var req DeclareAbsenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	start, err := timezone.ParseDateTime(req.Start)
	if err != nil {
		httperr.BadRequest(c, "invalid_start", "Início inválido.")
		return
	}
	end, err := timezone.ParseDateTime(req.End)
	if err != nil {
		httperr.BadRequest(c, "invalid_end", "Fim inválido.")
		return
	}

	result, err := h.declare.Execute(c.Request.Context(), ucAbsence.DeclareAbsenceInput{
		ActorID:        actorID,
		ActorRole:      role,
		VeterinarianID: req.VeterinarianID,
		StartsAt:       start,
		EndsAt:         end,
		Reason:         req.Reason,
	})
	if err != nil {
		httperr.WriteBusiness(c, err, "Não foi possível registrar a ausência.")
		return
	}

	httpresp.Created(c, result)
}

// ======================================================
// LIST
// ======================================================

func (h *AbsenceHandler) List(c *gin.Context) {
	actorID, role := actor(c)

	vetID := uint(queryInt(c, "veterinarian_id", 0))

	abs, err := h.list.Execute(c.Request.Context(), ucAbsence.ListAbsencesInput{
		ActorID:        actorID,
		ActorRole:      role,
		VeterinarianID: vetID,
	})
	if err != nil {
		httperr.WriteBusiness(c, err, "Erro ao listar ausências.")
		return
	}

	httpresp.List(c, abs)
}

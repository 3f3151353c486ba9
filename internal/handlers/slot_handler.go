package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/SerraVetServices/vet-scheduler/internal/domain/appointment"
	"github.com/SerraVetServices/vet-scheduler/internal/httperr"
	"github.com/SerraVetServices/vet-scheduler/internal/httpresp"
	"github.com/SerraVetServices/vet-scheduler/internal/timezone"
	ucSlot "github.com/SerraVetServices/vet-scheduler/internal/usecase/slot"
)

// ======================================================
// HANDLER
// ======================================================

type SlotHandler struct {
	manage *ucSlot.ManageSlots
}

func NewSlotHandler(manage *ucSlot.ManageSlots) *SlotHandler {
	return &SlotHandler{manage: manage}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateSlotRequest struct {
	VeterinarianID uint   `json:"veterinarian_id" binding:"required"`
	Date           string `json:"date" binding:"required"`
	Time           string `json:"time" binding:"required"`
}

type UpdateSlotRequest struct {
	Date      string `json:"date"`
	Time      string `json:"time"`
	Available *bool  `json:"available"`
}

// ======================================================
// LIST
// ======================================================

func (h *SlotHandler) List(c *gin.Context) {
	f := domain.SlotFilter{
		VeterinarianID: uint(queryInt(c, "veterinarian_id", 0)),
		AvailableOnly:  c.Query("available") == "true",
		Limit:          queryInt(c, "limit", 50),
		Offset:         queryInt(c, "offset", 0),
	}

	if dateStr := c.Query("date"); dateStr != "" {
		date, err := timezone.ParseDate(dateStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data inválida.")
			return
		}
		f.Date = &date
	}

	slots, total, err := h.manage.List(c.Request.Context(), f)
	if err != nil {
		httperr.Internal(c, "failed_to_list_slots", "Erro ao listar horários.")
		return
	}

	httpresp.Page(c, slots, total, f.Limit, f.Offset)
}

// ======================================================
// CREATE / UPDATE / DELETE
// ======================================================

func (h *SlotHandler) Create(c *gin.Context) {
	actorID, role := actor(c)

	var req CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	startsAt, err := timezone.ParseDateTime(req.Date + " " + req.Time)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
		return
	}

	slot, err := h.manage.Create(c.Request.Context(), ucSlot.CreateSlotInput{
		ActorID:        actorID,
		ActorRole:      role,
		VeterinarianID: req.VeterinarianID,
		StartsAt:       startsAt,
	})
	if err != nil {
		httperr.WriteBusiness(c, err, "Não foi possível criar o horário.")
		return
	}

	httpresp.Created(c, slot)
}

func (h *SlotHandler) Update(c *gin.Context) {
	actorID, role := actor(c)

	id, ok := paramID(c)
	if !ok {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var req UpdateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	in := ucSlot.UpdateSlotInput{
		ActorID:   actorID,
		ActorRole: role,
		SlotID:    id,
		Available: req.Available,
	}

	if req.Date != "" && req.Time != "" {
		startsAt, err := timezone.ParseDateTime(req.Date + " " + req.Time)
		if err != nil {
			httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
			return
		}
		in.StartsAt = &startsAt
	}

	slot, err := h.manage.Update(c.Request.Context(), in)
	if err != nil {
		httperr.WriteBusiness(c, err, "Não foi possível alterar o horário.")
		return
	}

	httpresp.OK(c, slot)
}

func (h *SlotHandler) Delete(c *gin.Context) {
	actorID, role := actor(c)

	id, ok := paramID(c)
	if !ok {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	err := h.manage.Delete(c.Request.Context(), ucSlot.DeleteSlotInput{
		ActorID:   actorID,
		ActorRole: role,
		SlotID:    id,
	})
	if err != nil {
		httperr.WriteBusiness(c, err, "Não foi possível remover o horário.")
		return
	}

	c.Status(http.StatusNoContent)
}

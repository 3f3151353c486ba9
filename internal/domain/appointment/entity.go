package appointment

import (
	"time"

	"github.com/SerraVetServices/vet-scheduler/internal/httperr"
	"github.com/SerraVetServices/vet-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

func Start(ap *models.Appointment, now time.Time) error {
	if err := CanStart(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusInProgress)
	ap.StartedAt = &now
	return nil
}

// Complete força a consulta para concluída (finalização de prontuário).
// Já concluída é no-op; cancelada é rejeitada.
func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	if Status(ap.Status) == StatusCompleted {
		return nil
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

// ===============================
// Invariantes
// ===============================

// ValidateSlotBinding: a consulta deve apontar para um horário do mesmo
// veterinário. Divergência é erro de validação, nunca corrigida em
// silêncio.
func ValidateSlotBinding(ap *models.Appointment, slot *models.Slot) error {
	if slot == nil || ap.SlotID != slot.ID {
		return httperr.ErrValidation("slot_binding_mismatch")
	}
	if ap.VeterinarianID != slot.VeterinarianID {
		return httperr.ErrValidation("veterinarian_mismatch")
	}
	return nil
}

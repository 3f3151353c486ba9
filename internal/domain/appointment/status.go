package appointment

import "github.com/SerraVetServices/vet-scheduler/internal/httperr"

// ===============================
// Status da consulta
// ===============================

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// IsActive: consultas nesses estados mantêm o horário bloqueado.
func IsActive(s Status) bool {
	return s == StatusScheduled || s == StatusInProgress
}

// ===============================
// Validações de transição
// ===============================

// CanCancel: cancelamento só a partir de scheduled ou in_progress.
func CanCancel(current Status) error {
	if !IsActive(current) {
		return httperr.ErrStateConflict("invalid_state")
	}
	return nil
}

// CanStart: início do atendimento só a partir de scheduled.
func CanStart(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrStateConflict("invalid_state")
	}
	return nil
}

// CanComplete: conclusão vem da finalização do prontuário. Consulta
// cancelada nunca volta a concluída; concluída é idempotente.
func CanComplete(current Status) error {
	if current == StatusCancelled {
		return httperr.ErrStateConflict("appointment_cancelled")
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}

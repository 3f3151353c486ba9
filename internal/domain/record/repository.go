package record

import (
	"context"

	"github.com/SerraVetServices/vet-scheduler/internal/models"
)

type Repository interface {
	GetAppointmentByID(ctx context.Context, id uint) (*models.Appointment, error)

	GetByAppointment(ctx context.Context, appointmentID uint) (*models.ClinicalRecord, error)

	// Save persiste o prontuário e qualquer transição de status da
	// consulta decorrente dele (auto-início, finalização) numa única
	// transação.
	Save(ctx context.Context, rec *models.ClinicalRecord, ap *models.Appointment) error
}

package absence

import (
	"context"

	"github.com/SerraVetServices/vet-scheduler/internal/models"
)

// Result resume a cascata executada na criação da ausência.
type Result struct {
	Absence              *models.Absence `json:"absence"`
	CancelledIDs         []uint          `json:"cancelled_appointment_ids"`
	NotificationsCreated int             `json:"notifications_created"`
}

type Repository interface {
	GetUserByID(ctx context.Context, id uint) (*models.User, error)

	// Declare persiste a ausência, cancela toda consulta ativa do
	// veterinário cujo horário cai na janela e cria uma notificação por
	// tutor afetado — tudo numa única transação. Os horários das consultas
	// canceladas NÃO voltam a ficar disponíveis: o veterinário está
	// ausente, o horário continua bloqueado.
	Declare(ctx context.Context, ab *models.Absence) (*Result, error)

	ListByVeterinarian(ctx context.Context, vetID uint) ([]models.Absence, error)
}

package appointment

import (
	"context"
	"time"

	"github.com/SerraVetServices/vet-scheduler/internal/models"
)

// SlotFilter restringe a listagem de horários.
type SlotFilter struct {
	VeterinarianID uint
	Date           *time.Time
	AvailableOnly  bool

	Limit  int
	Offset int
}

// ListFilter restringe a listagem de consultas.
type ListFilter struct {
	ClientID       uint
	VeterinarianID uint
	From           *time.Time
	To             *time.Time
}

type Repository interface {
	// -------- Lookups --------
	GetUserByID(ctx context.Context, id uint) (*models.User, error)

	GetPetByID(ctx context.Context, id uint) (*models.Pet, error)

	GetSlotByID(ctx context.Context, id uint) (*models.Slot, error)

	GetAppointmentByID(ctx context.Context, id uint) (*models.Appointment, error)

	// -------- Slot ledger --------
	CreateSlot(ctx context.Context, slot *models.Slot) error

	// UpdateSlot falha se o horário estiver preso a uma consulta ativa e a
	// alteração tentar liberá-lo diretamente.
	UpdateSlot(ctx context.Context, slot *models.Slot) error

	DeleteSlot(ctx context.Context, slotID uint) error

	ListSlots(ctx context.Context, f SlotFilter) ([]models.Slot, int64, error)

	// -------- Consulta (transições atômicas) --------

	// Book cria a consulta e vira o horário para indisponível numa única
	// transação; o flip é um UPDATE condicional (zero linhas = corrida
	// perdida, agendamento rejeitado).
	Book(ctx context.Context, ap *models.Appointment) error

	// Cancel persiste o cancelamento; freeSlot decide se o horário volta a
	// ficar disponível (cancelamento normal sim, cascata de ausência não).
	Cancel(ctx context.Context, ap *models.Appointment, freeSlot bool) error

	// Update persiste uma transição sem efeito colateral no horário
	// (início de atendimento).
	Update(ctx context.Context, ap *models.Appointment) error

	List(ctx context.Context, f ListFilter) ([]models.Appointment, error)
}

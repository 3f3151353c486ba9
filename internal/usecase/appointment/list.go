package appointment

import (
	"context"

	domain "github.com/SerraVetServices/vet-scheduler/internal/domain/appointment"
	userdomain "github.com/SerraVetServices/vet-scheduler/internal/domain/user"
	"github.com/SerraVetServices/vet-scheduler/internal/models"
)

type ListAppointmentsInput struct {
	ActorID   uint
	ActorRole userdomain.Role

	Filter domain.ListFilter
}

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

// Execute lista consultas com o escopo do papel: cliente vê as dos seus
// pets, veterinário as suas, balcão e administração veem tudo.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	in ListAppointmentsInput,
) ([]models.Appointment, error) {

	f := in.Filter

	switch in.ActorRole {
	case userdomain.RoleClient:
		f.ClientID = in.ActorID
	case userdomain.RoleVeterinarian:
		f.VeterinarianID = in.ActorID
	case userdomain.RoleAttendant, userdomain.RoleAdministrator:
		// sem restrição extra
	}

	return uc.repo.List(ctx, f)
}

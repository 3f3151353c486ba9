package absence

import (
	"context"

	domain "github.com/SerraVetServices/vet-scheduler/internal/domain/absence"
	userdomain "github.com/SerraVetServices/vet-scheduler/internal/domain/user"
	"github.com/SerraVetServices/vet-scheduler/internal/httperr"
	"github.com/SerraVetServices/vet-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type ListAbsencesInput struct {
	ActorID   uint
	ActorRole userdomain.Role

	// VeterinarianID zero lista as ausências do próprio ator (quando
	// veterinário) ou exige o filtro explícito para os demais papéis.
	VeterinarianID uint
}

// ======================================================
// USE CASE
// ======================================================

type ListAbsences struct {
	repo domain.Repository
}

func NewListAbsences(repo domain.Repository) *ListAbsences {
	return &ListAbsences{repo: repo}
}

func (uc *ListAbsences) Execute(
	ctx context.Context,
	in ListAbsencesInput,
) ([]models.Absence, error) {

	vetID := in.VeterinarianID

	switch in.ActorRole {
	case userdomain.RoleVeterinarian:
		// Veterinário só enxerga a própria agenda de ausências.
		vetID = in.ActorID
	case userdomain.RoleAttendant, userdomain.RoleAdministrator:
		if vetID == 0 {
			return nil, httperr.ErrValidation("missing_veterinarian_id")
		}
	default:
		return nil, httperr.ErrNotAuthorized("not_authorized")
	}

	return uc.repo.ListByVeterinarian(ctx, vetID)
}

package absence

import (
	"context"
	"time"

	"github.com/SerraVetServices/vet-scheduler/internal/audit"
	domain "github.com/SerraVetServices/vet-scheduler/internal/domain/absence"
	userdomain "github.com/SerraVetServices/vet-scheduler/internal/domain/user"
	"github.com/SerraVetServices/vet-scheduler/internal/httperr"
	"github.com/SerraVetServices/vet-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type DeclareAbsenceInput struct {
	ActorID   uint
	ActorRole userdomain.Role

	VeterinarianID uint
	StartsAt       time.Time
	EndsAt         time.Time
	Reason         string
}

// ======================================================
// USE CASE
// ======================================================

type DeclareAbsence struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeclareAbsence(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeclareAbsence {
	return &DeclareAbsence{
		repo:  repo,
		audit: audit,
	}
}

// Execute registra a ausência e dispara a cascata: cancela toda consulta
// ativa do veterinário na janela e notifica cada tutor afetado. Consultas
// agendadas depois, dentro da mesma janela, não são atingidas
// retroativamente.
func (uc *DeclareAbsence) Execute(
	ctx context.Context,
	in DeclareAbsenceInput,
) (*domain.Result, error) {

	if !userdomain.CanDeclareAbsence(in.ActorRole) {
		return nil, httperr.ErrNotAuthorized("not_authorized")
	}
	if in.ActorRole == userdomain.RoleVeterinarian && in.ActorID != in.VeterinarianID {
		return nil, httperr.ErrNotAuthorized("not_authorized")
	}

	ab := &models.Absence{
		VeterinarianID: in.VeterinarianID,
		StartsAt:       in.StartsAt,
		EndsAt:         in.EndsAt,
		Reason:         in.Reason,
	}

	if err := domain.Validate(ab); err != nil {
		return nil, err
	}

	result, err := uc.repo.Declare(ctx, ab)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Action:   "absence_declared",
		Entity:   "absence",
		EntityID: &ab.ID,
		Metadata: map[string]any{
			"cancelled": len(result.CancelledIDs),
		},
	})

	return result, nil
}

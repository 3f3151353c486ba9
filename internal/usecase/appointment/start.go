package appointment

import (
	"context"

	"github.com/SerraVetServices/vet-scheduler/internal/audit"
	domain "github.com/SerraVetServices/vet-scheduler/internal/domain/appointment"
	userdomain "github.com/SerraVetServices/vet-scheduler/internal/domain/user"
	"github.com/SerraVetServices/vet-scheduler/internal/httperr"
	"github.com/SerraVetServices/vet-scheduler/internal/models"
	"github.com/SerraVetServices/vet-scheduler/internal/timezone"
)

type StartConsultationInput struct {
	AppointmentID uint
	ActorID       uint
	ActorRole     userdomain.Role
}

type StartConsultation struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewStartConsultation(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *StartConsultation {
	return &StartConsultation{
		repo:  repo,
		audit: audit,
	}
}

func (uc *StartConsultation) Execute(
	ctx context.Context,
	in StartConsultationInput,
) (*models.Appointment, error) {

	if !userdomain.CanStartConsultation(in.ActorRole) {
		return nil, httperr.ErrNotAuthorized("not_authorized")
	}

	ap, err := uc.repo.GetAppointmentByID(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}

	// veterinário só inicia a própria consulta
	if in.ActorRole == userdomain.RoleVeterinarian && ap.VeterinarianID != in.ActorID {
		return nil, httperr.ErrNotAuthorized("not_authorized")
	}

	if err := domain.Start(ap, timezone.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.Update(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Action:   "consultation_started",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}

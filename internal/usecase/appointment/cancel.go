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

type CancelAppointmentInput struct {
	AppointmentID uint
	ActorID       uint
	ActorRole     userdomain.Role
}

type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	in CancelAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByID(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}

	if err := uc.authorize(ap, in); err != nil {
		return nil, err
	}

	now := timezone.Now()
	if err := domain.Cancel(ap, now); err != nil {
		return nil, err
	}

	// cancelamento normal devolve o horário para a agenda
	if err := uc.repo.Cancel(ctx, ap, true); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}

func (uc *CancelAppointment) authorize(
	ap *models.Appointment,
	in CancelAppointmentInput,
) error {

	if userdomain.CanCancelAny(in.ActorRole) {
		return nil
	}

	switch in.ActorRole {
	case userdomain.RoleClient:
		if ap.Pet.TutorID == in.ActorID {
			return nil
		}
	case userdomain.RoleVeterinarian:
		if ap.VeterinarianID == in.ActorID {
			return nil
		}
	}

	return httperr.ErrNotAuthorized("not_authorized")
}

package appointment

import (
	"context"

	"github.com/SerraVetServices/vet-scheduler/internal/audit"
	domain "github.com/SerraVetServices/vet-scheduler/internal/domain/appointment"
	"github.com/SerraVetServices/vet-scheduler/internal/domain/payment"
	userdomain "github.com/SerraVetServices/vet-scheduler/internal/domain/user"
	"github.com/SerraVetServices/vet-scheduler/internal/httperr"
	"github.com/SerraVetServices/vet-scheduler/internal/lock"
	"github.com/SerraVetServices/vet-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type BookAppointmentInput struct {
	ClientID uint

	PetID          uint
	VeterinarianID uint
	SlotID         uint
	Reason         string
}

// ======================================================
// USE CASE
// ======================================================

type BookAppointment struct {
	repo   domain.Repository
	locker lock.SlotLocker
	audit  *audit.Dispatcher
}

func NewBookAppointment(
	repo domain.Repository,
	locker lock.SlotLocker,
	audit *audit.Dispatcher,
) *BookAppointment {
	return &BookAppointment{
		repo:   repo,
		locker: locker,
		audit:  audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookAppointment) Execute(
	ctx context.Context,
	in BookAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// Pet: só o tutor agenda para o próprio animal
	// --------------------------------------------------
	pet, err := uc.repo.GetPetByID(ctx, in.PetID)
	if err != nil {
		return nil, err
	}
	if pet.TutorID != in.ClientID {
		return nil, httperr.ErrNotAuthorized("not_owner")
	}

	// --------------------------------------------------
	// Veterinário
	// --------------------------------------------------
	vet, err := uc.repo.GetUserByID(ctx, in.VeterinarianID)
	if err != nil {
		return nil, err
	}
	if userdomain.Role(vet.Role) != userdomain.RoleVeterinarian {
		return nil, httperr.ErrValidation("not_a_veterinarian")
	}

	// --------------------------------------------------
	// Horário: mesmo veterinário e ainda livre
	// --------------------------------------------------
	slot, err := uc.repo.GetSlotByID(ctx, in.SlotID)
	if err != nil {
		return nil, err
	}
	if slot.VeterinarianID != in.VeterinarianID {
		return nil, httperr.ErrValidation("veterinarian_mismatch")
	}
	if !slot.Available {
		return nil, httperr.ErrValidation("slot_unavailable")
	}

	// --------------------------------------------------
	// Criação atômica: flip do horário + consulta na mesma
	// transação, sob lock por horário
	// --------------------------------------------------
	ap := &models.Appointment{
		PetID:          in.PetID,
		VeterinarianID: in.VeterinarianID,
		SlotID:         in.SlotID,
		Reason:         in.Reason,
		Status:         string(domain.InitialStatus()),
		PaymentStatus:  string(payment.StatusPending),
	}

	err = uc.locker.WithSlotLock(ctx, in.SlotID, func(ctx context.Context) error {
		return uc.repo.Book(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ClientID,
		Action:   "appointment_booked",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}

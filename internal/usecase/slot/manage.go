package slot

import (
	"context"
	"time"

	"github.com/SerraVetServices/vet-scheduler/internal/audit"
	domain "github.com/SerraVetServices/vet-scheduler/internal/domain/appointment"
	userdomain "github.com/SerraVetServices/vet-scheduler/internal/domain/user"
	"github.com/SerraVetServices/vet-scheduler/internal/httperr"
	"github.com/SerraVetServices/vet-scheduler/internal/models"
)

// ======================================================
// USE CASE — agenda de horários
// ======================================================

type ManageSlots struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewManageSlots(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ManageSlots {
	return &ManageSlots{
		repo:  repo,
		audit: audit,
	}
}

type CreateSlotInput struct {
	ActorID   uint
	ActorRole userdomain.Role

	VeterinarianID uint
	StartsAt       time.Time
}

func (uc *ManageSlots) Create(
	ctx context.Context,
	in CreateSlotInput,
) (*models.Slot, error) {

	if err := uc.authorize(in.ActorRole, in.ActorID, in.VeterinarianID); err != nil {
		return nil, err
	}

	vet, err := uc.repo.GetUserByID(ctx, in.VeterinarianID)
	if err != nil {
		return nil, err
	}
	if userdomain.Role(vet.Role) != userdomain.RoleVeterinarian {
		return nil, httperr.ErrValidation("not_a_veterinarian")
	}

	slot := &models.Slot{
		VeterinarianID: in.VeterinarianID,
		StartsAt:       in.StartsAt,
		Available:      true,
	}

	if err := uc.repo.CreateSlot(ctx, slot); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Action:   "slot_created",
		Entity:   "slot",
		EntityID: &slot.ID,
	})

	return slot, nil
}

type UpdateSlotInput struct {
	ActorID   uint
	ActorRole userdomain.Role

	SlotID    uint
	StartsAt  *time.Time
	Available *bool
}

func (uc *ManageSlots) Update(
	ctx context.Context,
	in UpdateSlotInput,
) (*models.Slot, error) {

	slot, err := uc.repo.GetSlotByID(ctx, in.SlotID)
	if err != nil {
		return nil, err
	}

	if err := uc.authorize(in.ActorRole, in.ActorID, slot.VeterinarianID); err != nil {
		return nil, err
	}

	if in.StartsAt != nil {
		slot.StartsAt = *in.StartsAt
	}
	if in.Available != nil {
		slot.Available = *in.Available
	}

	// o repositório rejeita liberar um horário preso a consulta ativa
	if err := uc.repo.UpdateSlot(ctx, slot); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Action:   "slot_updated",
		Entity:   "slot",
		EntityID: &slot.ID,
	})

	return slot, nil
}

type DeleteSlotInput struct {
	ActorID   uint
	ActorRole userdomain.Role

	SlotID uint
}

func (uc *ManageSlots) Delete(
	ctx context.Context,
	in DeleteSlotInput,
) error {

	slot, err := uc.repo.GetSlotByID(ctx, in.SlotID)
	if err != nil {
		return err
	}

	if err := uc.authorize(in.ActorRole, in.ActorID, slot.VeterinarianID); err != nil {
		return err
	}

	if err := uc.repo.DeleteSlot(ctx, in.SlotID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Action:   "slot_deleted",
		Entity:   "slot",
		EntityID: &in.SlotID,
	})

	return nil
}

func (uc *ManageSlots) List(
	ctx context.Context,
	f domain.SlotFilter,
) ([]models.Slot, int64, error) {
	return uc.repo.ListSlots(ctx, f)
}

// authorize: balcão e administração mexem em qualquer agenda; o
// veterinário só na própria.
func (uc *ManageSlots) authorize(
	role userdomain.Role,
	actorID uint,
	vetID uint,
) error {

	if !userdomain.CanManageSlots(role) {
		return httperr.ErrNotAuthorized("not_authorized")
	}
	if role == userdomain.RoleVeterinarian && actorID != vetID {
		return httperr.ErrNotAuthorized("not_authorized")
	}
	return nil
}

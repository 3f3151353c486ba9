package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	absencedomain "github.com/SerraVetServices/vet-scheduler/internal/domain/absence"
	domain "github.com/SerraVetServices/vet-scheduler/internal/domain/appointment"
	paymentdomain "github.com/SerraVetServices/vet-scheduler/internal/domain/payment"
	recorddomain "github.com/SerraVetServices/vet-scheduler/internal/domain/record"
	userdomain "github.com/SerraVetServices/vet-scheduler/internal/domain/user"
	"github.com/SerraVetServices/vet-scheduler/internal/httperr"
	"github.com/SerraVetServices/vet-scheduler/internal/models"
)

type ClinicGormRepository struct {
	db *gorm.DB
}

func NewClinicGormRepository(db *gorm.DB) *ClinicGormRepository {
	return &ClinicGormRepository{db: db}
}

// --------------------------------------------------
// Lookups
// --------------------------------------------------

func (r *ClinicGormRepository) GetUserByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("user_not_found")
		}
		return nil, err
	}
	return &user, nil
}

func (r *ClinicGormRepository) GetPetByID(
	ctx context.Context,
	id uint,
) (*models.Pet, error) {

	var pet models.Pet
	if err := r.db.WithContext(ctx).First(&pet, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("pet_not_found")
		}
		return nil, err
	}
	return &pet, nil
}

func (r *ClinicGormRepository) GetSlotByID(
	ctx context.Context,
	id uint,
) (*models.Slot, error) {

	var slot models.Slot
	if err := r.db.WithContext(ctx).First(&slot, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("slot_not_found")
		}
		return nil, err
	}
	return &slot, nil
}

func (r *ClinicGormRepository) GetAppointmentByID(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Pet").
		Preload("Slot").
		Preload("Veterinarian").
		First(&ap, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("appointment_not_found")
		}
		return nil, err
	}
	return &ap, nil
}

// --------------------------------------------------
// Slot ledger
// --------------------------------------------------

func (r *ClinicGormRepository) CreateSlot(
	ctx context.Context,
	slot *models.Slot,
) error {
	slot.Available = true
	return r.db.WithContext(ctx).Create(slot).Error
}

func (r *ClinicGormRepository) UpdateSlot(
	ctx context.Context,
	slot *models.Slot,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		bound, err := hasActiveAppointmentForSlot(tx, slot.ID)
		if err != nil {
			return err
		}

		// horário preso a consulta ativa não pode ser liberado na mão
		if bound && slot.Available {
			return httperr.ErrStateConflict("slot_bound_to_appointment")
		}

		return tx.Save(slot).Error
	})
}

func (r *ClinicGormRepository) DeleteSlot(
	ctx context.Context,
	slotID uint,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		bound, err := hasActiveAppointmentForSlot(tx, slotID)
		if err != nil {
			return err
		}
		if bound {
			return httperr.ErrStateConflict("slot_bound_to_appointment")
		}

		res := tx.Delete(&models.Slot{}, slotID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrNotFound("slot_not_found")
		}
		return nil
	})
}

func (r *ClinicGormRepository) ListSlots(
	ctx context.Context,
	f domain.SlotFilter,
) ([]models.Slot, int64, error) {

	q := r.db.WithContext(ctx).Model(&models.Slot{})

	if f.VeterinarianID != 0 {
		q = q.Where("veterinarian_id = ?", f.VeterinarianID)
	}
	if f.Date != nil {
		dayStart := time.Date(
			f.Date.Year(), f.Date.Month(), f.Date.Day(),
			0, 0, 0, 0, f.Date.Location(),
		)
		q = q.Where("starts_at >= ? AND starts_at < ?", dayStart, dayStart.Add(24*time.Hour))
	}
	if f.AvailableOnly {
		q = q.Where("available = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}

	var slots []models.Slot
	if err := q.Preload("Veterinarian").Order("starts_at ASC").Find(&slots).Error; err != nil {
		return nil, 0, err
	}

	return slots, total, nil
}

func hasActiveAppointmentForSlot(tx *gorm.DB, slotID uint) (bool, error) {
	var count int64
	err := tx.Model(&models.Appointment{}).
		Where(
			"slot_id = ? AND status IN ?",
			slotID,
			[]string{string(domain.StatusScheduled), string(domain.StatusInProgress)},
		).
		Count(&count).Error
	return count > 0, err
}

// --------------------------------------------------
// Consulta (transições atômicas)
// --------------------------------------------------

func (r *ClinicGormRepository) Book(
	ctx context.Context,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var slot models.Slot
		if err := tx.First(&slot, ap.SlotID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrNotFound("slot_not_found")
			}
			return err
		}

		if err := domain.ValidateSlotBinding(ap, &slot); err != nil {
			return err
		}

		// flip condicional: quem perder a corrida afeta zero linhas e o
		// agendamento é rejeitado, nunca aplicado pela metade
		res := tx.Model(&models.Slot{}).
			Where("id = ? AND available = ?", ap.SlotID, true).
			Update("available", false)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrValidation("slot_unavailable")
		}

		return tx.Create(ap).Error
	})
}

func (r *ClinicGormRepository) Cancel(
	ctx context.Context,
	ap *models.Appointment,
	freeSlot bool,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := validateBindingInTx(tx, ap); err != nil {
			return err
		}

		if err := tx.Save(ap).Error; err != nil {
			return err
		}

		if freeSlot {
			if err := tx.Model(&models.Slot{}).
				Where("id = ?", ap.SlotID).
				Update("available", true).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *ClinicGormRepository) Update(
	ctx context.Context,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := validateBindingInTx(tx, ap); err != nil {
			return err
		}
		return tx.Save(ap).Error
	})
}

func (r *ClinicGormRepository) List(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Pet").
		Preload("Slot").
		Preload("Veterinarian").
		Joins("JOIN slots ON slots.id = appointments.slot_id")

	if f.ClientID != 0 {
		q = q.Joins("JOIN pets ON pets.id = appointments.pet_id").
			Where("pets.tutor_id = ?", f.ClientID)
	}
	if f.VeterinarianID != 0 {
		q = q.Where("appointments.veterinarian_id = ?", f.VeterinarianID)
	}
	if f.From != nil {
		q = q.Where("slots.starts_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("slots.starts_at < ?", *f.To)
	}

	var aps []models.Appointment
	if err := q.Order("slots.starts_at ASC").Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

// validateBindingInTx reforça a invariante veterinário/horário em todo
// persist de consulta.
func validateBindingInTx(tx *gorm.DB, ap *models.Appointment) error {
	var slot models.Slot
	if err := tx.First(&slot, ap.SlotID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.ErrNotFound("slot_not_found")
		}
		return err
	}
	return domain.ValidateSlotBinding(ap, &slot)
}

// --------------------------------------------------
// Ausência (cascata)
// --------------------------------------------------

func (r *ClinicGormRepository) Declare(
	ctx context.Context,
	ab *models.Absence,
) (*absencedomain.Result, error) {

	result := &absencedomain.Result{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var vet models.User
		if err := tx.First(&vet, ab.VeterinarianID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrNotFound("veterinarian_not_found")
			}
			return err
		}
		if userdomain.Role(vet.Role) != userdomain.RoleVeterinarian {
			return httperr.ErrValidation("not_a_veterinarian")
		}

		if err := tx.Create(ab).Error; err != nil {
			return err
		}

		var affected []models.Appointment
		if err := tx.
			Preload("Pet").
			Preload("Slot").
			Joins("JOIN slots ON slots.id = appointments.slot_id").
			Where(
				"appointments.veterinarian_id = ? AND appointments.status IN ? AND slots.starts_at >= ? AND slots.starts_at < ?",
				ab.VeterinarianID,
				[]string{string(domain.StatusScheduled), string(domain.StatusInProgress)},
				ab.StartsAt,
				ab.EndsAt,
			).
			Find(&affected).Error; err != nil {
			return err
		}

		now := time.Now()
		for i := range affected {
			ap := &affected[i]

			ap.Status = string(domain.StatusCancelled)
			ap.CancelledAt = &now

			// o horário fica bloqueado: o veterinário está ausente,
			// não faz sentido reabri-lo para novo agendamento
			if err := tx.Save(ap).Error; err != nil {
				return err
			}

			apID := ap.ID
			notif := models.Notification{
				UserID:        ap.Pet.TutorID,
				AppointmentID: &apID,
				Message: absencedomain.NotificationMessage(
					vet.Name,
					ap.Slot.StartsAt,
					ab.Reason,
				),
			}
			if err := tx.Create(&notif).Error; err != nil {
				return err
			}

			result.CancelledIDs = append(result.CancelledIDs, ap.ID)
			result.NotificationsCreated++
		}

		result.Absence = ab
		return nil
	})

	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *ClinicGormRepository) ListByVeterinarian(
	ctx context.Context,
	vetID uint,
) ([]models.Absence, error) {

	var abs []models.Absence
	if err := r.db.WithContext(ctx).
		Where("veterinarian_id = ?", vetID).
		Order("starts_at DESC").
		Find(&abs).Error; err != nil {
		return nil, err
	}
	return abs, nil
}

// --------------------------------------------------
// Prontuário
// --------------------------------------------------

func (r *ClinicGormRepository) GetByAppointment(
	ctx context.Context,
	appointmentID uint,
) (*models.ClinicalRecord, error) {

	var rec models.ClinicalRecord
	if err := r.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("record_not_found")
		}
		return nil, err
	}
	return &rec, nil
}

func (r *ClinicGormRepository) Save(
	ctx context.Context,
	rec *models.ClinicalRecord,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(rec).Error; err != nil {
			return err
		}
		return tx.Save(ap).Error
	})
}

// --------------------------------------------------
// Pagamento
// --------------------------------------------------

func (r *ClinicGormRepository) GetQuoteByAppointment(
	ctx context.Context,
	appointmentID uint,
) (*models.PriceQuote, error) {

	var quote models.PriceQuote
	if err := r.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		First(&quote).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("quote_not_found")
		}
		return nil, err
	}
	return &quote, nil
}

func (r *ClinicGormRepository) CreateQuote(
	ctx context.Context,
	quote *models.PriceQuote,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(quote).Error; err != nil {
			return err
		}
		return tx.Model(&models.Appointment{}).
			Where("id = ?", ap.ID).
			Update("payment_status", ap.PaymentStatus).Error
	})
}

func (r *ClinicGormRepository) AddProof(
	ctx context.Context,
	proof *models.PaymentProof,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := tx.Create(proof).Error; err != nil {
			return err
		}

		// análise é get-or-create: reenvio de comprovante nunca cria uma
		// segunda linha de GerenciamentoPagamento
		var review models.PaymentReview
		if err := tx.
			Where(models.PaymentReview{AppointmentID: ap.ID}).
			Attrs(models.PaymentReview{Status: string(paymentdomain.DecisionUnderReview)}).
			FirstOrCreate(&review).Error; err != nil {
			return err
		}

		return tx.Model(&models.Appointment{}).
			Where("id = ?", ap.ID).
			Update("payment_status", ap.PaymentStatus).Error
	})
}

func (r *ClinicGormRepository) GetReviewByAppointment(
	ctx context.Context,
	appointmentID uint,
) (*models.PaymentReview, error) {

	var review models.PaymentReview
	if err := r.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		First(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("review_not_found")
		}
		return nil, err
	}
	return &review, nil
}

func (r *ClinicGormRepository) SaveReviewDecision(
	ctx context.Context,
	review *models.PaymentReview,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(review).Error; err != nil {
			return err
		}
		return tx.Model(&models.Appointment{}).
			Where("id = ?", ap.ID).
			Update("payment_status", ap.PaymentStatus).Error
	})
}

func (r *ClinicGormRepository) ListProofs(
	ctx context.Context,
	appointmentID uint,
) ([]models.PaymentProof, error) {

	var proofs []models.PaymentProof
	if err := r.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		Order("created_at DESC").
		Find(&proofs).Error; err != nil {
		return nil, err
	}
	return proofs, nil
}

// Compile-time checks
var _ domain.Repository = (*ClinicGormRepository)(nil)
var _ absencedomain.Repository = (*ClinicGormRepository)(nil)
var _ recorddomain.Repository = (*ClinicGormRepository)(nil)
var _ paymentdomain.Repository = (*ClinicGormRepository)(nil)

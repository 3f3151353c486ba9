package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	dbpkg "github.com/SerraVetServices/vet-scheduler/internal/db"
	domain "github.com/SerraVetServices/vet-scheduler/internal/domain/appointment"
	paymentdomain "github.com/SerraVetServices/vet-scheduler/internal/domain/payment"
	"github.com/SerraVetServices/vet-scheduler/internal/httperr"
	"github.com/SerraVetServices/vet-scheduler/internal/models"
)

func setupRepo(t *testing.T) (*ClinicGormRepository, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:clinic_test_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := dbpkg.Migrate(db); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}

	return NewClinicGormRepository(db), db
}

// --------------------------------------------------
// Seeds
// --------------------------------------------------

func seedUser(t *testing.T, db *gorm.DB, role, email string) *models.User {
	t.Helper()
	u := &models.User{
		Name:         "Teste",
		Email:        email,
		CPF:          fmt.Sprintf("%011d", time.Now().UnixNano()%1e11),
		PasswordHash: "x",
		Role:         role,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedPet(t *testing.T, db *gorm.DB, tutorID uint) *models.Pet {
	t.Helper()
	p := &models.Pet{TutorID: tutorID, Name: "Rex", Species: "dog"}
	require.NoError(t, db.Create(p).Error)
	return p
}

func seedSlot(t *testing.T, db *gorm.DB, vetID uint, at time.Time) *models.Slot {
	t.Helper()
	s := &models.Slot{VeterinarianID: vetID, StartsAt: at, Available: true}
	require.NoError(t, db.Create(s).Error)
	return s
}

func seedBooking(t *testing.T, repo *ClinicGormRepository, petID, vetID, slotID uint) *models.Appointment {
	t.Helper()
	ap := &models.Appointment{
		PetID:          petID,
		VeterinarianID: vetID,
		SlotID:         slotID,
		Reason:         "consulta de rotina",
		Status:         string(domain.StatusScheduled),
		PaymentStatus:  string(paymentdomain.StatusPending),
	}
	require.NoError(t, repo.Book(context.Background(), ap))
	return ap
}

// --------------------------------------------------
// Agendamento
// --------------------------------------------------

func TestBookFlipsSlot(t *testing.T) {
	repo, db := setupRepo(t)

	vet := seedUser(t, db, "veterinarian", "vet@serravet.dev")
	tutor := seedUser(t, db, "client", "tutor@serravet.dev")
	pet := seedPet(t, db, tutor.ID)
	slot := seedSlot(t, db, vet.ID, time.Now().Add(24*time.Hour))

	ap := seedBooking(t, repo, pet.ID, vet.ID, slot.ID)
	assert.NotZero(t, ap.ID)

	var stored models.Slot
	require.NoError(t, db.First(&stored, slot.ID).Error)
	assert.False(t, stored.Available, "horário agendado deve ficar indisponível")
}

func TestBookTakenSlotFails(t *testing.T) {
	repo, db := setupRepo(t)

	vet := seedUser(t, db, "veterinarian", "vet@serravet.dev")
	tutorA := seedUser(t, db, "client", "a@serravet.dev")
	tutorB := seedUser(t, db, "client", "b@serravet.dev")
	petA := seedPet(t, db, tutorA.ID)
	petB := seedPet(t, db, tutorB.ID)
	slot := seedSlot(t, db, vet.ID, time.Now().Add(24*time.Hour))

	seedBooking(t, repo, petA.ID, vet.ID, slot.ID)

	second := &models.Appointment{
		PetID:          petB.ID,
		VeterinarianID: vet.ID,
		SlotID:         slot.ID,
		Status:         string(domain.StatusScheduled),
		PaymentStatus:  string(paymentdomain.StatusPending),
	}
	err := repo.Book(context.Background(), second)
	assert.True(t, httperr.IsBusiness(err, "slot_unavailable"))

	var count int64
	db.Model(&models.Appointment{}).Count(&count)
	assert.Equal(t, int64(1), count, "perdedor da corrida não pode deixar consulta pela metade")
}

func TestBookRejectsVetMismatch(t *testing.T) {
	repo, db := setupRepo(t)

	vetA := seedUser(t, db, "veterinarian", "veta@serravet.dev")
	vetB := seedUser(t, db, "veterinarian", "vetb@serravet.dev")
	tutor := seedUser(t, db, "client", "tutor@serravet.dev")
	pet := seedPet(t, db, tutor.ID)
	slot := seedSlot(t, db, vetA.ID, time.Now().Add(24*time.Hour))

	ap := &models.Appointment{
		PetID:          pet.ID,
		VeterinarianID: vetB.ID,
		SlotID:         slot.ID,
		Status:         string(domain.StatusScheduled),
		PaymentStatus:  string(paymentdomain.StatusPending),
	}
	err := repo.Book(context.Background(), ap)
	assert.True(t, httperr.IsBusiness(err, "veterinarian_mismatch"))

	var stored models.Slot
	require.NoError(t, db.First(&stored, slot.ID).Error)
	assert.True(t, stored.Available)
}

func TestCancelFreesSlotAndAllowsRebooking(t *testing.T) {
	repo, db := setupRepo(t)

	vet := seedUser(t, db, "veterinarian", "vet@serravet.dev")
	tutorA := seedUser(t, db, "client", "a@serravet.dev")
	tutorB := seedUser(t, db, "client", "b@serravet.dev")
	petA := seedPet(t, db, tutorA.ID)
	petB := seedPet(t, db, tutorB.ID)
	slot := seedSlot(t, db, vet.ID, time.Now().Add(24*time.Hour))

	ap := seedBooking(t, repo, petA.ID, vet.ID, slot.ID)

	now := time.Now()
	require.NoError(t, domain.Cancel(ap, now))
	require.NoError(t, repo.Cancel(context.Background(), ap, true))

	var stored models.Slot
	require.NoError(t, db.First(&stored, slot.ID).Error)
	assert.True(t, stored.Available, "cancelamento devolve o horário à agenda")

	// outro tutor consegue agendar o horário liberado
	rebooked := seedBooking(t, repo, petB.ID, vet.ID, slot.ID)
	assert.NotZero(t, rebooked.ID)

	require.NoError(t, db.First(&stored, slot.ID).Error)
	assert.False(t, stored.Available)
}

// --------------------------------------------------
// Agenda de horários
// --------------------------------------------------

func TestUpdateSlotBoundToAppointment(t *testing.T) {
	repo, db := setupRepo(t)

	vet := seedUser(t, db, "veterinarian", "vet@serravet.dev")
	tutor := seedUser(t, db, "client", "tutor@serravet.dev")
	pet := seedPet(t, db, tutor.ID)
	slot := seedSlot(t, db, vet.ID, time.Now().Add(24*time.Hour))

	seedBooking(t, repo, pet.ID, vet.ID, slot.ID)

	require.NoError(t, db.First(slot, slot.ID).Error)
	slot.Available = true

	err := repo.UpdateSlot(context.Background(), slot)
	assert.True(t, httperr.IsBusiness(err, "slot_bound_to_appointment"))
}

func TestDeleteSlot(t *testing.T) {
	repo, db := setupRepo(t)

	vet := seedUser(t, db, "veterinarian", "vet@serravet.dev")
	tutor := seedUser(t, db, "client", "tutor@serravet.dev")
	pet := seedPet(t, db, tutor.ID)

	free := seedSlot(t, db, vet.ID, time.Now().Add(24*time.Hour))
	bound := seedSlot(t, db, vet.ID, time.Now().Add(48*time.Hour))
	seedBooking(t, repo, pet.ID, vet.ID, bound.ID)

	assert.NoError(t, repo.DeleteSlot(context.Background(), free.ID))

	err := repo.DeleteSlot(context.Background(), bound.ID)
	assert.True(t, httperr.IsBusiness(err, "slot_bound_to_appointment"))

	err = repo.DeleteSlot(context.Background(), 9999)
	assert.True(t, httperr.IsBusiness(err, "slot_not_found"))
}

func TestListSlotsFilters(t *testing.T) {
	repo, db := setupRepo(t)

	vet := seedUser(t, db, "veterinarian", "vet@serravet.dev")
	other := seedUser(t, db, "veterinarian", "other@serravet.dev")

	day := time.Date(2026, 4, 20, 9, 0, 0, 0, time.UTC)
	seedSlot(t, db, vet.ID, day)
	seedSlot(t, db, vet.ID, day.Add(time.Hour))
	seedSlot(t, db, vet.ID, day.Add(26*time.Hour)) // dia seguinte
	seedSlot(t, db, other.ID, day)

	date := day
	slots, total, err := repo.ListSlots(context.Background(), domain.SlotFilter{
		VeterinarianID: vet.ID,
		Date:           &date,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, slots, 2)

	// ordenado por início
	assert.True(t, slots[0].StartsAt.Before(slots[1].StartsAt))
}

func TestListSlotsCarriesVeterinarian(t *testing.T) {
	repo, db := setupRepo(t)

	vet := seedUser(t, db, "veterinarian", "vet@serravet.dev")
	seedSlot(t, db, vet.ID, time.Date(2026, 4, 20, 9, 0, 0, 0, time.UTC))

	slots, _, err := repo.ListSlots(context.Background(), domain.SlotFilter{})
	require.NoError(t, err)
	require.Len(t, slots, 1)

	// o tutor escolhe o veterinário a partir da listagem; o objeto não
	// pode vir zerado
	assert.Equal(t, vet.ID, slots[0].Veterinarian.ID)
	assert.Equal(t, vet.Name, slots[0].Veterinarian.Name)
}

// --------------------------------------------------
// Ausência (cascata)
// --------------------------------------------------

func TestDeclareAbsenceCascade(t *testing.T) {
	repo, db := setupRepo(t)

	vet := seedUser(t, db, "veterinarian", "vet@serravet.dev")
	tutorA := seedUser(t, db, "client", "a@serravet.dev")
	tutorB := seedUser(t, db, "client", "b@serravet.dev")
	petA := seedPet(t, db, tutorA.ID)
	petB := seedPet(t, db, tutorB.ID)

	windowStart := time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC)
	windowEnd := windowStart.Add(8 * time.Hour)

	inside1 := seedSlot(t, db, vet.ID, windowStart.Add(time.Hour))
	inside2 := seedSlot(t, db, vet.ID, windowStart.Add(3*time.Hour))
	outside := seedSlot(t, db, vet.ID, windowEnd.Add(time.Hour))

	apA := seedBooking(t, repo, petA.ID, vet.ID, inside1.ID)
	apB := seedBooking(t, repo, petB.ID, vet.ID, inside2.ID)
	apOut := seedBooking(t, repo, petA.ID, vet.ID, outside.ID)

	result, err := repo.Declare(context.Background(), &models.Absence{
		VeterinarianID: vet.ID,
		StartsAt:       windowStart,
		EndsAt:         windowEnd,
		Reason:         "congresso",
	})
	require.NoError(t, err)

	assert.ElementsMatch(t, []uint{apA.ID, apB.ID}, result.CancelledIDs)
	assert.Equal(t, 2, result.NotificationsCreated)

	var stored models.Appointment
	require.NoError(t, db.First(&stored, apA.ID).Error)
	assert.Equal(t, string(domain.StatusCancelled), stored.Status)
	assert.NotNil(t, stored.CancelledAt)

	stored = models.Appointment{}
	require.NoError(t, db.First(&stored, apOut.ID).Error)
	assert.Equal(t, string(domain.StatusScheduled), stored.Status, "fora da janela não é atingida")

	// horários cancelados pela ausência NÃO voltam à agenda
	var s models.Slot
	require.NoError(t, db.First(&s, inside1.ID).Error)
	assert.False(t, s.Available)
	s = models.Slot{}
	require.NoError(t, db.First(&s, inside2.ID).Error)
	assert.False(t, s.Available)

	// uma notificação por tutor afetado
	var notifs []models.Notification
	require.NoError(t, db.Order("user_id ASC").Find(&notifs).Error)
	require.Len(t, notifs, 2)
	assert.ElementsMatch(t,
		[]uint{tutorA.ID, tutorB.ID},
		[]uint{notifs[0].UserID, notifs[1].UserID},
	)
	assert.Contains(t, notifs[0].Message, "cancelada por ausência do veterinário")
	assert.Contains(t, notifs[0].Message, "congresso")
}

func TestDeclareAbsenceSkipsInactiveAppointments(t *testing.T) {
	repo, db := setupRepo(t)

	vet := seedUser(t, db, "veterinarian", "vet@serravet.dev")
	tutor := seedUser(t, db, "client", "tutor@serravet.dev")
	pet := seedPet(t, db, tutor.ID)

	windowStart := time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC)
	slot := seedSlot(t, db, vet.ID, windowStart.Add(time.Hour))

	ap := seedBooking(t, repo, pet.ID, vet.ID, slot.ID)
	now := time.Now()
	require.NoError(t, domain.Cancel(ap, now))
	require.NoError(t, repo.Cancel(context.Background(), ap, true))

	result, err := repo.Declare(context.Background(), &models.Absence{
		VeterinarianID: vet.ID,
		StartsAt:       windowStart,
		EndsAt:         windowStart.Add(8 * time.Hour),
	})
	require.NoError(t, err)

	assert.Empty(t, result.CancelledIDs)
	assert.Zero(t, result.NotificationsCreated)
}

func TestDeclareAbsenceUnknownVet(t *testing.T) {
	repo, _ := setupRepo(t)

	_, err := repo.Declare(context.Background(), &models.Absence{
		VeterinarianID: 9999,
		StartsAt:       time.Now(),
		EndsAt:         time.Now().Add(time.Hour),
	})
	assert.True(t, httperr.IsBusiness(err, "veterinarian_not_found"))
}

func TestDeclareAbsenceRejectsNonVeterinarian(t *testing.T) {
	repo, db := setupRepo(t)

	client := seedUser(t, db, "client", "tutor@serravet.dev")

	_, err := repo.Declare(context.Background(), &models.Absence{
		VeterinarianID: client.ID,
		StartsAt:       time.Now(),
		EndsAt:         time.Now().Add(time.Hour),
	})
	assert.True(t, httperr.IsBusiness(err, "not_a_veterinarian"))

	var count int64
	db.Model(&models.Absence{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

// --------------------------------------------------
// Pagamento
// --------------------------------------------------

func TestPaymentFlowPersistence(t *testing.T) {
	repo, db := setupRepo(t)

	vet := seedUser(t, db, "veterinarian", "vet@serravet.dev")
	tutor := seedUser(t, db, "client", "tutor@serravet.dev")
	attendant := seedUser(t, db, "attendant", "desk@serravet.dev")
	pet := seedPet(t, db, tutor.ID)
	slot := seedSlot(t, db, vet.ID, time.Now().Add(24*time.Hour))

	ap := seedBooking(t, repo, pet.ID, vet.ID, slot.ID)
	ctx := context.Background()

	// valor definido → awaiting_client_payment propagado na consulta
	ap.PaymentStatus = string(paymentdomain.StatusAwaitingClient)
	quote := &models.PriceQuote{AppointmentID: ap.ID, Amount: 180}
	require.NoError(t, repo.CreateQuote(ctx, quote, ap))

	var stored models.Appointment
	require.NoError(t, db.First(&stored, ap.ID).Error)
	assert.Equal(t, string(paymentdomain.StatusAwaitingClient), stored.PaymentStatus)

	// primeiro comprovante cria a análise
	ap.PaymentStatus = string(paymentdomain.StatusUnderReview)
	require.NoError(t, repo.AddProof(ctx, &models.PaymentProof{
		AppointmentID: ap.ID,
		FileURL:       "https://files/p1.pdf",
	}, ap))

	var reviewCount int64
	db.Model(&models.PaymentReview{}).Where("appointment_id = ?", ap.ID).Count(&reviewCount)
	assert.Equal(t, int64(1), reviewCount)

	// reenvio não cria segunda análise
	require.NoError(t, repo.AddProof(ctx, &models.PaymentProof{
		AppointmentID: ap.ID,
		FileURL:       "https://files/p2.pdf",
	}, ap))

	db.Model(&models.PaymentReview{}).Where("appointment_id = ?", ap.ID).Count(&reviewCount)
	assert.Equal(t, int64(1), reviewCount)

	proofs, err := repo.ListProofs(ctx, ap.ID)
	require.NoError(t, err)
	assert.Len(t, proofs, 2)

	// decisão propaga o novo status
	review, err := repo.GetReviewByAppointment(ctx, ap.ID)
	require.NoError(t, err)

	review.Status = string(paymentdomain.DecisionApproved)
	review.ReviewerID = &attendant.ID
	ap.PaymentStatus = string(paymentdomain.StatusApproved)
	require.NoError(t, repo.SaveReviewDecision(ctx, review, ap))

	require.NoError(t, db.First(&stored, ap.ID).Error)
	assert.Equal(t, string(paymentdomain.StatusApproved), stored.PaymentStatus)
}

// --------------------------------------------------
// Prontuário
// --------------------------------------------------

func TestRecordSaveIsAtomicWithAppointment(t *testing.T) {
	repo, db := setupRepo(t)

	vet := seedUser(t, db, "veterinarian", "vet@serravet.dev")
	tutor := seedUser(t, db, "client", "tutor@serravet.dev")
	pet := seedPet(t, db, tutor.ID)
	slot := seedSlot(t, db, vet.ID, time.Now().Add(24*time.Hour))

	ap := seedBooking(t, repo, pet.ID, vet.ID, slot.ID)
	ctx := context.Background()

	_, err := repo.GetByAppointment(ctx, ap.ID)
	assert.True(t, httperr.IsBusiness(err, "record_not_found"))

	now := time.Now()
	rec := &models.ClinicalRecord{
		AppointmentID: ap.ID,
		Diagnosis:     "otite externa",
		Finalized:     true,
	}
	require.NoError(t, domain.Start(ap, now))
	require.NoError(t, domain.Complete(ap, now))
	ap.PaymentStatus = string(paymentdomain.StatusAwaitingPrice)

	require.NoError(t, repo.Save(ctx, rec, ap))

	got, err := repo.GetByAppointment(ctx, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, "otite externa", got.Diagnosis)
	assert.True(t, got.Finalized)

	var stored models.Appointment
	require.NoError(t, db.First(&stored, ap.ID).Error)
	assert.Equal(t, string(domain.StatusCompleted), stored.Status)
	assert.Equal(t, string(paymentdomain.StatusAwaitingPrice), stored.PaymentStatus)
}

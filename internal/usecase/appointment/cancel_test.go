package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	domain "github.com/SerraVetServices/vet-scheduler/internal/domain/appointment"
	userdomain "github.com/SerraVetServices/vet-scheduler/internal/domain/user"
	"github.com/SerraVetServices/vet-scheduler/internal/httperr"
	"github.com/SerraVetServices/vet-scheduler/internal/models"
)

func scheduledAppointment() *models.Appointment {
	return &models.Appointment{
		ID:             50,
		PetID:          1,
		Pet:            models.Pet{ID: 1, TutorID: 10},
		VeterinarianID: 2,
		SlotID:         3,
		Status:         "scheduled",
		PaymentStatus:  "pending",
	}
}

func TestCancelByOwner(t *testing.T) {
	repo := new(MockClinicRepo)
	uc := NewCancelAppointment(repo, newTestAudit(t))

	repo.On("GetAppointmentByID", mock.Anything, uint(50)).
		Return(scheduledAppointment(), nil)
	repo.On("Cancel", mock.Anything, mock.AnythingOfType("*models.Appointment"), true).
		Return(nil)

	ap, err := uc.Execute(context.Background(), CancelAppointmentInput{
		AppointmentID: 50,
		ActorID:       10,
		ActorRole:     userdomain.RoleClient,
	})

	assert.NoError(t, err)
	assert.Equal(t, "cancelled", ap.Status)
	assert.NotNil(t, ap.CancelledAt)
	repo.AssertExpectations(t)
}

func TestCancelByOtherClientForbidden(t *testing.T) {
	repo := new(MockClinicRepo)
	uc := NewCancelAppointment(repo, newTestAudit(t))

	repo.On("GetAppointmentByID", mock.Anything, uint(50)).
		Return(scheduledAppointment(), nil)

	_, err := uc.Execute(context.Background(), CancelAppointmentInput{
		AppointmentID: 50,
		ActorID:       77,
		ActorRole:     userdomain.RoleClient,
	})

	assert.True(t, httperr.IsBusiness(err, "not_authorized"))
	repo.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelByAttendant(t *testing.T) {
	repo := new(MockClinicRepo)
	uc := NewCancelAppointment(repo, newTestAudit(t))

	repo.On("GetAppointmentByID", mock.Anything, uint(50)).
		Return(scheduledAppointment(), nil)
	repo.On("Cancel", mock.Anything, mock.AnythingOfType("*models.Appointment"), true).
		Return(nil)

	// balcão cancela consulta de qualquer cliente
	ap, err := uc.Execute(context.Background(), CancelAppointmentInput{
		AppointmentID: 50,
		ActorID:       5,
		ActorRole:     userdomain.RoleAttendant,
	})

	assert.NoError(t, err)
	assert.Equal(t, "cancelled", ap.Status)
}

func TestCancelByOwningVeterinarian(t *testing.T) {
	repo := new(MockClinicRepo)
	uc := NewCancelAppointment(repo, newTestAudit(t))

	repo.On("GetAppointmentByID", mock.Anything, uint(50)).
		Return(scheduledAppointment(), nil)
	repo.On("Cancel", mock.Anything, mock.AnythingOfType("*models.Appointment"), true).
		Return(nil)

	_, err := uc.Execute(context.Background(), CancelAppointmentInput{
		AppointmentID: 50,
		ActorID:       2,
		ActorRole:     userdomain.RoleVeterinarian,
	})

	assert.NoError(t, err)
}

func TestCancelCompletedFails(t *testing.T) {
	repo := new(MockClinicRepo)
	uc := NewCancelAppointment(repo, newTestAudit(t))

	done := scheduledAppointment()
	done.Status = "completed"
	repo.On("GetAppointmentByID", mock.Anything, uint(50)).
		Return(done, nil)

	_, err := uc.Execute(context.Background(), CancelAppointmentInput{
		AppointmentID: 50,
		ActorID:       10,
		ActorRole:     userdomain.RoleClient,
	})

	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
	repo.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything)
}

// --------------------------------------------------
// Start
// --------------------------------------------------

func TestStartByOwningVet(t *testing.T) {
	repo := new(MockClinicRepo)
	uc := NewStartConsultation(repo, newTestAudit(t))

	repo.On("GetAppointmentByID", mock.Anything, uint(50)).
		Return(scheduledAppointment(), nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*models.Appointment")).
		Return(nil)

	ap, err := uc.Execute(context.Background(), StartConsultationInput{
		AppointmentID: 50,
		ActorID:       2,
		ActorRole:     userdomain.RoleVeterinarian,
	})

	assert.NoError(t, err)
	assert.Equal(t, "in_progress", ap.Status)
	assert.NotNil(t, ap.StartedAt)
}

func TestStartByOtherVetForbidden(t *testing.T) {
	repo := new(MockClinicRepo)
	uc := NewStartConsultation(repo, newTestAudit(t))

	repo.On("GetAppointmentByID", mock.Anything, uint(50)).
		Return(scheduledAppointment(), nil)

	_, err := uc.Execute(context.Background(), StartConsultationInput{
		AppointmentID: 50,
		ActorID:       99,
		ActorRole:     userdomain.RoleVeterinarian,
	})

	assert.True(t, httperr.IsBusiness(err, "not_authorized"))
}

func TestStartByClientForbidden(t *testing.T) {
	repo := new(MockClinicRepo)
	uc := NewStartConsultation(repo, newTestAudit(t))

	_, err := uc.Execute(context.Background(), StartConsultationInput{
		AppointmentID: 50,
		ActorID:       10,
		ActorRole:     userdomain.RoleClient,
	})

	assert.True(t, httperr.IsBusiness(err, "not_authorized"))
	repo.AssertNotCalled(t, "GetAppointmentByID", mock.Anything, mock.Anything)
}

// --------------------------------------------------
// List (escopo por papel)
// --------------------------------------------------

func TestListScopesClientToOwnPets(t *testing.T) {
	repo := new(MockClinicRepo)
	uc := NewListAppointments(repo)

	repo.On("List", mock.Anything, mock.MatchedBy(func(f domain.ListFilter) bool {
		return f.ClientID == 10 && f.VeterinarianID == 0
	})).Return([]models.Appointment{}, nil)

	_, err := uc.Execute(context.Background(), ListAppointmentsInput{
		ActorID:   10,
		ActorRole: userdomain.RoleClient,
	})
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestListScopesVetToOwnAgenda(t *testing.T) {
	repo := new(MockClinicRepo)
	uc := NewListAppointments(repo)

	repo.On("List", mock.Anything, mock.MatchedBy(func(f domain.ListFilter) bool {
		return f.VeterinarianID == 2 && f.ClientID == 0
	})).Return([]models.Appointment{}, nil)

	_, err := uc.Execute(context.Background(), ListAppointmentsInput{
		ActorID:   2,
		ActorRole: userdomain.RoleVeterinarian,
	})
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestListAttendantSeesEverything(t *testing.T) {
	repo := new(MockClinicRepo)
	uc := NewListAppointments(repo)

	repo.On("List", mock.Anything, mock.MatchedBy(func(f domain.ListFilter) bool {
		return f.ClientID == 0 && f.VeterinarianID == 0
	})).Return([]models.Appointment{}, nil)

	_, err := uc.Execute(context.Background(), ListAppointmentsInput{
		ActorID:   5,
		ActorRole: userdomain.RoleAttendant,
	})
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

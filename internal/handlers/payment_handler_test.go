package handlers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/SerraVetServices/vet-scheduler/internal/audit"
	dbpkg "github.com/SerraVetServices/vet-scheduler/internal/db"
	userdomain "github.com/SerraVetServices/vet-scheduler/internal/domain/user"
	infraRepo "github.com/SerraVetServices/vet-scheduler/internal/infra/repository"
	"github.com/SerraVetServices/vet-scheduler/internal/middleware"
	"github.com/SerraVetServices/vet-scheduler/internal/models"
	ucPayment "github.com/SerraVetServices/vet-scheduler/internal/usecase/payment"
)

// --------------------------------------------------
// Harness
// --------------------------------------------------

func setupHandlerDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:handlers_test_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := dbpkg.Migrate(db); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}
	return db
}

// asUser substitui o AuthMiddleware nos testes de handler.
func asUser(id uint, role userdomain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, id)
		c.Set(middleware.ContextUserRole, role)
		c.Next()
	}
}

// fakeBlobStore conta uploads; o conteúdo não interessa aqui.
type fakeBlobStore struct {
	puts int
}

func (f *fakeBlobStore) Put(
	ctx context.Context,
	folder, filename, contentType string,
	body io.Reader,
) (string, error) {
	f.puts++
	return "https://files.serravet.dev/" + folder + "/" + filename, nil
}

func seedHandlerUser(t *testing.T, db *gorm.DB, role, email string) *models.User {
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

func seedCompletedAppointment(
	t *testing.T,
	db *gorm.DB,
	tutorID, vetID uint,
	paymentStatus string,
) *models.Appointment {
	t.Helper()

	pet := &models.Pet{TutorID: tutorID, Name: "Rex", Species: "dog"}
	require.NoError(t, db.Create(pet).Error)

	slot := &models.Slot{
		VeterinarianID: vetID,
		StartsAt:       time.Date(2026, 5, 10, 14, 0, 0, 0, time.UTC),
		Available:      false,
	}
	require.NoError(t, db.Create(slot).Error)

	ap := &models.Appointment{
		PetID:          pet.ID,
		VeterinarianID: vetID,
		SlotID:         slot.ID,
		Status:         "completed",
		PaymentStatus:  paymentStatus,
	}
	require.NoError(t, db.Create(ap).Error)
	return ap
}

func newPaymentHandler(t *testing.T, db *gorm.DB, blobs *fakeBlobStore) *PaymentHandler {
	t.Helper()

	repo := infraRepo.NewClinicGormRepository(db)
	dispatcher := audit.NewDispatcher(audit.New(db))

	return NewPaymentHandler(
		db,
		blobs,
		ucPayment.NewSetPrice(repo, dispatcher),
		ucPayment.NewSubmitProof(repo, dispatcher),
		ucPayment.NewDecidePayment(repo, dispatcher),
	)
}

// --------------------------------------------------
// GET (resumo)
// --------------------------------------------------

func getPaymentSummary(
	h *PaymentHandler,
	apID uint,
	uid uint,
	role userdomain.Role,
) *httptest.ResponseRecorder {

	r := gin.New()
	r.GET("/appointments/:id/payment", asUser(uid, role), h.Get)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(
		http.MethodGet,
		fmt.Sprintf("/appointments/%d/payment", apID),
		nil,
	)
	r.ServeHTTP(w, req)
	return w
}

func TestPaymentSummaryScopedToParticipants(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db := setupHandlerDB(t)
	tutor := seedHandlerUser(t, db, "client", "tutor@serravet.dev")
	stranger := seedHandlerUser(t, db, "client", "stranger@serravet.dev")
	vet := seedHandlerUser(t, db, "veterinarian", "vet@serravet.dev")
	otherVet := seedHandlerUser(t, db, "veterinarian", "vet2@serravet.dev")
	attendant := seedHandlerUser(t, db, "attendant", "desk@serravet.dev")

	ap := seedCompletedAppointment(t, db, tutor.ID, vet.ID, "awaiting_client_payment")
	h := newPaymentHandler(t, db, &fakeBlobStore{})

	// outro tutor não enxerga valor, comprovantes nem análise
	w := getPaymentSummary(h, ap.ID, stranger.ID, userdomain.RoleClient)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = getPaymentSummary(h, ap.ID, otherVet.ID, userdomain.RoleVeterinarian)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// participantes e balcão enxergam
	w = getPaymentSummary(h, ap.ID, tutor.ID, userdomain.RoleClient)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "awaiting_client_payment")

	w = getPaymentSummary(h, ap.ID, vet.ID, userdomain.RoleVeterinarian)
	assert.Equal(t, http.StatusOK, w.Code)

	w = getPaymentSummary(h, ap.ID, attendant.ID, userdomain.RoleAttendant)
	assert.Equal(t, http.StatusOK, w.Code)
}

// --------------------------------------------------
// PROOF (upload)
// --------------------------------------------------

func postProof(
	h *PaymentHandler,
	apID uint,
	uid uint,
	role userdomain.Role,
) *httptest.ResponseRecorder {

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("file", "comprovante.pdf")
	fw.Write([]byte("pix"))
	mw.Close()

	r := gin.New()
	r.POST("/appointments/:id/payment-proof", asUser(uid, role), h.SubmitProof)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(
		http.MethodPost,
		fmt.Sprintf("/appointments/%d/payment-proof", apID),
		&buf,
	)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	r.ServeHTTP(w, req)
	return w
}

func TestSubmitProofRejectedBeforeUpload(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db := setupHandlerDB(t)
	tutor := seedHandlerUser(t, db, "client", "tutor@serravet.dev")
	vet := seedHandlerUser(t, db, "veterinarian", "vet@serravet.dev")

	// sem valor definido: o envio é recusado e nada sobe para o bucket
	ap := seedCompletedAppointment(t, db, tutor.ID, vet.ID, "awaiting_price")
	blobs := &fakeBlobStore{}
	h := newPaymentHandler(t, db, blobs)

	w := postProof(h, ap.ID, tutor.ID, userdomain.RoleClient)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "price_not_set")
	assert.Equal(t, 0, blobs.puts)

	var count int64
	db.Model(&models.PaymentProof{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestSubmitProofUploadsAndPersists(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db := setupHandlerDB(t)
	tutor := seedHandlerUser(t, db, "client", "tutor@serravet.dev")
	vet := seedHandlerUser(t, db, "veterinarian", "vet@serravet.dev")

	ap := seedCompletedAppointment(t, db, tutor.ID, vet.ID, "awaiting_client_payment")
	blobs := &fakeBlobStore{}
	h := newPaymentHandler(t, db, blobs)

	w := postProof(h, ap.ID, tutor.ID, userdomain.RoleClient)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, blobs.puts)

	var reloaded models.Appointment
	require.NoError(t, db.First(&reloaded, ap.ID).Error)
	assert.Equal(t, "under_review", reloaded.PaymentStatus)
}

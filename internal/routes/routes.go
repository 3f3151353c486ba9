package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/SerraVetServices/vet-scheduler/internal/audit"
	"github.com/SerraVetServices/vet-scheduler/internal/config"
	userdomain "github.com/SerraVetServices/vet-scheduler/internal/domain/user"
	"github.com/SerraVetServices/vet-scheduler/internal/handlers"
	infraRepo "github.com/SerraVetServices/vet-scheduler/internal/infra/repository"
	"github.com/SerraVetServices/vet-scheduler/internal/infra/storage"
	"github.com/SerraVetServices/vet-scheduler/internal/lock"
	"github.com/SerraVetServices/vet-scheduler/internal/middleware"
	ucAbsence "github.com/SerraVetServices/vet-scheduler/internal/usecase/absence"
	ucAppointment "github.com/SerraVetServices/vet-scheduler/internal/usecase/appointment"
	ucPayment "github.com/SerraVetServices/vet-scheduler/internal/usecase/payment"
	ucRecord "github.com/SerraVetServices/vet-scheduler/internal/usecase/record"
	ucSlot "github.com/SerraVetServices/vet-scheduler/internal/usecase/slot"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	locker lock.SlotLocker,
	blobs storage.BlobStore,
) {

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	clinicRepo := infraRepo.NewClinicGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	bookUC := ucAppointment.NewBookAppointment(clinicRepo, locker, auditDispatcher)
	cancelUC := ucAppointment.NewCancelAppointment(clinicRepo, auditDispatcher)
	startUC := ucAppointment.NewStartConsultation(clinicRepo, auditDispatcher)
	listAppointmentsUC := ucAppointment.NewListAppointments(clinicRepo)

	manageSlotsUC := ucSlot.NewManageSlots(clinicRepo, auditDispatcher)

	declareAbsenceUC := ucAbsence.NewDeclareAbsence(clinicRepo, auditDispatcher)
	listAbsencesUC := ucAbsence.NewListAbsences(clinicRepo)

	saveRecordUC := ucRecord.NewSaveRecord(clinicRepo, auditDispatcher)

	setPriceUC := ucPayment.NewSetPrice(clinicRepo, auditDispatcher)
	submitProofUC := ucPayment.NewSubmitProof(clinicRepo, auditDispatcher)
	decidePaymentUC := ucPayment.NewDecidePayment(clinicRepo, auditDispatcher)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	vetHandler := handlers.NewVetHandler(db)
	petHandler := handlers.NewPetHandler(db, blobs, auditDispatcher)
	notificationHandler := handlers.NewNotificationHandler(db)

	slotHandler := handlers.NewSlotHandler(manageSlotsUC)

	appointmentHandler := handlers.NewAppointmentHandler(
		bookUC,
		cancelUC,
		startUC,
		listAppointmentsUC,
	)

	recordHandler := handlers.NewRecordHandler(db, blobs, saveRecordUC)
	absenceHandler := handlers.NewAbsenceHandler(declareAbsenceUC, listAbsencesUC)

	paymentHandler := handlers.NewPaymentHandler(
		db,
		blobs,
		setPriceUC,
		submitProofUC,
		decidePaymentUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/notifications", notificationHandler.List)
			secured.PATCH("/me/notifications/:id/read", notificationHandler.MarkRead)

			// ------------------------------
			// VETERINÁRIOS (diretório)
			// ------------------------------
			secured.GET("/veterinarians", vetHandler.List)
			secured.GET("/veterinarians/:id", vetHandler.Get)

			// ------------------------------
			// PETS (tutor)
			// ------------------------------
			secured.GET("/me/pets", petHandler.List)
			secured.POST("/me/pets", petHandler.Create)
			secured.PATCH("/me/pets/:id", petHandler.Update)
			secured.DELETE("/me/pets/:id", petHandler.Delete)
			secured.POST("/me/pets/:id/photo", petHandler.UploadPhoto)

			// ------------------------------
			// AGENDA DE HORÁRIOS
			// ------------------------------
			secured.GET("/slots", slotHandler.List)
			secured.POST("/slots", slotHandler.Create)
			secured.PATCH("/slots/:id", slotHandler.Update)
			secured.DELETE("/slots/:id", slotHandler.Delete)

			// ------------------------------
			// CONSULTAS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Book)
			secured.GET("/appointments", appointmentHandler.List)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/start", appointmentHandler.Start)

			// ------------------------------
			// PRONTUÁRIO
			// ------------------------------
			secured.GET("/appointments/:id/record", recordHandler.Get)
			secured.PUT("/appointments/:id/record", recordHandler.Save)
			secured.POST(
				"/uploads/prescriptions",
				middleware.RequireRoles(userdomain.RoleVeterinarian),
				recordHandler.UploadPrescription,
			)

			// ------------------------------
			// AUSÊNCIAS
			// ------------------------------
			secured.POST("/absences", absenceHandler.Declare)
			secured.GET("/absences", absenceHandler.List)

			// ------------------------------
			// PAGAMENTO
			// ------------------------------
			secured.GET("/appointments/:id/payment", paymentHandler.Get)
			secured.PUT("/appointments/:id/price", paymentHandler.SetPrice)
			secured.POST("/appointments/:id/payment-proof", paymentHandler.SubmitProof)
			secured.PATCH("/appointments/:id/payment-decision", paymentHandler.Decide)

			// ------------------------------
			// AUDITORIA (admin)
			// ------------------------------
			secured.GET(
				"/audit-logs",
				middleware.RequireRoles(userdomain.RoleAdministrator),
				auditLogsHandler.List,
			)
		}
	}
}

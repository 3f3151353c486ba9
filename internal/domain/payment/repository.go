package payment

import (
	"context"

	"github.com/SerraVetServices/vet-scheduler/internal/models"
)

type Repository interface {
	GetAppointmentByID(ctx context.Context, id uint) (*models.Appointment, error)

	GetQuoteByAppointment(ctx context.Context, appointmentID uint) (*models.PriceQuote, error)

	// CreateQuote grava o valor e atualiza o status de pagamento da
	// consulta na mesma transação.
	CreateQuote(ctx context.Context, quote *models.PriceQuote, ap *models.Appointment) error

	// AddProof grava o comprovante, garante a análise (get-or-create,
	// idempotente) e move a consulta para under_review — tudo atômico.
	AddProof(ctx context.Context, proof *models.PaymentProof, ap *models.Appointment) error

	GetReviewByAppointment(ctx context.Context, appointmentID uint) (*models.PaymentReview, error)

	// SaveReviewDecision persiste a decisão e propaga o novo status de
	// pagamento para a consulta na mesma transação.
	SaveReviewDecision(ctx context.Context, review *models.PaymentReview, ap *models.Appointment) error

	ListProofs(ctx context.Context, appointmentID uint) ([]models.PaymentProof, error)
}

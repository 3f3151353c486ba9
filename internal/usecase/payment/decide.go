package payment

import (
	"context"

	"github.com/SerraVetServices/vet-scheduler/internal/audit"
	domain "github.com/SerraVetServices/vet-scheduler/internal/domain/payment"
	userdomain "github.com/SerraVetServices/vet-scheduler/internal/domain/user"
	"github.com/SerraVetServices/vet-scheduler/internal/httperr"
	"github.com/SerraVetServices/vet-scheduler/internal/models"
)

type DecidePaymentInput struct {
	ActorID   uint
	ActorRole userdomain.Role

	AppointmentID uint
	Decision      string
	Note          string
}

type DecidePayment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDecidePayment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DecidePayment {
	return &DecidePayment{
		repo:  repo,
		audit: audit,
	}
}

// Execute grava a decisão do atendente. O status de pagamento da consulta
// é sempre re-derivado da análise — inclusive quando o atendente volta a
// decisão para under_review.
func (uc *DecidePayment) Execute(
	ctx context.Context,
	in DecidePaymentInput,
) (*models.PaymentReview, error) {

	if !userdomain.CanReviewPayments(in.ActorRole) {
		return nil, httperr.ErrNotAuthorized("not_authorized")
	}

	decision, err := domain.ParseDecision(in.Decision)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointmentByID(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}

	if err := domain.CanDecide(domain.Status(ap.PaymentStatus)); err != nil {
		return nil, err
	}

	review, err := uc.repo.GetReviewByAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}

	review.Status = string(decision)
	review.ReviewerID = &in.ActorID
	if in.Note != "" {
		review.Note = in.Note
	}

	ap.PaymentStatus = string(domain.FromDecision(decision))

	if err := uc.repo.SaveReviewDecision(ctx, review, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Action:   "payment_decided",
		Entity:   "payment_review",
		EntityID: &review.ID,
		Metadata: map[string]any{"decision": string(decision)},
	})

	return review, nil
}

package payment

import (
	"context"

	"github.com/SerraVetServices/vet-scheduler/internal/audit"
	appointmentdomain "github.com/SerraVetServices/vet-scheduler/internal/domain/appointment"
	domain "github.com/SerraVetServices/vet-scheduler/internal/domain/payment"
	userdomain "github.com/SerraVetServices/vet-scheduler/internal/domain/user"
	"github.com/SerraVetServices/vet-scheduler/internal/httperr"
	"github.com/SerraVetServices/vet-scheduler/internal/models"
)

type SetPriceInput struct {
	ActorID   uint
	ActorRole userdomain.Role

	AppointmentID uint
	Amount        float64
}

type SetPrice struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSetPrice(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *SetPrice {
	return &SetPrice{
		repo:  repo,
		audit: audit,
	}
}

// Execute define o valor da consulta concluída e move o pagamento para
// awaiting_client_payment.
func (uc *SetPrice) Execute(
	ctx context.Context,
	in SetPriceInput,
) (*models.PriceQuote, error) {

	if !userdomain.CanReviewPayments(in.ActorRole) {
		return nil, httperr.ErrNotAuthorized("not_authorized")
	}
	if in.Amount <= 0 {
		return nil, httperr.ErrValidation("invalid_amount")
	}

	ap, err := uc.repo.GetAppointmentByID(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}

	if err := domain.RequireCompleted(appointmentdomain.Status(ap.Status)); err != nil {
		return nil, err
	}
	if err := domain.CanSetPrice(domain.Status(ap.PaymentStatus)); err != nil {
		return nil, err
	}

	quote := &models.PriceQuote{
		AppointmentID: ap.ID,
		Amount:        in.Amount,
	}

	ap.PaymentStatus = string(domain.StatusAwaitingClient)

	if err := uc.repo.CreateQuote(ctx, quote, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Action:   "price_set",
		Entity:   "price_quote",
		EntityID: &quote.ID,
		Metadata: map[string]any{"amount": in.Amount},
	})

	return quote, nil
}

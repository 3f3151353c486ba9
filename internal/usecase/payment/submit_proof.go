package payment

import (
	"context"

	"github.com/SerraVetServices/vet-scheduler/internal/audit"
	domain "github.com/SerraVetServices/vet-scheduler/internal/domain/payment"
	userdomain "github.com/SerraVetServices/vet-scheduler/internal/domain/user"
	"github.com/SerraVetServices/vet-scheduler/internal/httperr"
	"github.com/SerraVetServices/vet-scheduler/internal/models"
)

type SubmitProofInput struct {
	ActorID   uint
	ActorRole userdomain.Role

	AppointmentID uint
	FileURL       string
}

type SubmitProof struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSubmitProof(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *SubmitProof {
	return &SubmitProof{
		repo:  repo,
		audit: audit,
	}
}

// Validate roda as mesmas guardas do Execute sem persistir nada. O
// handler chama antes de subir o arquivo, para não deixar comprovante
// órfão no bucket quando o estado do pagamento rejeitaria o envio.
func (uc *SubmitProof) Validate(
	ctx context.Context,
	in SubmitProofInput,
) error {
	_, err := uc.check(ctx, in)
	return err
}

func (uc *SubmitProof) check(
	ctx context.Context,
	in SubmitProofInput,
) (*models.Appointment, error) {

	if in.ActorRole != userdomain.RoleClient {
		return nil, httperr.ErrNotAuthorized("not_authorized")
	}

	ap, err := uc.repo.GetAppointmentByID(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}

	// só o tutor do pet paga a própria consulta
	if ap.Pet.TutorID != in.ActorID {
		return nil, httperr.ErrNotAuthorized("not_owner")
	}

	if err := domain.CanSubmitProof(domain.Status(ap.PaymentStatus)); err != nil {
		return nil, err
	}
	return ap, nil
}

// Execute registra o comprovante do tutor e coloca o pagamento em
// análise. Reenvio após rejeição é permitido; a análise existente é
// reaproveitada (get-or-create).
func (uc *SubmitProof) Execute(
	ctx context.Context,
	in SubmitProofInput,
) (*models.PaymentProof, error) {

	if in.FileURL == "" {
		return nil, httperr.ErrValidation("missing_proof_file")
	}

	ap, err := uc.check(ctx, in)
	if err != nil {
		return nil, err
	}

	proof := &models.PaymentProof{
		AppointmentID: ap.ID,
		FileURL:       in.FileURL,
	}

	ap.PaymentStatus = string(domain.StatusUnderReview)

	if err := uc.repo.AddProof(ctx, proof, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Action:   "payment_proof_submitted",
		Entity:   "payment_proof",
		EntityID: &proof.ID,
	})

	return proof, nil
}

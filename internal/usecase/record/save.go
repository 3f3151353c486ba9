package record

import (
	"context"

	"github.com/SerraVetServices/vet-scheduler/internal/audit"
	appointmentdomain "github.com/SerraVetServices/vet-scheduler/internal/domain/appointment"
	paymentdomain "github.com/SerraVetServices/vet-scheduler/internal/domain/payment"
	domain "github.com/SerraVetServices/vet-scheduler/internal/domain/record"
	userdomain "github.com/SerraVetServices/vet-scheduler/internal/domain/user"
	"github.com/SerraVetServices/vet-scheduler/internal/httperr"
	"github.com/SerraVetServices/vet-scheduler/internal/models"
	"github.com/SerraVetServices/vet-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type SaveRecordInput struct {
	ActorID   uint
	ActorRole userdomain.Role

	AppointmentID uint

	ClinicalSigns   string
	Diagnosis       string
	Exams           string
	Immunizations   string
	PrescriptionURL string
	Notes           string

	Finalize bool
}

// ======================================================
// USE CASE
// ======================================================

type SaveRecord struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSaveRecord(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *SaveRecord {
	return &SaveRecord{
		repo:  repo,
		audit: audit,
	}
}

// Execute cria ou atualiza o prontuário da consulta.
//
// Primeiro save numa consulta ainda scheduled inicia o atendimento
// (o veterinário começou a escrever antes de marcar o início). Save com
// finalize força a consulta para concluída — idempotente se já concluída,
// rejeitado se cancelada. Rascunho não mexe no status.
func (uc *SaveRecord) Execute(
	ctx context.Context,
	in SaveRecordInput,
) (*models.ClinicalRecord, error) {

	if !userdomain.CanWriteRecord(in.ActorRole) {
		return nil, httperr.ErrNotAuthorized("not_authorized")
	}

	ap, err := uc.repo.GetAppointmentByID(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}

	if ap.VeterinarianID != in.ActorID {
		return nil, httperr.ErrNotAuthorized("not_authorized")
	}

	rec, err := uc.repo.GetByAppointment(ctx, in.AppointmentID)
	isNew := false
	if err != nil {
		if !httperr.IsBusiness(err, "record_not_found") {
			return nil, err
		}
		rec = &models.ClinicalRecord{AppointmentID: in.AppointmentID}
		isNew = true
	}

	// prontuário finalizado não volta a rascunho; refinalizar é permitido
	// e não tem efeito sobre o status da consulta (idempotente)
	if rec.Finalized && !in.Finalize {
		return nil, httperr.ErrStateConflict("record_finalized")
	}

	rec.ClinicalSigns = in.ClinicalSigns
	rec.Diagnosis = in.Diagnosis
	rec.Exams = in.Exams
	rec.Immunizations = in.Immunizations
	if in.PrescriptionURL != "" {
		rec.PrescriptionURL = in.PrescriptionURL
	}
	rec.Notes = in.Notes

	now := timezone.Now()

	// primeiro registro numa consulta agendada inicia o atendimento
	if isNew && appointmentdomain.Status(ap.Status) == appointmentdomain.StatusScheduled {
		if err := appointmentdomain.Start(ap, now); err != nil {
			return nil, err
		}
	}

	if in.Finalize {
		rec.Finalized = true

		if err := appointmentdomain.Complete(ap, now); err != nil {
			return nil, err
		}

		// consulta concluída entra no fluxo de cobrança
		ap.PaymentStatus = string(paymentdomain.OnComplete(
			paymentdomain.Status(ap.PaymentStatus),
		))
	}

	if err := uc.repo.Save(ctx, rec, ap); err != nil {
		return nil, err
	}

	action := "record_saved"
	if in.Finalize {
		action = "record_finalized"
	}
	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Action:   action,
		Entity:   "clinical_record",
		EntityID: &rec.ID,
	})

	return rec, nil
}

package payment

import (
	"github.com/SerraVetServices/vet-scheduler/internal/domain/appointment"
	"github.com/SerraVetServices/vet-scheduler/internal/httperr"
)

// ===============================
// Status de pagamento
// ===============================

type Status string

const (
	StatusPending        Status = "pending"
	StatusAwaitingPrice  Status = "awaiting_price"
	StatusAwaitingClient Status = "awaiting_client_payment"
	StatusUnderReview    Status = "under_review"
	StatusApproved       Status = "approved"
	StatusRejected       Status = "rejected"
)

// ===============================
// Decisão do atendente
// ===============================

// Decision é o status da análise (GerenciamentoPagamento). O status de
// pagamento da consulta é sempre re-derivado dele — espelha, nunca
// diverge.
type Decision string

const (
	DecisionUnderReview Decision = "under_review"
	DecisionApproved    Decision = "approved"
	DecisionRejected    Decision = "rejected"
)

func ParseDecision(s string) (Decision, error) {
	switch Decision(s) {
	case DecisionUnderReview, DecisionApproved, DecisionRejected:
		return Decision(s), nil
	default:
		return "", httperr.ErrValidation("invalid_decision")
	}
}

// FromDecision re-deriva o status de pagamento da consulta a partir da
// decisão gravada na análise.
func FromDecision(d Decision) Status {
	switch d {
	case DecisionApproved:
		return StatusApproved
	case DecisionRejected:
		return StatusRejected
	default:
		return StatusUnderReview
	}
}

// ===============================
// Transições
// ===============================

// OnComplete: ao concluir a consulta, pagamento pendente passa a aguardar
// definição de valor. Demais estados ficam como estão.
func OnComplete(current Status) Status {
	if current == StatusPending {
		return StatusAwaitingPrice
	}
	return current
}

// CanSetPrice: o valor é definido uma única vez, antes de qualquer
// movimentação do cliente.
func CanSetPrice(current Status) error {
	switch current {
	case StatusPending, StatusAwaitingPrice:
		return nil
	default:
		return httperr.ErrStateConflict("price_already_set")
	}
}

// CanSubmitProof: precisa de valor definido; aprovado encerra o fluxo.
// Reenvio durante análise ou após rejeição é permitido.
func CanSubmitProof(current Status) error {
	switch current {
	case StatusAwaitingClient, StatusUnderReview, StatusRejected:
		return nil
	case StatusApproved:
		return httperr.ErrStateConflict("payment_already_approved")
	default:
		return httperr.ErrStateConflict("price_not_set")
	}
}

// CanDecide: só existe decisão depois do primeiro comprovante criar a
// análise; a consulta precisa estar no fluxo de revisão.
func CanDecide(current Status) error {
	switch current {
	case StatusUnderReview, StatusApproved, StatusRejected:
		return nil
	default:
		return httperr.ErrStateConflict("no_payment_to_review")
	}
}

// RequireCompleted: o fluxo de cobrança só roda sobre consulta concluída.
func RequireCompleted(s appointment.Status) error {
	if s != appointment.StatusCompleted {
		return httperr.ErrStateConflict("appointment_not_completed")
	}
	return nil
}

package models

import "time"

// PriceQuote define o valor da consulta (ValorPagamento). Uma por consulta.
type PriceQuote struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint        `gorm:"uniqueIndex;not null" json:"appointment_id"`
	Appointment   Appointment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"appointment"`

	Amount float64 `gorm:"not null" json:"amount"`

	CreatedAt time.Time `json:"created_at"`
}

// PaymentProof é um comprovante enviado pelo cliente (PagamentoCliente).
// Pode haver vários por consulta (reenvio após rejeição).
type PaymentProof struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint        `gorm:"not null;index" json:"appointment_id"`
	Appointment   Appointment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"appointment"`

	FileURL string `gorm:"size:255;not null" json:"file_url"`

	CreatedAt time.Time `json:"created_at"`
}

// PaymentReview é a análise do atendente (GerenciamentoPagamento). 1:1 com
// a consulta, criada de forma preguiçosa no primeiro comprovante.
type PaymentReview struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint        `gorm:"uniqueIndex;not null" json:"appointment_id"`
	Appointment   Appointment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"appointment"`

	ReviewerID *uint `json:"reviewer_id"`
	Reviewer   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"reviewer,omitempty"`

	// under_review | approved | rejected
	Status string `gorm:"size:30;not null;default:'under_review'" json:"status"`
	Note   string `gorm:"size:500" json:"note"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

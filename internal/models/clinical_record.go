package models

import "time"

// ClinicalRecord é o prontuário, 1:1 com a consulta.
type ClinicalRecord struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint        `gorm:"uniqueIndex;not null" json:"appointment_id"`
	Appointment   Appointment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"appointment"`

	ClinicalSigns   string `gorm:"size:1000" json:"clinical_signs"`
	Diagnosis       string `gorm:"size:1000" json:"diagnosis"`
	Exams           string `gorm:"size:1000" json:"exams"`
	Immunizations   string `gorm:"size:500" json:"immunizations"`
	PrescriptionURL string `gorm:"size:255" json:"prescription_url"`
	Notes           string `gorm:"size:2000" json:"notes"`

	Finalized bool `gorm:"not null;default:false" json:"finalized"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

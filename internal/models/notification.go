package models

import "time"

type Notification struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"not null;index" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`

	Message string `gorm:"size:500;not null" json:"message"`
	Read    bool   `gorm:"not null;default:false" json:"read"`

	// referência fraca: a consulta pode ser removida depois
	AppointmentID *uint        `json:"appointment_id"`
	Appointment   *Appointment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"appointment,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

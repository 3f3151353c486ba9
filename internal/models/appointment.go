package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	PetID uint `gorm:"not null;index" json:"pet_id"`
	Pet   Pet  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"pet"`

	VeterinarianID uint `gorm:"not null;index" json:"veterinarian_id"`
	Veterinarian   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"veterinarian"`

	SlotID uint `gorm:"not null;index" json:"slot_id"`
	Slot   Slot `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"slot"`

	Reason string `gorm:"size:500" json:"reason"`

	Status        string `gorm:"size:20;not null;default:'scheduled'" json:"status"`
	PaymentStatus string `gorm:"size:30;not null;default:'pending'" json:"payment_status"`

	CancelledAt *time.Time `json:"cancelled_at"`
	StartedAt   *time.Time `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

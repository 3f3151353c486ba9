package models

import "time"

// Absence é um período de indisponibilidade declarado pelo veterinário.
// Intervalo semiaberto [StartsAt, EndsAt).
type Absence struct {
	ID uint `gorm:"primaryKey" json:"id"`

	VeterinarianID uint `gorm:"not null;index" json:"veterinarian_id"`
	Veterinarian   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"veterinarian"`

	StartsAt time.Time `gorm:"not null" json:"starts_at"`
	EndsAt   time.Time `gorm:"not null" json:"ends_at"`
	Reason   string    `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
}

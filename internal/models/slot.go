package models

import "time"

// Slot é um horário atendível de um veterinário (HorarioDisponivel).
// Invariante: Available == false exatamente quando existe uma consulta
// ativa (scheduled/in_progress) apontando para ele.
type Slot struct {
	ID uint `gorm:"primaryKey" json:"id"`

	VeterinarianID uint `gorm:"not null;index" json:"veterinarian_id"`
	Veterinarian   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"veterinarian"`

	StartsAt  time.Time `gorm:"not null;index" json:"starts_at"`
	Available bool      `gorm:"not null;default:true" json:"available"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package models

import "time"

type Pet struct {
	ID uint `gorm:"primaryKey" json:"id"`

	TutorID uint `gorm:"not null;index" json:"tutor_id"`
	Tutor   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"tutor"`

	Name    string  `gorm:"size:100;not null" json:"name"`
	Species string  `gorm:"size:20;not null" json:"species"`
	Breed   string  `gorm:"size:100" json:"breed"`
	Weight  float64 `json:"weight"`

	Vaccinated bool   `json:"vaccinated"`
	Allergies  string `gorm:"size:500" json:"allergies"`
	Diseases   string `gorm:"size:500" json:"diseases"`

	// URL do objeto no bucket; o core nunca interpreta o conteúdo
	PhotoURL string `gorm:"size:255" json:"photo_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

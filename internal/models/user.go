package models

import "time"

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Surname      string `gorm:"size:100" json:"surname"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	CPF          string `gorm:"size:11;uniqueIndex;not null" json:"cpf"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Address      string `gorm:"size:255" json:"address"`

	// client | veterinarian | attendant | administrator
	Role string `gorm:"size:20;not null;default:'client'" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// VetProfile guarda o registro profissional (CRMV) de usuários veterinários.
type VetProfile struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`

	CRMV string `gorm:"size:10;not null" json:"crmv"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

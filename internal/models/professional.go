package models

import "time"

type Professional struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CompanyID uint `json:"company_id"`

	Name     string `gorm:"size:100;not null" json:"name"`
	Phone    string `gorm:"size:20" json:"phone"`
	Bio      string `gorm:"size:500" json:"bio"`
	PhotoURL string `gorm:"size:255" json:"photo_url"`

	// soft delete: nunca removemos fisicamente (histórico de agendamentos)
	Active bool `gorm:"default:true" json:"active"`

	// usuário vinculado (opcional)
	UserID *uint `json:"user_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package models

import "time"

type User struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	CompanyID uint    `json:"company_id"`
	Company   Company `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"company"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`

	// role: admin | professional
	Role string `gorm:"size:20;default:'admin'" json:"role"`

	// tipo_usuario: admin | superadmin
	TipoUsuario string `gorm:"size:20;default:'admin'" json:"tipo_usuario"`

	// vínculo opcional com o provedor de identidade externo
	AuthID string `gorm:"size:100;index" json:"auth_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

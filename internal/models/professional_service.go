package models

import "time"

// ProfessionalService vincula profissional e serviço.
// Par único: reassociar um par existente é tratado como sucesso.
type ProfessionalService struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ProfessionalID uint `gorm:"uniqueIndex:ux_professional_service,priority:1;not null" json:"professional_id"`
	ServiceID      uint `gorm:"uniqueIndex:ux_professional_service,priority:2;not null" json:"service_id"`

	CreatedAt time.Time `json:"created_at"`
}

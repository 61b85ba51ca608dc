package models

import "time"

// AvailableSlot é um intervalo fixo em que o profissional aceita um agendamento.
// Invariante: is_available=true se e somente se nenhum agendamento não-cancelado
// referencia o slot. Remoção é física, e só enquanto o slot ainda está livre.
type AvailableSlot struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	ProfessionalID uint `gorm:"index" json:"professional_id"`

	StartTime time.Time `gorm:"index" json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	IsAvailable bool `gorm:"default:true" json:"is_available"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

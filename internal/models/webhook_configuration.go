package models

import "time"

type WebhookConfiguration struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CompanyID uint `gorm:"index" json:"company_id"`

	URL       string `gorm:"size:255;not null" json:"url"`
	EventType string `gorm:"size:50;not null" json:"event_type"`
	IsActive  bool   `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

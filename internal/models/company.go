package models

import "time"

type Company struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`
	Slug string `gorm:"size:100;uniqueIndex;not null" json:"slug"`

	Phone   string `gorm:"size:20" json:"phone"`
	LogoURL string `gorm:"size:255" json:"logo_url"`

	PrimaryColor   string `gorm:"size:7" json:"primary_color"`
	SecondaryColor string `gorm:"size:7" json:"secondary_color"`

	PlanType       string     `gorm:"size:20;default:'basic'" json:"plan_type"`
	PlanValue      float64    `json:"plan_value"`
	PlanExpiryDate *time.Time `json:"plan_expiry_date"`

	IsActive bool   `gorm:"default:true" json:"is_active"`
	Timezone string `gorm:"size:50" json:"timezone"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsEffectivelyActive centraliza a regra de vigência do plano:
// empresa ativa E (sem data de expiração OU expiração no futuro).
func (c *Company) IsEffectivelyActive(now time.Time) bool {
	if !c.IsActive {
		return false
	}
	if c.PlanExpiryDate == nil {
		return true
	}
	return c.PlanExpiryDate.After(now)
}

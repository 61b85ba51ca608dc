package models

import (
	"testing"
	"time"
)

func TestCompany_IsEffectivelyActive(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	tests := []struct {
		name    string
		company Company
		want    bool
	}{
		{"ativa sem expiração", Company{IsActive: true}, true},
		{"ativa com plano vigente", Company{IsActive: true, PlanExpiryDate: &future}, true},
		{"ativa com plano vencido", Company{IsActive: true, PlanExpiryDate: &past}, false},
		{"ativa expirando agora", Company{IsActive: true, PlanExpiryDate: &now}, false},
		{"inativa mesmo com plano vigente", Company{IsActive: false, PlanExpiryDate: &future}, false},
		{"inativa sem expiração", Company{IsActive: false}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.company.IsEffectivelyActive(now); got != tt.want {
				t.Fatalf("IsEffectivelyActive() = %v, want %v", got, tt.want)
			}
		})
	}
}

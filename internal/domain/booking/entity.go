package booking

import (
	"time"

	"github.com/BruksfildServices01/agenda-saas/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// ApplyStatus grava o novo status e os carimbos terminais.
// Qualquer transição entre status válidos é aceita: a máquina estrita
// (confirmed→{completed,cancelled} apenas) nunca foi regra de produto.
func ApplyStatus(ap *models.Appointment, next Status, now time.Time) {
	switch next {
	case StatusCancelled:
		if ap.CancelledAt == nil {
			ap.CancelledAt = &now
		}
	case StatusCompleted:
		if ap.CompletedAt == nil {
			ap.CompletedAt = &now
		}
	}

	ap.Status = string(next)
}

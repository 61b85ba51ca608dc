package booking

import (
	"time"

	"github.com/BruksfildServices01/agenda-saas/internal/models"
)

// ===============================
// Geração em lote de slots
// ===============================

// TimeRange é uma faixa de horário dentro de um dia (hora/minuto local).
type TimeRange struct {
	StartHour   int `json:"start_hour"`
	StartMinute int `json:"start_minute"`
	EndHour     int `json:"end_hour"`
	EndMinute   int `json:"end_minute"`
}

func (r TimeRange) Valid() bool {
	if r.StartHour < 0 || r.StartHour > 23 || r.EndHour < 0 || r.EndHour > 23 {
		return false
	}
	if r.StartMinute < 0 || r.StartMinute > 59 || r.EndMinute < 0 || r.EndMinute > 59 {
		return false
	}

	startMin := r.StartHour*60 + r.StartMinute
	endMin := r.EndHour*60 + r.EndMinute
	return endMin > startMin
}

// GenerateSlots expande [startDate, endDate] (inclusivo) × dias da semana
// selecionados (0=domingo..6=sábado) × faixas de horário em slots discretos,
// todos disponíveis. Não há verificação de sobreposição com slots já
// existentes: evitar duplicidade é responsabilidade de quem chama.
func GenerateSlots(
	professionalID uint,
	startDate time.Time,
	endDate time.Time,
	weekdays []int,
	ranges []TimeRange,
	loc *time.Location,
) []models.AvailableSlot {

	selected := make(map[int]bool, len(weekdays))
	for _, wd := range weekdays {
		selected[wd] = true
	}

	dayStart := time.Date(
		startDate.Year(), startDate.Month(), startDate.Day(),
		0, 0, 0, 0, loc,
	)
	dayEnd := time.Date(
		endDate.Year(), endDate.Month(), endDate.Day(),
		0, 0, 0, 0, loc,
	)

	var slots []models.AvailableSlot

	for day := dayStart; !day.After(dayEnd); day = day.AddDate(0, 0, 1) {
		if !selected[int(day.Weekday())] {
			continue
		}

		for _, r := range ranges {
			start := time.Date(
				day.Year(), day.Month(), day.Day(),
				r.StartHour, r.StartMinute, 0, 0, loc,
			)
			end := time.Date(
				day.Year(), day.Month(), day.Day(),
				r.EndHour, r.EndMinute, 0, 0, loc,
			)

			slots = append(slots, models.AvailableSlot{
				ProfessionalID: professionalID,
				StartTime:      start,
				EndTime:        end,
				IsAvailable:    true,
			})
		}
	}

	return slots
}

package booking

import (
	"testing"
	"time"
)

func TestTimeRange_Valid(t *testing.T) {
	tests := []struct {
		name string
		r    TimeRange
		want bool
	}{
		{"faixa normal", TimeRange{9, 0, 10, 0}, true},
		{"um minuto", TimeRange{9, 0, 9, 1}, true},
		{"fim igual ao início", TimeRange{9, 0, 9, 0}, false},
		{"fim antes do início", TimeRange{10, 0, 9, 0}, false},
		{"hora negativa", TimeRange{-1, 0, 10, 0}, false},
		{"hora acima de 23", TimeRange{9, 0, 24, 0}, false},
		{"minuto acima de 59", TimeRange{9, 60, 10, 0}, false},
		{"dia inteiro", TimeRange{0, 0, 23, 59}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Valid(); got != tt.want {
				t.Fatalf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGenerateSlots_WeekdayFilter(t *testing.T) {
	loc := time.UTC

	// 2025-06-02 é segunda; a semana cobre seg..dom
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, loc)
	end := time.Date(2025, 6, 8, 0, 0, 0, 0, loc)

	slots := GenerateSlots(
		7,
		start,
		end,
		[]int{1, 3}, // segunda e quarta
		[]TimeRange{{9, 0, 10, 0}},
		loc,
	)

	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}

	wantStarts := []time.Time{
		time.Date(2025, 6, 2, 9, 0, 0, 0, loc),
		time.Date(2025, 6, 4, 9, 0, 0, 0, loc),
	}

	for i, s := range slots {
		if s.ProfessionalID != 7 {
			t.Fatalf("slot %d: professional = %d, want 7", i, s.ProfessionalID)
		}
		if !s.StartTime.Equal(wantStarts[i]) {
			t.Fatalf("slot %d: start = %v, want %v", i, s.StartTime, wantStarts[i])
		}
		if !s.EndTime.Equal(wantStarts[i].Add(time.Hour)) {
			t.Fatalf("slot %d: end = %v", i, s.EndTime)
		}
		if !s.IsAvailable {
			t.Fatalf("slot %d: expected available", i)
		}
	}
}

func TestGenerateSlots_MultipleRangesPerDay(t *testing.T) {
	loc := time.UTC
	day := time.Date(2025, 6, 3, 0, 0, 0, 0, loc) // terça

	slots := GenerateSlots(
		1,
		day,
		day,
		[]int{2},
		[]TimeRange{{9, 0, 9, 30}, {14, 0, 14, 30}},
		loc,
	)

	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}
	if slots[1].StartTime.Hour() != 14 {
		t.Fatalf("second slot starts at %v", slots[1].StartTime)
	}
}

func TestGenerateSlots_NoMatchingWeekday(t *testing.T) {
	loc := time.UTC
	day := time.Date(2025, 6, 3, 0, 0, 0, 0, loc) // terça

	slots := GenerateSlots(
		1,
		day,
		day,
		[]int{0}, // domingo
		[]TimeRange{{9, 0, 10, 0}},
		loc,
	)

	if len(slots) != 0 {
		t.Fatalf("expected 0 slots, got %d", len(slots))
	}
}

func TestGenerateSlots_EndDateInclusive(t *testing.T) {
	loc := time.UTC
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, loc)
	end := time.Date(2025, 6, 9, 0, 0, 0, 0, loc) // segunda seguinte, incluída

	slots := GenerateSlots(
		1,
		start,
		end,
		[]int{1},
		[]TimeRange{{8, 0, 8, 30}},
		loc,
	)

	if len(slots) != 2 {
		t.Fatalf("expected both mondays, got %d slots", len(slots))
	}
}

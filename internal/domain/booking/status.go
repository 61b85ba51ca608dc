package booking

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

func InitialStatus() Status {
	return StatusConfirmed
}

// ReleasesSlot diz se a transição devolve o slot para a agenda.
// Só a entrada em cancelled libera o slot; completed não mexe nele,
// e cancelar de novo não re-libera.
func ReleasesSlot(prior, next Status) bool {
	return next == StatusCancelled && prior != StatusCancelled
}

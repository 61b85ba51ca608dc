package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/agenda-saas/internal/models"
)

type Repository interface {
	// -------- Company --------
	GetCompanyByID(
		ctx context.Context,
		id uint,
	) (*models.Company, error)

	// -------- Catalog --------
	GetService(
		ctx context.Context,
		companyID uint,
		serviceID uint,
	) (*models.Service, error)

	GetProfessional(
		ctx context.Context,
		companyID uint,
		professionalID uint,
	) (*models.Professional, error)

	// -------- Slot lifecycle --------
	GetSlot(
		ctx context.Context,
		slotID uint,
	) (*models.AvailableSlot, error)

	// ReserveSlot marca o slot como indisponível em uma única escrita
	// condicional; retorna erro de negócio quando o slot já foi tomado.
	ReserveSlot(
		ctx context.Context,
		slotID uint,
	) error

	ReleaseSlot(
		ctx context.Context,
		slotID uint,
	) error

	ListAvailableSlots(
		ctx context.Context,
		professionalID uint,
		dayStart time.Time,
		dayEnd time.Time,
	) ([]models.AvailableSlot, error)

	CreateSlots(
		ctx context.Context,
		slots []models.AvailableSlot,
	) (int, error)

	// DeleteAvailableSlot remove fisicamente, mas só enquanto o slot
	// ainda está livre.
	DeleteAvailableSlot(
		ctx context.Context,
		professionalID uint,
		slotID uint,
	) error

	// -------- Appointment --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointmentForCompany(
		ctx context.Context,
		appointmentID uint,
		companyID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	ListAppointmentsForPeriod(
		ctx context.Context,
		companyID uint,
		professionalID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}

package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/agenda-saas/internal/domain/booking"
	"github.com/BruksfildServices01/agenda-saas/internal/httperr"
	"github.com/BruksfildServices01/agenda-saas/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Company
// --------------------------------------------------

func (r *BookingGormRepository) GetCompanyByID(
	ctx context.Context,
	id uint,
) (*models.Company, error) {

	var company models.Company
	if err := r.db.WithContext(ctx).First(&company, id).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	companyID uint,
	serviceID uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", serviceID, companyID).
		First(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *BookingGormRepository) GetProfessional(
	ctx context.Context,
	companyID uint,
	professionalID uint,
) (*models.Professional, error) {

	var professional models.Professional
	if err := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", professionalID, companyID).
		First(&professional).Error; err != nil {
		return nil, err
	}
	return &professional, nil
}

// --------------------------------------------------
// Slot lifecycle
// --------------------------------------------------

func (r *BookingGormRepository) GetSlot(
	ctx context.Context,
	slotID uint,
) (*models.AvailableSlot, error) {

	var slot models.AvailableSlot
	if err := r.db.WithContext(ctx).First(&slot, slotID).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

// ReserveSlot troca is_available em uma única escrita condicional.
// Zero linhas afetadas = outra reserva chegou primeiro.
func (r *BookingGormRepository) ReserveSlot(
	ctx context.Context,
	slotID uint,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.AvailableSlot{}).
		Where("id = ? AND is_available = ?", slotID, true).
		Update("is_available", false)

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("slot_unavailable")
	}

	return nil
}

func (r *BookingGormRepository) ReleaseSlot(
	ctx context.Context,
	slotID uint,
) error {

	return r.db.WithContext(ctx).
		Model(&models.AvailableSlot{}).
		Where("id = ?", slotID).
		Update("is_available", true).Error
}

func (r *BookingGormRepository) ListAvailableSlots(
	ctx context.Context,
	professionalID uint,
	dayStart time.Time,
	dayEnd time.Time,
) ([]models.AvailableSlot, error) {

	var slots []models.AvailableSlot
	if err := r.db.WithContext(ctx).
		Where(
			"professional_id = ? AND is_available = ? AND start_time >= ? AND start_time < ?",
			professionalID, true, dayStart, dayEnd,
		).
		Order("start_time ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}

	return slots, nil
}

func (r *BookingGormRepository) CreateSlots(
	ctx context.Context,
	slots []models.AvailableSlot,
) (int, error) {

	if len(slots) == 0 {
		return 0, nil
	}

	res := r.db.WithContext(ctx).Create(&slots)
	if res.Error != nil {
		return 0, res.Error
	}

	return int(res.RowsAffected), nil
}

func (r *BookingGormRepository) DeleteAvailableSlot(
	ctx context.Context,
	professionalID uint,
	slotID uint,
) error {

	res := r.db.WithContext(ctx).
		Where("id = ? AND professional_id = ? AND is_available = ?", slotID, professionalID, true).
		Delete(&models.AvailableSlot{})

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("slot_not_deletable")
	}

	return nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *BookingGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *BookingGormRepository) GetAppointmentForCompany(
	ctx context.Context,
	appointmentID uint,
	companyID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", appointmentID, companyID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *BookingGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *BookingGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	companyID uint,
	professionalID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	// o filtro por horário vive no slot; juntamos pelo slot_id
	q := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Professional").
		Preload("Slot").
		Joins("JOIN available_slots ON available_slots.id = appointments.slot_id").
		Where(
			"appointments.company_id = ? AND available_slots.start_time >= ? AND available_slots.start_time < ?",
			companyID, start, end,
		)

	if professionalID != 0 {
		q = q.Where("appointments.professional_id = ?", professionalID)
	}

	var apps []models.Appointment
	if err := q.
		Order("available_slots.start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)

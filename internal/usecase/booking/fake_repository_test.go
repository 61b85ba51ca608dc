package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/agenda-saas/internal/audit"
	"github.com/BruksfildServices01/agenda-saas/internal/httperr"
	"github.com/BruksfildServices01/agenda-saas/internal/models"
	"github.com/BruksfildServices01/agenda-saas/internal/webhooks"
)

var errSlotUnavailable = httperr.ErrBusiness("slot_unavailable")

// fakeRepository cobre o contrato inteiro com comportamento em memória
// e ganchos por método para forçar falhas pontuais.
type fakeRepository struct {
	company      *models.Company
	professional *models.Professional
	service      *models.Service
	slot         *models.AvailableSlot
	appointment  *models.Appointment

	reserveCalls int
	releaseCalls int

	failCreateAppointment bool
	failRelease           bool

	created []models.AvailableSlot
}

func (f *fakeRepository) GetCompanyByID(_ context.Context, id uint) (*models.Company, error) {
	if f.company == nil || f.company.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return f.company, nil
}

func (f *fakeRepository) GetService(_ context.Context, companyID, serviceID uint) (*models.Service, error) {
	if f.service == nil || f.service.ID != serviceID || f.service.CompanyID != companyID {
		return nil, gorm.ErrRecordNotFound
	}
	return f.service, nil
}

func (f *fakeRepository) GetProfessional(_ context.Context, companyID, professionalID uint) (*models.Professional, error) {
	if f.professional == nil || f.professional.ID != professionalID || f.professional.CompanyID != companyID {
		return nil, gorm.ErrRecordNotFound
	}
	return f.professional, nil
}

func (f *fakeRepository) GetSlot(_ context.Context, slotID uint) (*models.AvailableSlot, error) {
	if f.slot == nil || f.slot.ID != slotID {
		return nil, gorm.ErrRecordNotFound
	}
	return f.slot, nil
}

func (f *fakeRepository) ReserveSlot(_ context.Context, slotID uint) error {
	f.reserveCalls++
	if f.slot == nil || f.slot.ID != slotID || !f.slot.IsAvailable {
		return errSlotUnavailable
	}
	f.slot.IsAvailable = false
	return nil
}

func (f *fakeRepository) ReleaseSlot(_ context.Context, slotID uint) error {
	f.releaseCalls++
	if f.failRelease {
		return errors.New("release failed")
	}
	if f.slot != nil && f.slot.ID == slotID {
		f.slot.IsAvailable = true
	}
	return nil
}

func (f *fakeRepository) ListAvailableSlots(_ context.Context, _ uint, _, _ time.Time) ([]models.AvailableSlot, error) {
	if f.slot == nil {
		return nil, nil
	}
	return []models.AvailableSlot{*f.slot}, nil
}

func (f *fakeRepository) CreateSlots(_ context.Context, slots []models.AvailableSlot) (int, error) {
	f.created = append(f.created, slots...)
	return len(slots), nil
}

func (f *fakeRepository) DeleteAvailableSlot(_ context.Context, _, _ uint) error {
	return nil
}

func (f *fakeRepository) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	if f.failCreateAppointment {
		return errors.New("insert failed")
	}
	ap.ID = 1
	f.appointment = ap
	return nil
}

func (f *fakeRepository) GetAppointmentForCompany(_ context.Context, appointmentID, companyID uint) (*models.Appointment, error) {
	if f.appointment == nil || f.appointment.ID != appointmentID || f.appointment.CompanyID != companyID {
		return nil, gorm.ErrRecordNotFound
	}
	return f.appointment, nil
}

func (f *fakeRepository) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	f.appointment = ap
	return nil
}

func (f *fakeRepository) ListAppointmentsForPeriod(_ context.Context, _, _ uint, _, _ time.Time) ([]models.Appointment, error) {
	if f.appointment == nil {
		return nil, nil
	}
	return []models.Appointment{*f.appointment}, nil
}

// dispatchers reais apontando para um sqlite vazio: os workers rodam,
// não acham configuração nenhuma e não interferem nos testes.
func testDispatchers(t *testing.T) (*audit.Dispatcher, *webhooks.Dispatcher) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.AuditLog{}, &models.WebhookConfiguration{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return audit.NewDispatcher(audit.New(db)), webhooks.NewDispatcher(db, webhooks.NewSender())
}

func baseFakeRepo() *fakeRepository {
	return &fakeRepository{
		company: &models.Company{
			ID:       1,
			Name:     "Studio A",
			Slug:     "studio-a",
			IsActive: true,
			Timezone: "America/Sao_Paulo",
		},
		professional: &models.Professional{
			ID:        2,
			CompanyID: 1,
			Name:      "Ana",
			Active:    true,
		},
		service: &models.Service{
			ID:        3,
			CompanyID: 1,
			Name:      "Corte",
			Active:    true,
		},
		slot: &models.AvailableSlot{
			ID:             4,
			ProfessionalID: 2,
			StartTime:      time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
			EndTime:        time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC),
			IsAvailable:    true,
		},
	}
}

package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/agenda-saas/internal/domain/booking"
	"github.com/BruksfildServices01/agenda-saas/internal/httperr"
)

func newCreateUC(t *testing.T, repo *fakeRepository) *CreateAppointment {
	t.Helper()
	auditD, hooksD := testDispatchers(t)
	return NewCreateAppointment(repo, auditD, hooksD)
}

func baseCreateInput() CreateAppointmentInput {
	return CreateAppointmentInput{
		CompanyID:      1,
		ProfessionalID: 2,
		ServiceID:      3,
		SlotID:         4,
		ClientName:     "Cliente",
		ClientPhone:    "11999999999",
	}
}

func TestCreateAppointment_ReservesSlotAndConfirms(t *testing.T) {
	repo := baseFakeRepo()
	uc := newCreateUC(t, repo)

	ap, err := uc.Execute(context.Background(), baseCreateInput())
	require.NoError(t, err)

	require.Equal(t, string(domain.StatusConfirmed), ap.Status)
	require.Equal(t, uint(4), ap.SlotID)
	require.False(t, repo.slot.IsAvailable, "slot deveria ficar reservado")
	require.Equal(t, 1, repo.reserveCalls)
	require.Zero(t, repo.releaseCalls)
}

func TestCreateAppointment_SlotAlreadyTaken(t *testing.T) {
	repo := baseFakeRepo()
	repo.slot.IsAvailable = false
	uc := newCreateUC(t, repo)

	_, err := uc.Execute(context.Background(), baseCreateInput())
	require.True(t, httperr.IsBusiness(err, "slot_unavailable"), "got %v", err)
	require.Nil(t, repo.appointment)
}

func TestCreateAppointment_InsertFailureReleasesSlot(t *testing.T) {
	repo := baseFakeRepo()
	repo.failCreateAppointment = true
	uc := newCreateUC(t, repo)

	_, err := uc.Execute(context.Background(), baseCreateInput())
	require.Error(t, err)

	// compensação: o slot volta para a agenda
	require.Equal(t, 1, repo.releaseCalls)
	require.True(t, repo.slot.IsAvailable)
}

func TestCreateAppointment_InactiveProfessional(t *testing.T) {
	repo := baseFakeRepo()
	repo.professional.Active = false
	uc := newCreateUC(t, repo)

	_, err := uc.Execute(context.Background(), baseCreateInput())
	require.True(t, httperr.IsBusiness(err, "professional_not_found"), "got %v", err)
	require.Zero(t, repo.reserveCalls)
}

func TestCreateAppointment_InactiveService(t *testing.T) {
	repo := baseFakeRepo()
	repo.service.Active = false
	uc := newCreateUC(t, repo)

	_, err := uc.Execute(context.Background(), baseCreateInput())
	require.True(t, httperr.IsBusiness(err, "service_not_found"), "got %v", err)
}

func TestCreateAppointment_SlotFromAnotherProfessional(t *testing.T) {
	repo := baseFakeRepo()
	repo.slot.ProfessionalID = 99
	uc := newCreateUC(t, repo)

	_, err := uc.Execute(context.Background(), baseCreateInput())
	require.True(t, httperr.IsBusiness(err, "slot_not_found"), "got %v", err)
	require.Zero(t, repo.reserveCalls)
}

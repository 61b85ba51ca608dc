package booking

import (
	"context"

	"github.com/BruksfildServices01/agenda-saas/internal/audit"
	domain "github.com/BruksfildServices01/agenda-saas/internal/domain/booking"
	"github.com/BruksfildServices01/agenda-saas/internal/httperr"
	"github.com/BruksfildServices01/agenda-saas/internal/models"
	"github.com/BruksfildServices01/agenda-saas/internal/timezone"
	"github.com/BruksfildServices01/agenda-saas/internal/webhooks"
)

type UpdateAppointmentStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	hooks *webhooks.Dispatcher
}

func NewUpdateAppointmentStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
	hooks *webhooks.Dispatcher,
) *UpdateAppointmentStatus {
	return &UpdateAppointmentStatus{
		repo:  repo,
		audit: audit,
		hooks: hooks,
	}
}

func (uc *UpdateAppointmentStatus) Execute(
	ctx context.Context,
	companyID uint,
	actorUserID *uint,
	appointmentID uint,
	next domain.Status,
) (*models.Appointment, error) {

	if !domain.ValidStatus(next) {
		return nil, httperr.ErrBusiness("invalid_status")
	}

	company, err := uc.repo.GetCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointmentForCompany(ctx, appointmentID, companyID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	prior := domain.Status(ap.Status)

	now := timezone.NowIn(company.Timezone)
	domain.ApplyStatus(ap, next, now)

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// só a entrada em cancelled devolve o slot; cancelar de novo é no-op
	if domain.ReleasesSlot(prior, next) {
		if err := uc.repo.ReleaseSlot(ctx, ap.SlotID); err != nil {
			return nil, err
		}
	}

	action := "appointment_status_changed"
	eventType := ""
	switch next {
	case domain.StatusCancelled:
		action = "appointment_cancelled"
		eventType = webhooks.EventAppointmentCancelled
	case domain.StatusCompleted:
		action = "appointment_completed"
		eventType = webhooks.EventAppointmentCompleted
	}

	uc.audit.Dispatch(audit.Event{
		CompanyID: companyID,
		UserID:    actorUserID,
		Action:    action,
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	if eventType != "" && prior != next {
		uc.hooks.Dispatch(webhooks.Event{
			CompanyID: companyID,
			EventType: eventType,
			Data:      ap,
		})
	}

	return ap, nil
}

package booking

import (
	"context"
	"log"

	"github.com/BruksfildServices01/agenda-saas/internal/audit"
	domain "github.com/BruksfildServices01/agenda-saas/internal/domain/booking"
	"github.com/BruksfildServices01/agenda-saas/internal/httperr"
	"github.com/BruksfildServices01/agenda-saas/internal/models"
	"github.com/BruksfildServices01/agenda-saas/internal/webhooks"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	CompanyID uint

	ProfessionalID uint
	ServiceID      uint
	SlotID         uint

	ClientName  string
	ClientPhone string

	// nil no fluxo público
	ActorUserID *uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	hooks *webhooks.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	hooks *webhooks.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
		hooks: hooks,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Profissional e serviço do tenant
	// --------------------------------------------------
	professional, err := uc.repo.GetProfessional(ctx, in.CompanyID, in.ProfessionalID)
	if err != nil || !professional.Active {
		return nil, httperr.ErrBusiness("professional_not_found")
	}

	service, err := uc.repo.GetService(ctx, in.CompanyID, in.ServiceID)
	if err != nil || !service.Active {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	// --------------------------------------------------
	// 2️⃣ Slot pertence ao profissional
	// --------------------------------------------------
	slot, err := uc.repo.GetSlot(ctx, in.SlotID)
	if err != nil || slot.ProfessionalID != in.ProfessionalID {
		return nil, httperr.ErrBusiness("slot_not_found")
	}

	// --------------------------------------------------
	// 3️⃣ Reserva condicional do slot (fecha a corrida
	//     do ler-depois-escrever)
	// --------------------------------------------------
	if err := uc.repo.ReserveSlot(ctx, in.SlotID); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4️⃣ Criação do agendamento
	// --------------------------------------------------
	ap := &models.Appointment{
		CompanyID:      in.CompanyID,
		ProfessionalID: in.ProfessionalID,
		ServiceID:      in.ServiceID,
		SlotID:         in.SlotID,
		ClientName:     in.ClientName,
		ClientPhone:    in.ClientPhone,
		Status:         string(domain.InitialStatus()),
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		// compensação best-effort: devolve o slot; se a devolução
		// também falhar, o slot fica preso até intervenção manual
		if relErr := uc.repo.ReleaseSlot(ctx, in.SlotID); relErr != nil {
			log.Printf("slot release after failed appointment insert failed (slot %d): %v", in.SlotID, relErr)
		}
		return nil, err
	}

	// --------------------------------------------------
	// 5️⃣ Auditoria + webhooks
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		CompanyID: in.CompanyID,
		UserID:    in.ActorUserID,
		Action:    "appointment_created",
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	uc.hooks.Dispatch(webhooks.Event{
		CompanyID: in.CompanyID,
		EventType: webhooks.EventAppointmentCreated,
		Data:      ap,
	})

	return ap, nil
}

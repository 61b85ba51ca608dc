package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/agenda-saas/internal/domain/booking"
	"github.com/BruksfildServices01/agenda-saas/internal/dto"
	"github.com/BruksfildServices01/agenda-saas/internal/httperr"
	"github.com/BruksfildServices01/agenda-saas/internal/httpresp"
	"github.com/BruksfildServices01/agenda-saas/internal/middleware"
	"github.com/BruksfildServices01/agenda-saas/internal/timezone"
	ucBooking "github.com/BruksfildServices01/agenda-saas/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	repo     domain.Repository
	createUC *ucBooking.CreateAppointment
	statusUC *ucBooking.UpdateAppointmentStatus
}

func NewAppointmentHandler(
	repo domain.Repository,
	createUC *ucBooking.CreateAppointment,
	statusUC *ucBooking.UpdateAppointmentStatus,
) *AppointmentHandler {
	return &AppointmentHandler{
		repo:     repo,
		createUC: createUC,
		statusUC: statusUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ProfessionalID uint   `json:"professional_id" binding:"required"`
	ServiceID      uint   `json:"service_id" binding:"required"`
	SlotID         uint   `json:"slot_id" binding:"required"`
	ClientName     string `json:"client_name" binding:"required"`
	ClientPhone    string `json:"client_phone" binding:"required"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.createUC.Execute(
		c.Request.Context(),
		ucBooking.CreateAppointmentInput{
			CompanyID:      companyID,
			ProfessionalID: req.ProfessionalID,
			ServiceID:      req.ServiceID,
			SlotID:         req.SlotID,
			ClientName:     req.ClientName,
			ClientPhone:    req.ClientPhone,
			ActorUserID:    &userID,
		},
	)
	if err != nil {
		mapCreateAppointmentErrors(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

func mapCreateAppointmentErrors(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "professional_not_found"):
		httperr.BadRequest(c, "professional_not_found", "Profissional não encontrado.")
	case httperr.IsBusiness(err, "service_not_found"):
		httperr.BadRequest(c, "service_not_found", "Serviço não encontrado.")
	case httperr.IsBusiness(err, "slot_not_found"):
		httperr.BadRequest(c, "slot_not_found", "Horário não encontrado.")
	case httperr.IsBusiness(err, "slot_unavailable"):
		httperr.Conflict(c, "slot_unavailable", "Horário já foi reservado.")
	default:
		httperr.Internal(c, "failed_to_create_appointment", "Erro ao criar agendamento.")
	}
}

// ======================================================
// LIST BY DATE
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	var professionalID uint64
	if s := c.Query("professional_id"); s != "" {
		var err error
		professionalID, err = strconv.ParseUint(s, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_professional_id", "Profissional inválido.")
			return
		}
	}

	company, err := h.repo.GetCompanyByID(c.Request.Context(), companyID)
	if err != nil {
		httperr.Internal(c, "company_not_found", "Empresa não encontrada.")
		return
	}

	loc := timezone.Location(company.Timezone)
	date, err := time.ParseInLocation("2006-01-02", dateStr, loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1)

	aps, err := h.repo.ListAppointmentsForPeriod(
		c.Request.Context(),
		companyID,
		uint(professionalID),
		start,
		end,
	)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	out := make([]dto.AppointmentListDTO, 0, len(aps))
	for _, ap := range aps {
		out = append(out, dto.AppointmentListDTO{
			ID:               ap.ID,
			StartTime:        ap.Slot.StartTime,
			EndTime:          ap.Slot.EndTime,
			Status:           ap.Status,
			ClientName:       ap.ClientName,
			ClientPhone:      ap.ClientPhone,
			ServiceName:      ap.Service.Name,
			ProfessionalName: ap.Professional.Name,
		})
	}

	httpresp.List(c, out)
}

// ======================================================
// UPDATE STATUS (cancelled libera o slot)
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "Agendamento inválido.")
		return
	}

	var req UpdateAppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	h.applyStatus(c, companyID, userID, uint(id), domain.Status(req.Status))
}

// Atalhos no estilo das rotas antigas.

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "Agendamento inválido.")
		return
	}

	h.applyStatus(c, companyID, userID, uint(id), domain.StatusCancelled)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "Agendamento inválido.")
		return
	}

	h.applyStatus(c, companyID, userID, uint(id), domain.StatusCompleted)
}

func (h *AppointmentHandler) applyStatus(
	c *gin.Context,
	companyID uint,
	userID uint,
	appointmentID uint,
	next domain.Status,
) {
	ap, err := h.statusUC.Execute(
		c.Request.Context(),
		companyID,
		&userID,
		appointmentID,
		next,
	)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "invalid_status"):
			httperr.BadRequest(c, "invalid_status", "Status inválido.")
		case httperr.IsBusiness(err, "appointment_not_found"):
			httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		default:
			httperr.Internal(c, "failed_to_update_appointment", "Erro ao atualizar agendamento.")
		}
		return
	}

	c.JSON(http.StatusOK, ap)
}

package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/agenda-saas/internal/domain/booking"
	"github.com/BruksfildServices01/agenda-saas/internal/httperr"
	"github.com/BruksfildServices01/agenda-saas/internal/httpresp"
	"github.com/BruksfildServices01/agenda-saas/internal/middleware"
	"github.com/BruksfildServices01/agenda-saas/internal/models"
	"github.com/BruksfildServices01/agenda-saas/internal/timezone"
	ucBooking "github.com/BruksfildServices01/agenda-saas/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type SlotHandler struct {
	db     *gorm.DB
	repo   domain.Repository
	listUC *ucBooking.ListAvailableSlots
	bulkUC *ucBooking.BulkGenerateSlots
}

func NewSlotHandler(
	db *gorm.DB,
	repo domain.Repository,
	listUC *ucBooking.ListAvailableSlots,
	bulkUC *ucBooking.BulkGenerateSlots,
) *SlotHandler {
	return &SlotHandler{
		db:     db,
		repo:   repo,
		listUC: listUC,
		bulkUC: bulkUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateSlotRequest struct {
	ProfessionalID uint   `json:"professional_id" binding:"required"`
	Date           string `json:"date" binding:"required"`       // YYYY-MM-DD
	StartTime      string `json:"start_time" binding:"required"` // HH:mm
	EndTime        string `json:"end_time" binding:"required"`   // HH:mm
}

type BulkCreateSlotsRequest struct {
	ProfessionalID uint               `json:"professional_id" binding:"required"`
	StartDate      string             `json:"start_date" binding:"required"`
	EndDate        string             `json:"end_date" binding:"required"`
	Weekdays       []int              `json:"weekdays" binding:"required"`
	TimeRanges     []domain.TimeRange `json:"time_ranges" binding:"required"`
}

// ======================================================
// LIST (dia do profissional)
// ======================================================

func (h *SlotHandler) List(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	professionalIDStr := c.Query("professional_id")
	dateStr := c.Query("date")

	if professionalIDStr == "" || dateStr == "" {
		httperr.BadRequest(c, "missing_params", "Profissional e data obrigatórios.")
		return
	}

	professionalID, err := strconv.ParseUint(professionalIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_professional_id", "Profissional inválido.")
		return
	}

	slots, err := h.listUC.Execute(
		c.Request.Context(),
		companyID,
		uint(professionalID),
		dateStr,
	)
	if err != nil {
		if httperr.IsBusiness(err, "professional_not_found") {
			httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
			return
		}
		if httperr.IsBusiness(err, "invalid_date") {
			httperr.BadRequest(c, "invalid_date", "Data inválida.")
			return
		}
		httperr.Internal(c, "failed_to_list_slots", "Erro ao listar horários.")
		return
	}

	httpresp.List(c, slots)
}

// ======================================================
// CREATE (slot avulso)
// ======================================================

func (h *SlotHandler) Create(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	var req CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var professional models.Professional
	if err := h.db.
		Where("id = ? AND company_id = ?", req.ProfessionalID, companyID).
		First(&professional).Error; err != nil {

		httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
		return
	}

	var company models.Company
	if err := h.db.First(&company, companyID).Error; err != nil {
		httperr.Internal(c, "company_not_found", "Empresa não encontrada.")
		return
	}
	loc := timezone.Location(company.Timezone)

	start, err := time.ParseInLocation("2006-01-02 15:04", req.Date+" "+req.StartTime, loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
		return
	}

	end, err := time.ParseInLocation("2006-01-02 15:04", req.Date+" "+req.EndTime, loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
		return
	}

	if !end.After(start) {
		httperr.BadRequest(c, "invalid_time_range", "Horário final deve ser depois do inicial.")
		return
	}

	slot := models.AvailableSlot{
		ProfessionalID: professional.ID,
		StartTime:      start,
		EndTime:        end,
		IsAvailable:    true,
	}

	if err := h.db.Create(&slot).Error; err != nil {
		httperr.Internal(c, "failed_to_create_slot", "Erro ao criar horário.")
		return
	}

	c.JSON(http.StatusCreated, slot)
}

// ======================================================
// BULK CREATE (grade de horários)
// ======================================================

func (h *SlotHandler) BulkCreate(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	var req BulkCreateSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	count, err := h.bulkUC.Execute(
		c.Request.Context(),
		ucBooking.BulkGenerateSlotsInput{
			CompanyID:      companyID,
			ProfessionalID: req.ProfessionalID,
			StartDate:      req.StartDate,
			EndDate:        req.EndDate,
			Weekdays:       req.Weekdays,
			Ranges:         req.TimeRanges,
		},
	)
	if err != nil {
		if httperr.IsBusiness(err, "professional_not_found") {
			httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
			return
		}
		if be, ok := httperr.AsBusiness(err); ok {
			httperr.BadRequest(c, be.Code, "Parâmetros de geração inválidos.")
			return
		}
		httperr.Internal(c, "failed_to_generate_slots", "Erro ao gerar horários.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"created": count})
}

// ======================================================
// DELETE (só enquanto disponível)
// ======================================================

func (h *SlotHandler) Delete(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	professionalIDStr := c.Query("professional_id")
	professionalID, err := strconv.ParseUint(professionalIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_professional_id", "Profissional inválido.")
		return
	}

	var professional models.Professional
	if err := h.db.
		Where("id = ? AND company_id = ?", professionalID, companyID).
		First(&professional).Error; err != nil {

		httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
		return
	}

	slotID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_slot_id", "Horário inválido.")
		return
	}

	if err := h.repo.DeleteAvailableSlot(
		c.Request.Context(),
		uint(professionalID),
		uint(slotID),
	); err != nil {
		if httperr.IsBusiness(err, "slot_not_deletable") {
			httperr.Conflict(c, "slot_not_deletable", "Horário reservado ou inexistente não pode ser removido.")
			return
		}
		httperr.Internal(c, "failed_to_delete_slot", "Erro ao remover horário.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/agenda-saas/internal/domain/booking"
	"github.com/BruksfildServices01/agenda-saas/internal/httperr"
	"github.com/BruksfildServices01/agenda-saas/internal/httpresp"
	"github.com/BruksfildServices01/agenda-saas/internal/models"
	"github.com/BruksfildServices01/agenda-saas/internal/timezone"
	ucBooking "github.com/BruksfildServices01/agenda-saas/internal/usecase/booking"
)

// ======================================================
// HANDLER (fluxo do cliente final, sem autenticação)
// ======================================================

type PublicHandler struct {
	db       *gorm.DB
	repo     domain.Repository
	listUC   *ucBooking.ListAvailableSlots
	createUC *ucBooking.CreateAppointment
}

func NewPublicHandler(
	db *gorm.DB,
	repo domain.Repository,
	listUC *ucBooking.ListAvailableSlots,
	createUC *ucBooking.CreateAppointment,
) *PublicHandler {
	return &PublicHandler{
		db:       db,
		repo:     repo,
		listUC:   listUC,
		createUC: createUC,
	}
}

// resolveCompany carrega a empresa pelo slug e barra a vitrine
// de empresas inativas ou com plano vencido.
func (h *PublicHandler) resolveCompany(c *gin.Context) (*models.Company, bool) {
	slug := c.Param("slug")

	var company models.Company
	if err := h.db.Where("slug = ?", slug).First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "company_not_found", "Empresa não encontrada.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_load_company", "Erro ao carregar empresa.")
		return nil, false
	}

	if !company.IsEffectivelyActive(timezone.NowIn(company.Timezone)) {
		httperr.NotFound(c, "company_not_found", "Empresa não encontrada.")
		return nil, false
	}

	return &company, true
}

// ======================================================
// VITRINE
// ======================================================

func (h *PublicHandler) GetCompany(c *gin.Context) {
	company, ok := h.resolveCompany(c)
	if !ok {
		return
	}

	// só o que a vitrine precisa; plano e flags ficam de fora
	c.JSON(http.StatusOK, gin.H{
		"name":            company.Name,
		"slug":            company.Slug,
		"phone":           company.Phone,
		"logo_url":        company.LogoURL,
		"primary_color":   company.PrimaryColor,
		"secondary_color": company.SecondaryColor,
		"timezone":        company.Timezone,
	})
}

func (h *PublicHandler) ListProfessionals(c *gin.Context) {
	company, ok := h.resolveCompany(c)
	if !ok {
		return
	}

	var professionals []models.Professional
	if err := h.db.
		Where("company_id = ? AND active = true", company.ID).
		Order("name ASC").
		Find(&professionals).Error; err != nil {
		httperr.Internal(c, "failed_to_list_professionals", "Erro ao listar profissionais.")
		return
	}

	httpresp.List(c, professionals)
}

func (h *PublicHandler) ListServices(c *gin.Context) {
	company, ok := h.resolveCompany(c)
	if !ok {
		return
	}

	var services []models.Service
	if err := h.db.
		Where("company_id = ? AND active = true", company.ID).
		Order("name ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	httpresp.List(c, services)
}

// ListProfessionalServices devolve os serviços ativos oferecidos
// por um profissional ativo da empresa.
func (h *PublicHandler) ListProfessionalServices(c *gin.Context) {
	company, ok := h.resolveCompany(c)
	if !ok {
		return
	}

	professionalID, err := strconv.ParseUint(c.Param("professionalId"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_professional_id", "Profissional inválido.")
		return
	}

	var professional models.Professional
	if err := h.db.
		Where("id = ? AND company_id = ? AND active = true", professionalID, company.ID).
		First(&professional).Error; err != nil {
		httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
		return
	}

	var services []models.Service
	if err := h.db.
		Joins("JOIN professional_services ps ON ps.service_id = services.id").
		Where("ps.professional_id = ? AND services.active = true", professional.ID).
		Order("services.name ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	httpresp.List(c, services)
}

// ======================================================
// SLOTS LIVRES
// ======================================================

func (h *PublicHandler) ListAvailableSlots(c *gin.Context) {
	company, ok := h.resolveCompany(c)
	if !ok {
		return
	}

	professionalID, err := strconv.ParseUint(c.Query("professional_id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_professional_id", "Profissional inválido.")
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	slots, err := h.listUC.Execute(c.Request.Context(), company.ID, uint(professionalID), dateStr)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "professional_not_found"):
			httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
		case httperr.IsBusiness(err, "invalid_date"):
			httperr.BadRequest(c, "invalid_date", "Data inválida.")
		default:
			httperr.Internal(c, "failed_to_list_slots", "Erro ao listar horários.")
		}
		return
	}

	httpresp.List(c, slots)
}

// ======================================================
// AGENDAMENTO
// ======================================================

type PublicCreateAppointmentRequest struct {
	ProfessionalID uint   `json:"professional_id" binding:"required"`
	ServiceID      uint   `json:"service_id" binding:"required"`
	SlotID         uint   `json:"slot_id" binding:"required"`
	ClientName     string `json:"client_name" binding:"required"`
	ClientPhone    string `json:"client_phone" binding:"required"`
}

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	company, ok := h.resolveCompany(c)
	if !ok {
		return
	}

	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.createUC.Execute(
		c.Request.Context(),
		ucBooking.CreateAppointmentInput{
			CompanyID:      company.ID,
			ProfessionalID: req.ProfessionalID,
			ServiceID:      req.ServiceID,
			SlotID:         req.SlotID,
			ClientName:     req.ClientName,
			ClientPhone:    req.ClientPhone,
			ActorUserID:    nil,
		},
	)
	if err != nil {
		mapCreateAppointmentErrors(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":           ap.ID,
		"status":       ap.Status,
		"client_name":  ap.ClientName,
		"client_phone": ap.ClientPhone,
		"slot_id":      ap.SlotID,
	})
}

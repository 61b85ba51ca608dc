package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/agenda-saas/internal/httperr"
	"github.com/BruksfildServices01/agenda-saas/internal/httpresp"
	"github.com/BruksfildServices01/agenda-saas/internal/middleware"
	"github.com/BruksfildServices01/agenda-saas/internal/models"
	"github.com/BruksfildServices01/agenda-saas/internal/payments"
	"github.com/BruksfildServices01/agenda-saas/internal/timezone"
	"github.com/BruksfildServices01/agenda-saas/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type CompanyHandler struct {
	db       *gorm.DB
	checkout *payments.PlanCheckout
}

func NewCompanyHandler(db *gorm.DB, checkout *payments.PlanCheckout) *CompanyHandler {
	return &CompanyHandler{db: db, checkout: checkout}
}

// ======================================================
// REQUESTS
// ======================================================

type UpdateCompanyRequest struct {
	Name           *string `json:"name,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	LogoURL        *string `json:"logo_url,omitempty"`
	PrimaryColor   *string `json:"primary_color,omitempty"`
	SecondaryColor *string `json:"secondary_color,omitempty"`
	Timezone       *string `json:"timezone,omitempty"`
}

type CreateCompanyRequest struct {
	Name      string  `json:"name" binding:"required"`
	Slug      string  `json:"slug" binding:"required"`
	Phone     string  `json:"phone"`
	PlanType  string  `json:"plan_type"`
	PlanValue float64 `json:"plan_value"`
	Timezone  string  `json:"timezone"`
}

type SuperadminUpdateCompanyRequest struct {
	Name           *string  `json:"name,omitempty"`
	Phone          *string  `json:"phone,omitempty"`
	PlanType       *string  `json:"plan_type,omitempty"`
	PlanValue      *float64 `json:"plan_value,omitempty"`
	PlanExpiryDate *string  `json:"plan_expiry_date,omitempty"` // YYYY-MM-DD, "" limpa
	IsActive       *bool    `json:"is_active,omitempty"`
}

// ======================================================
// EMPRESA DO TENANT (/me/company)
// ======================================================

func (h *CompanyHandler) GetMeCompany(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	var company models.Company
	if err := h.db.First(&company, companyID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "company_not_found", "Empresa não encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_company", "Erro ao buscar dados da empresa.")
		return
	}

	c.JSON(http.StatusOK, company)
}

func (h *CompanyHandler) UpdateMeCompany(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	var company models.Company
	if err := h.db.First(&company, companyID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "company_not_found", "Empresa não encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_company", "Erro ao buscar dados da empresa.")
		return
	}

	var req UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.Phone != nil {
		company.Phone = *req.Phone
	}
	if req.LogoURL != nil {
		company.LogoURL = *req.LogoURL
	}
	if req.PrimaryColor != nil {
		if !validators.IsHexColor(*req.PrimaryColor) {
			httperr.BadRequest(c, "invalid_color", "Cor primária inválida.")
			return
		}
		company.PrimaryColor = *req.PrimaryColor
	}
	if req.SecondaryColor != nil {
		if !validators.IsHexColor(*req.SecondaryColor) {
			httperr.BadRequest(c, "invalid_color", "Cor secundária inválida.")
			return
		}
		company.SecondaryColor = *req.SecondaryColor
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Fuso horário inválido.")
			return
		}
		company.Timezone = *req.Timezone
	}

	if err := h.db.Save(&company).Error; err != nil {
		httperr.Internal(c, "failed_to_update_company", "Erro ao salvar as configurações da empresa.")
		return
	}

	c.JSON(http.StatusOK, company)
}

// ======================================================
// CHECKOUT DE PLANO (Mercado Pago)
// ======================================================

func (h *CompanyHandler) PlanCheckout(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	if h.checkout == nil {
		httperr.BadRequest(c, "checkout_disabled", "Checkout de plano não está configurado.")
		return
	}

	var company models.Company
	if err := h.db.First(&company, companyID).Error; err != nil {
		httperr.NotFound(c, "company_not_found", "Empresa não encontrada.")
		return
	}

	initPoint, err := h.checkout.CreatePreference(c.Request.Context(), &company)
	if err != nil {
		httperr.Internal(c, "checkout_failed", "Erro ao criar checkout do plano.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"init_point": initPoint})
}

// ======================================================
// GESTÃO DE EMPRESAS (SUPERADMIN)
// ======================================================

func (h *CompanyHandler) List(c *gin.Context) {
	activeStr := strings.TrimSpace(c.Query("active"))
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Model(&models.Company{})

	if activeStr == "true" {
		q = q.Where("is_active = ?", true)
	} else if activeStr == "false" {
		q = q.Where("is_active = ?", false)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(slug) LIKE ?", like, like)
	}

	var companies []models.Company
	if err := q.Order("id ASC").Find(&companies).Error; err != nil {
		httperr.Internal(c, "failed_to_list_companies", "Erro ao listar empresas.")
		return
	}

	httpresp.List(c, companies)
}

func (h *CompanyHandler) GetByID(c *gin.Context) {
	id := c.Param("id")

	var company models.Company
	if err := h.db.First(&company, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "company_not_found", "Empresa não encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_company", "Erro ao buscar empresa.")
		return
	}

	c.JSON(http.StatusOK, company)
}

func (h *CompanyHandler) Create(c *gin.Context) {
	var req CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	slug := strings.ToLower(strings.TrimSpace(req.Slug))

	var count int64
	h.db.Model(&models.Company{}).Where("slug = ?", slug).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "slug_already_exists", "Slug já está em uso.")
		return
	}

	if req.Timezone != "" && !timezone.IsValid(req.Timezone) {
		httperr.BadRequest(c, "invalid_timezone", "Fuso horário inválido.")
		return
	}

	planType := req.PlanType
	if planType == "" {
		planType = "basic"
	}

	company := models.Company{
		Name:      req.Name,
		Slug:      slug,
		Phone:     req.Phone,
		PlanType:  planType,
		PlanValue: req.PlanValue,
		IsActive:  true,
		Timezone:  req.Timezone,
	}

	if err := h.db.Create(&company).Error; err != nil {
		httperr.Internal(c, "failed_to_create_company", "Erro ao criar empresa.")
		return
	}

	c.JSON(http.StatusCreated, company)
}

func (h *CompanyHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var company models.Company
	if err := h.db.First(&company, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "company_not_found", "Empresa não encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_company", "Erro ao buscar empresa.")
		return
	}

	var req SuperadminUpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.Phone != nil {
		company.Phone = *req.Phone
	}
	if req.PlanType != nil {
		company.PlanType = *req.PlanType
	}
	if req.PlanValue != nil {
		company.PlanValue = *req.PlanValue
	}
	if req.PlanExpiryDate != nil {
		if *req.PlanExpiryDate == "" {
			company.PlanExpiryDate = nil
		} else {
			expiry, err := time.Parse("2006-01-02", *req.PlanExpiryDate)
			if err != nil {
				httperr.BadRequest(c, "invalid_expiry_date", "Data de expiração inválida.")
				return
			}
			company.PlanExpiryDate = &expiry
		}
	}
	if req.IsActive != nil {
		company.IsActive = *req.IsActive
	}

	if err := h.db.Save(&company).Error; err != nil {
		httperr.Internal(c, "failed_to_update_company", "Erro ao salvar empresa.")
		return
	}

	c.JSON(http.StatusOK, company)
}

package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/agenda-saas/internal/httperr"
	"github.com/BruksfildServices01/agenda-saas/internal/httpresp"
	"github.com/BruksfildServices01/agenda-saas/internal/middleware"
	"github.com/BruksfildServices01/agenda-saas/internal/models"
	"github.com/BruksfildServices01/agenda-saas/internal/webhooks"
)

// ======================================================
// HANDLER
// ======================================================

type WebhookHandler struct {
	db     *gorm.DB
	sender *webhooks.Sender
}

func NewWebhookHandler(db *gorm.DB, sender *webhooks.Sender) *WebhookHandler {
	return &WebhookHandler{db: db, sender: sender}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateWebhookRequest struct {
	URL       string `json:"url" binding:"required"`
	EventType string `json:"event_type" binding:"required"`
}

type UpdateWebhookRequest struct {
	URL       *string `json:"url"`
	EventType *string `json:"event_type"`
	IsActive  *bool   `json:"is_active"`
}

func validWebhookURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func validWebhookEvent(eventType string) bool {
	switch eventType {
	case webhooks.EventAppointmentCreated,
		webhooks.EventAppointmentCancelled,
		webhooks.EventAppointmentCompleted:
		return true
	}
	return false
}

// ======================================================
// CRUD
// ======================================================

func (h *WebhookHandler) List(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	var hooks []models.WebhookConfiguration
	if err := h.db.
		Where("company_id = ?", companyID).
		Order("id ASC").
		Find(&hooks).Error; err != nil {
		httperr.Internal(c, "failed_to_list_webhooks", "Erro ao listar webhooks.")
		return
	}

	httpresp.List(c, hooks)
}

func (h *WebhookHandler) Create(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	var req CreateWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if !validWebhookURL(req.URL) {
		httperr.BadRequest(c, "invalid_url", "URL inválida.")
		return
	}

	if !validWebhookEvent(req.EventType) {
		httperr.BadRequest(c, "invalid_event_type", "Tipo de evento inválido.")
		return
	}

	hook := models.WebhookConfiguration{
		CompanyID: companyID,
		URL:       req.URL,
		EventType: req.EventType,
		IsActive:  true,
	}

	if err := h.db.Create(&hook).Error; err != nil {
		httperr.Internal(c, "failed_to_create_webhook", "Erro ao criar webhook.")
		return
	}

	c.JSON(http.StatusCreated, hook)
}

func (h *WebhookHandler) Update(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_webhook_id", "Webhook inválido.")
		return
	}

	var req UpdateWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var hook models.WebhookConfiguration
	if err := h.db.
		Where("id = ? AND company_id = ?", id, companyID).
		First(&hook).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "webhook_not_found", "Webhook não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_update_webhook", "Erro ao atualizar webhook.")
		return
	}

	if req.URL != nil {
		if !validWebhookURL(*req.URL) {
			httperr.BadRequest(c, "invalid_url", "URL inválida.")
			return
		}
		hook.URL = *req.URL
	}

	if req.EventType != nil {
		if !validWebhookEvent(*req.EventType) {
			httperr.BadRequest(c, "invalid_event_type", "Tipo de evento inválido.")
			return
		}
		hook.EventType = *req.EventType
	}

	if req.IsActive != nil {
		hook.IsActive = *req.IsActive
	}

	if err := h.db.Save(&hook).Error; err != nil {
		httperr.Internal(c, "failed_to_update_webhook", "Erro ao atualizar webhook.")
		return
	}

	c.JSON(http.StatusOK, hook)
}

func (h *WebhookHandler) Delete(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_webhook_id", "Webhook inválido.")
		return
	}

	res := h.db.
		Where("id = ? AND company_id = ?", id, companyID).
		Delete(&models.WebhookConfiguration{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_webhook", "Erro ao excluir webhook.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "webhook_not_found", "Webhook não encontrado.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Webhook excluído com sucesso."})
}

// ======================================================
// TEST FIRE (entrega síncrona de um payload de teste)
// ======================================================

func (h *WebhookHandler) Test(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_webhook_id", "Webhook inválido.")
		return
	}

	var hook models.WebhookConfiguration
	if err := h.db.
		Where("id = ? AND company_id = ?", id, companyID).
		First(&hook).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "webhook_not_found", "Webhook não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_test_webhook", "Erro ao testar webhook.")
		return
	}

	payload := webhooks.Payload{
		EventType: hook.EventType,
		CompanyID: companyID,
		Test:      true,
		CreatedAt: time.Now().UTC(),
	}

	if err := h.sender.Send(c.Request.Context(), hook.URL, payload); err != nil {
		httperr.BadGateway(c, "webhook_delivery_failed", "O endpoint configurado não aceitou a entrega.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Webhook entregue com sucesso."})
}

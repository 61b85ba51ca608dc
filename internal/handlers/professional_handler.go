package handlers

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/agenda-saas/internal/httperr"
	"github.com/BruksfildServices01/agenda-saas/internal/middleware"
	"github.com/BruksfildServices01/agenda-saas/internal/models"
	"github.com/BruksfildServices01/agenda-saas/internal/storage"
)

type ProfessionalHandler struct {
	db     *gorm.DB
	photos storage.PhotoStorage
}

func NewProfessionalHandler(db *gorm.DB, photos storage.PhotoStorage) *ProfessionalHandler {
	return &ProfessionalHandler{db: db, photos: photos}
}

// --------- Requests ---------

type CreateProfessionalRequest struct {
	Name   string `json:"name" binding:"required"`
	Phone  string `json:"phone"`
	Bio    string `json:"bio"`
	UserID *uint  `json:"user_id"`
}

type UpdateProfessionalRequest struct {
	Name   *string `json:"name,omitempty"`
	Phone  *string `json:"phone,omitempty"`
	Bio    *string `json:"bio,omitempty"`
	Active *bool   `json:"active,omitempty"`
	UserID *uint   `json:"user_id,omitempty"`
}

// --------- Handlers ---------

func (h *ProfessionalHandler) List(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	activeStr := strings.TrimSpace(c.Query("active"))
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("company_id = ?", companyID)

	if activeStr == "true" {
		q = q.Where("active = ?", true)
	} else if activeStr == "false" {
		q = q.Where("active = ?", false)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(bio) LIKE ?", like, like)
	}

	var professionals []models.Professional
	if err := q.
		Order("id ASC").
		Find(&professionals).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_professionals"})
		return
	}

	c.JSON(http.StatusOK, professionals)
}

func (h *ProfessionalHandler) GetByID(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)
	id := c.Param("id")

	// fetch-by-id devolve inclusive os desativados (soft delete)
	var professional models.Professional
	if err := h.db.
		Where("id = ? AND company_id = ?", id, companyID).
		First(&professional).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_professional", "Erro ao buscar profissional.")
		return
	}

	c.JSON(http.StatusOK, professional)
}

func (h *ProfessionalHandler) Create(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	var req CreateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	professional := models.Professional{
		CompanyID: companyID,
		Name:      req.Name,
		Phone:     req.Phone,
		Bio:       req.Bio,
		Active:    true,
		UserID:    req.UserID,
	}

	if err := h.db.Create(&professional).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_professional"})
		return
	}

	c.JSON(http.StatusCreated, professional)
}

func (h *ProfessionalHandler) Update(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)
	id := c.Param("id")

	var professional models.Professional
	if err := h.db.
		Where("id = ? AND company_id = ?", id, companyID).
		First(&professional).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_professional", "Erro ao buscar profissional.")
		return
	}

	var req UpdateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		professional.Name = *req.Name
	}
	if req.Phone != nil {
		professional.Phone = *req.Phone
	}
	if req.Bio != nil {
		professional.Bio = *req.Bio
	}
	if req.Active != nil {
		professional.Active = *req.Active
	}
	if req.UserID != nil {
		professional.UserID = req.UserID
	}

	if err := h.db.Save(&professional).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_professional"})
		return
	}

	c.JSON(http.StatusOK, professional)
}

// Delete é soft: só vira a flag, preservando o histórico de agendamentos.
func (h *ProfessionalHandler) Delete(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)
	id := c.Param("id")

	res := h.db.
		Model(&models.Professional{}).
		Where("id = ? AND company_id = ?", id, companyID).
		Update("active", false)

	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_professional"})
		return
	}

	if res.RowsAffected == 0 {
		httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ======================================================
// FOTO (S3 + webp)
// ======================================================

func (h *ProfessionalHandler) UploadPhoto(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)
	id := c.Param("id")

	if h.photos == nil {
		httperr.BadRequest(c, "photo_storage_disabled", "Armazenamento de fotos não está configurado.")
		return
	}

	var professional models.Professional
	if err := h.db.
		Where("id = ? AND company_id = ?", id, companyID).
		First(&professional).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_professional", "Erro ao buscar profissional.")
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "missing_photo", "Arquivo de foto obrigatório.")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httperr.BadRequest(c, "invalid_photo", "Não foi possível ler a foto.")
		return
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		httperr.BadRequest(c, "invalid_photo", "Formato de imagem não suportado (use JPEG ou PNG).")
		return
	}

	url, err := h.photos.UploadProfessionalPhoto(
		c.Request.Context(),
		companyID,
		professional.ID,
		img,
	)
	if err != nil {
		httperr.Internal(c, "photo_upload_failed", "Erro ao enviar a foto.")
		return
	}

	professional.PhotoURL = url
	if err := h.db.Save(&professional).Error; err != nil {
		httperr.Internal(c, "failed_to_update_professional", "Erro ao salvar a foto do profissional.")
		return
	}

	c.JSON(http.StatusOK, professional)
}

// ======================================================
// VÍNCULO PROFISSIONAL ↔ SERVIÇO
// ======================================================

func (h *ProfessionalHandler) AssociateService(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)
	professionalID := c.Param("id")
	serviceID := c.Param("serviceId")

	var professional models.Professional
	if err := h.db.
		Where("id = ? AND company_id = ?", professionalID, companyID).
		First(&professional).Error; err != nil {

		httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
		return
	}

	var service models.Service
	if err := h.db.
		Where("id = ? AND company_id = ?", serviceID, companyID).
		First(&service).Error; err != nil {

		httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
		return
	}

	assoc := models.ProfessionalService{
		ProfessionalID: professional.ID,
		ServiceID:      service.ID,
	}

	if err := h.db.Create(&assoc).Error; err != nil {
		// par já existente = sucesso (associate idempotente)
		if !httperr.IsUniqueViolation(err) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_associate_service"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *ProfessionalHandler) DissociateService(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)
	professionalID := c.Param("id")
	serviceID := c.Param("serviceId")

	var professional models.Professional
	if err := h.db.
		Where("id = ? AND company_id = ?", professionalID, companyID).
		First(&professional).Error; err != nil {

		httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
		return
	}

	// ausência do par não é erro
	if err := h.db.
		Where("professional_id = ? AND service_id = ?", professional.ID, serviceID).
		Delete(&models.ProfessionalService{}).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_dissociate_service"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *ProfessionalHandler) ListServices(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)
	professionalID := c.Param("id")

	var professional models.Professional
	if err := h.db.
		Where("id = ? AND company_id = ?", professionalID, companyID).
		First(&professional).Error; err != nil {

		httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
		return
	}

	var services []models.Service
	if err := h.db.
		Joins("JOIN professional_services ON professional_services.service_id = services.id").
		Where("professional_services.professional_id = ? AND services.active = ?", professional.ID, true).
		Order("services.id ASC").
		Find(&services).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_services"})
		return
	}

	c.JSON(http.StatusOK, services)
}

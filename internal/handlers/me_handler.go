package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/agenda-saas/internal/middleware"
	"github.com/BruksfildServices01/agenda-saas/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userIDVal, exists := c.Get(middleware.ContextUserID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user_not_in_context"})
		return
	}

	userID, ok := userIDVal.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_user_id_type"})
		return
	}

	var user models.User
	if err := h.db.Preload("Company").First(&user, userID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user_not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":           user.ID,
			"name":         user.Name,
			"email":        user.Email,
			"phone":        user.Phone,
			"role":         user.Role,
			"tipo_usuario": user.TipoUsuario,
			"auth_id":      user.AuthID,
			"company_id":   user.CompanyID,
		},
		"company": gin.H{
			"id":               user.Company.ID,
			"name":             user.Company.Name,
			"slug":             user.Company.Slug,
			"phone":            user.Company.Phone,
			"logo_url":         user.Company.LogoURL,
			"primary_color":    user.Company.PrimaryColor,
			"secondary_color":  user.Company.SecondaryColor,
			"plan_type":        user.Company.PlanType,
			"plan_expiry_date": user.Company.PlanExpiryDate,
		},
	})
}

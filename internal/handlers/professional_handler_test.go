package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/agenda-saas/internal/middleware"
	"github.com/BruksfildServices01/agenda-saas/internal/models"
)

// fakeAuth injeta as claims que o AuthMiddleware colocaria no contexto.
func fakeAuth(userID, companyID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
		c.Set(middleware.ContextCompanyID, companyID)
		c.Set(middleware.ContextUserRole, "admin")
		c.Set(middleware.ContextTipoUsuario, "admin")
		c.Next()
	}
}

func newProfessionalTestRouter(t *testing.T) (*gin.Engine, *gorm.DB, models.Company) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Company{},
		&models.Professional{},
		&models.Service{},
		&models.ProfessionalService{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	company := models.Company{Name: "Studio A", Slug: "studio-a", IsActive: true}
	if err := db.Create(&company).Error; err != nil {
		t.Fatalf("seed company: %v", err)
	}

	h := NewProfessionalHandler(db, nil)

	r := gin.New()
	grp := r.Group("/api/me", fakeAuth(1, company.ID))
	grp.GET("/professionals", h.List)
	grp.GET("/professionals/:id", h.GetByID)
	grp.DELETE("/professionals/:id", h.Delete)
	grp.POST("/professionals/:id/services/:serviceId", h.AssociateService)
	grp.DELETE("/professionals/:id/services/:serviceId", h.DissociateService)

	return r, db, company
}

func TestProfessional_SoftDeleteStaysFetchable(t *testing.T) {
	r, db, company := newProfessionalTestRouter(t)

	professional := models.Professional{CompanyID: company.ID, Name: "Ana", Active: true}
	if err := db.Create(&professional).Error; err != nil {
		t.Fatalf("seed professional: %v", err)
	}

	w := httptest.NewRecorder()
	path := fmt.Sprintf("/api/me/professionals/%d", professional.ID)
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, path, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("delete: status = %d, body %s", w.Code, w.Body.String())
	}

	// some da listagem de ativos
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/me/professionals?active=true", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("list: status = %d", w.Code)
	}
	var listed []models.Professional
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("active listing should be empty, got %+v", listed)
	}

	// mas continua acessível por id, com active=false
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("get by id: status = %d", w.Code)
	}
	var got models.Professional
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode professional: %v", err)
	}
	if got.Active {
		t.Fatal("professional should be inactive after delete")
	}
}

func TestProfessional_AssociateServiceIsIdempotent(t *testing.T) {
	r, db, company := newProfessionalTestRouter(t)

	professional := models.Professional{CompanyID: company.ID, Name: "Ana", Active: true}
	if err := db.Create(&professional).Error; err != nil {
		t.Fatalf("seed professional: %v", err)
	}
	service := models.Service{CompanyID: company.ID, Name: "Corte", Active: true}
	if err := db.Create(&service).Error; err != nil {
		t.Fatalf("seed service: %v", err)
	}

	path := fmt.Sprintf("/api/me/professionals/%d/services/%d", professional.ID, service.ID)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("associate call %d: status = %d, body %s", i+1, w.Code, w.Body.String())
		}
	}

	var count int64
	db.Model(&models.ProfessionalService{}).
		Where("professional_id = ? AND service_id = ?", professional.ID, service.ID).
		Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 association row, got %d", count)
	}

	// dissociar duas vezes também não falha
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("dissociate call %d: status = %d", i+1, w.Code)
		}
	}
}

package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/agenda-saas/internal/audit"
	infraRepo "github.com/BruksfildServices01/agenda-saas/internal/infra/repository"
	"github.com/BruksfildServices01/agenda-saas/internal/models"
	ucBooking "github.com/BruksfildServices01/agenda-saas/internal/usecase/booking"
	"github.com/BruksfildServices01/agenda-saas/internal/webhooks"
)

func newPublicTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
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
		&models.AvailableSlot{},
		&models.Appointment{},
		&models.AuditLog{},
		&models.WebhookConfiguration{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	repo := infraRepo.NewBookingGormRepository(db)
	auditD := audit.NewDispatcher(audit.New(db))
	hooksD := webhooks.NewDispatcher(db, webhooks.NewSender())

	listUC := ucBooking.NewListAvailableSlots(repo)
	createUC := ucBooking.NewCreateAppointment(repo, auditD, hooksD)

	public := NewPublicHandler(db, repo, listUC, createUC)

	r := gin.New()
	grp := r.Group("/api/public/:slug")
	grp.GET("", public.GetCompany)
	grp.GET("/professionals", public.ListProfessionals)
	grp.GET("/slots", public.ListAvailableSlots)
	grp.POST("/appointments", public.CreateAppointment)

	return r, db
}

func seedPublicCompany(t *testing.T, db *gorm.DB) (models.Company, models.Professional, models.Service, models.AvailableSlot) {
	t.Helper()

	company := models.Company{Name: "Studio A", Slug: "studio-a", IsActive: true, Timezone: "UTC"}
	if err := db.Create(&company).Error; err != nil {
		t.Fatalf("seed company: %v", err)
	}

	professional := models.Professional{CompanyID: company.ID, Name: "Ana", Active: true}
	if err := db.Create(&professional).Error; err != nil {
		t.Fatalf("seed professional: %v", err)
	}

	service := models.Service{CompanyID: company.ID, Name: "Corte", Active: true, Price: 50, DurationMin: 30}
	if err := db.Create(&service).Error; err != nil {
		t.Fatalf("seed service: %v", err)
	}

	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	slot := models.AvailableSlot{
		ProfessionalID: professional.ID,
		StartTime:      start,
		EndTime:        start.Add(30 * time.Minute),
		IsAvailable:    true,
	}
	if err := db.Create(&slot).Error; err != nil {
		t.Fatalf("seed slot: %v", err)
	}

	return company, professional, service, slot
}

func bookingBody(t *testing.T, professionalID, serviceID, slotID uint) *bytes.Reader {
	t.Helper()
	body, err := json.Marshal(gin.H{
		"professional_id": professionalID,
		"service_id":      serviceID,
		"slot_id":         slotID,
		"client_name":     "Cliente",
		"client_phone":    "11999999999",
	})
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	return bytes.NewReader(body)
}

func TestPublic_UnknownSlugIs404(t *testing.T) {
	r, _ := newPublicTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/public/nao-existe", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestPublic_ExpiredPlanHidesCompany(t *testing.T) {
	r, db := newPublicTestRouter(t)
	company, _, _, _ := seedPublicCompany(t, db)

	past := time.Now().Add(-24 * time.Hour)
	if err := db.Model(&company).Update("plan_expiry_date", past).Error; err != nil {
		t.Fatalf("expire plan: %v", err)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/public/studio-a", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
}

func TestPublic_ListProfessionalsOnlyActive(t *testing.T) {
	r, db := newPublicTestRouter(t)
	company, _, _, _ := seedPublicCompany(t, db)

	inactive := models.Professional{CompanyID: company.ID, Name: "Bia", Active: false}
	if err := db.Create(&inactive).Error; err != nil {
		t.Fatalf("seed inactive: %v", err)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/public/studio-a/professionals", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp struct {
		Data []models.Professional `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].Name != "Ana" {
		t.Fatalf("unexpected professionals: %+v", resp.Data)
	}
}

func TestPublic_DoubleBookingLosesRace(t *testing.T) {
	r, db := newPublicTestRouter(t)
	_, professional, service, slot := seedPublicCompany(t, db)

	url := "/api/public/studio-a/appointments"

	w1 := httptest.NewRecorder()
	req1 := httptest.NewRequest(http.MethodPost, url, bookingBody(t, professional.ID, service.ID, slot.ID))
	req1.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w1, req1)

	if w1.Code != http.StatusCreated {
		t.Fatalf("first booking: status = %d, body %s", w1.Code, w1.Body.String())
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodPost, url, bookingBody(t, professional.ID, service.ID, slot.ID))
	req2.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w2, req2)

	if w2.Code != http.StatusConflict {
		t.Fatalf("second booking: status = %d, body %s", w2.Code, w2.Body.String())
	}

	var count int64
	db.Model(&models.Appointment{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 appointment, got %d", count)
	}

	var got models.AvailableSlot
	if err := db.First(&got, slot.ID).Error; err != nil {
		t.Fatalf("reload slot: %v", err)
	}
	if got.IsAvailable {
		t.Fatal("slot should stay reserved")
	}
}

func TestPublic_SlotsForDay(t *testing.T) {
	r, db := newPublicTestRouter(t)
	_, professional, _, slot := seedPublicCompany(t, db)

	w := httptest.NewRecorder()
	path := fmt.Sprintf("/api/public/studio-a/slots?professional_id=%d&date=2025-06-02", professional.ID)
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data []struct {
			ID          uint   `json:"id"`
			DisplayTime string `json:"display_time"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].ID != slot.ID {
		t.Fatalf("unexpected slots: %+v", resp.Data)
	}
	if resp.Data[0].DisplayTime != "09:00" {
		t.Fatalf("display_time = %q", resp.Data[0].DisplayTime)
	}
}

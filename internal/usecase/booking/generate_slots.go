package booking

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/agenda-saas/internal/domain/booking"
	"github.com/BruksfildServices01/agenda-saas/internal/httperr"
	"github.com/BruksfildServices01/agenda-saas/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type BulkGenerateSlotsInput struct {
	CompanyID      uint
	ProfessionalID uint

	StartDate string // YYYY-MM-DD
	EndDate   string // YYYY-MM-DD

	// 0=domingo .. 6=sábado
	Weekdays []int

	Ranges []domain.TimeRange
}

// ======================================================
// USE CASE
// ======================================================

type BulkGenerateSlots struct {
	repo domain.Repository
}

func NewBulkGenerateSlots(repo domain.Repository) *BulkGenerateSlots {
	return &BulkGenerateSlots{repo: repo}
}

// Execute gera e insere os slots; retorna a quantidade inserida.
// Conjunto vazio (nenhum dia casa com a seleção) devolve 0, não é erro.
func (uc *BulkGenerateSlots) Execute(
	ctx context.Context,
	in BulkGenerateSlotsInput,
) (int, error) {

	professional, err := uc.repo.GetProfessional(ctx, in.CompanyID, in.ProfessionalID)
	if err != nil || !professional.Active {
		return 0, httperr.ErrBusiness("professional_not_found")
	}

	company, err := uc.repo.GetCompanyByID(ctx, in.CompanyID)
	if err != nil {
		return 0, err
	}
	loc := timezone.Location(company.Timezone)

	start, err := time.ParseInLocation("2006-01-02", in.StartDate, loc)
	if err != nil {
		return 0, httperr.ErrBusiness("invalid_date")
	}

	end, err := time.ParseInLocation("2006-01-02", in.EndDate, loc)
	if err != nil {
		return 0, httperr.ErrBusiness("invalid_date")
	}

	if end.Before(start) {
		return 0, httperr.ErrBusiness("invalid_date_range")
	}

	for _, wd := range in.Weekdays {
		if wd < 0 || wd > 6 {
			return 0, httperr.ErrBusiness("invalid_weekday")
		}
	}

	if len(in.Ranges) == 0 {
		return 0, httperr.ErrBusiness("missing_time_ranges")
	}
	for _, r := range in.Ranges {
		if !r.Valid() {
			return 0, httperr.ErrBusiness("invalid_time_range")
		}
	}

	slots := domain.GenerateSlots(
		in.ProfessionalID,
		start,
		end,
		in.Weekdays,
		in.Ranges,
		loc,
	)

	return uc.repo.CreateSlots(ctx, slots)
}

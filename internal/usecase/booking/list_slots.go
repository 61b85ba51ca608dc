package booking

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/agenda-saas/internal/domain/booking"
	"github.com/BruksfildServices01/agenda-saas/internal/dto"
	"github.com/BruksfildServices01/agenda-saas/internal/httperr"
	"github.com/BruksfildServices01/agenda-saas/internal/timezone"
)

type ListAvailableSlots struct {
	repo domain.Repository
}

func NewListAvailableSlots(repo domain.Repository) *ListAvailableSlots {
	return &ListAvailableSlots{repo: repo}
}

// Execute devolve os slots livres do profissional no dia pedido,
// [início do dia, início do dia seguinte), ordenados por start_time,
// já com o horário formatado para exibição no fuso do tenant.
func (uc *ListAvailableSlots) Execute(
	ctx context.Context,
	companyID uint,
	professionalID uint,
	dateStr string,
) ([]dto.SlotListDTO, error) {

	professional, err := uc.repo.GetProfessional(ctx, companyID, professionalID)
	if err != nil || !professional.Active {
		return nil, httperr.ErrBusiness("professional_not_found")
	}

	company, err := uc.repo.GetCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	loc := timezone.Location(company.Timezone)

	date, err := time.ParseInLocation("2006-01-02", dateStr, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	slots, err := uc.repo.ListAvailableSlots(ctx, professionalID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	out := make([]dto.SlotListDTO, 0, len(slots))
	for _, s := range slots {
		out = append(out, dto.SlotListDTO{
			ID:          s.ID,
			StartTime:   s.StartTime,
			EndTime:     s.EndTime,
			DisplayTime: s.StartTime.In(loc).Format("15:04"),
		})
	}

	return out, nil
}

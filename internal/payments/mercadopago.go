package payments

import (
	"context"
	"fmt"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/BruksfildServices01/agenda-saas/internal/models"
)

// PlanCheckout cria preferências de pagamento do Mercado Pago para a
// renovação de plano do tenant. A baixa do pagamento é manual: o
// superadmin atualiza os campos de plano após conciliar.
type PlanCheckout struct {
	prefs preference.Client
}

// NewPlanCheckout retorna nil quando o access token não está configurado.
func NewPlanCheckout(accessToken string) (*PlanCheckout, error) {
	if accessToken == "" {
		return nil, nil
	}

	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, err
	}

	return &PlanCheckout{prefs: preference.NewClient(cfg)}, nil
}

// CreatePreference devolve a URL de checkout (init point) do plano.
func (p *PlanCheckout) CreatePreference(
	ctx context.Context,
	company *models.Company,
) (string, error) {

	if company.PlanValue <= 0 {
		return "", fmt.Errorf("company %d has no plan value", company.ID)
	}

	req := preference.Request{
		ExternalReference: fmt.Sprintf("company-%d-plan-%s", company.ID, company.PlanType),
		Items: []preference.ItemRequest{
			{
				Title:      fmt.Sprintf("Plano %s - %s", company.PlanType, company.Name),
				Quantity:   1,
				UnitPrice:  company.PlanValue,
				CurrencyID: "BRL",
			},
		},
	}

	pref, err := p.prefs.Create(ctx, req)
	if err != nil {
		return "", err
	}

	return pref.InitPoint, nil
}

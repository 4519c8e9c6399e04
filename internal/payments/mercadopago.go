package payments

import (
	"context"
	"fmt"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/agendaflow/salon-scheduler/internal/models"
)

// LinkGenerator cria um link de pagamento para um agendamento. O valor já
// chega com o desconto (pontos de fidelidade etc.) aplicado; este pacote não
// conhece a regra do desconto.
type LinkGenerator interface {
	PaymentLink(ctx context.Context, ap *models.Appointment) (string, error)
}

type MercadoPago struct {
	client preference.Client
}

func NewMercadoPago(accessToken string) (*MercadoPago, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}

	return &MercadoPago{client: preference.NewClient(cfg)}, nil
}

func (m *MercadoPago) PaymentLink(
	ctx context.Context,
	ap *models.Appointment,
) (string, error) {

	total := ap.TotalValue - ap.Discount
	if total < 0 {
		total = 0
	}

	req := preference.Request{
		ExternalReference: fmt.Sprintf("appointment-%d", ap.ID),
		Items: []preference.ItemRequest{
			{
				ID:        fmt.Sprintf("%d", ap.ID),
				Title:     fmt.Sprintf("Agendamento #%d", ap.ID),
				Quantity:  1,
				UnitPrice: total,
			},
		},
	}

	resp, err := m.client.Create(ctx, req)
	if err != nil {
		return "", fmt.Errorf("mercadopago preference: %w", err)
	}

	return resp.InitPoint, nil
}

// Disabled é usado quando não há token configurado.
type Disabled struct{}

func (Disabled) PaymentLink(context.Context, *models.Appointment) (string, error) {
	return "", fmt.Errorf("payments disabled")
}

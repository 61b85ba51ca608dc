package webhooks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Payload é o corpo entregue no endpoint configurado pelo tenant.
type Payload struct {
	DeliveryID string    `json:"delivery_id"`
	EventType  string    `json:"event_type"`
	CompanyID  uint      `json:"company_id"`
	Test       bool      `json:"test,omitempty"`
	Data       any       `json:"data,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type Sender struct {
	client *http.Client
}

func NewSender() *Sender {
	return &Sender{
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

// Send entrega o payload por POST. Sem retry: falha transitória é
// reportada imediatamente a quem chamou.
func (s *Sender) Send(ctx context.Context, url string, p Payload) error {
	if p.DeliveryID == "" {
		p.DeliveryID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	body, err := json.Marshal(p)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Webhook-Delivery", p.DeliveryID)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook endpoint returned status %d", resp.StatusCode)
	}

	return nil
}

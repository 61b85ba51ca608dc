package webhooks

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/agenda-saas/internal/models"
)

const (
	EventAppointmentCreated   = "appointment.created"
	EventAppointmentCancelled = "appointment.cancelled"
	EventAppointmentCompleted = "appointment.completed"
)

type Event struct {
	CompanyID uint
	EventType string
	Data      any
}

// Dispatcher entrega eventos aos webhooks ativos do tenant em background,
// no mesmo formato do dispatcher de auditoria: fila com buffer, worker
// único, descarte quando a fila enche.
type Dispatcher struct {
	db     *gorm.DB
	sender *Sender
	queue  chan Event
}

func NewDispatcher(db *gorm.DB, sender *Sender) *Dispatcher {
	d := &Dispatcher{
		db:     db,
		sender: sender,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		d.deliver(ev)
	}
}

func (d *Dispatcher) deliver(ev Event) {
	var configs []models.WebhookConfiguration
	if err := d.db.
		Where("company_id = ? AND event_type = ? AND is_active = ?", ev.CompanyID, ev.EventType, true).
		Find(&configs).Error; err != nil {
		log.Println("webhook config lookup error:", err)
		return
	}

	for _, cfg := range configs {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)

		err := d.sender.Send(ctx, cfg.URL, Payload{
			EventType: ev.EventType,
			CompanyID: ev.CompanyID,
			Data:      ev.Data,
		})
		cancel()

		if err != nil {
			// sem retry: registramos e seguimos
			log.Printf("webhook delivery failed (config %d): %v", cfg.ID, err)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
		// enviado
	default:
		log.Println("webhook queue full, dropping event")
	}
}

package webhooks

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSender_Send_DeliversPayload(t *testing.T) {
	var (
		gotDelivery string
		gotBody     Payload
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content-type = %q", ct)
		}
		gotDelivery = r.Header.Get("X-Webhook-Delivery")

		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sender := NewSender()
	err := sender.Send(context.Background(), srv.URL, Payload{
		EventType: EventAppointmentCreated,
		CompanyID: 1,
		Test:      true,
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	if gotDelivery == "" {
		t.Fatal("missing X-Webhook-Delivery header")
	}
	if gotBody.DeliveryID != gotDelivery {
		t.Fatalf("delivery id mismatch: body %q, header %q", gotBody.DeliveryID, gotDelivery)
	}
	if gotBody.EventType != EventAppointmentCreated {
		t.Fatalf("event type = %q", gotBody.EventType)
	}
	if !gotBody.Test {
		t.Fatal("test flag lost")
	}
	if gotBody.CreatedAt.IsZero() {
		t.Fatal("created_at not stamped")
	}
}

func TestSender_Send_Non2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	sender := NewSender()
	err := sender.Send(context.Background(), srv.URL, Payload{EventType: EventAppointmentCancelled, CompanyID: 1})
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestSender_Send_UnreachableEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // derruba antes de enviar

	sender := NewSender()
	err := sender.Send(context.Background(), srv.URL, Payload{EventType: EventAppointmentCreated, CompanyID: 1})
	if err == nil {
		t.Fatal("expected connection error")
	}
}

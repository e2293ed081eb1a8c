package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"portal_pagos/internal/domain/entities"
	"portal_pagos/internal/infrastructure/config"
)

func newTestFlow(t *testing.T, handler http.HandlerFunc) *FlowGateway {
	t.Helper()
	t.Setenv("PAYMENT_GATEWAY_MOCK", "")
	t.Setenv("MERCADOPAGO_MOCK", "")
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	g, err := NewFlowGateway(config.FlowConfig{BaseURL: srv.URL, APIKey: "key", SecretKey: "secret", PaymentMethod: "9"}, srv.Client())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return g
}

func TestFlowGateway_Sign(t *testing.T) {
	g := &FlowGateway{secretKey: "secret"}
	values := g.sign(map[string]string{"token": "abc", "apiKey": "key", "email": " "})

	mac := hmac.New(sha256.New, []byte("secret"))
	mac.Write([]byte("apiKeykeytokenabc"))
	want := hex.EncodeToString(mac.Sum(nil))

	if values.Get("s") != want {
		t.Fatalf("signature = %s, want %s", values.Get("s"), want)
	}
	if values.Has("email") {
		t.Fatalf("empty parameters must be dropped")
	}
}

func TestFlowGateway_Start(t *testing.T) {
	t.Run("creates the payment", func(t *testing.T) {
		g := newTestFlow(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/payment/create" {
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			}
			if err := r.ParseForm(); err != nil {
				t.Errorf("form: %v", err)
			}
			if r.PostForm.Get("commerceOrder") != "ref-1" || r.PostForm.Get("amount") != "5000" || r.PostForm.Get("s") == "" {
				t.Errorf("unexpected form %v", r.PostForm)
			}
			_, _ = w.Write([]byte(`{"url":"https://flow/app/web/pay.php","token":"FT1","flowOrder":812}`))
		})

		res, err := g.Start(context.Background(), entities.StartRequest{TransactionID: "ref-1", Amount: 5000, Email: "a@b.cl", ReturnURL: "http://portal/return", ConfirmURL: "http://portal/confirm"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Token != "FT1" || res.RedirectURL != "https://flow/app/web/pay.php?token=FT1" {
			t.Fatalf("unexpected result: %+v", res)
		}
		if res.Record["flow_order"] != "812" {
			t.Fatalf("flow order must be recorded, got %+v", res.Record)
		}
	})

	t.Run("error code", func(t *testing.T) {
		g := newTestFlow(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"code":108,"message":"Invalid amount"}`))
		})
		_, err := g.Start(context.Background(), entities.StartRequest{TransactionID: "ref-1", Amount: 1})
		if !errors.Is(err, entities.ErrGatewayUnavailable) {
			t.Fatalf("expected ErrGatewayUnavailable, got %v", err)
		}
	})
}

func TestFlowGateway_Confirm(t *testing.T) {
	t.Run("paid status", func(t *testing.T) {
		g := newTestFlow(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/payment/getStatus" || r.URL.Query().Get("token") != "FT1" || r.URL.Query().Get("s") == "" {
				t.Errorf("unexpected request %s", r.URL.String())
			}
			_, _ = w.Write([]byte(`{"flowOrder":812,"commerceOrder":"ref-1","requestDate":"2024-03-01 10:00:00","status":2,
				"amount":8000,"payer":"payer@mail.cl","paymentData":{"date":"2024-03-01 10:05:00","media":"Webpay",
				"amount":8000,"fee":300,"taxes":57,"transferDate":"2024-03-04"}}`))
		})

		c, err := g.Confirm(context.Background(), entities.ConfirmationRequest{Params: map[string]string{"token": "FT1"}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.Status != entities.FinalStateApproved || c.TransactionID != "FT1" {
			t.Fatalf("unexpected confirmation: %+v", c)
		}
		if c.SettledAmount == nil || *c.SettledAmount != 7643 {
			t.Fatalf("expected settled 7643, got %v", c.SettledAmount)
		}
		if c.PaymentMethod != "Webpay" || c.AccountingDate != "2024-03-04" || c.PayerEmail != "payer@mail.cl" {
			t.Fatalf("unexpected details: %+v", c)
		}
	})

	t.Run("rejected status without payment data", func(t *testing.T) {
		g := newTestFlow(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":3,"amount":8000,"requestDate":"2024-03-01 10:00:00"}`))
		})
		c, err := g.Confirm(context.Background(), entities.ConfirmationRequest{ID: "FT2"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.Status != entities.FinalStateRejected || c.PaymentDate != "2024-03-01 10:00:00" {
			t.Fatalf("unexpected confirmation: %+v", c)
		}
		if c.SettledAmount == nil || *c.SettledAmount != 8000 {
			t.Fatalf("settled must default to the gross amount, got %v", c.SettledAmount)
		}
	})

	t.Run("missing token", func(t *testing.T) {
		g := newTestFlow(t, func(w http.ResponseWriter, r *http.Request) {})
		if _, err := g.Confirm(context.Background(), entities.ConfirmationRequest{}); !errors.Is(err, entities.ErrInvalidCallback) {
			t.Fatalf("expected ErrInvalidCallback, got %v", err)
		}
	})
}

func TestFlowState(t *testing.T) {
	cases := map[int64]entities.FinalState{
		1: entities.FinalStatePending,
		2: entities.FinalStateApproved,
		3: entities.FinalStateRejected,
		4: entities.FinalStateCancelled,
		9: entities.FinalStateUnknown,
	}
	for code, want := range cases {
		if got := flowState(code); got != want {
			t.Fatalf("flowState(%d) = %s, want %s", code, got, want)
		}
	}
}

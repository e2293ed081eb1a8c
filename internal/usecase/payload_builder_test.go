package usecase

import (
	"testing"
	"time"
	_ "time/tzdata"

	"portal_pagos/internal/domain/entities"
)

func fixedNow() time.Time { return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC) }

func sampleTransaction() entities.Transaction {
	return entities.Transaction{
		ID:      "tok-1",
		Gateway: entities.GatewayFlow,
		RUT:     "12.345.678-5",
		Email:   "cliente@example.com",
		Amount:  8000,
		Debts: []entities.DebtSnapshot{
			{CompanyID: "A", CustomerID: "100", Month: "2", Year: "2024", Amount: 5000},
			{CompanyID: "A", CustomerID: "101", Month: "3", Year: "2024", Amount: 3000},
		},
	}
}

func TestPayloadBuilder_Build(t *testing.T) {
	t.Run("allocates the settled amount", func(t *testing.T) {
		b := NewPayloadBuilder(entities.GatewayFlow)
		b.Now = fixedNow

		got := b.Build(sampleTransaction(), entities.PaymentConfirmation{
			Status:         entities.FinalStateApproved,
			SettledAmount:  int64Ptr(7600),
			PaymentDate:    "2024-03-10 18:22:01",
			AccountingDate: "2024-03-12 00:00:00",
			PaymentMethod:  "Webpay",
		})
		if len(got) != 2 {
			t.Fatalf("expected 2 payloads, got %d", len(got))
		}
		first := got[0]
		if first.IdEmpresa != "A" || first.IdCliente != 100 || first.Monto != 5000 || first.MontoFlow != 4750 {
			t.Fatalf("unexpected first payload: %+v", first)
		}
		if got[1].Monto != 3000 || got[1].MontoFlow != 2850 {
			t.Fatalf("unexpected second payload: %+v", got[1])
		}
		if first.RutCliente != "123456785" || first.Mail != "cliente@example.com" {
			t.Fatalf("unexpected payer: %+v", first)
		}
		if first.Recaudador != CollectorFlow || first.Canal != "Webpay" {
			t.Fatalf("unexpected collector/channel: %+v", first)
		}
		if first.FechaPago != "10-03-2024" || first.FechaContable != "12-03-2024" {
			t.Fatalf("unexpected dates: %+v", first)
		}
		if first.Mes != 2 || first.Ano != 2024 {
			t.Fatalf("unexpected period: %+v", first)
		}
	})

	t.Run("face amount when no settlement is reported", func(t *testing.T) {
		b := NewPayloadBuilder(entities.GatewayWebpay)
		b.Now = fixedNow

		got := b.Build(sampleTransaction(), entities.PaymentConfirmation{
			Status:        entities.FinalStateApproved,
			PaymentMethod: "vn",
			Installments:  3,
		})
		if got[0].MontoFlow != 5000 || got[1].MontoFlow != 3000 {
			t.Fatalf("expected face amounts, got %+v", got)
		}
		if got[0].Canal != "WEBPAY-VN-3C" {
			t.Fatalf("unexpected channel: %s", got[0].Canal)
		}
		if got[0].FechaPago != "15-03-2024" || got[0].FechaContable != "15-03-2024" {
			t.Fatalf("expected today's date, got %+v", got[0])
		}
	})

	t.Run("invalid debts are dropped", func(t *testing.T) {
		tx := sampleTransaction()
		tx.Debts = append(tx.Debts,
			entities.DebtSnapshot{CompanyID: "A", CustomerID: "102", Amount: 0},
			entities.DebtSnapshot{CompanyID: "A", CustomerID: "", Amount: 1000},
			entities.DebtSnapshot{CompanyID: "", CustomerID: "103", Amount: 1000},
			entities.DebtSnapshot{CompanyID: "A", CustomerID: "abc", Amount: 1000},
		)
		got := NewPayloadBuilder(entities.GatewayMercadoPago).Build(tx, entities.PaymentConfirmation{Status: entities.FinalStateApproved})
		if len(got) != 2 {
			t.Fatalf("expected 2 payloads, got %+v", got)
		}
		if got[0].Canal != ChannelMercadoPago || got[0].Recaudador != CollectorMercadoPago {
			t.Fatalf("unexpected labels: %+v", got[0])
		}
	})

	t.Run("falls back to gateway payer data", func(t *testing.T) {
		tx := sampleTransaction()
		tx.RUT, tx.Email = "", ""
		got := NewPayloadBuilder(entities.GatewayZumpago).Build(tx, entities.PaymentConfirmation{
			PayerRUT:      "7.643.0",
			PayerEmail:    "payer@example.com",
			PaymentMethod: "TEF",
			PaymentDate:   "20240301",
		})
		if got[0].RutCliente != "76430" || got[0].Mail != "payer@example.com" {
			t.Fatalf("unexpected payer: %+v", got[0])
		}
		if got[0].Canal != "ZUMPAGO-TEF" || got[0].FechaPago != "01-03-2024" {
			t.Fatalf("unexpected channel/date: %+v", got[0])
		}
	})
}

func TestFormatLegacyDate(t *testing.T) {
	santiago, err := time.LoadLocation("America/Santiago")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	cases := []struct {
		name string
		in   string
		loc  *time.Location
		want string
	}{
		{"offset", "2024-01-02T10:00:00.000-04:00", santiago, "02-01-2024"},
		{"utc evening", "2024-01-02T23:59:59Z", time.UTC, "02-01-2024"},
		{"utc just after midnight", "2024-05-01T00:30:00.000Z", santiago, "30-04-2024"},
		{"utc just after midnight in utc", "2024-05-01T00:30:00.000Z", time.UTC, "01-05-2024"},
		{"naive datetime", "2024-01-02 08:00:00", santiago, "02-01-2024"},
		{"naive midnight", "2024-01-02 00:10:00", santiago, "02-01-2024"},
		{"date", "2024-01-02", santiago, "02-01-2024"},
		{"compact date", "20240102", santiago, "02-01-2024"},
		{"compact datetime", "20240102153000", santiago, "02-01-2024"},
		{"legacy", "02-01-2024", santiago, "02-01-2024"},
		{"garbage falls back to today", "not a date", santiago, "15-03-2024"},
		{"empty falls back to today", "", santiago, "15-03-2024"},
		{"today is local", "", santiago, "14-03-2024"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			now := fixedNow
			if tc.name == "today is local" {
				now = func() time.Time { return time.Date(2024, 3, 15, 2, 0, 0, 0, time.UTC) }
			}
			if got := formatLegacyDate(tc.in, now, tc.loc); got != tc.want {
				t.Fatalf("formatLegacyDate(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestPayloadBuilder_BuildUsesLocation(t *testing.T) {
	santiago, err := time.LoadLocation("America/Santiago")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	b := NewPayloadBuilder(entities.GatewayWebpay)
	b.Now = fixedNow
	b.Location = santiago

	got := b.Build(sampleTransaction(), entities.PaymentConfirmation{
		Status:      entities.FinalStateApproved,
		PaymentDate: "2024-05-01T00:30:00.000Z",
	})
	if len(got) != 2 {
		t.Fatalf("expected 2 payloads, got %+v", got)
	}
	if got[0].FechaPago != "30-04-2024" || got[0].FechaContable != "30-04-2024" {
		t.Fatalf("unexpected dates %s/%s", got[0].FechaPago, got[0].FechaContable)
	}
}

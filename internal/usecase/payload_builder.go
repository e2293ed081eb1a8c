package usecase

import (
	"portal_pagos/internal/domain/entities"
	"strconv"
	"strings"
	"time"
)

const legacyDateLayout = "02-01-2006"

// Collector names sent as Recaudador.
const (
	CollectorWebpay      = "WEBPAY"
	CollectorFlow        = "Flow"
	CollectorMercadoPago = "MercadoPago"
	CollectorZumpago     = "ZUMPAGO"

	ChannelMercadoPago = "MPAGO"
)

// ChannelResolver derives the Canal label from a confirmation.
type ChannelResolver func(collector string, c entities.PaymentConfirmation) string

// PayloadBuilder maps a confirmed payment and the debts of its transaction to
// the records expected by the legacy accounting service. Dates are rendered
// in Location.
type PayloadBuilder struct {
	Collector string
	Channel   ChannelResolver
	Now       func() time.Time
	Location  *time.Location
}

// NewPayloadBuilder returns the builder configured for a gateway.
func NewPayloadBuilder(g entities.Gateway) *PayloadBuilder {
	b := &PayloadBuilder{Now: time.Now, Location: time.Local}
	switch g {
	case entities.GatewayWebpay:
		b.Collector, b.Channel = CollectorWebpay, webpayChannel
	case entities.GatewayFlow:
		b.Collector, b.Channel = CollectorFlow, declaredChannel
	case entities.GatewayZumpago:
		b.Collector, b.Channel = CollectorZumpago, prefixedChannel
	case entities.GatewayMercadoPago:
		b.Collector, b.Channel = CollectorMercadoPago, fixedChannel(ChannelMercadoPago)
	default:
		b.Collector, b.Channel = strings.ToUpper(string(g)), fixedChannel(strings.ToUpper(string(g)))
	}
	return b
}

// webpayChannel renders WEBPAY-<TYPE> plus -<N>C for installment payments.
func webpayChannel(collector string, c entities.PaymentConfirmation) string {
	method := strings.ToUpper(strings.TrimSpace(c.PaymentMethod))
	if method == "" {
		return collector
	}
	channel := collector + "-" + method
	if c.Installments > 0 {
		channel += "-" + strconv.Itoa(c.Installments) + "C"
	}
	return channel
}

func declaredChannel(collector string, c entities.PaymentConfirmation) string {
	if m := strings.TrimSpace(c.PaymentMethod); m != "" {
		return m
	}
	return collector
}

func prefixedChannel(collector string, c entities.PaymentConfirmation) string {
	if m := strings.TrimSpace(c.PaymentMethod); m != "" {
		return collector + "-" + m
	}
	return collector
}

func fixedChannel(label string) ChannelResolver {
	return func(string, entities.PaymentConfirmation) string { return label }
}

// Build returns one record per debt. Debts without a company, a numeric
// customer id or a positive amount are skipped.
func (b *PayloadBuilder) Build(tx entities.Transaction, c entities.PaymentConfirmation) []entities.LegacyPayment {
	now := time.Now
	if b.Now != nil {
		now = b.Now
	}
	loc := b.Location
	if loc == nil {
		loc = time.Local
	}

	rut := entities.NormalizeRUT(firstNonEmpty(tx.RUT, c.PayerRUT))
	email := strings.TrimSpace(firstNonEmpty(tx.Email, c.PayerEmail))
	channel := b.Collector
	if b.Channel != nil {
		channel = b.Channel(b.Collector, c)
	}
	paymentDate := formatLegacyDate(c.PaymentDate, now, loc)
	accountingDate := paymentDate
	if strings.TrimSpace(c.AccountingDate) != "" {
		accountingDate = formatLegacyDate(c.AccountingDate, now, loc)
	}

	inputs := make([]AllocationInput, 0, len(tx.Debts))
	for i, d := range tx.Debts {
		inputs = append(inputs, AllocationInput{Key: strconv.Itoa(i), Amount: d.Amount})
	}
	shares := map[string]int64{}
	for _, s := range AllocateNetAmount(inputs, c.SettledAmount) {
		shares[s.Key] = s.Share
	}

	payloads := make([]entities.LegacyPayment, 0, len(tx.Debts))
	for i, d := range tx.Debts {
		customerID, err := strconv.ParseInt(strings.TrimSpace(d.CustomerID), 10, 64)
		if err != nil {
			continue
		}
		settled, ok := shares[strconv.Itoa(i)]
		if !ok {
			settled = d.Amount
		}
		p := entities.LegacyPayment{
			IdEmpresa:     strings.TrimSpace(d.CompanyID),
			IdCliente:     customerID,
			RutCliente:    rut,
			Mail:          email,
			Recaudador:    b.Collector,
			Canal:         channel,
			FechaPago:     paymentDate,
			FechaContable: accountingDate,
			Mes:           atoiOrZero(d.Month),
			Ano:           atoiOrZero(d.Year),
			Monto:         d.Amount,
			MontoFlow:     settled,
		}
		if !p.Valid() {
			continue
		}
		payloads = append(payloads, p)
	}
	return payloads
}

var gatewayDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000-0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"20060102150405",
	"20060102",
	legacyDateLayout,
	"02/01/2006",
}

// formatLegacyDate renders a gateway date as dd-mm-yyyy in loc, falling back
// to today when the value is absent or unparseable. Values without a zone are
// read as local to loc.
func formatLegacyDate(v string, now func() time.Time, loc *time.Location) string {
	v = strings.TrimSpace(v)
	for _, layout := range gatewayDateLayouts {
		if v == "" {
			break
		}
		if t, err := time.ParseInLocation(layout, v, loc); err == nil {
			return t.In(loc).Format(legacyDateLayout)
		}
	}
	return now().In(loc).Format(legacyDateLayout)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func atoiOrZero(v string) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0
	}
	return n
}

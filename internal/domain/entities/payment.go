package entities

import (
	"encoding/json"
	"strings"
)

// Gateway identifies an external payment processor.
//
// The value doubles as the storage namespace of the gateway and as the key of
// the raw responses stored inside a transaction document.
type Gateway string

const (
	GatewayWebpay      Gateway = "webpay"
	GatewayFlow        Gateway = "flow"
	GatewayMercadoPago Gateway = "mercadopago"
	GatewayZumpago     Gateway = "zumpago"
)

// Gateways lists every supported gateway in display order.
var Gateways = []Gateway{GatewayWebpay, GatewayFlow, GatewayMercadoPago, GatewayZumpago}

// ParseGateway resolves a gateway name, accepting a few common spellings.
func ParseGateway(v string) (Gateway, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "webpay", "transbank":
		return GatewayWebpay, true
	case "flow":
		return GatewayFlow, true
	case "mercadopago", "mercado_pago", "mercado-pago", "mp":
		return GatewayMercadoPago, true
	case "zumpago":
		return GatewayZumpago, true
	}
	return "", false
}

// IssuesToken reports whether the gateway assigns the transaction token at
// init time. Gateways that don't are given a self-assigned id.
func (g Gateway) IssuesToken() bool {
	return g == GatewayWebpay || g == GatewayFlow
}

// FinalState is the gateway-independent outcome of a payment attempt.
type FinalState string

const (
	FinalStatePending   FinalState = "pending"
	FinalStateApproved  FinalState = "approved"
	FinalStateRejected  FinalState = "rejected"
	FinalStateCancelled FinalState = "cancelled"
	FinalStateUnknown   FinalState = "unknown"
)

// PaymentConfirmation is what every gateway adapter produces once it has
// interpreted the gateway's status for a transaction.
//
// Optional fields are pointers or empty strings; they are validated once by the
// adapter and consumed as-is by the payload builder.
type PaymentConfirmation struct {
	Gateway       Gateway    `json:"gateway"`
	TransactionID string     `json:"transaction_id"`
	Status        FinalState `json:"status"`
	GatewayStatus string     `json:"gateway_status"`

	GrossAmount   *int64 `json:"gross_amount,omitempty"`
	SettledAmount *int64 `json:"settled_amount,omitempty"`

	PaymentDate    string `json:"payment_date,omitempty"`
	AccountingDate string `json:"accounting_date,omitempty"`
	PayerEmail     string `json:"payer_email,omitempty"`
	PayerRUT       string `json:"payer_rut,omitempty"`
	PaymentMethod  string `json:"payment_method,omitempty"`
	Installments   int    `json:"installments,omitempty"`
	Authorization  string `json:"authorization,omitempty"`

	Raw json.RawMessage `json:"raw,omitempty"`
}

// Approved reports whether the gateway confirmed the payment as paid.
func (c PaymentConfirmation) Approved() bool {
	return c.Status == FinalStateApproved
}

// StartRequest is what a gateway needs to open a payment.
//
// TransactionID is the portal's own reference (buy order, commerce order or
// external reference depending on the gateway).
type StartRequest struct {
	TransactionID string
	Amount        int64
	Email         string
	RUT           string
	Description   string
	ReturnURL     string
	ConfirmURL    string
	CancelURL     string
	Debts         []DebtSnapshot
}

// StartResult tells the front end how to hand the customer over to the
// gateway: a plain redirect, or an auto-submitted form when Method is POST.
type StartResult struct {
	Token       string            `json:"token,omitempty"`
	RedirectURL string            `json:"redirect_url"`
	Method      string            `json:"method"`
	Form        map[string]string `json:"form,omitempty"`
	Raw         json.RawMessage   `json:"-"`

	// Record holds gateway specific fields to keep on the stored transaction
	// (buy order, session id, redirect data).
	Record map[string]any `json:"-"`
}

// ConfirmationRequest carries whatever the gateway sent back: a token, the
// query/form parameters of the callback and its raw body.
type ConfirmationRequest struct {
	ID     string
	Params map[string]string
	Body   []byte
}

// Param returns the first non-empty parameter among keys.
func (r ConfirmationRequest) Param(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(r.Params[k]); v != "" {
			return v
		}
	}
	return ""
}

package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"portal_pagos/internal/domain/entities"
	appconfig "portal_pagos/internal/infrastructure/config"
	"portal_pagos/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")

type preferenceCreator interface {
	Create(ctx context.Context, request preference.Request) (*preference.Response, error)
}

type paymentFetcher interface {
	Get(ctx context.Context, id int) (*payment.Response, error)
}

// MercadoPagoGateway opens checkout preferences and reads back the payments
// announced by webhooks.
type MercadoPagoGateway struct {
	preferences preferenceCreator
	payments    paymentFetcher
	mockMode    bool
	now         func() time.Time
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

type mpPreference struct {
	ID               string `json:"id"`
	InitPoint        string `json:"init_point"`
	SandboxInitPoint string `json:"sandbox_init_point"`
}

type mpPayment struct {
	ID                 json.Number `json:"id"`
	Status             string      `json:"status"`
	StatusDetail       string      `json:"status_detail"`
	ExternalReference  string      `json:"external_reference"`
	TransactionAmount  any         `json:"transaction_amount"`
	DateCreated        string      `json:"date_created"`
	DateApproved       string      `json:"date_approved"`
	MoneyReleaseDate   string      `json:"money_release_date"`
	PaymentMethodID    string      `json:"payment_method_id"`
	Installments       json.Number `json:"installments"`
	AuthorizationCode  string      `json:"authorization_code"`
	TransactionDetails struct {
		NetReceivedAmount any `json:"net_received_amount"`
	} `json:"transaction_details"`
	Payer struct {
		Email          string `json:"email"`
		Identification struct {
			Number string `json:"number"`
		} `json:"identification"`
	} `json:"payer"`
}

type mpNotification struct {
	Type   string `json:"type"`
	Topic  string `json:"topic"`
	Action string `json:"action"`
	ID     any    `json:"id"`
	Data   struct {
		ID any `json:"id"`
	} `json:"data"`
}

func NewMercadoPagoGateway(cfg appconfig.MercadoPagoConfig) (*MercadoPagoGateway, error) {
	if isPaymentGatewayMockEnabled() {
		log.Printf("[payment][mercadopago] mock mode enabled")
		return &MercadoPagoGateway{mockMode: true, now: time.Now}, nil
	}

	if cfg.AccessToken == "" {
		log.Printf("[payment][mercadopago] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	sdkCfg, err := config.New(cfg.AccessToken)
	if err != nil {
		log.Printf("[payment][mercadopago] failed creating sdk config err=%v", err)
		return nil, err
	}
	log.Printf("[payment][mercadopago] Mercado Pago client initialized")

	return &MercadoPagoGateway{
		preferences: preference.NewClient(sdkCfg),
		payments:    payment.NewClient(sdkCfg),
		now:         time.Now,
	}, nil
}

func (g *MercadoPagoGateway) Gateway() entities.Gateway { return entities.GatewayMercadoPago }

// Start creates a checkout preference whose external_reference is the portal
// transaction id.
func (g *MercadoPagoGateway) Start(ctx context.Context, req entities.StartRequest) (entities.StartResult, error) {
	log.Printf("[payment][mercadopago] start external_reference=%s amount=%d", req.TransactionID, req.Amount)
	record := map[string]any{"external_reference": req.TransactionID}

	if g.mockMode {
		return entities.StartResult{
			Token:       req.TransactionID,
			RedirectURL: appendQuery(appendQuery(req.ReturnURL, "external_reference", req.TransactionID), "payment_id", strconv.FormatInt(g.now().Unix(), 10)),
			Method:      http.MethodGet,
			Record:      record,
		}, nil
	}
	if g.preferences == nil {
		log.Printf("[payment][mercadopago] gateway not configured")
		return entities.StartResult{}, ErrMercadoPagoGatewayNotConfigured
	}

	body := map[string]any{
		"items": []map[string]any{{
			"id":          req.TransactionID,
			"title":       firstNonEmpty(req.Description, "Pago de servicios"),
			"quantity":    1,
			"currency_id": "CLP",
			"unit_price":  req.Amount,
		}},
		"external_reference": req.TransactionID,
		"back_urls": map[string]string{
			"success": req.ReturnURL,
			"pending": req.ReturnURL,
			"failure": firstNonEmpty(req.CancelURL, req.ReturnURL),
		},
		"auto_return": "approved",
	}
	if req.Email != "" {
		body["payer"] = map[string]any{"email": req.Email}
	}
	if req.ConfirmURL != "" {
		body["notification_url"] = req.ConfirmURL
	}

	encoded, err := json.Marshal(body)
	if err != nil {
		return entities.StartResult{}, err
	}
	var pref preference.Request
	if err := json.Unmarshal(encoded, &pref); err != nil {
		log.Printf("[payment][mercadopago] preference unmarshal failed err=%v", err)
		return entities.StartResult{}, err
	}

	resp, err := g.preferences.Create(ctx, pref)
	if err != nil {
		log.Printf("[payment][mercadopago] sdk preference create failed err=%v", err)
		return entities.StartResult{}, fmt.Errorf("%w: %v", entities.ErrGatewayUnavailable, err)
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return entities.StartResult{}, err
	}
	var out mpPreference
	if err := decodeJSON(raw, &out); err != nil {
		return entities.StartResult{}, err
	}
	redirect := firstNonEmpty(out.InitPoint, out.SandboxInitPoint)
	if redirect == "" {
		return entities.StartResult{}, fmt.Errorf("%w: preference without init_point", entities.ErrGatewayUnavailable)
	}
	record["preference_id"] = out.ID
	log.Printf("[payment][mercadopago] preference created id=%s", out.ID)

	return entities.StartResult{
		Token:       req.TransactionID,
		RedirectURL: redirect,
		Method:      http.MethodGet,
		Raw:         raw,
		Record:      record,
	}, nil
}

// Confirm fetches the payment a webhook or return redirect refers to.
func (g *MercadoPagoGateway) Confirm(ctx context.Context, req entities.ConfirmationRequest) (entities.PaymentConfirmation, error) {
	paymentID, err := mercadoPagoPaymentID(req)
	if err != nil {
		return entities.PaymentConfirmation{}, err
	}

	var raw []byte
	if g.mockMode {
		now := g.now().Format(time.RFC3339)
		raw, _ = json.Marshal(map[string]any{
			"id":                 paymentID,
			"status":             "approved",
			"external_reference": req.Param("external_reference"),
			"date_approved":      now,
			"date_created":       now,
		})
	} else {
		if g.payments == nil {
			return entities.PaymentConfirmation{}, ErrMercadoPagoGatewayNotConfigured
		}
		resp, err := g.payments.Get(ctx, paymentID)
		if err != nil {
			log.Printf("[payment][mercadopago] sdk payment get failed id=%d err=%v", paymentID, err)
			return entities.PaymentConfirmation{}, fmt.Errorf("%w: %v", entities.ErrGatewayUnavailable, err)
		}
		if raw, err = json.Marshal(resp); err != nil {
			return entities.PaymentConfirmation{}, err
		}
	}
	return parseMercadoPagoPayment(raw)
}

func parseMercadoPagoPayment(raw []byte) (entities.PaymentConfirmation, error) {
	var p mpPayment
	if err := decodeJSON(raw, &p); err != nil {
		return entities.PaymentConfirmation{}, fmt.Errorf("%w: mercado pago payment: %v", entities.ErrInvalidCallback, err)
	}
	ref := strings.TrimSpace(p.ExternalReference)
	if ref == "" {
		log.Printf("[payment][mercadopago] payment without external_reference id=%s", p.ID)
		return entities.PaymentConfirmation{}, fmt.Errorf("%w: payment %s has no external_reference", entities.ErrNotificationIgnored, p.ID)
	}
	installments, _ := p.Installments.Int64()

	c := entities.PaymentConfirmation{
		Gateway:        entities.GatewayMercadoPago,
		TransactionID:  ref,
		Status:         mercadoPagoState(p.Status),
		GatewayStatus:  p.Status,
		GrossAmount:    clpAmount(p.TransactionAmount),
		SettledAmount:  clpAmount(p.TransactionDetails.NetReceivedAmount),
		PaymentDate:    firstNonEmpty(cleanDate(p.DateApproved), cleanDate(p.DateCreated)),
		AccountingDate: cleanDate(p.MoneyReleaseDate),
		PayerEmail:     strings.TrimSpace(p.Payer.Email),
		PayerRUT:       strings.TrimSpace(p.Payer.Identification.Number),
		PaymentMethod:  p.PaymentMethodID,
		Installments:   int(installments),
		Authorization:  p.AuthorizationCode,
		Raw:            raw,
	}
	log.Printf("[payment][mercadopago] payment id=%s external_reference=%s status=%s state=%s", p.ID, ref, p.Status, c.Status)
	return c, nil
}

func mercadoPagoState(status string) entities.FinalState {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "approved":
		return entities.FinalStateApproved
	case "pending", "in_process", "authorized", "in_mediation":
		return entities.FinalStatePending
	case "rejected":
		return entities.FinalStateRejected
	case "cancelled", "refunded", "charged_back":
		return entities.FinalStateCancelled
	}
	return entities.FinalStateUnknown
}

// mercadoPagoPaymentID finds the payment id in the explicit id, the webhook
// body (data.id or id) or the query string. Notifications about anything
// other than a payment are ignored.
func mercadoPagoPaymentID(req entities.ConfirmationRequest) (int, error) {
	candidate := strings.TrimSpace(req.ID)
	kind := req.Param("type", "topic")

	if len(req.Body) > 0 {
		var n mpNotification
		if err := decodeJSON(req.Body, &n); err == nil {
			kind = firstNonEmpty(n.Type, n.Topic, kind)
			if candidate == "" {
				candidate = firstNonEmpty(stringValue(n.Data.ID), stringValue(n.ID))
			}
		}
	}
	if candidate == "" {
		candidate = req.Param("data.id", "data_id", "id", "payment_id", "collection_id")
	}
	if kind != "" && kind != "payment" {
		return 0, fmt.Errorf("%w: notification type %q", entities.ErrNotificationIgnored, kind)
	}
	if candidate == "" {
		return 0, fmt.Errorf("%w: mercado pago notification without payment id", entities.ErrInvalidCallback)
	}
	id, err := strconv.Atoi(candidate)
	if err != nil {
		return 0, fmt.Errorf("%w: payment id %q is not numeric", entities.ErrInvalidCallback, candidate)
	}
	return id, nil
}

func stringValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

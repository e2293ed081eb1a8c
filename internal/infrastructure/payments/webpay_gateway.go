package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"portal_pagos/internal/domain/entities"
	"portal_pagos/internal/infrastructure/config"
	"portal_pagos/internal/usecase/interfaces"

	"github.com/google/uuid"
)

const (
	webpayTransactionsPath = "/rswebpaytransaction/api/webpay/v1.2/transactions"
	webpayBuyOrderMaxLen   = 26
	webpayStatusAuthorized = "AUTHORIZED"
)

var ErrWebpayNotConfigured = errors.New("webpay gateway not configured")

// WebpayGateway talks to the Webpay Plus REST API. The token issued at init
// time is the transaction id; confirmation commits it.
type WebpayGateway struct {
	baseURL      string
	commerceCode string
	apiKey       string
	http         *http.Client
	mockMode     bool
	now          func() time.Time
}

var _ interfaces.IPaymentGateway = (*WebpayGateway)(nil)

type webpayCreateResponse struct {
	Token        string `json:"token"`
	URL          string `json:"url"`
	ErrorMessage string `json:"error_message"`
}

type webpayCommitResponse struct {
	VCI                string      `json:"vci"`
	Amount             json.Number `json:"amount"`
	Status             string      `json:"status"`
	BuyOrder           string      `json:"buy_order"`
	SessionID          string      `json:"session_id"`
	AccountingDate     string      `json:"accounting_date"`
	TransactionDate    string      `json:"transaction_date"`
	AuthorizationCode  string      `json:"authorization_code"`
	PaymentTypeCode    string      `json:"payment_type_code"`
	ResponseCode       *int        `json:"response_code"`
	InstallmentsNumber int         `json:"installments_number"`
	ErrorMessage       string      `json:"error_message"`
}

func NewWebpayGateway(cfg config.WebpayConfig, httpClient *http.Client) (*WebpayGateway, error) {
	g := &WebpayGateway{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		commerceCode: cfg.CommerceCode,
		apiKey:       cfg.APIKey,
		http:         defaultHTTPClient(httpClient),
		now:          time.Now,
	}
	if isPaymentGatewayMockEnabled() {
		log.Printf("[payment][webpay] mock mode enabled")
		g.mockMode = true
		return g, nil
	}
	if g.baseURL == "" || g.commerceCode == "" || g.apiKey == "" {
		log.Printf("[payment][webpay] missing WEBPAY_BASE_URL, WEBPAY_COMMERCE_CODE or WEBPAY_API_KEY")
		return nil, ErrWebpayNotConfigured
	}
	return g, nil
}

func (g *WebpayGateway) Gateway() entities.Gateway { return entities.GatewayWebpay }

// Start creates the transaction and returns the form the browser must post
// (token_ws) to the Webpay url.
func (g *WebpayGateway) Start(ctx context.Context, req entities.StartRequest) (entities.StartResult, error) {
	buyOrder := webpayBuyOrder(req.Debts, g.now())
	sessionID := strings.ReplaceAll(uuid.NewString(), "-", "")
	record := map[string]any{"buy_order": buyOrder, "session_id": sessionID}
	log.Printf("[payment][webpay] start buy_order=%s amount=%d", buyOrder, req.Amount)

	if g.mockMode {
		token := "mock-" + sessionID
		return entities.StartResult{
			Token:       token,
			RedirectURL: appendQuery(req.ReturnURL, "token_ws", token),
			Method:      http.MethodGet,
			Record:      record,
		}, nil
	}

	payload, err := json.Marshal(map[string]any{
		"buy_order":  buyOrder,
		"session_id": sessionID,
		"amount":     req.Amount,
		"return_url": req.ReturnURL,
	})
	if err != nil {
		return entities.StartResult{}, err
	}
	raw, status, err := doRequest(ctx, g.http, http.MethodPost, g.baseURL+webpayTransactionsPath, "application/json", bytes.NewReader(payload), g.headers())
	if err != nil {
		log.Printf("[payment][webpay] create failed err=%v", err)
		return entities.StartResult{}, err
	}
	var out webpayCreateResponse
	if err := decodeJSON(raw, &out); err != nil || status >= http.StatusBadRequest || out.Token == "" || out.URL == "" {
		log.Printf("[payment][webpay] create rejected status=%d body=%s", status, preview(raw))
		return entities.StartResult{}, fmt.Errorf("%w: webpay create answered HTTP %d %s", entities.ErrGatewayUnavailable, status, out.ErrorMessage)
	}
	log.Printf("[payment][webpay] create success token=%s", out.Token)

	return entities.StartResult{
		Token:       out.Token,
		RedirectURL: out.URL,
		Method:      http.MethodPost,
		Form:        map[string]string{"token_ws": out.Token},
		Raw:         raw,
		Record:      record,
	}, nil
}

// Confirm commits the token. A TBK_TOKEN callback means the customer aborted
// the payment at Webpay and is reported as cancelled without calling it.
func (g *WebpayGateway) Confirm(ctx context.Context, req entities.ConfirmationRequest) (entities.PaymentConfirmation, error) {
	token := firstNonEmpty(req.ID, req.Param("token_ws"))
	if token == "" {
		if aborted := req.Param("TBK_TOKEN"); aborted != "" {
			log.Printf("[payment][webpay] aborted by customer token=%s", aborted)
			raw, _ := json.Marshal(req.Params)
			return entities.PaymentConfirmation{
				Gateway:       entities.GatewayWebpay,
				TransactionID: aborted,
				Status:        entities.FinalStateCancelled,
				GatewayStatus: "ABORTED",
				Raw:           raw,
			}, nil
		}
		return entities.PaymentConfirmation{}, fmt.Errorf("%w: webpay callback without token", entities.ErrInvalidCallback)
	}

	var raw []byte
	if g.mockMode {
		raw, _ = json.Marshal(map[string]any{
			"status":             webpayStatusAuthorized,
			"response_code":      0,
			"payment_type_code":  "VD",
			"transaction_date":   g.now().UTC().Format(time.RFC3339),
			"authorization_code": "1213",
		})
	} else {
		var status int
		var err error
		raw, status, err = doRequest(ctx, g.http, http.MethodPut, g.baseURL+webpayTransactionsPath+"/"+url.PathEscape(token), "application/json", nil, g.headers())
		if err != nil {
			log.Printf("[payment][webpay] commit failed token=%s err=%v", token, err)
			return entities.PaymentConfirmation{}, err
		}
		if status >= http.StatusBadRequest {
			log.Printf("[payment][webpay] commit rejected token=%s status=%d body=%s", token, status, preview(raw))
			return entities.PaymentConfirmation{}, fmt.Errorf("%w: webpay commit answered HTTP %d", entities.ErrGatewayUnavailable, status)
		}
	}
	return parseWebpayCommit(token, raw)
}

func parseWebpayCommit(token string, raw []byte) (entities.PaymentConfirmation, error) {
	var out webpayCommitResponse
	if err := decodeJSON(raw, &out); err != nil {
		return entities.PaymentConfirmation{}, fmt.Errorf("%w: webpay commit: %v", entities.ErrInvalidCallback, err)
	}

	c := entities.PaymentConfirmation{
		Gateway:       entities.GatewayWebpay,
		TransactionID: token,
		Status:        webpayState(out),
		GatewayStatus: out.Status,
		GrossAmount:   clpAmount(out.Amount),
		PaymentDate:   out.TransactionDate,
		PaymentMethod: out.PaymentTypeCode,
		Installments:  out.InstallmentsNumber,
		Authorization: out.AuthorizationCode,
		Raw:           raw,
	}
	if out.ResponseCode != nil {
		c.GatewayStatus = fmt.Sprintf("%s/%d", out.Status, *out.ResponseCode)
	}
	log.Printf("[payment][webpay] commit token=%s status=%s state=%s", token, c.GatewayStatus, c.Status)
	return c, nil
}

func webpayState(out webpayCommitResponse) entities.FinalState {
	status := strings.ToUpper(strings.TrimSpace(out.Status))
	switch {
	case out.ResponseCode != nil && *out.ResponseCode == 0 && status == webpayStatusAuthorized:
		return entities.FinalStateApproved
	case status == "INITIALIZED":
		return entities.FinalStatePending
	case status == "FAILED" || (out.ResponseCode != nil && *out.ResponseCode != 0):
		return entities.FinalStateRejected
	case status == "NULLIFIED" || status == "REVERSED":
		return entities.FinalStateCancelled
	}
	return entities.FinalStateUnknown
}

func (g *WebpayGateway) headers() map[string]string {
	return map[string]string{
		"Tbk-Api-Key-Id":     g.commerceCode,
		"Tbk-Api-Key-Secret": g.apiKey,
	}
}

// webpayBuyOrder joins the paid customer ids with the unix time, truncated
// to the 26 characters Webpay accepts.
func webpayBuyOrder(debts []entities.DebtSnapshot, now time.Time) string {
	parts := make([]string, 0, len(debts)+1)
	for _, d := range debts {
		parts = append(parts, d.CustomerID)
	}
	parts = append(parts, strconv.FormatInt(now.Unix(), 10))
	order := strings.Join(parts, "-")
	if len(order) > webpayBuyOrderMaxLen {
		order = order[:webpayBuyOrderMaxLen]
	}
	return order
}

func appendQuery(rawURL, key, value string) string {
	sep := "?"
	if strings.Contains(rawURL, "?") {
		sep = "&"
	}
	return rawURL + sep + url.QueryEscape(key) + "=" + url.QueryEscape(value)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

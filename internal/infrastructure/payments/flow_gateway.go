package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"portal_pagos/internal/domain/entities"
	"portal_pagos/internal/infrastructure/config"
	"portal_pagos/internal/usecase/interfaces"
)

var ErrFlowNotConfigured = errors.New("flow gateway not configured")

// Flow payment status codes.
const (
	flowStatusPending   = 1
	flowStatusPaid      = 2
	flowStatusRejected  = 3
	flowStatusCancelled = 4
)

// FlowGateway talks to the Flow REST API. Every request is signed with
// HMAC-SHA256 over the sorted parameters.
type FlowGateway struct {
	baseURL       string
	apiKey        string
	secretKey     string
	paymentMethod string
	http          *http.Client
	mockMode      bool
	now           func() time.Time
}

var _ interfaces.IPaymentGateway = (*FlowGateway)(nil)

type flowCreateResponse struct {
	URL       string      `json:"url"`
	Token     string      `json:"token"`
	FlowOrder json.Number `json:"flowOrder"`
}

type flowErrorResponse struct {
	Code    json.Number `json:"code"`
	Message string      `json:"message"`
}

type flowStatusResponse struct {
	FlowOrder     json.Number      `json:"flowOrder"`
	CommerceOrder string           `json:"commerceOrder"`
	RequestDate   string           `json:"requestDate"`
	Status        json.Number      `json:"status"`
	Amount        any              `json:"amount"`
	Payer         string           `json:"payer"`
	PaymentData   *flowPaymentData `json:"paymentData"`
}

type flowPaymentData struct {
	Date         string `json:"date"`
	Media        string `json:"media"`
	Amount       any    `json:"amount"`
	Fee          any    `json:"fee"`
	Taxes        any    `json:"taxes"`
	Balance      any    `json:"balance"`
	TransferDate string `json:"transferDate"`
}

func NewFlowGateway(cfg config.FlowConfig, httpClient *http.Client) (*FlowGateway, error) {
	g := &FlowGateway{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:        cfg.APIKey,
		secretKey:     cfg.SecretKey,
		paymentMethod: cfg.PaymentMethod,
		http:          defaultHTTPClient(httpClient),
		now:           time.Now,
	}
	if isPaymentGatewayMockEnabled() {
		log.Printf("[payment][flow] mock mode enabled")
		g.mockMode = true
		return g, nil
	}
	if g.baseURL == "" || g.apiKey == "" || g.secretKey == "" {
		log.Printf("[payment][flow] missing FLOW_BASE_URL, FLOW_API_KEY or FLOW_SECRET_KEY")
		return nil, ErrFlowNotConfigured
	}
	return g, nil
}

func (g *FlowGateway) Gateway() entities.Gateway { return entities.GatewayFlow }

func (g *FlowGateway) Start(ctx context.Context, req entities.StartRequest) (entities.StartResult, error) {
	subject := firstNonEmpty(req.Description, "Pago de servicios")
	optional, _ := json.Marshal(map[string]string{"Rut": req.RUT})
	params := map[string]string{
		"apiKey":          g.apiKey,
		"commerceOrder":   req.TransactionID,
		"subject":         subject,
		"currency":        "CLP",
		"amount":          strconv.FormatInt(req.Amount, 10),
		"email":           req.Email,
		"paymentMethod":   g.paymentMethod,
		"urlConfirmation": req.ConfirmURL,
		"urlReturn":       req.ReturnURL,
		"optional":        string(optional),
	}
	record := map[string]any{"commerce_order": req.TransactionID}
	log.Printf("[payment][flow] start commerce_order=%s amount=%d", req.TransactionID, req.Amount)

	if g.mockMode {
		token := "mock-" + req.TransactionID
		return entities.StartResult{
			Token:       token,
			RedirectURL: appendQuery(req.ReturnURL, "token", token),
			Method:      http.MethodGet,
			Record:      record,
		}, nil
	}

	form := g.sign(params)
	raw, status, err := doRequest(ctx, g.http, http.MethodPost, g.baseURL+"/payment/create", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()), nil)
	if err != nil {
		log.Printf("[payment][flow] create failed err=%v", err)
		return entities.StartResult{}, err
	}
	if err := flowError(raw, status); err != nil {
		log.Printf("[payment][flow] create rejected status=%d body=%s", status, preview(raw))
		return entities.StartResult{}, err
	}
	var out flowCreateResponse
	if err := decodeJSON(raw, &out); err != nil || out.URL == "" || out.Token == "" {
		return entities.StartResult{}, fmt.Errorf("%w: flow did not return url and token", entities.ErrGatewayUnavailable)
	}
	record["flow_order"] = out.FlowOrder.String()
	log.Printf("[payment][flow] create success token=%s flow_order=%s", out.Token, out.FlowOrder)

	return entities.StartResult{
		Token:       out.Token,
		RedirectURL: appendQuery(out.URL, "token", out.Token),
		Method:      http.MethodGet,
		Raw:         raw,
		Record:      record,
	}, nil
}

// Confirm polls getStatus for the token Flow posted back.
func (g *FlowGateway) Confirm(ctx context.Context, req entities.ConfirmationRequest) (entities.PaymentConfirmation, error) {
	token := firstNonEmpty(req.ID, req.Param("token"))
	if token == "" {
		return entities.PaymentConfirmation{}, fmt.Errorf("%w: flow callback without token", entities.ErrInvalidCallback)
	}

	var raw []byte
	if g.mockMode {
		raw, _ = json.Marshal(map[string]any{
			"status":      flowStatusPaid,
			"requestDate": g.now().Format("2006-01-02 15:04:05"),
			"paymentData": map[string]any{"date": g.now().Format("2006-01-02 15:04:05"), "media": "Webpay"},
		})
	} else {
		query := g.sign(map[string]string{"apiKey": g.apiKey, "token": token})
		var status int
		var err error
		raw, status, err = doRequest(ctx, g.http, http.MethodGet, g.baseURL+"/payment/getStatus?"+query.Encode(), "", nil, nil)
		if err != nil {
			log.Printf("[payment][flow] status failed token=%s err=%v", token, err)
			return entities.PaymentConfirmation{}, err
		}
		if err := flowError(raw, status); err != nil {
			log.Printf("[payment][flow] status rejected token=%s status=%d body=%s", token, status, preview(raw))
			return entities.PaymentConfirmation{}, err
		}
	}
	return parseFlowStatus(token, raw)
}

func parseFlowStatus(token string, raw []byte) (entities.PaymentConfirmation, error) {
	var out flowStatusResponse
	if err := decodeJSON(raw, &out); err != nil {
		return entities.PaymentConfirmation{}, fmt.Errorf("%w: flow status: %v", entities.ErrInvalidCallback, err)
	}
	pd := out.PaymentData
	if pd == nil {
		pd = &flowPaymentData{}
	}
	gross := pd.Amount
	if clpAmount(gross) == nil {
		gross = out.Amount
	}

	code, _ := out.Status.Int64()
	c := entities.PaymentConfirmation{
		Gateway:        entities.GatewayFlow,
		TransactionID:  token,
		Status:         flowState(code),
		GatewayStatus:  out.Status.String(),
		GrossAmount:    clpAmount(gross),
		SettledAmount:  netAmount(gross, pd.Fee, pd.Taxes),
		PaymentDate:    firstNonEmpty(pd.Date, out.RequestDate),
		AccountingDate: strings.TrimSpace(pd.TransferDate),
		PayerEmail:     strings.TrimSpace(out.Payer),
		PaymentMethod:  strings.TrimSpace(pd.Media),
		Raw:            raw,
	}
	log.Printf("[payment][flow] status token=%s code=%d state=%s", token, code, c.Status)
	return c, nil
}

func flowState(code int64) entities.FinalState {
	switch code {
	case flowStatusPending:
		return entities.FinalStatePending
	case flowStatusPaid:
		return entities.FinalStateApproved
	case flowStatusRejected:
		return entities.FinalStateRejected
	case flowStatusCancelled:
		return entities.FinalStateCancelled
	}
	return entities.FinalStateUnknown
}

// flowError turns a non 200 answer, or a body carrying a non zero code, into
// an error.
func flowError(raw []byte, status int) error {
	var e flowErrorResponse
	_ = decodeJSON(raw, &e)
	code, _ := e.Code.Int64()
	if status == http.StatusOK && code == 0 {
		return nil
	}
	msg := firstNonEmpty(e.Message, "unknown flow error")
	return fmt.Errorf("%w: flow answered HTTP %d code %d: %s", entities.ErrGatewayUnavailable, status, code, msg)
}

// sign drops empty parameters and adds s, the HMAC-SHA256 of the remaining
// key/value pairs concatenated in key order.
func (g *FlowGateway) sign(params map[string]string) url.Values {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if strings.TrimSpace(v) == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := url.Values{}
	var toSign strings.Builder
	for _, k := range keys {
		v := strings.TrimSpace(params[k])
		toSign.WriteString(k)
		toSign.WriteString(v)
		values.Set(k, v)
	}
	mac := hmac.New(sha256.New, []byte(g.secretKey))
	mac.Write([]byte(toSign.String()))
	values.Set("s", hex.EncodeToString(mac.Sum(nil)))
	return values
}

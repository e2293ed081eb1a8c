package payments

import (
	"bytes"
	"context"
	"crypto/subtle"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"portal_pagos/internal/domain/entities"
	"portal_pagos/internal/infrastructure/config"
	"portal_pagos/internal/infrastructure/soap"
	"portal_pagos/internal/usecase/interfaces"
)

const (
	zumpagoIDLength          = 13
	zumpagoDefaultMethods    = "016"
	zumpagoApprovedResponse  = "000"
	zumpagoDateLayout        = "20060102"
	zumpagoTimeLayout        = "150405"
	zumpagoAccountingDateLen = 8
)

var (
	ErrZumpagoNotConfigured  = errors.New("zumpago gateway not configured")
	ErrZumpagoCipherRequired = errors.New("zumpago gateway requires a payload cipher")
)

// zumpagoVerificationFields are the callback fields covered by
// CodigoVerificacion, in order, with their zero padded widths.
var zumpagoVerificationFields = []struct {
	name  string
	width int
}{
	{"IdComercio", 6},
	{"IdTransaccion", zumpagoIDLength},
	{"Fecha", 8},
	{"Hora", 6},
	{"MontoTotal", 12},
	{"CodigoRespuesta", 3},
	{"FechaProcesamiento", 14},
}

// ZumpagoCipher encrypts the request sent to Zumpago and decrypts its
// answers. key is either the xml key or the verification key.
type ZumpagoCipher interface {
	Encrypt(plain, key string) (string, error)
	Decrypt(cipher, key string) (string, error)
}

// PlainZumpagoCipher leaves payloads untouched. Outside mock mode it is only
// accepted when ZumpagoConfig.AllowPlainCipher is set.
type PlainZumpagoCipher struct{}

func (PlainZumpagoCipher) Encrypt(plain, _ string) (string, error)  { return plain, nil }
func (PlainZumpagoCipher) Decrypt(cipher, _ string) (string, error) { return cipher, nil }

// ZumpagoGateway builds the signed XML redirect Zumpago expects and reads the
// XML it posts back. There is no status API; the callback is the result.
type ZumpagoGateway struct {
	endpoint        string
	companyCode     string
	paymentMethods  string
	xmlKey          string
	verificationKey string
	cipher          ZumpagoCipher
	mockMode        bool
	now             func() time.Time
}

var _ interfaces.IPaymentGateway = (*ZumpagoGateway)(nil)

func NewZumpagoGateway(cfg config.ZumpagoConfig, cipher ZumpagoCipher) (*ZumpagoGateway, error) {
	if cipher == nil {
		cipher = PlainZumpagoCipher{}
	}
	g := &ZumpagoGateway{
		endpoint:        strings.TrimSpace(cfg.URL),
		companyCode:     strings.TrimSpace(cfg.CompanyCode),
		paymentMethods:  firstNonEmpty(cfg.PaymentMethods, zumpagoDefaultMethods),
		xmlKey:          cfg.XMLKey,
		verificationKey: cfg.VerificationKey,
		cipher:          cipher,
		now:             time.Now,
	}
	if isPaymentGatewayMockEnabled() {
		log.Printf("[payment][zumpago] mock mode enabled")
		g.mockMode = true
		return g, nil
	}
	if g.endpoint == "" || g.companyCode == "" {
		log.Printf("[payment][zumpago] missing ZUMPAGO_URL or ZUMPAGO_COMPANY_CODE")
		return nil, ErrZumpagoNotConfigured
	}
	if _, plain := cipher.(PlainZumpagoCipher); plain && !cfg.AllowPlainCipher {
		log.Printf("[payment][zumpago] passthrough cipher refused, set ZUMPAGO_ALLOW_PLAIN_CIPHER to enable it")
		return nil, ErrZumpagoCipherRequired
	}
	return g, nil
}

func (g *ZumpagoGateway) Gateway() entities.Gateway { return entities.GatewayZumpago }

// Start returns the redirect carrying the encrypted request. Its token is the
// IdTransaccion generated here, which Zumpago echoes in the callback.
func (g *ZumpagoGateway) Start(_ context.Context, req entities.StartRequest) (entities.StartResult, error) {
	now := g.now()
	id := zumpagoTransactionID(req.RUT, now)
	date, clock := now.Format(zumpagoDateLayout), now.Format(zumpagoTimeLayout)
	amount := strconv.FormatInt(req.Amount, 10)
	log.Printf("[payment][zumpago] start id=%s amount=%d", id, req.Amount)

	record := map[string]any{
		"zumpago_id": id,
		"fecha":      date,
		"hora":       clock,
	}
	if g.mockMode {
		return entities.StartResult{
			Token:       id,
			RedirectURL: appendQuery(req.ReturnURL, "xml", mockZumpagoResponse(id, amount, now)),
			Method:      http.MethodGet,
			Record:      record,
		}, nil
	}

	plain := leftPad(g.companyCode, 6) + leftPad(id, zumpagoIDLength) + leftPad(date, 8) + leftPad(clock, 6) + leftPad(amount, 12)
	verification, err := g.cipher.Encrypt(plain, g.verificationKey)
	if err != nil {
		return entities.StartResult{}, fmt.Errorf("zumpago verification code: %w", err)
	}

	envelope := zumpagoRequestXML([][2]string{
		{"IdComercio", g.companyCode},
		{"IdTransaccion", id},
		{"Fecha", date},
		{"Hora", clock},
		{"MontoTotal", amount},
		{"MediosPago", g.paymentMethods},
		{"CodigoVerificacion", verification},
	})
	encrypted, err := g.cipher.Encrypt(envelope, g.xmlKey)
	if err != nil {
		return entities.StartResult{}, fmt.Errorf("zumpago request: %w", err)
	}

	base := g.endpoint
	if i := strings.Index(base, "?"); i >= 0 {
		base = base[:i]
	}
	return entities.StartResult{
		Token:       id,
		RedirectURL: base + "?xml=" + url.QueryEscape(encrypted),
		Method:      http.MethodGet,
		Record:      record,
	}, nil
}

// Confirm decrypts and reads the xml parameter of a Zumpago callback. Outside
// mock mode the callback must carry a CodigoVerificacion matching its fields.
func (g *ZumpagoGateway) Confirm(_ context.Context, req entities.ConfirmationRequest) (entities.PaymentConfirmation, error) {
	encrypted := req.Param("xml")
	if encrypted == "" {
		return entities.PaymentConfirmation{}, fmt.Errorf("%w: zumpago callback without xml", entities.ErrInvalidCallback)
	}
	plain, err := g.cipher.Decrypt(encrypted, g.xmlKey)
	if err != nil {
		return entities.PaymentConfirmation{}, fmt.Errorf("%w: zumpago decrypt: %v", entities.ErrInvalidCallback, err)
	}
	fields, err := parseZumpagoXML(plain)
	if err != nil {
		log.Printf("[payment][zumpago] unreadable callback body=%s", preview([]byte(plain)))
		return entities.PaymentConfirmation{}, fmt.Errorf("%w: zumpago xml: %v", entities.ErrInvalidCallback, err)
	}
	if !g.mockMode {
		if err := g.verify(fields); err != nil {
			log.Printf("[payment][zumpago] verification failed id=%s err=%v", fields["IdTransaccion"], err)
			return entities.PaymentConfirmation{}, fmt.Errorf("%w: zumpago %v", entities.ErrInvalidCallback, err)
		}
	}
	return zumpagoConfirmation(firstNonEmpty(req.ID, fields["IdTransaccion"]), fields)
}

func (g *ZumpagoGateway) verify(fields map[string]string) error {
	code := fields["CodigoVerificacion"]
	if code == "" {
		return errors.New("callback without CodigoVerificacion")
	}
	expected, err := zumpagoVerificationString(fields)
	if err != nil {
		return err
	}
	if leftPad(fields["IdComercio"], 6) != leftPad(g.companyCode, 6) {
		return fmt.Errorf("callback for commerce %q", fields["IdComercio"])
	}
	decrypted, err := g.cipher.Decrypt(code, g.verificationKey)
	if err != nil {
		return fmt.Errorf("decrypt verification code: %w", err)
	}
	if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(decrypted)), []byte(expected)) != 1 {
		return errors.New("verification code mismatch")
	}
	return nil
}

func zumpagoVerificationString(fields map[string]string) (string, error) {
	var b strings.Builder
	for _, f := range zumpagoVerificationFields {
		v := strings.TrimSpace(fields[f.name])
		if v == "" {
			return "", fmt.Errorf("callback without %s", f.name)
		}
		b.WriteString(leftPad(v, f.width))
	}
	return b.String(), nil
}

func zumpagoConfirmation(id string, fields map[string]string) (entities.PaymentConfirmation, error) {
	if id == "" {
		return entities.PaymentConfirmation{}, fmt.Errorf("%w: zumpago callback without IdTransaccion", entities.ErrInvalidCallback)
	}
	code := fields["CodigoRespuesta"]
	if code != "" {
		code = leftPad(code, 3)
	}
	state := entities.FinalStateRejected
	switch code {
	case zumpagoApprovedResponse:
		state = entities.FinalStateApproved
	case "":
		state = entities.FinalStateUnknown
	}

	accounting := fields["FechaProcesamiento"]
	if len(accounting) > zumpagoAccountingDateLen {
		accounting = accounting[:zumpagoAccountingDateLen]
	}
	raw, _ := json.Marshal(fields)

	c := entities.PaymentConfirmation{
		Gateway:        entities.GatewayZumpago,
		TransactionID:  id,
		Status:         state,
		GatewayStatus:  code,
		GrossAmount:    clpAmount(fields["MontoTotal"]),
		PaymentDate:    fields["Fecha"],
		AccountingDate: accounting,
		PaymentMethod:  fields["MedioPagoAutorizado"],
		Authorization:  fields["CodigoAutorizacion"],
		Raw:            raw,
	}
	log.Printf("[payment][zumpago] callback id=%s code=%q state=%s", id, code, state)
	return c, nil
}

// zumpagoTransactionID is the last 7 digits of the RUT followed by the last 6
// digits of the millisecond clock, left padded with zeros to 13 digits.
func zumpagoTransactionID(rut string, now time.Time) string {
	body := entities.NormalizeRUT(rut)
	if len(body) > 1 {
		body = body[:len(body)-1]
	}
	body = nonDigits.ReplaceAllString(body, "")
	if len(body) > 7 {
		body = body[len(body)-7:]
	}
	ms := strconv.FormatInt(now.UnixMilli(), 10)
	if len(ms) > 6 {
		ms = ms[len(ms)-6:]
	}
	return leftPad(body+ms, zumpagoIDLength)
}

func zumpagoRequestXML(fields [][2]string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="ISO-8859-1"?><Envio>`)
	for _, f := range fields {
		b.WriteString("<" + f[0] + ">")
		_ = xml.EscapeText(&b, []byte(f[1]))
		b.WriteString("</" + f[0] + ">")
	}
	b.WriteString("</Envio>")
	return b.String()
}

// parseZumpagoXML returns the text of every direct child of the root
// element.
func parseZumpagoXML(doc string) (map[string]string, error) {
	dec := xml.NewDecoder(strings.NewReader(strings.TrimSpace(doc)))
	dec.Strict = false
	dec.CharsetReader = soap.CharsetReader

	fields := map[string]string{}
	depth := 0
	var current string
	var text bytes.Buffer
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if depth == 2 {
				current = t.Name.Local
				text.Reset()
			}
		case xml.CharData:
			if depth == 2 {
				text.Write(t)
			}
		case xml.EndElement:
			if depth == 2 {
				fields[current] = strings.TrimSpace(text.String())
			}
			depth--
		}
	}
	if len(fields) == 0 {
		return nil, errors.New("no fields found")
	}
	return fields, nil
}

func mockZumpagoResponse(id, amount string, now time.Time) string {
	return zumpagoRequestXML([][2]string{
		{"IdTransaccion", id},
		{"Fecha", now.Format(zumpagoDateLayout)},
		{"MontoTotal", amount},
		{"CodigoRespuesta", "0"},
		{"MedioPagoAutorizado", "MOCK"},
		{"FechaProcesamiento", now.Format(zumpagoDateLayout + zumpagoTimeLayout)},
	})
}

func leftPad(s string, width int) string {
	s = strings.TrimSpace(s)
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

package debts

import (
	"encoding/xml"
	"errors"
	"html"
	"io"
	"regexp"
	"strconv"
	"strings"

	"portal_pagos/internal/domain/entities"
	"portal_pagos/internal/infrastructure/soap"
)

var (
	commaBeforeTag = regexp.MustCompile(`,\s*<`)
	commaAfterTag  = regexp.MustCompile(`</(\w+)>\s*,`)
	bareAmpersand  = regexp.MustCompile(`&(amp|lt|gt|quot|apos|#\d+|#x[0-9a-fA-F]+);|&`)
	nonDigits      = regexp.MustCompile(`\D`)
)

// extractPayload returns the text of the <return> (or <ObtenerDeudaResult>)
// element of a SOAP response, or the body itself when there is none. Some
// servers send the records as child elements instead of escaped text; the
// body is returned for those too.
func extractPayload(body string) string {
	dec := newDecoder(body)
	for {
		tok, err := dec.Token()
		if err != nil {
			return body
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local == "return" || start.Name.Local == "ObtenerDeudaResult" {
			var text string
			if err := dec.DecodeElement(&text, &start); err != nil {
				return body
			}
			if strings.TrimSpace(text) == "" && strings.Contains(strings.ToLower(body), "<datos") {
				return body
			}
			return text
		}
	}
}

// parseRecords reads every <datos> block of the payload into a map of
// lower-cased child names to trimmed text.
func parseRecords(payload string) ([]map[string]string, error) {
	dec := newDecoder("<root>" + sanitize(payload) + "</root>")

	var (
		records []map[string]string
		current map[string]string
		field   string
		text    strings.Builder
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if len(records) > 0 {
				break
			}
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			name := strings.ToLower(t.Name.Local)
			switch {
			case name == "datos":
				current = map[string]string{}
			case current != nil && field == "":
				field = name
				text.Reset()
			}
		case xml.CharData:
			if field != "" {
				text.Write(t)
			}
		case xml.EndElement:
			name := strings.ToLower(t.Name.Local)
			switch {
			case name == "datos" && current != nil:
				if len(current) > 0 {
					records = append(records, current)
				}
				current = nil
			case current != nil && name == field:
				current[field] = strings.TrimSpace(text.String())
				field = ""
			}
		}
	}
	return records, nil
}

func sanitize(payload string) string {
	payload = strings.TrimSpace(payload)
	if i := strings.Index(payload, "?>"); strings.HasPrefix(payload, "<?xml") && i > 0 {
		payload = payload[i+2:]
	}
	payload = html.UnescapeString(payload)
	payload = commaBeforeTag.ReplaceAllString(payload, "<")
	payload = commaAfterTag.ReplaceAllString(payload, "</$1>")
	return bareAmpersand.ReplaceAllStringFunc(payload, func(m string) string {
		if m == "&" {
			return "&amp;"
		}
		return m
	})
}

func newDecoder(s string) *xml.Decoder {
	dec := xml.NewDecoder(strings.NewReader(s))
	dec.Strict = false
	dec.CharsetReader = soap.CharsetReader
	return dec
}

func toDebts(rut string, records []map[string]string) []entities.Debt {
	debts := make([]entities.Debt, 0, len(records))
	for _, r := range records {
		amount := normalizeAmount(r["deuda"])
		if amount <= 0 {
			continue
		}
		display := pick(r, "amount_display", "deuda", "monto", "total")
		if display == "" {
			display = strconv.FormatInt(amount, 10)
		}
		debts = append(debts, entities.Debt{
			CompanyID:     r["idempresa"],
			CustomerID:    r["idcliente"],
			RUT:           rut,
			CustomerName:  r["nombre"],
			Address:       r["direccion"],
			Service:       pick(r, "servicio", "detalle", "concepto", "serv"),
			Month:         pick(r, "mes", "periodo", "mes_label"),
			Year:          pick(r, "ano", "anio", "año", "periodo_ano", "ano_label"),
			Amount:        amount,
			AmountDisplay: display,
			Methods: entities.PaymentMethods{
				Webpay:      flag(r, "webpay"),
				BancoEstado: flag(r, "bcoestado", "bancoestado"),
				Zumpago:     flag(r, "zumpago"),
				Flow:        flag(r, "flow"),
				MercadoPago: flag(r, "mercadopago", "mercado_pago"),
			},
		})
	}
	return debts
}

// normalizeAmount keeps only the digits of a display amount ("$ 5.000").
func normalizeAmount(raw string) int64 {
	digits := nonDigits.ReplaceAllString(raw, "")
	if digits == "" {
		return 0
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func pick(r map[string]string, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(r[k]); v != "" {
			return v
		}
	}
	return ""
}

// flag reads the first present key as a tri-state availability flag.
func flag(r map[string]string, keys ...string) *bool {
	for _, k := range keys {
		v, ok := r[k]
		if !ok {
			continue
		}
		return interpretFlag(v)
	}
	return nil
}

func interpretFlag(v string) *bool {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return nil
	}
	if n, err := strconv.ParseFloat(v, 64); err == nil {
		b := int64(n) != 0
		return &b
	}
	var b bool
	switch v {
	case "true", "yes", "si", "habilitado", "on", "available":
		b = true
	case "false", "no", "off", "inhabilitado":
		b = false
	default:
		return nil
	}
	return &b
}

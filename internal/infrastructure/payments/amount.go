package payments

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var nonDigits = regexp.MustCompile(`[^0-9]`)

// clpAmount converts a monetary value as gateways send it (JSON number,
// numeric string or display text such as "$ 7.600") to whole pesos. It
// returns nil when there is no amount at all.
func clpAmount(v any) *int64 {
	var d decimal.Decimal
	switch t := v.(type) {
	case nil:
		return nil
	case float64:
		d = decimal.NewFromFloat(t)
	case int:
		d = decimal.NewFromInt(int64(t))
	case int64:
		d = decimal.NewFromInt(t)
	case json.Number:
		parsed, err := decimal.NewFromString(t.String())
		if err != nil {
			return nil
		}
		d = parsed
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil
		}
		parsed, err := decimal.NewFromString(s)
		if err != nil {
			digits := nonDigits.ReplaceAllString(s, "")
			if digits == "" {
				return nil
			}
			parsed, err = decimal.NewFromString(digits)
			if err != nil {
				return nil
			}
		}
		d = parsed
	default:
		return nil
	}
	n := d.Round(0).IntPart()
	return &n
}

// netAmount is gross minus the given deductions, never below zero. Missing
// deductions count as zero; a missing gross yields nil.
func netAmount(gross any, deductions ...any) *int64 {
	g := clpAmount(gross)
	if g == nil {
		return nil
	}
	net := decimal.NewFromInt(*g)
	for _, d := range deductions {
		if v := clpAmount(d); v != nil {
			net = net.Sub(decimal.NewFromInt(*v))
		}
	}
	if net.IsNegative() {
		net = decimal.Zero
	}
	n := net.IntPart()
	return &n
}

func int64Ptr(v int64) *int64 { return &v }

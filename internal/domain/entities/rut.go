package entities

import (
	"strconv"
	"strings"
)

// NormalizeRUT keeps only digits and the K check digit, upper-cased.
// "12.345.678-k" becomes "12345678K".
func NormalizeRUT(v string) string {
	var b strings.Builder
	for _, r := range v {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == 'k' || r == 'K':
			b.WriteRune('K')
		}
	}
	return b.String()
}

// RUTCheckDigit computes the mod-11 check digit of a RUT body.
func RUTCheckDigit(body string) string {
	sum, mul := 0, 2
	for i := len(body) - 1; i >= 0; i-- {
		sum += int(body[i]-'0') * mul
		mul++
		if mul > 7 {
			mul = 2
		}
	}
	switch rest := 11 - sum%11; rest {
	case 11:
		return "0"
	case 10:
		return "K"
	default:
		return strconv.Itoa(rest)
	}
}

// ValidRUT reports whether v is a well-formed RUT with a matching check digit.
func ValidRUT(v string) bool {
	n := NormalizeRUT(v)
	if len(n) < 2 {
		return false
	}
	body, dv := n[:len(n)-1], n[len(n)-1:]
	if strings.ContainsRune(body, 'K') {
		return false
	}
	return RUTCheckDigit(body) == dv
}

// FormatRUT renders a RUT as 12.345.678-5. Input that cannot be normalized is
// returned unchanged.
func FormatRUT(v string) string {
	n := NormalizeRUT(v)
	if len(n) < 2 {
		return v
	}
	body, dv := n[:len(n)-1], n[len(n)-1:]
	var parts []string
	for len(body) > 3 {
		parts = append([]string{body[len(body)-3:]}, parts...)
		body = body[:len(body)-3]
	}
	parts = append([]string{body}, parts...)
	return strings.Join(parts, ".") + "-" + dv
}

package soap

import (
	"encoding/xml"
	"strings"
	"testing"
)

func TestCharsetReader(t *testing.T) {
	decode := func(t *testing.T, body string) string {
		t.Helper()
		var v struct {
			Name string `xml:"nombre"`
		}
		dec := xml.NewDecoder(strings.NewReader(body))
		dec.CharsetReader = CharsetReader
		if err := dec.Decode(&v); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return v.Name
	}

	t.Run("windows-1252 quotes", func(t *testing.T) {
		body := "<?xml version=\"1.0\" encoding=\"windows-1252\"?><datos><nombre>Jos\xe9 \x93Pepe\x94</nombre></datos>"
		if got := decode(t, body); got != "José “Pepe”" {
			t.Fatalf("unexpected name %q", got)
		}
	})

	t.Run("latin1 label with cp1252 bytes", func(t *testing.T) {
		body := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><datos><nombre>Pe\xf1a \x80 \x96</nombre></datos>"
		if got := decode(t, body); got != "Peña € –" {
			t.Fatalf("unexpected name %q", got)
		}
	})

	t.Run("utf-8 body with latin1 label", func(t *testing.T) {
		body := `<?xml version="1.0" encoding="ISO-8859-1"?><datos><nombre>José</nombre></datos>`
		if got := decode(t, body); got != "José" {
			t.Fatalf("unexpected name %q", got)
		}
	})
}

package soap

import (
	"bytes"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// CharsetReader is an xml.Decoder CharsetReader for the single byte
// encodings the legacy services and Zumpago declare. Bodies declared as
// latin1 are read as windows-1252, its superset in the 0x80-0x9F range,
// and bodies that are already valid UTF-8 are passed through.
func CharsetReader(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "iso-8859-1", "iso8859-1", "latin1", "latin-1", "windows-1252", "cp1252":
		raw, err := io.ReadAll(input)
		if err != nil {
			return nil, err
		}
		if utf8.Valid(raw) {
			return bytes.NewReader(raw), nil
		}
		return charmap.Windows1252.NewDecoder().Reader(bytes.NewReader(raw)), nil
	}
	return input, nil
}

// Package soap holds the small rpc/encoded SOAP client shared by the legacy
// homenet services.
package soap

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const envelopeTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<soapenv:Envelope xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xmlns:xsd="http://www.w3.org/2001/XMLSchema" xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/" xmlns:ws="http://ws.homenet.cl">
   <soapenv:Header/>
   <soapenv:Body>
      <ws:%[1]s soapenv:encodingStyle="http://schemas.xmlsoap.org/soap/encoding/">
         %[2]s
      </ws:%[1]s>
   </soapenv:Body>
</soapenv:Envelope>`

// Field is one typed argument of an rpc/encoded SOAP call.
type Field struct {
	Name  string
	Type  string
	Value string
}

// BuildEnvelope renders an rpc/encoded call of operation in the
// http://ws.homenet.cl namespace.
func BuildEnvelope(operation string, fields []Field) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		var buf bytes.Buffer
		_ = xml.EscapeText(&buf, []byte(f.Value))
		parts = append(parts, fmt.Sprintf(`<%[1]s xsi:type="%[2]s">%[3]s</%[1]s>`, f.Name, f.Type, buf.String()))
	}
	return fmt.Sprintf(envelopeTemplate, operation, strings.Join(parts, "\n         "))
}

// ServiceURL drops the query string (usually "?wsdl") of a configured
// endpoint.
func ServiceURL(endpoint string) string {
	endpoint = strings.TrimSpace(endpoint)
	if i := strings.Index(endpoint, "?"); i >= 0 {
		return endpoint[:i]
	}
	return endpoint
}

// Action is <service url>/<operation>.
func Action(serviceURL, operation string) string {
	return strings.TrimRight(serviceURL, "/") + "/" + operation
}

// Call posts envelope to the service URL of endpoint. It returns the response
// body and status even when the status is an error one.
func Call(ctx context.Context, client *http.Client, endpoint, operation, envelope string) (string, int, error) {
	url := ServiceURL(endpoint)
	if url == "" {
		return "", 0, fmt.Errorf("%s: empty endpoint", operation)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(envelope))
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("Content-Type", "text/xml;charset=UTF-8")
	req.Header.Set("SOAPAction", `"`+Action(url, operation)+`"`)

	resp, err := client.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("%s: %w", operation, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", resp.StatusCode, fmt.Errorf("%s: read response: %w", operation, err)
	}
	return string(body), resp.StatusCode, nil
}

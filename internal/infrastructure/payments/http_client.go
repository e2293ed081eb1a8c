package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"portal_pagos/internal/domain/entities"
)

// GatewayTimeout bounds every call to a payment gateway.
const GatewayTimeout = 30 * time.Second

func defaultHTTPClient(c *http.Client) *http.Client {
	if c != nil {
		return c
	}
	return &http.Client{Timeout: GatewayTimeout}
}

// doRequest sends body (already encoded) and returns the raw response. Any
// transport failure is reported as entities.ErrGatewayUnavailable.
func doRequest(ctx context.Context, client *http.Client, method, url, contentType string, body io.Reader, headers map[string]string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, 0, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", entities.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: read response: %v", entities.ErrGatewayUnavailable, err)
	}
	return raw, resp.StatusCode, nil
}

// decodeJSON decodes raw keeping numbers as json.Number.
func decodeJSON(raw []byte, out any) error {
	dec := json.NewDecoder(strings.NewReader(string(raw)))
	dec.UseNumber()
	return dec.Decode(out)
}

// preview trims a gateway response for logs.
func preview(raw []byte) string {
	const max = 300
	s := strings.TrimSpace(string(raw))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}

// cleanDate drops the zero timestamps some SDKs emit for unset dates.
func cleanDate(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0001-01-01") {
		return ""
	}
	return s
}

package debts

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"portal_pagos/internal/domain/entities"
	"portal_pagos/internal/infrastructure/soap"
	"portal_pagos/internal/usecase/interfaces"
)

const (
	operationObtenerDeuda = "ObtenerDeuda"
	defaultTimeout        = 20 * time.Second
	invalidRUTMarker      = "RUT NO EXISTE"
)

var ErrNoEndpoints = errors.New("no debt lookup endpoint configured")

// SoapDebtLookup queries ObtenerDeuda on each configured endpoint in order
// until one answers with a usable payload.
type SoapDebtLookup struct {
	endpoints []string
	http      *http.Client
}

var _ interfaces.IDebtLookup = (*SoapDebtLookup)(nil)

// NewSoapDebtLookup keeps the non-empty endpoints, without duplicates, in
// the given order.
func NewSoapDebtLookup(httpClient *http.Client, endpoints ...string) *SoapDebtLookup {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	seen := map[string]bool{}
	var list []string
	for _, e := range endpoints {
		e = strings.TrimSpace(e)
		if e == "" || seen[e] {
			continue
		}
		seen[e] = true
		list = append(list, e)
	}
	return &SoapDebtLookup{endpoints: list, http: httpClient}
}

// Fetch returns the positive debts of rut. An endpoint that fails, answers
// empty or does not know the RUT is skipped; the last transport error is
// returned only when no endpoint produced a payload.
func (l *SoapDebtLookup) Fetch(ctx context.Context, rut string) ([]entities.Debt, error) {
	if len(l.endpoints) == 0 {
		return nil, ErrNoEndpoints
	}
	envelope := soap.BuildEnvelope(operationObtenerDeuda, []soap.Field{
		{Name: "Rut_Cliente", Type: "xsd:string", Value: rut},
	})

	var lastErr error
	for _, endpoint := range l.endpoints {
		body, status, err := soap.Call(ctx, l.http, endpoint, operationObtenerDeuda, envelope)
		if err == nil && status >= http.StatusBadRequest {
			err = fmt.Errorf("%s answered HTTP %d", operationObtenerDeuda, status)
		}
		if err != nil {
			log.Printf("[debts][lookup] endpoint failed endpoint=%s rut=%s err=%v", endpoint, rut, err)
			lastErr = err
			continue
		}

		payload := strings.TrimSpace(extractPayload(body))
		if payload == "" {
			log.Printf("[debts][lookup] empty response endpoint=%s rut=%s", endpoint, rut)
			continue
		}
		if strings.Contains(strings.ToUpper(payload), invalidRUTMarker) {
			log.Printf("[debts][lookup] rut unknown endpoint=%s rut=%s", endpoint, rut)
			continue
		}

		records, err := parseRecords(payload)
		if err != nil {
			log.Printf("[debts][lookup] unreadable payload endpoint=%s rut=%s err=%v", endpoint, rut, err)
			lastErr = err
			continue
		}
		debts := toDebts(rut, records)
		log.Printf("[debts][lookup] done endpoint=%s rut=%s records=%d debts=%d", endpoint, rut, len(records), len(debts))
		return debts, nil
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return []entities.Debt{}, nil
}

package legacy

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"portal_pagos/internal/domain/entities"
	"portal_pagos/internal/infrastructure/soap"
	"portal_pagos/internal/usecase/interfaces"
)

const (
	operationIngresarPago = "IngresarPago"
	defaultTimeout        = 20 * time.Second
)

var (
	ErrInvalidPayment = errors.New("payment record has no valid data for IngresarPago")
	ErrHTTPStatus     = errors.New("IngresarPago answered with an error status")
)

// IngresarPagoClient submits payment records to one IngresarPago endpoint.
type IngresarPagoClient struct {
	endpoint string
	http     *http.Client
}

var _ interfaces.ILegacyDispatcher = (*IngresarPagoClient)(nil)

func NewIngresarPagoClient(endpoint string, httpClient *http.Client) *IngresarPagoClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &IngresarPagoClient{endpoint: endpoint, http: httpClient}
}

func (c *IngresarPagoClient) Endpoint() string { return c.endpoint }

// Dispatch sends p. The returned dispatch always carries the endpoint and
// envelope so failures can be logged with them.
func (c *IngresarPagoClient) Dispatch(ctx context.Context, p entities.LegacyPayment) (entities.LegacyDispatch, error) {
	envelope := PreviewEnvelope(p)
	d := entities.LegacyDispatch{Endpoint: c.endpoint, Payload: p, Envelope: envelope}
	if !p.Valid() {
		return d, ErrInvalidPayment
	}

	body, status, err := soap.Call(ctx, c.http, c.endpoint, operationIngresarPago, envelope)
	d.Response = body
	d.HTTPStatus = status
	if err != nil {
		log.Printf("[legacy][ingresar_pago] transport failure endpoint=%s company=%s customer=%d err=%v", c.endpoint, p.IdEmpresa, p.IdCliente, err)
		return d, err
	}
	if status >= http.StatusBadRequest {
		log.Printf("[legacy][ingresar_pago] http error endpoint=%s status=%d company=%s customer=%d", c.endpoint, status, p.IdEmpresa, p.IdCliente)
		return d, fmt.Errorf("%w: HTTP %d", ErrHTTPStatus, status)
	}
	log.Printf("[legacy][ingresar_pago] accepted endpoint=%s status=%d company=%s customer=%d amount=%d", c.endpoint, status, p.IdEmpresa, p.IdCliente, p.MontoFlow)
	return d, nil
}

// PreviewEnvelope renders the IngresarPago envelope for p. Empty string
// fields are left out.
func PreviewEnvelope(p entities.LegacyPayment) string {
	var fields []soap.Field
	str := func(name, v string) {
		if v != "" {
			fields = append(fields, soap.Field{Name: name, Type: "xsd:string", Value: v})
		}
	}
	num := func(name string, v int64) {
		fields = append(fields, soap.Field{Name: name, Type: "xsd:int", Value: strconv.FormatInt(v, 10)})
	}

	str("IdEmpresa", p.IdEmpresa)
	num("IdCliente", p.IdCliente)
	str("RutCliente", p.RutCliente)
	str("Mail", p.Mail)
	str("Recaudador", p.Recaudador)
	str("Canal", p.Canal)
	str("FechaPago", p.FechaPago)
	str("FechaContable", p.FechaContable)
	num("Mes", int64(p.Mes))
	num("Ano", int64(p.Ano))
	num("Monto", p.Monto)
	num("MontoFlow", p.MontoFlow)
	return soap.BuildEnvelope(operationIngresarPago, fields)
}

package legacy

import (
	"context"
	"net/http"

	"portal_pagos/internal/domain/entities"
	"portal_pagos/internal/usecase/interfaces"
)

// Router sends each record to the IngresarPago endpoint of its company.
// Companies are matched by normalized RUT; unknown ones go to the default
// endpoint.
type Router struct {
	fallback  *IngresarPagoClient
	companies map[string]*IngresarPagoClient
}

var _ interfaces.ILegacyDispatcher = (*Router)(nil)

func NewRouter(defaultEndpoint string, companies map[string]string, httpClient *http.Client) *Router {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	r := &Router{
		fallback:  NewIngresarPagoClient(defaultEndpoint, httpClient),
		companies: make(map[string]*IngresarPagoClient, len(companies)),
	}
	for company, endpoint := range companies {
		if endpoint == "" {
			continue
		}
		r.companies[entities.NormalizeRUT(company)] = NewIngresarPagoClient(endpoint, httpClient)
	}
	return r
}

// EndpointFor returns the endpoint a record of company is sent to.
func (r *Router) EndpointFor(company string) string {
	return r.clientFor(company).Endpoint()
}

func (r *Router) Dispatch(ctx context.Context, p entities.LegacyPayment) (entities.LegacyDispatch, error) {
	return r.clientFor(p.IdEmpresa).Dispatch(ctx, p)
}

func (r *Router) clientFor(company string) *IngresarPagoClient {
	if c, ok := r.companies[entities.NormalizeRUT(company)]; ok {
		return c
	}
	return r.fallback
}

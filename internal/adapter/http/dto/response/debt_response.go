package response

import "portal_pagos/internal/domain/entities"

type DebtResponse struct {
	CompanyID     string          `json:"company_id"`
	CustomerID    string          `json:"customer_id"`
	CustomerName  string          `json:"customer_name,omitempty"`
	Address       string          `json:"address,omitempty"`
	Service       string          `json:"service,omitempty"`
	Month         string          `json:"month"`
	Year          string          `json:"year"`
	Amount        int64           `json:"amount"`
	AmountDisplay string          `json:"amount_display,omitempty"`
	Gateways      map[string]bool `json:"gateways"`
}

type DebtListResponse struct {
	RUT   string         `json:"rut"`
	Total int64          `json:"total"`
	Debts []DebtResponse `json:"debts"`
}

func FromDebts(rut string, debts []entities.Debt) DebtListResponse {
	out := DebtListResponse{RUT: entities.FormatRUT(rut), Debts: make([]DebtResponse, 0, len(debts))}
	for _, d := range debts {
		gateways := make(map[string]bool, len(entities.Gateways))
		for _, g := range entities.Gateways {
			gateways[string(g)] = d.Methods.Allows(g)
		}
		out.Debts = append(out.Debts, DebtResponse{
			CompanyID:     d.CompanyID,
			CustomerID:    d.CustomerID,
			CustomerName:  d.CustomerName,
			Address:       d.Address,
			Service:       d.Service,
			Month:         d.Month,
			Year:          d.Year,
			Amount:        d.Amount,
			AmountDisplay: d.AmountDisplay,
			Gateways:      gateways,
		})
		out.Total += d.Amount
	}
	return out
}

package response

import "portal_pagos/internal/usecase"

// CheckoutResponse tells the browser how to reach the gateway. When Method is
// POST the front end submits Form to RedirectURL.
type CheckoutResponse struct {
	TransactionID string            `json:"transaction_id"`
	Gateway       string            `json:"gateway"`
	Amount        int64             `json:"amount"`
	RedirectURL   string            `json:"redirect_url"`
	Method        string            `json:"method"`
	Form          map[string]string `json:"form,omitempty"`
	Debts         []DebtResponse    `json:"debts"`
}

func FromCheckout(r usecase.CheckoutResult) CheckoutResponse {
	return CheckoutResponse{
		TransactionID: r.TransactionID,
		Gateway:       string(r.Gateway),
		Amount:        r.Amount,
		RedirectURL:   r.Start.RedirectURL,
		Method:        r.Start.Method,
		Form:          r.Start.Form,
		Debts:         FromDebts("", r.Debts).Debts,
	}
}

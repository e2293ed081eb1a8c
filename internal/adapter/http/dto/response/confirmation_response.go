package response

import (
	"portal_pagos/internal/domain/entities"
	"portal_pagos/internal/usecase"
)

// ConfirmationResponse is the outcome page data shown to the customer after
// the gateway hands them back.
type ConfirmationResponse struct {
	Gateway       string   `json:"gateway"`
	TransactionID string   `json:"transaction_id"`
	Status        string   `json:"status"`
	GatewayStatus string   `json:"gateway_status,omitempty"`
	Reported      bool     `json:"reported"`
	Outcome       string   `json:"outcome"`
	Message       string   `json:"message"`
	Amount        *int64   `json:"amount,omitempty"`
	PaymentDate   string   `json:"payment_date,omitempty"`
	PaidIDs       []string `json:"paid_ids,omitempty"`
}

func FromConfirmation(r usecase.ConfirmationResult) ConfirmationResponse {
	c := r.Confirmation
	out := ConfirmationResponse{
		Gateway:       string(r.Gateway),
		TransactionID: c.TransactionID,
		Status:        string(c.Status),
		GatewayStatus: c.GatewayStatus,
		Outcome:       string(r.Report.Outcome),
		Reported:      r.Report.Outcome == usecase.OutcomeReported || r.Report.Outcome == usecase.OutcomeAlreadyProcessed,
		Amount:        c.GrossAmount,
		PaymentDate:   c.PaymentDate,
		PaidIDs:       r.Transaction.SelectedIDs,
	}
	if out.Amount == nil && r.Transaction.Amount > 0 {
		amount := r.Transaction.Amount
		out.Amount = &amount
	}
	out.Message = confirmationMessage(r)
	return out
}

func confirmationMessage(r usecase.ConfirmationResult) string {
	switch r.Confirmation.Status {
	case entities.FinalStateApproved:
		switch r.Report.Outcome {
		case usecase.OutcomeReported, usecase.OutcomeAlreadyProcessed:
			return "Your payment was received and registered."
		case usecase.OutcomeInProgress:
			return "Your payment was received and is being registered."
		}
		return "Your payment was received. It will be registered shortly."
	case entities.FinalStatePending:
		return "Your payment is pending confirmation by the gateway."
	case entities.FinalStateCancelled:
		return "The payment was cancelled."
	case entities.FinalStateRejected:
		return "The payment was rejected by the gateway."
	}
	return "We could not determine the state of your payment."
}

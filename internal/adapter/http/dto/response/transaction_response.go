package response

import "portal_pagos/internal/domain/entities"

// TransactionStatusResponse is the reporting state of a stored transaction.
// Customer data and raw gateway payloads are left out.
type TransactionStatusResponse struct {
	ID          string `json:"id"`
	Gateway     string `json:"gateway"`
	Amount      int64  `json:"amount"`
	Debts       int    `json:"debts"`
	CreatedAt   int64  `json:"created_at"`
	Processed   bool   `json:"processed"`
	ProcessedAt *int64 `json:"processed_at"`
	Attempts    int    `json:"attempts"`
}

func FromTransactionDocument(gateway entities.Gateway, doc entities.Document) (TransactionStatusResponse, error) {
	tx, err := entities.TransactionFromDocument(doc)
	if err != nil {
		return TransactionStatusResponse{}, err
	}
	return TransactionStatusResponse{
		ID:          tx.ID,
		Gateway:     string(gateway),
		Amount:      tx.Amount,
		Debts:       len(tx.Debts),
		CreatedAt:   tx.CreatedAt,
		Processed:   doc.Processed(),
		ProcessedAt: tx.IngresarPago.ProcessedAt,
		Attempts:    len(tx.IngresarPago.Attempts),
	}, nil
}

package usecase

import (
	"context"
	"fmt"
	"log"
	"portal_pagos/internal/domain/entities"
	"portal_pagos/internal/usecase/interfaces"
	"time"
)

// ConfirmationResult is what a callback handler needs to answer the gateway
// and render the outcome to the customer.
type ConfirmationResult struct {
	Gateway      entities.Gateway
	Confirmation entities.PaymentConfirmation
	Report       ReportResult
	Transaction  entities.Transaction
}

// IConfirmationUseCase handles gateway callbacks (browser returns and
// server-to-server notifications alike).
type IConfirmationUseCase interface {
	Confirm(ctx context.Context, gateway entities.Gateway, req entities.ConfirmationRequest) (ConfirmationResult, error)
	GetTransaction(ctx context.Context, gateway entities.Gateway, id string) (entities.Document, error)
}

type ConfirmationUseCase struct {
	gateways  map[entities.Gateway]interfaces.IGatewayAdapter
	stores    map[entities.Gateway]interfaces.ITransactionStore
	reporters map[entities.Gateway]ILegacyReporter
	cache     interfaces.ISnapshotCache
	now       func() time.Time
}

var _ IConfirmationUseCase = (*ConfirmationUseCase)(nil)

func NewConfirmationUseCase(
	gateways map[entities.Gateway]interfaces.IGatewayAdapter,
	stores map[entities.Gateway]interfaces.ITransactionStore,
	reporters map[entities.Gateway]ILegacyReporter,
	cache interfaces.ISnapshotCache,
) *ConfirmationUseCase {
	return &ConfirmationUseCase{
		gateways:  gateways,
		stores:    stores,
		reporters: reporters,
		cache:     cache,
		now:       time.Now,
	}
}

// Confirm asks the gateway adapter for the canonical confirmation, keeps the
// raw gateway response with the transaction and reports approved payments.
//
// Only hard reporting failures are returned as errors; soft outcomes are in
// Report.Outcome.
func (u *ConfirmationUseCase) Confirm(ctx context.Context, gateway entities.Gateway, req entities.ConfirmationRequest) (ConfirmationResult, error) {
	adapter, store, reporter := u.gateways[gateway], u.stores[gateway], u.reporters[gateway]
	if adapter == nil || store == nil || reporter == nil {
		return ConfirmationResult{}, fmt.Errorf("%w: %s", ErrUnsupportedGateway, gateway)
	}
	log.Printf("[confirm][usecase] start gateway=%s id=%q", gateway, req.ID)

	c, err := adapter.Confirm(ctx, req)
	if err != nil {
		log.Printf("[confirm][usecase] adapter failed gateway=%s id=%q err=%v", gateway, req.ID, err)
		return ConfirmationResult{Gateway: gateway}, err
	}
	result := ConfirmationResult{Gateway: gateway, Confirmation: c}

	// Responses are only kept for transactions started here; the reporter
	// reports unknown ids as not found.
	doc, err := store.Get(ctx, c.TransactionID)
	switch {
	case err != nil:
		log.Printf("[confirm][usecase] could not load transaction gateway=%s id=%s err=%v", gateway, c.TransactionID, err)
	case doc == nil:
		log.Printf("[confirm][usecase] callback for unknown transaction gateway=%s id=%s", gateway, c.TransactionID)
	default:
		doc, err = store.AppendResponse(ctx, c.TransactionID, map[string]any{
			"received_at":    u.now().UTC().Format(time.RFC3339),
			"status":         string(c.Status),
			"gateway_status": c.GatewayStatus,
			"raw":            jsonValue(c.Raw),
		})
		if err != nil {
			log.Printf("[confirm][usecase] could not store gateway response gateway=%s id=%s err=%v", gateway, c.TransactionID, err)
		}
	}
	if doc != nil {
		if tx, err := entities.TransactionFromDocument(doc); err == nil {
			result.Transaction = tx
		}
	}

	report, err := reporter.Report(ctx, c)
	result.Report = report
	if err != nil {
		log.Printf("[confirm][usecase] report failed gateway=%s id=%s err=%v", gateway, c.TransactionID, err)
		return result, err
	}

	if report.Outcome == OutcomeReported && u.cache != nil && result.Transaction.RUT != "" {
		u.cache.Delete(ctx, entities.NormalizeRUT(result.Transaction.RUT))
	}
	log.Printf("[confirm][usecase] done gateway=%s id=%s status=%s outcome=%s", gateway, c.TransactionID, c.Status, report.Outcome)
	return result, nil
}

// GetTransaction returns the stored document of a transaction.
func (u *ConfirmationUseCase) GetTransaction(ctx context.Context, gateway entities.Gateway, id string) (entities.Document, error) {
	store := u.stores[gateway]
	if store == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedGateway, gateway)
	}
	doc, err := store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrTransactionNotFound
	}
	return doc, nil
}

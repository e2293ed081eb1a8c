package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"portal_pagos/internal/domain/entities"
	"portal_pagos/internal/usecase/interfaces"
	"time"
)

// ReportOutcome names the state a report ended in.
type ReportOutcome string

const (
	OutcomeReported         ReportOutcome = "reported"
	OutcomeAlreadyProcessed ReportOutcome = "already_processed"
	OutcomeNotFound         ReportOutcome = "not_found"
	OutcomeStatusNotFinal   ReportOutcome = "status_not_final"
	OutcomeNoPayloads       ReportOutcome = "no_payloads"
	OutcomeInProgress       ReportOutcome = "in_progress"
	OutcomeDispatchFailed   ReportOutcome = "dispatch_failed"
	OutcomeStorageFailed    ReportOutcome = "storage_failed"
)

const defaultReportLease = 2 * time.Minute

// ReportResult describes what a call to Report did. Reason is set for soft
// outcomes, which are never returned as errors.
type ReportResult struct {
	Outcome    ReportOutcome             `json:"outcome"`
	Payloads   []entities.LegacyPayment  `json:"payloads,omitempty"`
	Dispatches []entities.LegacyDispatch `json:"dispatches,omitempty"`
	Reason     error                     `json:"-"`
}

// ILegacyReporter reports a confirmed payment to the legacy accounting
// service at most once.
type ILegacyReporter interface {
	Report(ctx context.Context, c entities.PaymentConfirmation) (ReportResult, error)
}

// LegacyReporter is the reporter of one gateway.
//
// The flow is: load transaction, skip if already processed, require a final
// successful gateway status, build the payloads, dispatch them one by one and
// mark the transaction processed once all were accepted. The first dispatch
// failure stops the loop; payloads already accepted are not rolled back and
// the transaction stays unprocessed so a later callback retries the batch.
type LegacyReporter struct {
	gateway    entities.Gateway
	store      interfaces.ITransactionStore
	builder    *PayloadBuilder
	dispatcher interfaces.ILegacyDispatcher

	locker    interfaces.IReportLocker
	auditLog  interfaces.IReportLog
	publisher interfaces.IReportPublisher
	metrics   interfaces.IReportMetrics
	leaseTTL  time.Duration
	location  *time.Location
	now       func() time.Time
}

var _ ILegacyReporter = (*LegacyReporter)(nil)

type LegacyReporterOption func(*LegacyReporter)

func WithReportLocker(l interfaces.IReportLocker, ttl time.Duration) LegacyReporterOption {
	return func(r *LegacyReporter) {
		r.locker = l
		if ttl > 0 {
			r.leaseTTL = ttl
		}
	}
}

func WithReportLog(l interfaces.IReportLog) LegacyReporterOption {
	return func(r *LegacyReporter) { r.auditLog = l }
}

func WithReportPublisher(p interfaces.IReportPublisher) LegacyReporterOption {
	return func(r *LegacyReporter) { r.publisher = p }
}

func WithReportMetrics(m interfaces.IReportMetrics) LegacyReporterOption {
	return func(r *LegacyReporter) { r.metrics = m }
}

func WithPayloadBuilder(b *PayloadBuilder) LegacyReporterOption {
	return func(r *LegacyReporter) { r.builder = b }
}

// WithDateLocation sets the zone legacy dates are rendered in.
func WithDateLocation(loc *time.Location) LegacyReporterOption {
	return func(r *LegacyReporter) { r.location = loc }
}

func WithClock(now func() time.Time) LegacyReporterOption {
	return func(r *LegacyReporter) { r.now = now }
}

func NewLegacyReporter(gateway entities.Gateway, store interfaces.ITransactionStore, dispatcher interfaces.ILegacyDispatcher, opts ...LegacyReporterOption) *LegacyReporter {
	r := &LegacyReporter{
		gateway:    gateway,
		store:      store,
		dispatcher: dispatcher,
		builder:    NewPayloadBuilder(gateway),
		leaseTTL:   defaultReportLease,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.location != nil && r.builder != nil {
		r.builder.Location = r.location
	}
	return r
}

func (r *LegacyReporter) Report(ctx context.Context, c entities.PaymentConfirmation) (res ReportResult, err error) {
	id := c.TransactionID
	started := r.now()
	defer func() {
		if r.metrics != nil {
			r.metrics.ObserveReport(r.gateway, string(res.Outcome), r.now().Sub(started))
		}
	}()
	log.Printf("[report][%s] start id=%s status=%s", r.gateway, id, c.Status)

	if r.locker != nil {
		release, ok, lockErr := r.locker.Acquire(ctx, string(r.gateway)+":"+id, r.leaseTTL)
		switch {
		case lockErr != nil:
			log.Printf("[report][%s] lease unavailable, continuing without it id=%s err=%v", r.gateway, id, lockErr)
		case !ok:
			log.Printf("[report][%s] lease held by another callback id=%s", r.gateway, id)
			return ReportResult{Outcome: OutcomeInProgress}, nil
		default:
			defer release()
		}
	}

	doc, err := r.store.Get(ctx, id)
	if err != nil {
		log.Printf("[report][%s] load failed id=%s err=%v", r.gateway, id, err)
		return ReportResult{Outcome: OutcomeStorageFailed}, fmt.Errorf("load transaction %s: %w", id, err)
	}
	if doc == nil {
		r.failure(id, "stored transaction not found", nil, c, nil, nil)
		return ReportResult{Outcome: OutcomeNotFound, Reason: ErrTransactionNotFound}, nil
	}
	if doc.Processed() {
		log.Printf("[report][%s] already processed id=%s", r.gateway, id)
		return ReportResult{Outcome: OutcomeAlreadyProcessed}, nil
	}
	if !c.Approved() {
		r.failure(id, fmt.Sprintf("skipped: gateway status %q is not a final success", c.GatewayStatus), doc, c, nil, nil)
		return ReportResult{Outcome: OutcomeStatusNotFinal, Reason: ErrGatewayStatusNotFinal}, nil
	}

	tx, err := entities.TransactionFromDocument(doc)
	if err != nil {
		r.failure(id, "stored transaction is malformed: "+err.Error(), doc, c, nil, nil)
		return ReportResult{Outcome: OutcomeNoPayloads, Reason: ErrNoPayloadsGenerated}, nil
	}

	payloads := r.builder.Build(tx, c)
	if len(payloads) == 0 {
		r.failure(id, "no valid legacy payloads were generated", doc, c, nil, nil)
		return ReportResult{Outcome: OutcomeNoPayloads, Reason: ErrNoPayloadsGenerated}, nil
	}

	res = ReportResult{Outcome: OutcomeDispatchFailed, Payloads: payloads}
	for i := range payloads {
		p := payloads[i]
		dispatch, dErr := r.dispatcher.Dispatch(ctx, p)
		if r.metrics != nil {
			r.metrics.ObserveDispatch(r.gateway, dispatch.Endpoint, dErr == nil)
		}
		if dErr != nil {
			r.failure(id, dErr.Error(), doc, c, &p, &dispatch)
			r.recordAttempt(ctx, id, doc, p, dispatch, dErr)
			return res, fmt.Errorf("%w: company=%s customer=%d: %w", ErrDispatchFailure, p.IdEmpresa, p.IdCliente, dErr)
		}
		res.Dispatches = append(res.Dispatches, dispatch)
	}

	if _, err := r.store.MarkProcessed(ctx, id, map[string]any{"responses": jsonValue(res.Dispatches)}); err != nil {
		r.failure(id, "could not update local state after reporting: "+err.Error(), doc, c, nil, nil)
		res.Outcome = OutcomeStorageFailed
		return res, fmt.Errorf("%w: %w", ErrStorageUpdateFailure, err)
	}
	res.Outcome = OutcomeReported

	if r.auditLog != nil {
		r.auditLog.Success(r.gateway, entities.ReportLogEntry{
			Token:           id,
			Collector:       r.builder.Collector,
			Payloads:        payloads,
			Responses:       res.Dispatches,
			Transaction:     sanitizeTransaction(doc),
			GatewayResponse: c.Raw,
		})
	}
	r.publish(ctx, tx, payloads)
	log.Printf("[report][%s] success id=%s payloads=%d", r.gateway, id, len(payloads))
	return res, nil
}

func (r *LegacyReporter) failure(id, message string, doc entities.Document, c entities.PaymentConfirmation, p *entities.LegacyPayment, d *entities.LegacyDispatch) {
	log.Printf("[report][%s] %s id=%s", r.gateway, message, id)
	if r.auditLog == nil {
		return
	}
	entry := entities.ReportLogEntry{
		Token:           id,
		Collector:       r.builder.Collector,
		Message:         message,
		Payload:         p,
		Transaction:     sanitizeTransaction(doc),
		GatewayResponse: c.Raw,
	}
	if d != nil {
		entry.TargetEndpoint = d.Endpoint
		entry.Envelope = d.Envelope
	}
	r.auditLog.Failure(r.gateway, entry)
}

// recordAttempt appends the failed dispatch to ingresar_pago.attempts. It is
// best effort: the dispatch error is what the caller sees.
func (r *LegacyReporter) recordAttempt(ctx context.Context, id string, doc entities.Document, p entities.LegacyPayment, d entities.LegacyDispatch, cause error) {
	var attempts []any
	if meta, ok := entities.AsMap(doc["ingresar_pago"]); ok {
		attempts, _ = meta["attempts"].([]any)
	}
	attempt := map[string]any{
		"at":          r.now().Unix(),
		"error":       cause.Error(),
		"wsdl":        d.Endpoint,
		"http_status": d.HTTPStatus,
		"IdEmpresa":   p.IdEmpresa,
		"IdCliente":   p.IdCliente,
	}
	next := append(append([]any{}, attempts...), attempt)
	if _, err := r.store.Merge(ctx, id, entities.Document{"ingresar_pago": map[string]any{"attempts": next}}); err != nil {
		log.Printf("[report][%s] could not record attempt id=%s err=%v", r.gateway, id, err)
	}
}

func (r *LegacyReporter) publish(ctx context.Context, tx entities.Transaction, payloads []entities.LegacyPayment) {
	if r.publisher == nil {
		return
	}
	var settled int64
	for _, p := range payloads {
		settled += p.MontoFlow
	}
	event := entities.PaymentReportedEvent{
		Gateway:       r.gateway,
		TransactionID: tx.ID,
		RUT:           tx.RUT,
		Email:         tx.Email,
		Amount:        tx.Amount,
		SettledAmount: settled,
		Records:       len(payloads),
		ReportedAt:    r.now().UTC(),
	}
	if err := r.publisher.PublishReported(ctx, event); err != nil {
		log.Printf("[report][%s] publish failed id=%s err=%v", r.gateway, tx.ID, err)
	}
}

// sanitizeTransaction keeps only the identifying fields of a stored
// transaction for the audit log.
func sanitizeTransaction(doc entities.Document) map[string]any {
	if doc == nil {
		return nil
	}
	out := map[string]any{}
	for _, k := range []string{"id", "token", "rut", "email", "amount", "selected_ids", "buy_order"} {
		if v, ok := doc[k]; ok {
			out[k] = v
		}
	}
	return out
}

// jsonValue converts v to the generic shape it will have once persisted.
func jsonValue(v any) any {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil
	}
	return out
}

package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"portal_pagos/internal/domain/entities"
	"portal_pagos/internal/usecase/interfaces"
	mock_interfaces "portal_pagos/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

// memoryStore is an in-memory ITransactionStore with the same document
// semantics as the persistent stores.
type memoryStore struct {
	mu        sync.Mutex
	namespace string
	docs      map[string]entities.Document
}

var _ interfaces.ITransactionStore = (*memoryStore)(nil)

func newMemoryStore(namespace string) *memoryStore {
	return &memoryStore{namespace: namespace, docs: map[string]entities.Document{}}
}

func (s *memoryStore) Namespace() string { return s.namespace }

func (s *memoryStore) Save(_ context.Context, id string, doc entities.Document) (entities.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[id] = entities.PrepareDocument(s.namespace, id, doc)
	return s.docs[id].Clone(), nil
}

func (s *memoryStore) Get(_ context.Context, id string) (entities.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.docs[id].Clone(), nil
}

func (s *memoryStore) Merge(_ context.Context, id string, partial entities.Document) (entities.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[id]
	if !ok {
		return nil, nil
	}
	s.docs[id] = entities.MergeDocuments(doc, partial)
	return s.docs[id].Clone(), nil
}

func (s *memoryStore) AppendResponse(_ context.Context, id string, response any) (entities.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[id] = entities.AppendResponse(s.namespace, id, s.docs[id], response)
	return s.docs[id].Clone(), nil
}

func (s *memoryStore) MarkProcessed(ctx context.Context, id string, meta map[string]any) (entities.Document, error) {
	doc, _ := s.Merge(ctx, id, entities.ProcessedPatch(time.Now(), meta))
	if doc == nil {
		return nil, ErrTransactionNotFound
	}
	return doc, nil
}

func seedTransaction(t *testing.T, store *memoryStore, gateway entities.Gateway, id string, debts []entities.Debt) {
	t.Helper()
	tx := entities.NewTransaction(id, gateway, "12345678-5", "cliente@example.com", debts, time.Now())
	doc, err := tx.ToDocument()
	if err != nil {
		t.Fatalf("to document: %v", err)
	}
	if _, err := store.Save(context.Background(), id, doc); err != nil {
		t.Fatalf("save: %v", err)
	}
}

func scenarioDebts() []entities.Debt {
	return []entities.Debt{
		{CompanyID: "A", CustomerID: "100", Month: "1", Year: "2024", Amount: 5000},
		{CompanyID: "A", CustomerID: "101", Month: "2", Year: "2024", Amount: 3000},
	}
}

func approvedFlow(id string) entities.PaymentConfirmation {
	return entities.PaymentConfirmation{
		Gateway:       entities.GatewayFlow,
		TransactionID: id,
		Status:        entities.FinalStateApproved,
		GatewayStatus: "2",
		GrossAmount:   int64Ptr(8000),
		SettledAmount: int64Ptr(7600),
		PaymentDate:   "2024-03-10 18:22:01",
		PaymentMethod: "Webpay",
	}
}

func okDispatch(p entities.LegacyPayment) entities.LegacyDispatch {
	return entities.LegacyDispatch{Endpoint: "http://legacy/ws", Payload: p, Response: "<ok/>", HTTPStatus: 200}
}

func TestLegacyReporter_EndToEnd(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := newMemoryStore("flow")
	seedTransaction(t, store, entities.GatewayFlow, "tok-1", scenarioDebts())

	dispatcher := mock_interfaces.NewMockILegacyDispatcher(ctrl)
	var sent []entities.LegacyPayment
	dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p entities.LegacyPayment) (entities.LegacyDispatch, error) {
		sent = append(sent, p)
		return okDispatch(p), nil
	}).Times(2)

	auditLog := mock_interfaces.NewMockIReportLog(ctrl)
	auditLog.EXPECT().Success(entities.GatewayFlow, gomock.Any()).Times(1)
	publisher := mock_interfaces.NewMockIReportPublisher(ctrl)
	publisher.EXPECT().PublishReported(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e entities.PaymentReportedEvent) error {
		if e.TransactionID != "tok-1" || e.SettledAmount != 7600 || e.Records != 2 {
			t.Fatalf("unexpected event: %+v", e)
		}
		return nil
	})

	r := NewLegacyReporter(entities.GatewayFlow, store, dispatcher, WithReportLog(auditLog), WithReportPublisher(publisher))

	res, err := r.Report(context.Background(), approvedFlow("tok-1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outcome != OutcomeReported || len(res.Dispatches) != 2 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if sent[0].Monto != 5000 || sent[0].MontoFlow != 4750 || sent[1].Monto != 3000 || sent[1].MontoFlow != 2850 {
		t.Fatalf("unexpected payloads: %+v", sent)
	}
	if sent[0].IdEmpresa != "A" || sent[0].IdCliente != 100 || sent[1].IdCliente != 101 {
		t.Fatalf("unexpected payload ids: %+v", sent)
	}

	doc, _ := store.Get(context.Background(), "tok-1")
	if !doc.Processed() {
		t.Fatalf("transaction must be marked processed")
	}
	meta, _ := entities.AsMap(doc["ingresar_pago"])
	if responses, _ := meta["responses"].([]any); len(responses) != 2 {
		t.Fatalf("expected dispatch responses stored, got %#v", meta["responses"])
	}

	again, err := r.Report(context.Background(), approvedFlow("tok-1"))
	if err != nil || again.Outcome != OutcomeAlreadyProcessed {
		t.Fatalf("second report must be a no-op, got %+v err=%v", again, err)
	}
}

func TestLegacyReporter_PartialFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := newMemoryStore("flow")
	seedTransaction(t, store, entities.GatewayFlow, "tok-2", scenarioDebts())

	dispatcher := mock_interfaces.NewMockILegacyDispatcher(ctrl)
	gomock.InOrder(
		dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p entities.LegacyPayment) (entities.LegacyDispatch, error) {
			return okDispatch(p), nil
		}),
		dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p entities.LegacyPayment) (entities.LegacyDispatch, error) {
			d := okDispatch(p)
			d.HTTPStatus = 500
			d.Envelope = "<soapenv:Envelope/>"
			return d, errors.New("legacy answered 500")
		}),
	)

	auditLog := mock_interfaces.NewMockIReportLog(ctrl)
	auditLog.EXPECT().Failure(entities.GatewayFlow, gomock.Any()).DoAndReturn(func(_ entities.Gateway, e entities.ReportLogEntry) {
		if e.Payload == nil || e.Payload.IdCliente != 101 || e.TargetEndpoint != "http://legacy/ws" || e.Envelope == "" {
			t.Fatalf("failure entry must carry the offending payload: %+v", e)
		}
	})

	r := NewLegacyReporter(entities.GatewayFlow, store, dispatcher, WithReportLog(auditLog))
	res, err := r.Report(context.Background(), approvedFlow("tok-2"))
	if !errors.Is(err, ErrDispatchFailure) {
		t.Fatalf("expected ErrDispatchFailure, got %v", err)
	}
	if res.Outcome != OutcomeDispatchFailed || len(res.Dispatches) != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}

	doc, _ := store.Get(context.Background(), "tok-2")
	if doc.Processed() {
		t.Fatalf("transaction must stay unprocessed after a partial failure")
	}
	meta, _ := entities.AsMap(doc["ingresar_pago"])
	if attempts, _ := meta["attempts"].([]any); len(attempts) != 1 {
		t.Fatalf("expected one recorded attempt, got %#v", meta["attempts"])
	}
}

func TestLegacyReporter_SoftOutcomes(t *testing.T) {
	t.Run("transaction not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		dispatcher := mock_interfaces.NewMockILegacyDispatcher(ctrl)
		auditLog := mock_interfaces.NewMockIReportLog(ctrl)
		auditLog.EXPECT().Failure(entities.GatewayWebpay, gomock.Any())

		r := NewLegacyReporter(entities.GatewayWebpay, newMemoryStore("webpay"), dispatcher, WithReportLog(auditLog))
		res, err := r.Report(context.Background(), entities.PaymentConfirmation{TransactionID: "missing", Status: entities.FinalStateApproved})
		if err != nil || res.Outcome != OutcomeNotFound || !errors.Is(res.Reason, ErrTransactionNotFound) {
			t.Fatalf("unexpected result: %+v err=%v", res, err)
		}
	})

	t.Run("gateway status not final", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		store := newMemoryStore("zumpago")
		seedTransaction(t, store, entities.GatewayZumpago, "z-1", scenarioDebts())
		dispatcher := mock_interfaces.NewMockILegacyDispatcher(ctrl)

		r := NewLegacyReporter(entities.GatewayZumpago, store, dispatcher)
		res, err := r.Report(context.Background(), entities.PaymentConfirmation{TransactionID: "z-1", Status: entities.FinalStateRejected, GatewayStatus: "017"})
		if err != nil || res.Outcome != OutcomeStatusNotFinal || !errors.Is(res.Reason, ErrGatewayStatusNotFinal) {
			t.Fatalf("unexpected result: %+v err=%v", res, err)
		}
	})

	t.Run("no valid payloads", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		store := newMemoryStore("mercadopago")
		seedTransaction(t, store, entities.GatewayMercadoPago, "ref-1", []entities.Debt{
			{CompanyID: "A", CustomerID: "100", Amount: 0},
			{CompanyID: "A", CustomerID: "", Amount: 1000},
		})
		dispatcher := mock_interfaces.NewMockILegacyDispatcher(ctrl)

		r := NewLegacyReporter(entities.GatewayMercadoPago, store, dispatcher)
		res, err := r.Report(context.Background(), entities.PaymentConfirmation{TransactionID: "ref-1", Status: entities.FinalStateApproved})
		if err != nil || res.Outcome != OutcomeNoPayloads {
			t.Fatalf("unexpected result: %+v err=%v", res, err)
		}
	})

	t.Run("lease held elsewhere", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		store := mock_interfaces.NewMockITransactionStore(ctrl)
		locker := mock_interfaces.NewMockIReportLocker(ctrl)
		locker.EXPECT().Acquire(gomock.Any(), "flow:tok-3", time.Minute).Return(nil, false, nil)

		r := NewLegacyReporter(entities.GatewayFlow, store, mock_interfaces.NewMockILegacyDispatcher(ctrl), WithReportLocker(locker, time.Minute))
		res, err := r.Report(context.Background(), approvedFlow("tok-3"))
		if err != nil || res.Outcome != OutcomeInProgress {
			t.Fatalf("unexpected result: %+v err=%v", res, err)
		}
	})
}

func TestLegacyReporter_StorageFailures(t *testing.T) {
	t.Run("mark processed fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		seed := newMemoryStore("webpay")
		seedTransaction(t, seed, entities.GatewayWebpay, "tok-4", scenarioDebts())
		doc, _ := seed.Get(context.Background(), "tok-4")

		store := mock_interfaces.NewMockITransactionStore(ctrl)
		store.EXPECT().Get(gomock.Any(), "tok-4").Return(doc, nil)
		store.EXPECT().MarkProcessed(gomock.Any(), "tok-4", gomock.Any()).Return(nil, errors.New("disk full"))

		dispatcher := mock_interfaces.NewMockILegacyDispatcher(ctrl)
		dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p entities.LegacyPayment) (entities.LegacyDispatch, error) {
			return okDispatch(p), nil
		}).Times(2)

		released := false
		locker := mock_interfaces.NewMockIReportLocker(ctrl)
		locker.EXPECT().Acquire(gomock.Any(), "webpay:tok-4", defaultReportLease).Return(func() { released = true }, true, nil)

		metrics := mock_interfaces.NewMockIReportMetrics(ctrl)
		metrics.EXPECT().ObserveDispatch(entities.GatewayWebpay, "http://legacy/ws", true).Times(2)
		metrics.EXPECT().ObserveReport(entities.GatewayWebpay, string(OutcomeStorageFailed), gomock.Any())

		r := NewLegacyReporter(entities.GatewayWebpay, store, dispatcher, WithReportLocker(locker, 0), WithReportMetrics(metrics))
		res, err := r.Report(context.Background(), entities.PaymentConfirmation{TransactionID: "tok-4", Status: entities.FinalStateApproved, GatewayStatus: "0"})
		if !errors.Is(err, ErrStorageUpdateFailure) || res.Outcome != OutcomeStorageFailed {
			t.Fatalf("expected storage failure, got %+v err=%v", res, err)
		}
		if !released {
			t.Fatalf("lease must be released")
		}
	})

	t.Run("load fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		store := mock_interfaces.NewMockITransactionStore(ctrl)
		store.EXPECT().Get(gomock.Any(), "tok-5").Return(nil, errors.New("timeout"))

		r := NewLegacyReporter(entities.GatewayWebpay, store, mock_interfaces.NewMockILegacyDispatcher(ctrl))
		if _, err := r.Report(context.Background(), entities.PaymentConfirmation{TransactionID: "tok-5", Status: entities.FinalStateApproved}); err == nil {
			t.Fatalf("expected error")
		}
	})
}

func TestNewLegacyReporter_DateLocation(t *testing.T) {
	loc := time.FixedZone("CLT", -4*60*60)
	r := NewLegacyReporter(entities.GatewayWebpay, newMemoryStore("webpay"), nil, WithPayloadBuilder(NewPayloadBuilder(entities.GatewayWebpay)), WithDateLocation(loc))
	if r.builder.Location != loc {
		t.Fatalf("builder must render dates in %s, got %s", loc, r.builder.Location)
	}
}

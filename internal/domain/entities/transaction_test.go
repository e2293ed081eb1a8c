package entities

import (
	"reflect"
	"testing"
	"time"
)

func TestMergeDocuments(t *testing.T) {
	t.Run("nested objects merge key by key", func(t *testing.T) {
		doc := MergeDocuments(Document{"a": map[string]any{"b": 1}}, Document{"a": map[string]any{"c": 2}})
		want := Document{"a": map[string]any{"b": 1, "c": 2}}
		if !reflect.DeepEqual(doc, want) {
			t.Fatalf("got %#v, want %#v", doc, want)
		}
	})

	t.Run("scalars and lists are replaced", func(t *testing.T) {
		left := Document{"amount": 10, "ids": []any{"1", "2"}, "a": map[string]any{"x": 1}}
		doc := MergeDocuments(left, Document{"amount": 20, "ids": []any{"3"}, "a": "flat"})
		if doc["amount"] != 20 || !reflect.DeepEqual(doc["ids"], []any{"3"}) || doc["a"] != "flat" {
			t.Fatalf("unexpected merge: %#v", doc)
		}
		if left["amount"] != 10 {
			t.Fatalf("left document was mutated: %#v", left)
		}
	})
}

func TestTransactionDocumentRoundTrip(t *testing.T) {
	now := time.Unix(1700000000, 0)
	debts := []Debt{
		{CompanyID: "A", CustomerID: "100", Month: "1", Year: "2024", Amount: 5000},
		{CompanyID: "A", CustomerID: "101", Month: "2", Year: "2024", Amount: 3000},
		{CompanyID: "A", CustomerID: "102", Amount: 0},
	}
	tx := NewTransaction("tok-1", GatewayWebpay, "123456785", "a@b.cl", debts, now)
	if tx.Amount != 8000 || tx.Token != "tok-1" || tx.CompanyID != "A" || len(tx.SelectedIDs) != 3 {
		t.Fatalf("unexpected transaction: %+v", tx)
	}

	doc, err := tx.ToDocument()
	if err != nil {
		t.Fatalf("to document: %v", err)
	}
	back, err := TransactionFromDocument(doc)
	if err != nil {
		t.Fatalf("from document: %v", err)
	}
	if !reflect.DeepEqual(back, tx) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", back, tx)
	}

	mp := NewTransaction("ref-1", GatewayMercadoPago, "123456785", "a@b.cl", debts, now)
	if mp.Token != "" {
		t.Fatalf("mercado pago transactions have no token, got %q", mp.Token)
	}
}

func TestPrepareDocument(t *testing.T) {
	doc := PrepareDocument("flow", "tok-1", Document{"rut": "1", "ingresar_pago": map[string]any{"processed": true}})
	meta, _ := AsMap(doc["ingresar_pago"])
	if doc["id"] != "tok-1" || meta["processed"] != true || meta["processed_at"] != nil {
		t.Fatalf("unexpected defaults: %#v", doc)
	}
	if got := doc.Responses("flow"); got == nil || len(got) != 0 {
		t.Fatalf("expected empty responses list, got %#v", got)
	}
	if !doc.Processed() {
		t.Fatalf("existing processed flag must be kept")
	}
}

func TestAppendResponse(t *testing.T) {
	doc := AppendResponse("zumpago", "z-1", nil, map[string]any{"code": "000"})
	doc = AppendResponse("zumpago", "z-1", doc, map[string]any{"code": "001"})
	responses := doc.Responses("zumpago")
	if len(responses) != 2 {
		t.Fatalf("expected 2 responses, got %#v", responses)
	}
	if doc.Processed() {
		t.Fatalf("skeleton must not be processed")
	}
}

func TestProcessedPatch(t *testing.T) {
	now := time.Unix(1700000000, 0)
	doc := MergeDocuments(
		PrepareDocument("webpay", "t", Document{}),
		ProcessedPatch(now, map[string]any{"responses": []any{"ok"}}),
	)
	meta, _ := AsMap(doc["ingresar_pago"])
	if !doc.Processed() || meta["processed_at"] != int64(1700000000) {
		t.Fatalf("unexpected state: %#v", meta)
	}
	if !reflect.DeepEqual(meta["responses"], []any{"ok"}) || !reflect.DeepEqual(meta["attempts"], []any{}) {
		t.Fatalf("unexpected meta: %#v", meta)
	}
}

package entities

import (
	"encoding/json"
	"time"
)

// Document is the JSON-shaped form in which transactions are persisted.
//
// Gateway handlers add their own namespaced data (raw requests and responses)
// so the stored shape is open; Transaction is the typed view of the fields the
// core relies on.
type Document map[string]any

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	return cloneMap(d)
}

// Processed reports whether ingresar_pago.processed is true.
func (d Document) Processed() bool {
	meta, ok := AsMap(d["ingresar_pago"])
	if !ok {
		return false
	}
	v, _ := meta["processed"].(bool)
	return v
}

// Responses returns the raw gateway responses stored under namespace.
func (d Document) Responses(namespace string) []any {
	ns, ok := AsMap(d[namespace])
	if !ok {
		return nil
	}
	list, _ := ns["responses"].([]any)
	return list
}

// MergeDocuments deep-merges right into a copy of left. Nested objects are
// merged key by key; scalars and lists in right replace the ones in left.
func MergeDocuments(left, right Document) Document {
	out := left.Clone()
	if out == nil {
		out = Document{}
	}
	mergeInto(out, right)
	return out
}

func mergeInto(dst map[string]any, src map[string]any) {
	for k, v := range src {
		srcMap, srcIsMap := AsMap(v)
		dstMap, dstIsMap := AsMap(dst[k])
		if srcIsMap && dstIsMap {
			merged := cloneMap(dstMap)
			mergeInto(merged, srcMap)
			dst[k] = merged
			continue
		}
		dst[k] = cloneValue(v)
	}
}

// AsMap unwraps the object types that may appear inside a Document.
func AsMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Document:
		return map[string]any(m), true
	}
	return nil, false
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	if m, ok := AsMap(v); ok {
		return cloneMap(m)
	}
	if list, ok := v.([]any); ok {
		out := make([]any, len(list))
		for i, item := range list {
			out[i] = cloneValue(item)
		}
		return out
	}
	return v
}

// IngresarPagoState tracks the reporting of a transaction to the legacy
// accounting service.
type IngresarPagoState struct {
	Processed   bool   `json:"processed"`
	ProcessedAt *int64 `json:"processed_at"`
	Attempts    []any  `json:"attempts"`
}

// Transaction is a customer payment attempt through one gateway.
//
// ID is the gateway token for gateways that issue one at init time and a
// self-assigned id otherwise. CreatedAt is a unix timestamp.
type Transaction struct {
	ID           string            `json:"id"`
	Token        string            `json:"token,omitempty"`
	Gateway      Gateway           `json:"gateway"`
	RUT          string            `json:"rut"`
	Email        string            `json:"email"`
	Amount       int64             `json:"amount"`
	CompanyID    string            `json:"company_id,omitempty"`
	SelectedIDs  []string          `json:"selected_ids"`
	Debts        []DebtSnapshot    `json:"debts"`
	CreatedAt    int64             `json:"created_at"`
	IngresarPago IngresarPagoState `json:"ingresar_pago"`
}

// NewTransaction builds a pending transaction for the selected debts.
func NewTransaction(id string, gateway Gateway, rut, email string, debts []Debt, now time.Time) Transaction {
	tx := Transaction{
		ID:           id,
		Gateway:      gateway,
		RUT:          rut,
		Email:        email,
		CreatedAt:    now.Unix(),
		SelectedIDs:  make([]string, 0, len(debts)),
		Debts:        make([]DebtSnapshot, 0, len(debts)),
		IngresarPago: IngresarPagoState{Attempts: []any{}},
	}
	for _, d := range debts {
		tx.SelectedIDs = append(tx.SelectedIDs, d.CustomerID)
		tx.Debts = append(tx.Debts, d.Snapshot())
		if d.Amount > 0 {
			tx.Amount += d.Amount
		}
		if tx.CompanyID == "" {
			tx.CompanyID = d.CompanyID
		}
	}
	if gateway.IssuesToken() {
		tx.Token = id
	}
	return tx
}

// ToDocument converts the transaction into its persisted form.
func (t Transaction) ToDocument() (Document, error) {
	b, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// TransactionFromDocument reads the typed view out of a stored document.
// Unknown keys are ignored.
func TransactionFromDocument(doc Document) (Transaction, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return Transaction{}, err
	}
	var t Transaction
	if err := json.Unmarshal(b, &t); err != nil {
		return Transaction{}, err
	}
	return t, nil
}

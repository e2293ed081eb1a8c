package entities

import "time"

// PrepareDocument fills the defaults every stored transaction carries: its id,
// the ingresar_pago state and the namespace holding raw gateway responses.
func PrepareDocument(namespace, id string, doc Document) Document {
	out := doc.Clone()
	if out == nil {
		out = Document{}
	}
	out["id"] = id

	meta, _ := AsMap(out["ingresar_pago"])
	meta = cloneMap(meta)
	if _, ok := meta["processed"]; !ok {
		meta["processed"] = false
	}
	if _, ok := meta["processed_at"]; !ok {
		meta["processed_at"] = nil
	}
	if _, ok := meta["attempts"].([]any); !ok {
		meta["attempts"] = []any{}
	}
	out["ingresar_pago"] = meta

	ns, _ := AsMap(out[namespace])
	ns = cloneMap(ns)
	if _, ok := ns["responses"].([]any); !ok {
		ns["responses"] = []any{}
	}
	out[namespace] = ns
	return out
}

// AppendResponse returns doc with response appended to <namespace>.responses.
// A nil doc yields a skeleton record so late notifications are never lost.
func AppendResponse(namespace, id string, doc Document, response any) Document {
	if doc == nil {
		doc = Document{"created_at": time.Now().Unix()}
	}
	out := PrepareDocument(namespace, id, doc)
	ns, _ := AsMap(out[namespace])
	list, _ := ns["responses"].([]any)
	ns["responses"] = append(list, cloneValue(response))
	return out
}

// ProcessedPatch is the partial document that marks a transaction as
// reported. Keys in meta are merged into ingresar_pago.
func ProcessedPatch(now time.Time, meta map[string]any) Document {
	state := map[string]any{
		"processed":    true,
		"processed_at": now.Unix(),
	}
	mergeInto(state, meta)
	return Document{"ingresar_pago": state}
}

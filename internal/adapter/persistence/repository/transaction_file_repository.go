package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"portal_pagos/internal/domain/entities"
	"portal_pagos/internal/usecase/interfaces"
)

// TransactionFileRepository stores one pretty-printed JSON file per
// transaction under <dir>/<namespace>/<sha256(id)>.json.
//
// Writes replace the whole file through a temp file and a rename, so readers
// never see a partial document. Read-modify-write cycles are serialized within
// the process only.
type TransactionFileRepository struct {
	dir       string
	namespace string
	mu        sync.Mutex
	now       func() time.Time
}

var _ interfaces.ITransactionStore = (*TransactionFileRepository)(nil)

func NewTransactionFileRepository(baseDir, namespace string) *TransactionFileRepository {
	return &TransactionFileRepository{
		dir:       filepath.Join(baseDir, namespace),
		namespace: namespace,
		now:       time.Now,
	}
}

func (r *TransactionFileRepository) Namespace() string { return r.namespace }

func (r *TransactionFileRepository) Save(_ context.Context, id string, doc entities.Document) (entities.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := entities.PrepareDocument(r.namespace, id, doc)
	if err := r.write(id, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *TransactionFileRepository) Get(_ context.Context, id string) (entities.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.read(id)
}

func (r *TransactionFileRepository) Merge(_ context.Context, id string, partial entities.Document) (entities.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.merge(id, partial)
}

func (r *TransactionFileRepository) AppendResponse(_ context.Context, id string, response any) (entities.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, err := r.read(id)
	if err != nil {
		return nil, err
	}
	out := entities.AppendResponse(r.namespace, id, existing, response)
	if err := r.write(id, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *TransactionFileRepository) MarkProcessed(_ context.Context, id string, meta map[string]any) (entities.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out, err := r.merge(id, entities.ProcessedPatch(r.now(), meta))
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, fmt.Errorf("%w: %s transaction %s cannot be marked processed", entities.ErrTransactionNotFound, r.namespace, id)
	}
	return out, nil
}

func (r *TransactionFileRepository) merge(id string, partial entities.Document) (entities.Document, error) {
	existing, err := r.read(id)
	if err != nil || existing == nil {
		return nil, err
	}
	out := entities.MergeDocuments(existing, partial)
	if err := r.write(id, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *TransactionFileRepository) read(id string) (entities.Document, error) {
	raw, err := os.ReadFile(r.pathFor(id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var doc entities.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode %s transaction %s: %w", r.namespace, id, err)
	}
	return doc, nil
}

func (r *TransactionFileRepository) write(id string, doc entities.Document) error {
	if err := os.MkdirAll(r.dir, 0o775); err != nil {
		return err
	}
	encoded, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("encode %s transaction %s: %w", r.namespace, id, err)
	}

	tmp, err := os.CreateTemp(r.dir, ".tx-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(encoded); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), r.pathFor(id))
}

func (r *TransactionFileRepository) pathFor(id string) string {
	sum := sha256.Sum256([]byte(id))
	return filepath.Join(r.dir, hex.EncodeToString(sum[:])+".json")
}

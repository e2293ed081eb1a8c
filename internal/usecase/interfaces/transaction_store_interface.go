package interfaces

import (
	"context"
	"portal_pagos/internal/domain/entities"
)

// ITransactionStore persists transaction documents for one gateway namespace.
//
// Ids are only unique within a gateway, so each gateway gets its own store.
// Get and Merge return a nil document (and no error) when the id is unknown.

type ITransactionStore interface {
	Namespace() string
	Save(ctx context.Context, id string, doc entities.Document) (entities.Document, error)
	Get(ctx context.Context, id string) (entities.Document, error)
	Merge(ctx context.Context, id string, partial entities.Document) (entities.Document, error)
	AppendResponse(ctx context.Context, id string, response any) (entities.Document, error)
	MarkProcessed(ctx context.Context, id string, meta map[string]any) (entities.Document, error)
}

package interfaces

import (
	"context"
	"portal_pagos/internal/domain/entities"
	"time"
)

// IDebtLookup fetches the outstanding debts of a customer. An empty result
// means the customer owes nothing and is not an error.
type IDebtLookup interface {
	Fetch(ctx context.Context, rut string) ([]entities.Debt, error)
}

// ISnapshotCache keeps the last debt list shown to a customer so checkout can
// validate the selection without querying the lookup service again.
type ISnapshotCache interface {
	Get(ctx context.Context, key string) ([]entities.Debt, bool)
	Put(ctx context.Context, key string, debts []entities.Debt, ttl time.Duration)
	Delete(ctx context.Context, key string)
}

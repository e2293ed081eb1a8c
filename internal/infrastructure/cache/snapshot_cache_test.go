package cache

import (
	"context"
	"testing"
	"time"

	"portal_pagos/internal/domain/entities"
)

func TestSnapshotCache_Local(t *testing.T) {
	ctx := context.Background()
	c := NewSnapshotCache(nil)
	debts := []entities.Debt{{CompanyID: "764430824", CustomerID: "100", Amount: 5000}}

	if _, ok := c.Get(ctx, "123456785"); ok {
		t.Fatalf("empty cache must miss")
	}

	c.Put(ctx, "123456785", debts, time.Minute)
	got, ok := c.Get(ctx, "123456785")
	if !ok || len(got) != 1 || got[0].Amount != 5000 {
		t.Fatalf("unexpected hit: %v %v", got, ok)
	}

	got[0].Amount = 1
	again, _ := c.Get(ctx, "123456785")
	if again[0].Amount != 5000 {
		t.Fatalf("callers must not be able to alter the cached snapshot")
	}

	c.Delete(ctx, "123456785")
	if _, ok := c.Get(ctx, "123456785"); ok {
		t.Fatalf("deleted snapshot must miss")
	}
}

func TestSnapshotCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c := NewSnapshotCache(nil)
	c.Put(ctx, "k", []entities.Debt{{CustomerID: "1"}}, 20*time.Millisecond)
	time.Sleep(40 * time.Millisecond)
	if _, ok := c.Get(ctx, "k"); ok {
		t.Fatalf("expired snapshot must miss")
	}
}

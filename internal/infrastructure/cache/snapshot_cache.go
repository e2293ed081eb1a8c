package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"portal_pagos/internal/domain/entities"
	"portal_pagos/internal/usecase/interfaces"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "portal:debts:"

// SnapshotCache keeps debt snapshots in process memory and, when a Redis
// client is given, in Redis too so every instance sees the same snapshot.
type SnapshotCache struct {
	local *gocache.Cache
	rdb   *redis.Client
}

var _ interfaces.ISnapshotCache = (*SnapshotCache)(nil)

func NewSnapshotCache(rdb *redis.Client) *SnapshotCache {
	return &SnapshotCache{
		local: gocache.New(2*time.Minute, 5*time.Minute),
		rdb:   rdb,
	}
}

func (c *SnapshotCache) Get(ctx context.Context, key string) ([]entities.Debt, bool) {
	if v, ok := c.local.Get(key); ok {
		if debts, ok := v.([]entities.Debt); ok {
			return cloneDebts(debts), true
		}
	}
	if c.rdb == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		log.Printf("[debts][cache] redis get failed key=%s err=%v", key, err)
		return nil, false
	}
	var debts []entities.Debt
	if err := json.Unmarshal([]byte(raw), &debts); err != nil {
		log.Printf("[debts][cache] discarding unreadable snapshot key=%s err=%v", key, err)
		return nil, false
	}
	if ttl, err := c.rdb.TTL(ctx, keyPrefix+key).Result(); err == nil && ttl > 0 {
		c.local.Set(key, cloneDebts(debts), ttl)
	}
	return debts, true
}

func (c *SnapshotCache) Put(ctx context.Context, key string, debts []entities.Debt, ttl time.Duration) {
	c.local.Set(key, cloneDebts(debts), ttl)
	if c.rdb == nil {
		return
	}
	data, err := json.Marshal(debts)
	if err != nil {
		log.Printf("[debts][cache] marshal failed key=%s err=%v", key, err)
		return
	}
	if err := c.rdb.Set(ctx, keyPrefix+key, data, ttl).Err(); err != nil {
		log.Printf("[debts][cache] redis set failed key=%s err=%v", key, err)
	}
}

func (c *SnapshotCache) Delete(ctx context.Context, key string) {
	c.local.Delete(key)
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, keyPrefix+key).Err(); err != nil {
		log.Printf("[debts][cache] redis del failed key=%s err=%v", key, err)
	}
}

func cloneDebts(in []entities.Debt) []entities.Debt {
	if in == nil {
		return nil
	}
	out := make([]entities.Debt, len(in))
	copy(out, in)
	return out
}

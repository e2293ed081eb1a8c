package lock

import (
	"context"
	"log"
	"time"

	"portal_pagos/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const leasePrefix = "portal:report-lease:"

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLease grants leases shared by every instance through SET NX PX.
// Release only deletes the key while it still holds this holder's token.
type RedisLease struct {
	rdb *redis.Client
}

var _ interfaces.IReportLocker = (*RedisLease)(nil)

func NewRedisLease(rdb *redis.Client) *RedisLease {
	return &RedisLease{rdb: rdb}
}

func (l *RedisLease) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), bool, error) {
	token := uuid.NewString()
	ok, err := l.rdb.SetNX(ctx, leasePrefix+key, token, ttl).Result()
	if err != nil {
		return func() {}, false, err
	}
	if !ok {
		return func() {}, false, nil
	}

	release := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(ctx, l.rdb, []string{leasePrefix + key}, token).Err(); err != nil {
			log.Printf("[report][lease] release failed key=%s err=%v", key, err)
		}
	}
	return release, true, nil
}

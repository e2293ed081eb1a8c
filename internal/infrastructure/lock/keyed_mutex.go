package lock

import (
	"context"
	"sync"
	"time"

	"portal_pagos/internal/usecase/interfaces"
)

// KeyedMutex grants in-process leases. It never blocks: a key that is
// already held is refused until released or expired.
type KeyedMutex struct {
	mu     sync.Mutex
	leases map[string]lease
	seq    uint64
	now    func() time.Time
}

type lease struct {
	id      uint64
	expires time.Time
}

var _ interfaces.IReportLocker = (*KeyedMutex)(nil)

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{leases: map[string]lease{}, now: time.Now}
}

func (m *KeyedMutex) Acquire(_ context.Context, key string, ttl time.Duration) (func(), bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if held, ok := m.leases[key]; ok && now.Before(held.expires) {
		return func() {}, false, nil
	}
	m.seq++
	id := m.seq
	m.leases[key] = lease{id: id, expires: now.Add(ttl)}

	var once sync.Once
	release := func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			if cur, ok := m.leases[key]; ok && cur.id == id {
				delete(m.leases, key)
			}
		})
	}
	return release, true, nil
}

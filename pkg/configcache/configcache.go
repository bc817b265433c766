// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package configcache wraps storage.Storage's config read behind a single
// staleness-checked critical section (C5): readers past the freshness
// check never block, and a stale read upgrades to an exclusive refresh
// that concurrent stale readers coalesce onto.
package configcache

import (
	"context"
	"sync"
	"time"

	"github.com/kbase/auth2/pkg/domain"
	kbautherr "github.com/kbase/auth2/pkg/errors"
	"github.com/kbase/auth2/pkg/storage"
)

// DefaultTTL is the cache's staleness window (spec.md §4.4).
const DefaultTTL = 30 * time.Second

// Cache is a storage-backed AuthConfig cache with a bounded staleness
// window, refreshed in place rather than on a timer.
type Cache struct {
	store storage.Storage
	ttl   time.Duration

	mu         sync.RWMutex
	cached     domain.AuthConfig
	nextUpdate time.Time
	loaded     bool
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL overrides the default staleness window.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) { c.ttl = ttl }
}

// New builds a Cache over the given Storage.
func New(store storage.Storage, opts ...Option) *Cache {
	c := &Cache{store: store, ttl: DefaultTTL}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached AuthConfig, refreshing from Storage first if the
// cache is stale or has never been loaded.
func (c *Cache) Get(ctx context.Context) (domain.AuthConfig, error) {
	now := time.Now()

	c.mu.RLock()
	fresh := c.loaded && now.Before(c.nextUpdate)
	cached := c.cached
	c.mu.RUnlock()
	if fresh {
		return cached, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// Re-check: another goroutine may have refreshed while we waited for
	// the write lock, so a racing pool of stale readers coalesces onto
	// whichever of them wins the lock first.
	if c.loaded && time.Now().Before(c.nextUpdate) {
		return c.cached, nil
	}
	cfg, err := c.store.GetConfig(ctx)
	if err != nil {
		return domain.AuthConfig{}, kbautherr.NewAuthStorage("failed to load config", err)
	}
	c.cached = cfg
	c.nextUpdate = time.Now().Add(c.ttl)
	c.loaded = true
	return cfg, nil
}

// Update writes cfg to Storage (merging with existing values unless
// overwrite is set) and forces an immediate cache refresh so the next
// Get call never observes the value it replaced.
func (c *Cache) Update(ctx context.Context, cfg domain.AuthConfig, overwrite bool) error {
	if err := c.store.UpdateConfig(ctx, cfg, overwrite); err != nil {
		return err
	}
	return c.forceRefresh(ctx)
}

// Initialize persists defaults for any config value Storage does not
// already hold, without overwriting existing values, then primes the
// cache. Safe to call once at engine startup.
func (c *Cache) Initialize(ctx context.Context, defaults domain.AuthConfig) error {
	if err := c.store.SetConfigDefaults(ctx, defaults); err != nil {
		return err
	}
	return c.forceRefresh(ctx)
}

func (c *Cache) forceRefresh(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cfg, err := c.store.GetConfig(ctx)
	if err != nil {
		return kbautherr.NewAuthStorage("failed to load config", err)
	}
	c.cached = cfg
	c.nextUpdate = time.Now().Add(c.ttl)
	c.loaded = true
	return nil
}

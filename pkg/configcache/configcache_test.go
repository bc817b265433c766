// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package configcache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbase/auth2/pkg/domain"
	"github.com/kbase/auth2/pkg/storage/memory"
)

func TestGet_LoadsOnFirstCall(t *testing.T) {
	store := memory.New()
	t.Cleanup(store.Close)
	c := New(store)

	cfg, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.False(t, cfg.LoginAllowedGlobally)
}

func TestGet_CachesWithinTTL(t *testing.T) {
	store := memory.New()
	t.Cleanup(store.Close)
	c := New(store, WithTTL(time.Hour))
	ctx := context.Background()

	_, err := c.Get(ctx)
	require.NoError(t, err)

	require.NoError(t, store.UpdateConfig(ctx, domain.AuthConfig{LoginAllowedGlobally: true}, true))

	cfg, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, cfg.LoginAllowedGlobally, "cached value should not see the bypassed write within the TTL window")
}

func TestGet_RefreshesAfterTTL(t *testing.T) {
	store := memory.New()
	t.Cleanup(store.Close)
	c := New(store, WithTTL(10*time.Millisecond))
	ctx := context.Background()

	_, err := c.Get(ctx)
	require.NoError(t, err)
	require.NoError(t, store.UpdateConfig(ctx, domain.AuthConfig{LoginAllowedGlobally: true}, true))

	time.Sleep(20 * time.Millisecond)
	cfg, err := c.Get(ctx)
	require.NoError(t, err)
	assert.True(t, cfg.LoginAllowedGlobally)
}

func TestUpdate_ForcesImmediateRefresh(t *testing.T) {
	store := memory.New()
	t.Cleanup(store.Close)
	c := New(store, WithTTL(time.Hour))
	ctx := context.Background()

	_, err := c.Get(ctx)
	require.NoError(t, err)

	require.NoError(t, c.Update(ctx, domain.AuthConfig{LoginAllowedGlobally: true}, true))

	cfg, err := c.Get(ctx)
	require.NoError(t, err)
	assert.True(t, cfg.LoginAllowedGlobally)
}

func TestInitialize_DoesNotOverwriteExisting(t *testing.T) {
	store := memory.New()
	t.Cleanup(store.Close)
	ctx := context.Background()
	require.NoError(t, store.UpdateConfig(ctx, domain.AuthConfig{
		Providers: map[string]domain.ProviderConfig{"Globus": {Enabled: true}},
	}, true))

	c := New(store)
	require.NoError(t, c.Initialize(ctx, domain.AuthConfig{
		Providers: map[string]domain.ProviderConfig{"Globus": {Enabled: false}, "Google": {Enabled: true}},
	}))

	cfg, err := c.Get(ctx)
	require.NoError(t, err)
	assert.True(t, cfg.ProviderEnabled("Globus"))
	assert.True(t, cfg.ProviderEnabled("Google"))
}

func TestGet_ConcurrentStaleReadsCoalesce(t *testing.T) {
	store := &countingStorage{Storage: memory.New()}
	c := New(store, WithTTL(time.Nanosecond))
	ctx := context.Background()

	_, err := c.Get(ctx)
	require.NoError(t, err)
	time.Sleep(time.Millisecond)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = c.Get(ctx)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, store.reads.Load(), int64(21))
}

type countingStorage struct {
	*memory.Storage
	reads atomic.Int64
}

func (c *countingStorage) GetConfig(ctx context.Context) (domain.AuthConfig, error) {
	c.reads.Add(1)
	return c.Storage.GetConfig(ctx)
}

// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package engine implements the authentication engine's business logic
// (C5-C11): the config cache, token lifecycle, local-account management,
// the OAuth2 login and link state machines, authorization checks, and
// admin/search operations. It is transport-agnostic; callers present an
// IncomingToken and receive domain values or a typed *errors.Error.
package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/kbase/auth2/pkg/configcache"
	"github.com/kbase/auth2/pkg/crypto"
	"github.com/kbase/auth2/pkg/domain"
	kbautherr "github.com/kbase/auth2/pkg/errors"
	"github.com/kbase/auth2/pkg/idp"
	"github.com/kbase/auth2/pkg/log"
	"github.com/kbase/auth2/pkg/storage"
)

// Engine bundles Storage, the identity-provider registry, and the config
// cache into the single entry point every public operation hangs off of.
type Engine struct {
	store    storage.Storage
	registry *idp.Registry
	cache    *configcache.Cache
	logger   *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger overrides the default process logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithConfigCacheTTL overrides the config cache's staleness window.
func WithConfigCacheTTL(ttl time.Duration) Option {
	return func(e *Engine) { e.cache = configcache.New(e.store, configcache.WithTTL(ttl)) }
}

// New builds an Engine over store and registry.
func New(store storage.Storage, registry *idp.Registry, opts ...Option) *Engine {
	e := &Engine{store: store, registry: registry, logger: log.Get()}
	e.cache = configcache.New(store)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Initialize persists default config values and token lifetimes that
// Storage does not already hold, without overwriting existing values, and
// primes the config cache. Call once at process startup.
func (e *Engine) Initialize(ctx context.Context) error {
	return e.cache.Initialize(ctx, domain.AuthConfig{
		Providers:        map[string]domain.ProviderConfig{},
		TokenLifetimesMS: domain.DefaultTokenLifetimes(),
	})
}

// resolveToken hashes incoming and looks up the corresponding HashedToken,
// rejecting an unknown hash or an expired token as InvalidToken.
func (e *Engine) resolveToken(ctx context.Context, incoming domain.IncomingToken) (domain.HashedToken, error) {
	hash := crypto.HashToken(incoming.String())
	tok, err := e.store.GetTokenByHash(ctx, hash)
	if err != nil {
		if kbautherr.IsNoSuchToken(err) {
			return domain.HashedToken{}, kbautherr.NewInvalidToken("token not found")
		}
		return domain.HashedToken{}, err
	}
	if tok.IsExpired(time.Now()) {
		return domain.HashedToken{}, kbautherr.NewInvalidToken("token has expired")
	}
	return tok, nil
}

// resolveTemporaryToken hashes incoming and looks up the corresponding
// TemporaryToken, rejecting an unknown hash or an expired token.
func (e *Engine) resolveTemporaryToken(ctx context.Context, incoming domain.IncomingToken) (domain.TemporaryToken, error) {
	hash := crypto.HashToken(incoming.String())
	tt, err := e.store.GetTemporaryTokenByHash(ctx, hash)
	if err != nil {
		if kbautherr.IsNoSuchToken(err) {
			return domain.TemporaryToken{}, kbautherr.NewInvalidToken("temporary token not found")
		}
		return domain.TemporaryToken{}, err
	}
	if tt.IsExpired(time.Now()) {
		return domain.TemporaryToken{}, kbautherr.NewInvalidToken("temporary token has expired")
	}
	return tt, nil
}

// resolveProvider resolves a provider by name, treating it as unknown to
// external callers if it is not both registered and enabled in config
// (spec.md §4.2).
func (e *Engine) resolveProvider(ctx context.Context, name string) (idp.Provider, domain.AuthConfig, error) {
	cfg, err := e.cache.Get(ctx)
	if err != nil {
		return nil, domain.AuthConfig{}, err
	}
	if !cfg.ProviderEnabled(name) {
		return nil, domain.AuthConfig{}, kbautherr.NewNoSuchProvider(name)
	}
	p, err := e.registry.Get(name)
	if err != nil {
		return nil, domain.AuthConfig{}, err
	}
	return p, cfg, nil
}

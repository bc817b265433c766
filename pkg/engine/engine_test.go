// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kbase/auth2/pkg/domain"
	"github.com/kbase/auth2/pkg/idp"
	"github.com/kbase/auth2/pkg/storage/memory"
)

// fakeProvider is a minimal idp.Provider test double whose GetIdentities
// return value is configured per test.
type fakeProvider struct {
	name       string
	identities []domain.RemoteIdentity
	err        error
}

func (f *fakeProvider) Name() string     { return f.name }
func (f *fakeProvider) ImageURI() string { return "https://example.com/" + f.name + ".png" }
func (f *fakeProvider) LoginURL(state string, isLink bool) (string, error) {
	return "https://example.com/authorize?state=" + state, nil
}
func (f *fakeProvider) GetIdentities(_ context.Context, _ string, _ bool) ([]domain.RemoteIdentity, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.identities, nil
}

func mustUserName(t *testing.T, s string) domain.UserName {
	t.Helper()
	un, err := domain.NewUserName(s)
	require.NoError(t, err)
	return un
}

// newTestEngine builds an Engine over a fresh in-memory store and registry
// containing provider (if non-nil), with the given config already set.
func newTestEngine(t *testing.T, provider *fakeProvider, cfg domain.AuthConfig) (*Engine, *memory.Storage) {
	t.Helper()
	store := memory.New(memory.WithCleanupInterval(10 * time.Millisecond))
	t.Cleanup(store.Close)

	ctx := context.Background()
	require.NoError(t, store.SetConfigDefaults(ctx, domain.AuthConfig{
		TokenLifetimesMS: domain.DefaultTokenLifetimes(),
	}))
	require.NoError(t, store.UpdateConfig(ctx, cfg, true))

	var providers []idp.Provider
	if provider != nil {
		providers = append(providers, provider)
	}
	reg := idp.NewRegistry(providers...)

	e := New(store, reg, WithConfigCacheTTL(time.Millisecond))
	return e, store
}

// createTestUser persists a standard (non-local) user with one linked
// identity and returns a LOGIN token for it.
func createTestUser(t *testing.T, e *Engine, store *memory.Storage, name string, roles ...domain.Role) (domain.UserName, string) {
	t.Helper()
	ctx := context.Background()
	un := mustUserName(t, name)
	identityID, err := domain.NewRemoteIdentityID("TestProvider", name+"-remote-id")
	require.NoError(t, err)
	user := domain.AuthUser{
		UserName:    un,
		DisplayName: domain.UnknownDisplayNameValue(),
		Email:       domain.UnknownEmailAddressValue(),
		Roles:       domain.NewRoleSet(roles...),
		Created:     time.Now(),
		Identities:  []domain.RemoteIdentityWithLocalID{{RemoteIdentity: domain.RemoteIdentity{ID: identityID}, LocalID: "local-" + name}},
	}
	require.NoError(t, store.CreateUser(ctx, user))
	token, err := e.createLoginToken(ctx, un)
	require.NoError(t, err)
	return un, token
}

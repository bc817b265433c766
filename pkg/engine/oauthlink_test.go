// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbase/auth2/pkg/domain"
	kbautherr "github.com/kbase/auth2/pkg/errors"
)

func TestStartLink_SingleCandidateLinksImmediately(t *testing.T) {
	ctx := context.Background()
	newIdentity := mustRemoteID(t, "Prov", "new-remote")
	provider := &fakeProvider{name: "Prov", identities: []domain.RemoteIdentity{{ID: newIdentity}}}
	e, store := newTestEngine(t, provider, domain.AuthConfig{
		Providers: map[string]domain.ProviderConfig{"Prov": {Enabled: true}},
	})
	un, token := createTestUser(t, e, store, "ivan")

	outcome, err := e.StartLink(ctx, incoming(t, token), "Prov", "code", false)
	require.NoError(t, err)
	assert.True(t, outcome.Linked)
	assert.Empty(t, outcome.LinkToken)

	got, err := store.GetUser(ctx, un)
	require.NoError(t, err)
	_, ok := got.HasIdentity(newIdentity)
	assert.True(t, ok)
}

func TestStartLink_LocalUserRejected(t *testing.T) {
	provider := &fakeProvider{name: "Prov", identities: []domain.RemoteIdentity{{ID: mustRemoteID(t, "Prov", "x")}}}
	e, _ := newTestEngine(t, provider, domain.AuthConfig{
		LoginAllowedGlobally: true,
		Providers:            map[string]domain.ProviderConfig{"Prov": {Enabled: true}},
	})
	ctx := context.Background()
	require.NoError(t, e.CreateRoot(ctx, []byte("rootpassword")))
	_, rootToken := loginRoot(t, e, "rootpassword")

	_, err := e.StartLink(ctx, incoming(t, rootToken), "Prov", "code", false)
	require.Error(t, err)
	assert.True(t, kbautherr.IsUnauthorized(err))
}

func TestLinkUnlink_RoundTrip(t *testing.T) {
	ctx := context.Background()
	newIdentity := mustRemoteID(t, "Prov", "roundtrip")
	provider := &fakeProvider{name: "Prov", identities: []domain.RemoteIdentity{{ID: newIdentity}}}
	e, store := newTestEngine(t, provider, domain.AuthConfig{
		Providers: map[string]domain.ProviderConfig{"Prov": {Enabled: true}},
	})
	un, token := createTestUser(t, e, store, "julia")

	outcome, err := e.StartLink(ctx, incoming(t, token), "Prov", "code", false)
	require.NoError(t, err)
	require.True(t, outcome.Linked)

	got, err := store.GetUser(ctx, un)
	require.NoError(t, err)
	linked, ok := got.HasIdentity(newIdentity)
	require.True(t, ok)

	require.NoError(t, e.Unlink(ctx, incoming(t, token), linked.LocalID))

	got, err = store.GetUser(ctx, un)
	require.NoError(t, err)
	_, ok = got.HasIdentity(newIdentity)
	assert.False(t, ok)
}

func TestUnlink_LastIdentityRefused(t *testing.T) {
	ctx := context.Background()
	e, store := newTestEngine(t, nil, domain.AuthConfig{})
	_, token := createTestUser(t, e, store, "karl")

	user, err := e.GetUser(ctx, incoming(t, token))
	require.NoError(t, err)
	require.Len(t, user.Identities, 1)

	err = e.Unlink(ctx, incoming(t, token), user.Identities[0].LocalID)
	require.Error(t, err)
}

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

func incoming(t *testing.T, plain string) domain.IncomingToken {
	t.Helper()
	tok, err := domain.NewIncomingToken(plain)
	require.NoError(t, err)
	return tok
}

func TestGetUser_TokenResolvesToSameUserName(t *testing.T) {
	e, store := newTestEngine(t, nil, domain.AuthConfig{LoginAllowedGlobally: true})
	un, token := createTestUser(t, e, store, "bob")

	got, err := e.GetUser(context.Background(), incoming(t, token))
	require.NoError(t, err)
	assert.True(t, got.UserName.Equals(un))
}

func TestGetUser_DisabledAccountDeletesTokensOnDiscovery(t *testing.T) {
	e, store := newTestEngine(t, nil, domain.AuthConfig{LoginAllowedGlobally: true})
	ctx := context.Background()
	_, token := createTestUser(t, e, store, "carol")

	require.NoError(t, store.SetDisabled(ctx, mustUserName(t, "carol"), true, "policy violation"))

	_, err := e.GetUser(ctx, incoming(t, token))
	require.Error(t, err)
	assert.True(t, kbautherr.IsDisabled(err))

	_, err = e.GetUser(ctx, incoming(t, token))
	require.Error(t, err)
	assert.True(t, kbautherr.IsInvalidToken(err))
}

func TestUpdateRoles_UnionMinusInvariant(t *testing.T) {
	e, store := newTestEngine(t, nil, domain.AuthConfig{LoginAllowedGlobally: true})
	ctx := context.Background()
	_, adminToken := createTestUser(t, e, store, "admin1", domain.RoleRoot)
	target := mustUserName(t, "target1")
	require.NoError(t, store.CreateUser(ctx, domain.AuthUser{
		UserName:    target,
		DisplayName: domain.UnknownDisplayNameValue(),
		Email:       domain.UnknownEmailAddressValue(),
		Roles:       domain.NewRoleSet(domain.RoleDevToken),
		Identities:  []domain.RemoteIdentityWithLocalID{{RemoteIdentity: domain.RemoteIdentity{ID: mustRemoteID(t, "p", "target1")}, LocalID: "l1"}},
	}))

	err := e.UpdateRoles(ctx, incoming(t, adminToken), "target1", []domain.Role{domain.RoleServToken}, []domain.Role{domain.RoleDevToken})
	require.NoError(t, err)

	got, err := store.GetUser(ctx, target)
	require.NoError(t, err)
	assert.True(t, got.Roles.Contains(domain.RoleServToken))
	assert.False(t, got.Roles.Contains(domain.RoleDevToken))
}

func TestUpdateRoles_AddAndRemoveIntersectionRejected(t *testing.T) {
	e, store := newTestEngine(t, nil, domain.AuthConfig{LoginAllowedGlobally: true})
	ctx := context.Background()
	_, adminToken := createTestUser(t, e, store, "admin2", domain.RoleRoot)

	err := e.UpdateRoles(ctx, incoming(t, adminToken), "admin2", []domain.Role{domain.RoleDevToken}, []domain.Role{domain.RoleDevToken})
	require.Error(t, err)
	assert.True(t, kbautherr.IsIllegalParameter(err))
}

func mustRemoteID(t *testing.T, provider, id string) domain.RemoteIdentityID {
	t.Helper()
	rid, err := domain.NewRemoteIdentityID(provider, id)
	require.NoError(t, err)
	return rid
}

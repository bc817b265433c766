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

func TestCreateExtendedToken_RequiresLoginToken(t *testing.T) {
	e, store := newTestEngine(t, nil, domain.AuthConfig{LoginAllowedGlobally: true})
	ctx := context.Background()
	_, loginToken := createTestUser(t, e, store, "dave", domain.RoleDevToken)

	devToken, err := e.CreateExtendedToken(ctx, incoming(t, loginToken), "laptop", false)
	require.NoError(t, err)
	require.NotEmpty(t, devToken)

	_, err = e.CreateExtendedToken(ctx, incoming(t, devToken), "nested", false)
	require.Error(t, err)
	assert.True(t, kbautherr.IsUnauthorized(err))
}

func TestRevoke_ByIDThenInvalidToken(t *testing.T) {
	e, store := newTestEngine(t, nil, domain.AuthConfig{LoginAllowedGlobally: true})
	ctx := context.Background()
	_, loginToken := createTestUser(t, e, store, "erin", domain.RoleDevToken)

	devToken, err := e.CreateExtendedToken(ctx, incoming(t, loginToken), "cli", false)
	require.NoError(t, err)
	rec, err := e.GetToken(ctx, incoming(t, devToken))
	require.NoError(t, err)

	require.NoError(t, e.Revoke(ctx, incoming(t, loginToken), rec.ID))

	_, err = e.GetToken(ctx, incoming(t, devToken))
	require.Error(t, err)
	assert.True(t, kbautherr.IsInvalidToken(err))
}

func TestRevokeAll_RequiresSelfOrAdmin(t *testing.T) {
	e, store := newTestEngine(t, nil, domain.AuthConfig{LoginAllowedGlobally: true})
	ctx := context.Background()
	_, otherToken := createTestUser(t, e, store, "frank")
	_, targetToken := createTestUser(t, e, store, "gina")

	err := e.RevokeAll(ctx, incoming(t, otherToken), "gina")
	require.Error(t, err)
	assert.True(t, kbautherr.IsUnauthorized(err))

	require.NoError(t, e.RevokeAll(ctx, incoming(t, targetToken), "gina"))
	_, err = e.GetUser(ctx, incoming(t, targetToken))
	require.Error(t, err)
	assert.True(t, kbautherr.IsInvalidToken(err))
}

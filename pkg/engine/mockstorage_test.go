// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"context"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbase/auth2/pkg/crypto"
	"github.com/kbase/auth2/pkg/domain"
	kbautherr "github.com/kbase/auth2/pkg/errors"
	"github.com/kbase/auth2/pkg/idp"
	"github.com/kbase/auth2/pkg/storage/mocks"
)

// TestGetUser_StorageFailurePropagates drives Engine.GetUser against a
// gomock-generated Storage double to exercise the non-Storage-interface
// error path (a transport failure distinct from NoSuchUser/NoSuchToken).
func TestGetUser_StorageFailurePropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	stor := mocks.NewMockStorage(ctrl)

	ctx := context.Background()
	plain := "a-bearer-token"
	hash := crypto.HashToken(plain)
	un := mustUserName(t, "quinn")

	stor.EXPECT().GetTokenByHash(gomock.Any(), hash).Return(domain.HashedToken{
		ID:        "tok-1",
		Type:      domain.TokenTypeLogin,
		UserName:  un,
		Created:   time.Now(),
		Expires:   time.Now().Add(time.Hour),
		TokenHash: hash,
	}, nil)
	stor.EXPECT().GetUser(gomock.Any(), un).Return(domain.AuthUser{}, kbautherr.NewAuthStorage("connection refused", nil))

	e := New(stor, idp.NewRegistry())
	tok, err := domain.NewIncomingToken(plain)
	require.NoError(t, err)

	_, err = e.GetUser(ctx, tok)
	require.Error(t, err)
	assert.True(t, kbautherr.IsAuthStorage(err))
}

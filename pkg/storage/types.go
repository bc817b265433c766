// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package storage defines the persistence contract the engine consumes
// (C2) and provides two implementations: an in-memory reference store
// (pkg/storage/memory) and a Redis-backed store (pkg/storage/redis).
package storage

//go:generate mockgen -destination=mocks/storage.go -package=mocks github.com/kbase/auth2/pkg/storage Storage

import (
	"context"

	"github.com/kbase/auth2/pkg/domain"
)

// Storage is the abstract persistence contract the engine consumes. Every
// lookup by IncomingToken is by its hashed value, never its plaintext.
// Implementations report missing entities via the pkg/errors NoSuchX
// family and transport/availability failures via AuthStorage.
type Storage interface {
	// Users.

	CreateUser(ctx context.Context, user domain.AuthUser) error
	GetUser(ctx context.Context, name domain.UserName) (domain.AuthUser, error)
	GetUserByIdentity(ctx context.Context, id domain.RemoteIdentityID) (domain.AuthUser, error)
	DeleteUser(ctx context.Context, name domain.UserName) error
	RecordLogin(ctx context.Context, name domain.UserName) error
	AllUserNames(ctx context.Context) ([]domain.UserName, error)

	// Local users.

	CreateLocalUser(ctx context.Context, user domain.LocalUser) error
	GetLocalUser(ctx context.Context, name domain.UserName) (domain.LocalUser, error)
	ChangePassword(ctx context.Context, name domain.UserName, hash, salt []byte, forceReset bool) error
	ForceResetPassword(ctx context.Context, name domain.UserName) error
	ForceResetAllPasswords(ctx context.Context) error

	// Disable/enable.

	SetDisabled(ctx context.Context, name domain.UserName, disabled bool, reason string) error

	// Linked identities.

	LinkIdentity(ctx context.Context, name domain.UserName, identity domain.RemoteIdentityWithLocalID) error
	UnlinkIdentity(ctx context.Context, name domain.UserName, localID string) error

	// Display-name lookup.

	GetDisplayNames(ctx context.Context, names []domain.UserName) (map[string]domain.DisplayName, error)
	SearchDisplayNames(ctx context.Context, spec domain.UserSearchSpec) (map[string]domain.DisplayName, error)

	// Roles and custom roles.

	SetRoles(ctx context.Context, name domain.UserName, roles domain.RoleSet) error
	SetCustomRoles(ctx context.Context, name domain.UserName, roleIDs map[string]struct{}) error
	CreateCustomRole(ctx context.Context, role domain.CustomRole) error
	GetCustomRoles(ctx context.Context) ([]domain.CustomRole, error)
	DeleteCustomRole(ctx context.Context, id string) error

	// Tokens.

	CreateToken(ctx context.Context, token domain.HashedToken) error
	GetTokenByHash(ctx context.Context, hash string) (domain.HashedToken, error)
	GetTokensForUser(ctx context.Context, name domain.UserName) ([]domain.HashedToken, error)
	DeleteToken(ctx context.Context, id string) error
	DeleteTokensForUser(ctx context.Context, name domain.UserName) error
	DeleteAllTokens(ctx context.Context) error

	// Temporary tokens (deferred login/link continuation state).

	CreateTemporaryToken(ctx context.Context, token domain.TemporaryToken) error
	GetTemporaryTokenByHash(ctx context.Context, hash string) (domain.TemporaryToken, error)
	DeleteTemporaryToken(ctx context.Context, id string) error

	// Configuration.

	GetConfig(ctx context.Context) (domain.AuthConfig, error)
	UpdateConfig(ctx context.Context, cfg domain.AuthConfig, overwrite bool) error
	SetConfigDefaults(ctx context.Context, defaults domain.AuthConfig) error
}

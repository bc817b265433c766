// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kbase/auth2/pkg/crypto"
	"github.com/kbase/auth2/pkg/domain"
	kbautherr "github.com/kbase/auth2/pkg/errors"
)

// createLoginToken mints and persists a LOGIN token for userName, records
// the login, and returns the plaintext bearer value. The plaintext is
// never stored; only its hash is (C6, spec.md §4.5).
func (e *Engine) createLoginToken(ctx context.Context, userName domain.UserName) (string, error) {
	cfg, err := e.cache.Get(ctx)
	if err != nil {
		return "", err
	}
	plain := crypto.GetToken()
	now := time.Now()
	tok := domain.HashedToken{
		ID:        uuid.NewString(),
		Type:      domain.TokenTypeLogin,
		UserName:  userName,
		Created:   now,
		Expires:   now.Add(cfg.Lifetime(domain.TokenLifetimeLogin)),
		TokenHash: crypto.HashToken(plain),
	}
	if err := e.store.CreateToken(ctx, tok); err != nil {
		return "", err
	}
	if err := e.store.RecordLogin(ctx, userName); err != nil {
		return "", err
	}
	return plain, nil
}

// CreateExtendedToken mints a long-lived EXTENDED_LIFETIME token from a
// LOGIN token. server selects the SERV_TOKEN lifetime/role over
// DEV_TOKEN's. Only a LOGIN token may be used to create one.
func (e *Engine) CreateExtendedToken(ctx context.Context, incoming domain.IncomingToken, name string, server bool) (string, error) {
	presented, err := e.resolveToken(ctx, incoming)
	if err != nil {
		return "", err
	}
	if presented.Type != domain.TokenTypeLogin {
		return "", kbautherr.NewUnauthorized("Only login tokens may be used to create a token")
	}

	subType := domain.TokenSubTypeDeveloper
	lifetimeType := domain.TokenLifetimeDev
	requiredRole := domain.RoleDevToken
	if server {
		subType = domain.TokenSubTypeServer
		lifetimeType = domain.TokenLifetimeServ
		requiredRole = domain.RoleServToken
	}

	user, err := e.GetUser(ctx, incoming, requiredRole)
	if err != nil {
		return "", err
	}
	cfg, err := e.cache.Get(ctx)
	if err != nil {
		return "", err
	}
	plain := crypto.GetToken()
	now := time.Now()
	tok := domain.HashedToken{
		ID:        uuid.NewString(),
		Type:      domain.TokenTypeExtendedLifetime,
		SubType:   subType,
		Name:      name,
		UserName:  user.UserName,
		Created:   now,
		Expires:   now.Add(cfg.Lifetime(lifetimeType)),
		TokenHash: crypto.HashToken(plain),
	}
	if err := e.store.CreateToken(ctx, tok); err != nil {
		return "", err
	}
	return plain, nil
}

// GetToken resolves incoming to its stored HashedToken record.
func (e *Engine) GetToken(ctx context.Context, incoming domain.IncomingToken) (domain.HashedToken, error) {
	return e.resolveToken(ctx, incoming)
}

// GetTokens lists the caller's own tokens, without ever exposing a hash.
func (e *Engine) GetTokens(ctx context.Context, incoming domain.IncomingToken) ([]domain.HashedToken, error) {
	user, err := e.GetUser(ctx, incoming)
	if err != nil {
		return nil, err
	}
	return e.store.GetTokensForUser(ctx, user.UserName)
}

// GetDeveloperTokens lists userName's EXTENDED_LIFETIME/DEVELOPER tokens.
// Requires ADMIN.
func (e *Engine) GetDeveloperTokens(ctx context.Context, adminIncoming domain.IncomingToken, userName string) ([]domain.HashedToken, error) {
	return e.getExtendedTokensBySubType(ctx, adminIncoming, userName, domain.TokenSubTypeDeveloper)
}

// GetServerToken returns userName's single EXTENDED_LIFETIME/SERVER token,
// if any. Requires ADMIN.
func (e *Engine) GetServerToken(ctx context.Context, adminIncoming domain.IncomingToken, userName string) (domain.HashedToken, error) {
	toks, err := e.getExtendedTokensBySubType(ctx, adminIncoming, userName, domain.TokenSubTypeServer)
	if err != nil {
		return domain.HashedToken{}, err
	}
	if len(toks) == 0 {
		return domain.HashedToken{}, kbautherr.NewNoSuchToken()
	}
	return toks[0], nil
}

func (e *Engine) getExtendedTokensBySubType(ctx context.Context, adminIncoming domain.IncomingToken, userName string, subType domain.TokenSubType) ([]domain.HashedToken, error) {
	if _, err := e.GetUser(ctx, adminIncoming, domain.RoleAdmin); err != nil {
		return nil, err
	}
	target, err := domain.NewUserName(userName)
	if err != nil {
		return nil, err
	}
	all, err := e.store.GetTokensForUser(ctx, target)
	if err != nil {
		return nil, err
	}
	out := make([]domain.HashedToken, 0, len(all))
	for _, t := range all {
		if t.SubType == subType {
			out = append(out, t)
		}
	}
	return out, nil
}

// Revoke deletes the token identified by id. A caller may always revoke
// their own token; revoking another user's token requires ADMIN.
func (e *Engine) Revoke(ctx context.Context, incoming domain.IncomingToken, id string) error {
	if strings.TrimSpace(id) == "" {
		return kbautherr.NewMissingParameter("id")
	}
	user, err := e.GetUser(ctx, incoming)
	if err != nil {
		return err
	}
	mine, err := e.store.GetTokensForUser(ctx, user.UserName)
	if err != nil {
		return err
	}
	for _, t := range mine {
		if t.ID == id {
			return e.store.DeleteToken(ctx, id)
		}
	}
	if !user.IsAdmin() {
		return kbautherr.NewUnauthorized("Not authorized to revoke another user's token")
	}
	return e.store.DeleteToken(ctx, id)
}

// RevokeCurrent deletes the token presented as incoming.
func (e *Engine) RevokeCurrent(ctx context.Context, incoming domain.IncomingToken) error {
	tok, err := e.resolveToken(ctx, incoming)
	if err != nil {
		return err
	}
	return e.store.DeleteToken(ctx, tok.ID)
}

// RevokeAll deletes every token belonging to userName. The caller must be
// userName themself or hold ADMIN.
func (e *Engine) RevokeAll(ctx context.Context, incoming domain.IncomingToken, userName string) error {
	user, err := e.GetUser(ctx, incoming)
	if err != nil {
		return err
	}
	target, err := domain.NewUserName(userName)
	if err != nil {
		return err
	}
	if !user.UserName.Equals(target) && !user.IsAdmin() {
		return kbautherr.NewUnauthorized("Not authorized to revoke another user's tokens")
	}
	return e.store.DeleteTokensForUser(ctx, target)
}

// RevokeAllTokens deletes every token in the system. Requires ADMIN.
func (e *Engine) RevokeAllTokens(ctx context.Context, adminIncoming domain.IncomingToken) error {
	if _, err := e.GetUser(ctx, adminIncoming, domain.RoleAdmin); err != nil {
		return err
	}
	return e.store.DeleteAllTokens(ctx)
}

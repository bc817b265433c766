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

// LinkOutcome is the result of StartLink: exactly one of Linked (the
// single remaining candidate was linked immediately) or LinkToken (a
// deferred continuation) is set.
type LinkOutcome struct {
	Linked    bool
	LinkToken string
}

// StartLink fetches providerName's identities for the account presented by
// userIncoming and either links the single remaining not-already-linked
// candidate immediately, or defers to a LinkToken the caller must continue
// via GetLinkState/Link. Local (password-only) accounts cannot link.
func (e *Engine) StartLink(ctx context.Context, userIncoming domain.IncomingToken, providerName, authcode string, forceLinkChoice bool) (LinkOutcome, error) {
	user, err := e.getLinkableUser(ctx, userIncoming)
	if err != nil {
		return LinkOutcome{}, err
	}
	provider, _, err := e.resolveProvider(ctx, providerName)
	if err != nil {
		return LinkOutcome{}, err
	}
	code := strings.TrimSpace(authcode)
	if code == "" {
		return LinkOutcome{}, kbautherr.NewMissingParameter("authorization code")
	}
	identities, err := provider.GetIdentities(ctx, code, true)
	if err != nil {
		return LinkOutcome{}, err
	}

	candidates, err := e.filterUnlinked(ctx, identities)
	if err != nil {
		return LinkOutcome{}, err
	}

	if len(candidates) == 1 && !forceLinkChoice {
		if err := e.store.LinkIdentity(ctx, user.UserName, candidates[0]); err != nil {
			return LinkOutcome{}, err
		}
		return LinkOutcome{Linked: true}, nil
	}

	plain := crypto.GetToken()
	now := time.Now()
	tt := domain.TemporaryToken{
		ID:           uuid.NewString(),
		TokenHash:    crypto.HashToken(plain),
		ProviderName: providerName,
		Created:      now,
		Expires:      now.Add(domain.DefaultLinkTempTokenLifetime),
		Identities:   candidates,
	}
	if err := e.store.CreateTemporaryToken(ctx, tt); err != nil {
		return LinkOutcome{}, err
	}
	return LinkOutcome{LinkToken: plain}, nil
}

// GetLinkState returns the still-unlinked candidate identities of a
// deferred link. An empty candidate set (every identity was claimed by
// someone else between StartLink and now) is reported as LinkFailed.
func (e *Engine) GetLinkState(ctx context.Context, userIncoming domain.IncomingToken, linkIncoming domain.IncomingToken) ([]domain.RemoteIdentityWithLocalID, error) {
	if _, err := e.getLinkableUser(ctx, userIncoming); err != nil {
		return nil, err
	}
	tt, err := e.resolveTemporaryToken(ctx, linkIncoming)
	if err != nil {
		return nil, err
	}
	remaining := make([]domain.RemoteIdentityWithLocalID, 0, len(tt.Identities))
	for _, wl := range tt.Identities {
		if _, err := e.store.GetUserByIdentity(ctx, wl.ID); err == nil {
			continue
		} else if !kbautherr.IsNoSuchUser(err) {
			return nil, err
		}
		remaining = append(remaining, wl)
	}
	if len(remaining) == 0 {
		return nil, kbautherr.NewLinkFailed("All provided identities are already linked")
	}
	return remaining, nil
}

// CompleteLink commits the link between userIncoming's account and the
// candidate identified by identityUUID within a deferred link's set.
func (e *Engine) CompleteLink(ctx context.Context, userIncoming, linkIncoming domain.IncomingToken, identityUUID string) error {
	user, err := e.getLinkableUser(ctx, userIncoming)
	if err != nil {
		return err
	}
	tt, err := e.resolveTemporaryToken(ctx, linkIncoming)
	if err != nil {
		return err
	}
	identity, ok := findByLocalID(tt.Identities, identityUUID)
	if !ok {
		return kbautherr.NewUnauthorized("identity not found in link token")
	}
	return e.store.LinkIdentity(ctx, user.UserName, identity)
}

// Unlink removes localID from userIncoming's account. Storage also refuses
// to drop a user's last remaining identity; this pre-check rejects the
// request without a round trip to the store.
func (e *Engine) Unlink(ctx context.Context, userIncoming domain.IncomingToken, localID string) error {
	user, err := e.getLinkableUser(ctx, userIncoming)
	if err != nil {
		return err
	}
	remaining := make([]domain.RemoteIdentityWithLocalID, 0, len(user.Identities))
	for _, ri := range user.Identities {
		if ri.LocalID != localID {
			remaining = append(remaining, ri)
		}
	}
	if err := domain.ValidateLinkedIdentityInvariant(remaining); err != nil {
		return kbautherr.NewUnlinkFailed("cannot unlink the last remaining identity")
	}
	return e.store.UnlinkIdentity(ctx, user.UserName, localID)
}

// GetLinkedIdentities lists userIncoming's linked remote identities.
func (e *Engine) GetLinkedIdentities(ctx context.Context, userIncoming domain.IncomingToken) ([]domain.RemoteIdentityWithLocalID, error) {
	user, err := e.GetUser(ctx, userIncoming)
	if err != nil {
		return nil, err
	}
	return user.Identities, nil
}

// getLinkableUser resolves the caller and rejects local (password-only)
// accounts, which have no remote identity to link against.
func (e *Engine) getLinkableUser(ctx context.Context, userIncoming domain.IncomingToken) (domain.AuthUser, error) {
	user, err := e.GetUser(ctx, userIncoming)
	if err != nil {
		return domain.AuthUser{}, err
	}
	if user.IsLocal() {
		return domain.AuthUser{}, kbautherr.NewUnauthorized("Local accounts cannot link a remote identity")
	}
	return user, nil
}

// filterUnlinked assigns a LocalID to each identity and drops any already
// claimed by some account.
func (e *Engine) filterUnlinked(ctx context.Context, identities []domain.RemoteIdentity) ([]domain.RemoteIdentityWithLocalID, error) {
	out := make([]domain.RemoteIdentityWithLocalID, 0, len(identities))
	for _, id := range identities {
		if _, err := e.store.GetUserByIdentity(ctx, id.ID); err == nil {
			continue
		} else if !kbautherr.IsNoSuchUser(err) {
			return nil, err
		}
		out = append(out, domain.RemoteIdentityWithLocalID{RemoteIdentity: id, LocalID: uuid.NewString()})
	}
	return out, nil
}

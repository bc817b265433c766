// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kbase/auth2/pkg/crypto"
	"github.com/kbase/auth2/pkg/domain"
	kbautherr "github.com/kbase/auth2/pkg/errors"
)

// LoginOutcome is the result of Login: exactly one of Token (a completed
// login) or TemporaryToken (a deferred continuation) is set.
type LoginOutcome struct {
	Token          string
	TemporaryToken string
}

// Login resolves authcode against providerName's identities and either
// completes immediately with a LOGIN token, or defers to a TemporaryToken
// the caller must continue via GetLoginState/CompleteLogin/CreateUser
// (C8, spec.md §4.7).
func (e *Engine) Login(ctx context.Context, providerName, authcode string) (LoginOutcome, error) {
	provider, cfg, err := e.resolveProvider(ctx, providerName)
	if err != nil {
		return LoginOutcome{}, err
	}
	code := strings.TrimSpace(authcode)
	if code == "" {
		return LoginOutcome{}, kbautherr.NewMissingParameter("authorization code")
	}
	identities, err := provider.GetIdentities(ctx, code, false)
	if err != nil {
		return LoginOutcome{}, err
	}

	withLocal := make([]domain.RemoteIdentityWithLocalID, 0, len(identities))
	var distinctUser domain.AuthUser
	distinctCount := 0
	noUserCount := 0
	for _, id := range identities {
		withLocal = append(withLocal, domain.RemoteIdentityWithLocalID{RemoteIdentity: id, LocalID: uuid.NewString()})
		user, err := e.store.GetUserByIdentity(ctx, id.ID)
		if err != nil {
			if kbautherr.IsNoSuchUser(err) {
				noUserCount++
				continue
			}
			return LoginOutcome{}, err
		}
		if distinctCount == 0 || !distinctUser.UserName.Equals(user.UserName) {
			distinctCount++
			distinctUser = user
		}
	}

	if distinctCount == 1 && noUserCount == 0 {
		allowed := cfg.LoginAllowedGlobally || distinctUser.IsAdmin()
		if allowed && !distinctUser.Disabled {
			token, err := e.createLoginToken(ctx, distinctUser.UserName)
			if err != nil {
				return LoginOutcome{}, err
			}
			return LoginOutcome{Token: token}, nil
		}
	}

	plain := crypto.GetToken()
	now := time.Now()
	tt := domain.TemporaryToken{
		ID:           uuid.NewString(),
		TokenHash:    crypto.HashToken(plain),
		ProviderName: providerName,
		Created:      now,
		Expires:      now.Add(domain.DefaultLoginTempTokenLifetime),
		Identities:   withLocal,
	}
	if err := e.store.CreateTemporaryToken(ctx, tt); err != nil {
		return LoginOutcome{}, err
	}
	return LoginOutcome{TemporaryToken: plain}, nil
}

// IdentityState classifies one candidate identity of a deferred login or
// link continuation.
type IdentityState struct {
	Identity       domain.RemoteIdentity
	LocalID        string
	AlreadyLinked  bool
	LinkedUserName domain.UserName
}

// LoginState is the classified view of a deferred login's candidate
// identities, returned by GetLoginState.
type LoginState struct {
	ProviderName string
	LoginAllowed bool
	Identities   []IdentityState
}

// GetLoginState classifies a deferred login's stored identities into
// already-linked-to-a-user vs available-to-create.
func (e *Engine) GetLoginState(ctx context.Context, tempIncoming domain.IncomingToken) (LoginState, error) {
	tt, err := e.resolveTemporaryToken(ctx, tempIncoming)
	if err != nil {
		return LoginState{}, err
	}
	cfg, err := e.cache.Get(ctx)
	if err != nil {
		return LoginState{}, err
	}
	states := make([]IdentityState, 0, len(tt.Identities))
	for _, ri := range tt.Identities {
		st := IdentityState{Identity: ri.RemoteIdentity, LocalID: ri.LocalID}
		if user, err := e.store.GetUserByIdentity(ctx, ri.ID); err == nil {
			st.AlreadyLinked = true
			st.LinkedUserName = user.UserName
		} else if !kbautherr.IsNoSuchUser(err) {
			return LoginState{}, err
		}
		states = append(states, st)
	}
	return LoginState{
		ProviderName: tt.ProviderName,
		LoginAllowed: cfg.LoginAllowedGlobally,
		Identities:   states,
	}, nil
}

// CreateUserFromLogin creates a new account linked to identityUUID (a
// LocalID from the deferred login's candidate set) and issues a LOGIN
// token. Requires account creation to be globally allowed.
func (e *Engine) CreateUserFromLogin(ctx context.Context, tempIncoming domain.IncomingToken, identityUUID, userName, displayName, email string) (string, error) {
	cfg, err := e.cache.Get(ctx)
	if err != nil {
		return "", err
	}
	if !cfg.LoginAllowedGlobally {
		return "", kbautherr.NewUnauthorized("Account creation is disabled")
	}
	target, err := domain.NewUserName(userName)
	if err != nil {
		return "", err
	}
	if target.IsRoot() {
		return "", kbautherr.NewUnauthorized("Cannot create a user named ROOT")
	}

	tt, err := e.resolveTemporaryToken(ctx, tempIncoming)
	if err != nil {
		return "", err
	}
	identity, ok := findByLocalID(tt.Identities, identityUUID)
	if !ok {
		return "", kbautherr.NewUnauthorized("identity not found in temporary token")
	}
	if _, err := e.store.GetUserByIdentity(ctx, identity.ID); err == nil {
		return "", kbautherr.NewUnauthorized("identity is already linked to a user")
	} else if !kbautherr.IsNoSuchUser(err) {
		return "", err
	}

	dn, err := domain.NewDisplayName(displayName)
	if err != nil {
		return "", err
	}
	em, err := domain.NewEmailAddress(email)
	if err != nil {
		return "", err
	}

	newUser := domain.AuthUser{
		UserName:    target,
		DisplayName: dn,
		Email:       em,
		Created:     time.Now(),
		Identities:  []domain.RemoteIdentityWithLocalID{identity},
	}
	if err := domain.ValidateLinkedIdentityInvariant(newUser.Identities); err != nil {
		return "", err
	}
	if err := e.store.CreateUser(ctx, newUser); err != nil {
		return "", err
	}
	return e.createLoginToken(ctx, target)
}

// CompleteLogin finishes a deferred login against an already-linked
// identity, re-checking login-allowed/admin and disabled state at commit
// time since the candidate set may have gone stale since Login ran.
func (e *Engine) CompleteLogin(ctx context.Context, tempIncoming domain.IncomingToken, identityUUID string) (string, error) {
	tt, err := e.resolveTemporaryToken(ctx, tempIncoming)
	if err != nil {
		return "", err
	}
	identity, ok := findByLocalID(tt.Identities, identityUUID)
	if !ok {
		return "", kbautherr.NewUnauthorized("identity not found in temporary token")
	}
	user, err := e.store.GetUserByIdentity(ctx, identity.ID)
	if err != nil {
		if kbautherr.IsNoSuchUser(err) {
			return "", kbautherr.NewAuthenticationFailed("There is no account linked to the provided identity ID")
		}
		return "", err
	}
	cfg, err := e.cache.Get(ctx)
	if err != nil {
		return "", err
	}
	if !cfg.LoginAllowedGlobally && !user.IsAdmin() {
		return "", kbautherr.NewUnauthorized("Non-admin login is disabled")
	}
	if user.Disabled {
		return "", kbautherr.NewDisabled(user.DisabledReason)
	}
	return e.createLoginToken(ctx, user.UserName)
}

func findByLocalID(identities []domain.RemoteIdentityWithLocalID, localID string) (domain.RemoteIdentityWithLocalID, bool) {
	for _, ri := range identities {
		if ri.LocalID == localID {
			return ri, true
		}
	}
	return domain.RemoteIdentityWithLocalID{}, false
}

var trailingDigits = regexp.MustCompile(`[0-9]+$`)

// SuggestUserName maps a raw provider-supplied name hint to an available
// UserName. It sanitizes the hint (falling back to "user" if nothing
// usable survives), strips any trailing digits, and, if that bare form is
// already taken, appends one more than the largest numeric suffix already
// in use among names matching `^<stripped>[0-9]*$` — producing the
// sequence user, user1, user2, … for an input that always sanitizes to
// empty (spec.md §8). Returns ok=false if no valid suggestion fits within
// MaxNameLength.
func (e *Engine) SuggestUserName(ctx context.Context, raw string) (domain.UserName, bool, error) {
	sanitized, ok := domain.SanitizeUserName(raw)
	base := "user"
	if ok {
		base = sanitized.String()
	}
	strip := trailingDigits.ReplaceAllString(base, "")
	strippedDigits := strip != base

	pattern := regexp.MustCompile("^" + regexp.QuoteMeta(strip) + `[0-9]*$`)
	all, err := e.store.AllUserNames(ctx)
	if err != nil {
		return domain.UserName{}, false, err
	}

	baseTaken := false
	largest := 0
	for _, n := range all {
		name := n.String()
		if !pattern.MatchString(name) {
			continue
		}
		if name == strip {
			baseTaken = true
			continue
		}
		suffix := strings.TrimPrefix(name, strip)
		if val, err := strconv.Atoi(suffix); err == nil && val > largest {
			largest = val
		}
	}

	candidate := strip
	if strippedDigits || baseTaken {
		candidate = strip + strconv.Itoa(largest+1)
	}
	if len(candidate) > domain.MaxNameLength {
		return domain.UserName{}, false, nil
	}
	un, err := domain.NewUserName(candidate)
	if err != nil {
		return domain.UserName{}, false, nil
	}
	return un, true, nil
}

// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"context"
	"time"

	"github.com/kbase/auth2/pkg/crypto"
	"github.com/kbase/auth2/pkg/domain"
	kbautherr "github.com/kbase/auth2/pkg/errors"
)

// TemporaryPasswordLength is the length of a generated temporary or root
// password, matching the source service's undocumented-in-prose but
// load-bearing constant.
const TemporaryPasswordLength = 10

// rootCreatorRoles are the roles entitled to create a local account
// (spec.md §4.6).
var rootCreatorRoles = []domain.Role{domain.RoleRoot, domain.RoleCreateAdmin, domain.RoleAdmin}

// CreateRoot creates the reserved ROOT local account if absent, or resets
// its password and re-enables it if present. The insert is attempted
// first and only a UserExists failure falls back to an update, so two
// concurrent callers never both observe "absent" and race a double
// insert. password is zeroed before every return.
func (e *Engine) CreateRoot(ctx context.Context, password []byte) error {
	defer crypto.Zero(password)

	rootName, err := domain.NewUserName(domain.RootUserName)
	if err != nil {
		return err
	}
	display, err := domain.NewDisplayName("root")
	if err != nil {
		return err
	}

	salt, err := crypto.GenerateSalt()
	if err != nil {
		return err
	}
	hash := crypto.GetEncryptedPassword(password, salt)
	defer crypto.Zero(hash)

	lu, err := domain.NewLocalUser(domain.AuthUser{
		UserName:    rootName,
		Email:       domain.UnknownEmailAddressValue(),
		DisplayName: display,
		Roles:       domain.NewRoleSet(domain.RoleRoot),
		Created:     time.Now(),
	}, hash, salt, false, nil)
	if err != nil {
		return err
	}

	err = e.store.CreateLocalUser(ctx, lu)
	if err == nil {
		return nil
	}
	if !kbautherr.IsUserExists(err) {
		return err
	}
	if err := e.store.ChangePassword(ctx, rootName, hash, salt, false); err != nil {
		return err
	}
	return e.store.SetDisabled(ctx, rootName, false, "")
}

// CreateLocalUser creates a password-authenticated account and returns a
// generated temporary password for out-of-band delivery. Requires
// ROOT, CREATE_ADMIN, or ADMIN.
func (e *Engine) CreateLocalUser(ctx context.Context, adminIncoming domain.IncomingToken, userName, displayName, email string) ([]byte, error) {
	if _, err := e.GetUser(ctx, adminIncoming, rootCreatorRoles...); err != nil {
		return nil, err
	}
	target, err := domain.NewUserName(userName)
	if err != nil {
		return nil, err
	}
	if target.IsRoot() {
		return nil, kbautherr.NewUnauthorized("Cannot create a user named ROOT")
	}
	dn, err := domain.NewDisplayName(displayName)
	if err != nil {
		return nil, err
	}
	em, err := domain.NewEmailAddress(email)
	if err != nil {
		return nil, err
	}

	plain, err := crypto.GetTemporaryPassword(TemporaryPasswordLength)
	if err != nil {
		return nil, err
	}
	salt, err := crypto.GenerateSalt()
	if err != nil {
		return nil, err
	}
	hash := crypto.GetEncryptedPassword(plain, salt)
	defer crypto.Zero(hash)

	lu, err := domain.NewLocalUser(domain.AuthUser{
		UserName:    target,
		DisplayName: dn,
		Email:       em,
		Created:     time.Now(),
	}, hash, salt, true, nil)
	if err != nil {
		return nil, err
	}
	if err := e.store.CreateLocalUser(ctx, lu); err != nil {
		return nil, err
	}
	return plain, nil
}

// LoginResult is the outcome of a local-account login attempt: either a
// fresh LOGIN token, or a must-reset notice carrying only the username.
type LoginResult struct {
	UserName   domain.UserName
	Token      string
	ForceReset bool
}

// LocalLogin authenticates userName/password. Unknown user and wrong
// password collapse into the same AuthenticationFailed message to avoid
// user enumeration. password is zeroed before every return.
func (e *Engine) LocalLogin(ctx context.Context, userName string, password []byte) (LoginResult, error) {
	defer crypto.Zero(password)

	un, lu, ok := e.lookupLocalUser(ctx, userName, password)
	if !ok {
		return LoginResult{}, kbautherr.NewAuthenticationFailed("Username / password mismatch")
	}

	cfg, err := e.cache.Get(ctx)
	if err != nil {
		return LoginResult{}, err
	}
	if !cfg.LoginAllowedGlobally && !lu.IsAdmin() {
		return LoginResult{}, kbautherr.NewUnauthorized("Non-admin login is disabled")
	}
	if lu.Disabled {
		return LoginResult{}, kbautherr.NewDisabled(lu.DisabledReason)
	}
	if lu.ForceReset {
		return LoginResult{UserName: un, ForceReset: true}, nil
	}

	token, err := e.createLoginToken(ctx, un)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{UserName: un, Token: token}, nil
}

// lookupLocalUser resolves and authenticates userName/password, returning
// ok=false for any of {malformed username, unknown user, wrong password}
// without distinguishing which.
func (e *Engine) lookupLocalUser(ctx context.Context, userName string, password []byte) (domain.UserName, domain.LocalUser, bool) {
	un, err := domain.NewUserName(userName)
	if err != nil {
		return domain.UserName{}, domain.LocalUser{}, false
	}
	lu, err := e.store.GetLocalUser(ctx, un)
	if err != nil {
		return domain.UserName{}, domain.LocalUser{}, false
	}
	if !crypto.Authenticate(password, lu.PasswordHash, lu.Salt) {
		return domain.UserName{}, domain.LocalUser{}, false
	}
	return un, lu, true
}

// PasswordChange authenticates userName/old exactly as LocalLogin does,
// then replaces the stored credential with new and clears forceReset.
// Both buffers are zeroed before every return.
func (e *Engine) PasswordChange(ctx context.Context, userName string, old, new []byte) error {
	defer crypto.Zero(old)
	defer crypto.Zero(new)

	un, lu, ok := e.lookupLocalUser(ctx, userName, old)
	if !ok {
		return kbautherr.NewAuthenticationFailed("Username / password mismatch")
	}
	cfg, err := e.cache.Get(ctx)
	if err != nil {
		return err
	}
	if !cfg.LoginAllowedGlobally && !lu.IsAdmin() {
		return kbautherr.NewUnauthorized("Non-admin login is disabled")
	}
	if lu.Disabled {
		return kbautherr.NewDisabled(lu.DisabledReason)
	}

	salt, err := crypto.GenerateSalt()
	if err != nil {
		return err
	}
	hash := crypto.GetEncryptedPassword(new, salt)
	defer crypto.Zero(hash)
	return e.store.ChangePassword(ctx, un, hash, salt, false)
}

// ResetPassword regenerates a random temporary password for userName and
// marks forceReset. Requires ADMIN.
func (e *Engine) ResetPassword(ctx context.Context, adminIncoming domain.IncomingToken, userName string) ([]byte, error) {
	if _, err := e.GetUser(ctx, adminIncoming, domain.RoleAdmin); err != nil {
		return nil, err
	}
	target, err := domain.NewUserName(userName)
	if err != nil {
		return nil, err
	}
	plain, err := crypto.GetTemporaryPassword(TemporaryPasswordLength)
	if err != nil {
		return nil, err
	}
	salt, err := crypto.GenerateSalt()
	if err != nil {
		return nil, err
	}
	hash := crypto.GetEncryptedPassword(plain, salt)
	defer crypto.Zero(hash)
	if err := e.store.ChangePassword(ctx, target, hash, salt, true); err != nil {
		return nil, err
	}
	return plain, nil
}

// ForceResetPassword flags userName's account to require a password reset
// on next login. Requires ADMIN.
func (e *Engine) ForceResetPassword(ctx context.Context, adminIncoming domain.IncomingToken, userName string) error {
	if _, err := e.GetUser(ctx, adminIncoming, domain.RoleAdmin); err != nil {
		return err
	}
	target, err := domain.NewUserName(userName)
	if err != nil {
		return err
	}
	return e.store.ForceResetPassword(ctx, target)
}

// ForceResetAllPasswords flags every local account to require a password
// reset on next login. Requires ADMIN.
func (e *Engine) ForceResetAllPasswords(ctx context.Context, adminIncoming domain.IncomingToken) error {
	if _, err := e.GetUser(ctx, adminIncoming, domain.RoleAdmin); err != nil {
		return err
	}
	return e.store.ForceResetAllPasswords(ctx)
}

// GetUserDisplayName returns a single local user's display name.
func (e *Engine) GetUserDisplayName(ctx context.Context, userName string) (domain.DisplayName, error) {
	un, err := domain.NewUserName(userName)
	if err != nil {
		return domain.DisplayName{}, err
	}
	user, err := e.store.GetUser(ctx, un)
	if err != nil {
		return domain.DisplayName{}, err
	}
	return user.DisplayName, nil
}

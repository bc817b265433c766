// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"context"
	"strings"

	"github.com/kbase/auth2/pkg/domain"
	kbautherr "github.com/kbase/auth2/pkg/errors"
)

// adminRoles are the roles entitled to disable/enable another account
// (spec.md §4.10).
var adminRoles = []domain.Role{domain.RoleRoot, domain.RoleCreateAdmin, domain.RoleAdmin}

// DisableAccount disables or re-enables userName. Disabling requires a
// non-blank reason. Disabling ROOT requires the acting caller to
// themselves hold ROOT; enabling ROOT is forbidden for everyone. Tokens
// for userName are deleted both before and after the write, closing the
// window where a concurrent login could mint a fresh token mid-update.
func (e *Engine) DisableAccount(ctx context.Context, adminIncoming domain.IncomingToken, userName string, disable bool, reason string) error {
	actingUser, err := e.GetUser(ctx, adminIncoming, adminRoles...)
	if err != nil {
		return err
	}
	target, err := domain.NewUserName(userName)
	if err != nil {
		return err
	}
	if disable && strings.TrimSpace(reason) == "" {
		return kbautherr.NewMissingParameter("reason")
	}
	if target.IsRoot() {
		if !disable {
			return kbautherr.NewUnauthorized("Cannot enable the ROOT account")
		}
		if !actingUser.UserName.IsRoot() {
			return kbautherr.NewUnauthorized("Only ROOT may disable the ROOT account")
		}
	}

	if err := e.store.DeleteTokensForUser(ctx, target); err != nil {
		return err
	}
	if err := e.store.SetDisabled(ctx, target, disable, reason); err != nil {
		return err
	}
	return e.store.DeleteTokensForUser(ctx, target)
}

// GetUserAsAdmin returns the full record of userName. Requires ADMIN.
func (e *Engine) GetUserAsAdmin(ctx context.Context, adminIncoming domain.IncomingToken, userName string) (domain.AuthUser, error) {
	if _, err := e.GetUser(ctx, adminIncoming, domain.RoleAdmin); err != nil {
		return domain.AuthUser{}, err
	}
	target, err := domain.NewUserName(userName)
	if err != nil {
		return domain.AuthUser{}, err
	}
	return e.store.GetUser(ctx, target)
}

// GetUserDisplayNames returns the display names of the given userNames
// that exist, silently dropping any that don't. At most
// domain.MaxDisplayNameLookup names may be requested.
func (e *Engine) GetUserDisplayNames(ctx context.Context, names []string) (map[string]domain.DisplayName, error) {
	if len(names) > domain.MaxDisplayNameLookup {
		return nil, kbautherr.NewIllegalParameter("too many names requested")
	}
	parsed := make([]domain.UserName, 0, len(names))
	for _, n := range names {
		un, err := domain.NewUserName(n)
		if err != nil {
			continue
		}
		parsed = append(parsed, un)
	}
	return e.store.GetDisplayNames(ctx, parsed)
}

// SearchUserDisplayNames searches for display names matching spec.
// Non-admin callers are restricted to a plain prefix search with no role
// filter; any other shape from a non-admin is Unauthorized.
func (e *Engine) SearchUserDisplayNames(ctx context.Context, incoming domain.IncomingToken, spec domain.UserSearchSpec) (map[string]domain.DisplayName, error) {
	user, err := e.GetUser(ctx, incoming)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin() && !spec.IsPrefixOnly() {
		return nil, kbautherr.NewUnauthorized("Only admins may search by role or include disabled/root accounts")
	}
	if spec.Limit <= 0 || spec.Limit > domain.MaxDisplayNameLookup {
		spec.Limit = domain.MaxDisplayNameLookup
	}
	return e.store.SearchDisplayNames(ctx, spec)
}

// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"context"
	"strings"

	"github.com/kbase/auth2/pkg/domain"
	kbautherr "github.com/kbase/auth2/pkg/errors"
)

// GetUser resolves incoming to a user, refusing a disabled account (and
// deleting all of its tokens on discovery) and, if required is non-empty,
// refusing a user whose included-role closure misses every required role
// (C10, spec.md §4.9).
func (e *Engine) GetUser(ctx context.Context, incoming domain.IncomingToken, required ...domain.Role) (domain.AuthUser, error) {
	tok, err := e.resolveToken(ctx, incoming)
	if err != nil {
		return domain.AuthUser{}, err
	}
	user, err := e.store.GetUser(ctx, tok.UserName)
	if err != nil {
		if kbautherr.IsNoSuchUser(err) {
			return domain.AuthUser{}, kbautherr.NewInternal("token refers to a user that no longer exists", err)
		}
		return domain.AuthUser{}, err
	}
	if user.Disabled {
		if derr := e.store.DeleteTokensForUser(ctx, user.UserName); derr != nil {
			e.logger.Error("failed to delete tokens for disabled user", "user", user.UserName.String(), "error", derr)
		}
		return domain.AuthUser{}, kbautherr.NewDisabled(user.DisabledReason)
	}
	if len(required) > 0 {
		has := user.IncludedRoles()
		if has.Intersect(domain.NewRoleSet(required...)).IsEmpty() {
			return domain.AuthUser{}, kbautherr.NewUnauthorized("user does not hold a required role")
		}
	}
	return user, nil
}

// IsAdmin reports whether user's role closure includes ADMIN or above.
func (e *Engine) IsAdmin(user domain.AuthUser) bool { return user.IsAdmin() }

// IsSuperOrCreateAdmin reports whether user's role closure includes ROOT
// or CREATE_ADMIN.
func (e *Engine) IsSuperOrCreateAdmin(user domain.AuthUser) bool { return user.IsSuperOrCreateAdmin() }

func roleNames(roles []domain.Role) string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}

// UpdateRoles grants and revokes built-in roles for userName, acting as
// the user identified by adminIncoming. add and remove must be disjoint.
// The acting user may grant or revoke only roles within their own
// grantable closure, except that anyone may remove their own roles
// without grant authority (spec.md §4.9).
func (e *Engine) UpdateRoles(ctx context.Context, adminIncoming domain.IncomingToken, userName string, add, remove []domain.Role) error {
	actingUser, err := e.GetUser(ctx, adminIncoming)
	if err != nil {
		return err
	}
	target, err := domain.NewUserName(userName)
	if err != nil {
		return err
	}
	if target.IsRoot() {
		return kbautherr.NewUnauthorized("Cannot change ROOT roles")
	}

	addSet := domain.NewRoleSet(add...)
	removeSet := domain.NewRoleSet(remove...)
	if inter := addSet.Intersect(removeSet); !inter.IsEmpty() {
		return kbautherr.NewIllegalParameter("roles cannot be both added and removed: " + roleNames(inter.Slice()))
	}

	targetUser, err := e.store.GetUser(ctx, target)
	if err != nil {
		return err
	}

	grantable := actingUser.GrantableRoles()
	if notGrantable := addSet.Minus(grantable); !notGrantable.IsEmpty() {
		return kbautherr.NewUnauthorized("Not authorized to grant role(s): " + roleNames(notGrantable.Slice()))
	}
	if !actingUser.UserName.Equals(target) {
		if notGrantable := removeSet.Minus(grantable); !notGrantable.IsEmpty() {
			return kbautherr.NewUnauthorized("Not authorized to remove role(s): " + roleNames(notGrantable.Slice()))
		}
	}

	newRoles := targetUser.Roles.Union(addSet).Minus(removeSet)
	return e.store.SetRoles(ctx, target, newRoles)
}

// UpdateCustomRoles grants and revokes custom-role tags for userName.
// Requires ADMIN. Users may not remove their own custom roles, since
// these are admin-assigned tags rather than self-service grants.
func (e *Engine) UpdateCustomRoles(ctx context.Context, adminIncoming domain.IncomingToken, userName string, add, remove []string) error {
	actingUser, err := e.GetUser(ctx, adminIncoming, domain.RoleAdmin)
	if err != nil {
		return err
	}
	target, err := domain.NewUserName(userName)
	if err != nil {
		return err
	}

	addSet := make(map[string]struct{}, len(add))
	for _, r := range add {
		addSet[r] = struct{}{}
	}
	removeSet := make(map[string]struct{}, len(remove))
	for _, r := range remove {
		removeSet[r] = struct{}{}
	}
	var overlap []string
	for r := range addSet {
		if _, ok := removeSet[r]; ok {
			overlap = append(overlap, r)
		}
	}
	if len(overlap) > 0 {
		return kbautherr.NewIllegalParameter("custom roles cannot be both added and removed: " + strings.Join(overlap, ", "))
	}
	if actingUser.UserName.Equals(target) && len(removeSet) > 0 {
		return kbautherr.NewUnauthorized("users may not remove their own custom roles")
	}

	targetUser, err := e.store.GetUser(ctx, target)
	if err != nil {
		return err
	}
	newRoles := make(map[string]struct{}, len(targetUser.CustomRoles)+len(addSet))
	for r := range targetUser.CustomRoles {
		if _, removed := removeSet[r]; !removed {
			newRoles[r] = struct{}{}
		}
	}
	for r := range addSet {
		newRoles[r] = struct{}{}
	}
	return e.store.SetCustomRoles(ctx, target, newRoles)
}

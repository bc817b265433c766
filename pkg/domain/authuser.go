package domain

import (
	"time"

	kbautherr "github.com/kbase/auth2/pkg/errors"
)

// AuthUser is the invariant bundle describing a user account, whether
// local (password) or standard (≥1 linked remote identity).
type AuthUser struct {
	UserName        UserName
	Email           EmailAddress
	DisplayName     DisplayName
	Roles           RoleSet
	CustomRoles     map[string]struct{}
	PolicyIDs       map[string]struct{}
	Created         time.Time
	LastLogin       *time.Time
	Disabled        bool
	DisabledReason  string
	Identities      []RemoteIdentityWithLocalID
}

// IsLocal reports whether this account authenticates by password (no
// linked remote identities) rather than via an identity provider.
func (u AuthUser) IsLocal() bool {
	return len(u.Identities) == 0
}

// IsRoot reports whether this is the reserved root account.
func (u AuthUser) IsRoot() bool {
	return u.UserName.IsRoot()
}

// ValidateLinkedIdentityInvariant enforces "non-local user has ≥1 linked
// identity" for accounts that are not password accounts. Local accounts
// are represented separately (LocalUser) and are exempt.
func ValidateLinkedIdentityInvariant(identities []RemoteIdentityWithLocalID) error {
	if len(identities) == 0 {
		return kbautherr.NewInternal("a standard user must have at least one linked identity", nil)
	}
	return nil
}

// HasIdentity reports whether id is among u's linked identities, returning
// the matching entry if so.
func (u AuthUser) HasIdentity(id RemoteIdentityID) (RemoteIdentityWithLocalID, bool) {
	for _, ri := range u.Identities {
		if ri.ID.Equals(id) {
			return ri, true
		}
	}
	return RemoteIdentityWithLocalID{}, false
}

// HasIdentityLocalID reports whether a linked identity carries the given
// locally-assigned UUID.
func (u AuthUser) HasIdentityLocalID(localID string) (RemoteIdentityWithLocalID, bool) {
	for _, ri := range u.Identities {
		if ri.LocalID == localID {
			return ri, true
		}
	}
	return RemoteIdentityWithLocalID{}, false
}

// IncludedRoles returns the full closure of roles this user's held roles
// imply.
func (u AuthUser) IncludedRoles() RoleSet {
	return u.Roles.IncludedRoles()
}

// GrantableRoles returns the roles this user is authorized to grant.
func (u AuthUser) GrantableRoles() RoleSet {
	return u.Roles.GrantableRoles()
}

// IsAdmin reports whether this user's role closure includes ADMIN or above.
func (u AuthUser) IsAdmin() bool {
	return u.Roles.IsAdmin()
}

// IsSuperOrCreateAdmin reports whether this user's role closure includes
// ROOT or CREATE_ADMIN.
func (u AuthUser) IsSuperOrCreateAdmin() bool {
	return u.Roles.IsSuperOrCreateAdmin()
}

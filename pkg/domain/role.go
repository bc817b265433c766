package domain

// Role is a built-in, closed-enum authorization role.
type Role string

// Built-in roles, in grant-hierarchy order.
const (
	RoleRoot         Role = "ROOT"
	RoleCreateAdmin  Role = "CREATE_ADMIN"
	RoleAdmin        Role = "ADMIN"
	RoleDevToken     Role = "DEV_TOKEN"
	RoleServToken    Role = "SERV_TOKEN"
)

// included maps each role to the set of roles it implicitly grants,
// including itself. ROOT implies CREATE_ADMIN implies ADMIN implies both
// DEV_TOKEN and SERV_TOKEN.
var included = map[Role][]Role{
	RoleRoot:        {RoleRoot, RoleCreateAdmin, RoleAdmin, RoleDevToken, RoleServToken},
	RoleCreateAdmin: {RoleCreateAdmin, RoleAdmin, RoleDevToken, RoleServToken},
	RoleAdmin:       {RoleAdmin, RoleDevToken, RoleServToken},
	RoleDevToken:    {RoleDevToken},
	RoleServToken:   {RoleServToken},
}

// grantable maps each role to the set of roles it may grant to others.
// This mirrors included: a role may grant anything it implies.
var grantable = included

// IsValidRole reports whether r names a built-in role.
func IsValidRole(r Role) bool {
	_, ok := included[r]
	return ok
}

// Included returns the set of roles r implies, including r itself.
func (r Role) Included() []Role {
	out := included[r]
	cp := make([]Role, len(out))
	copy(cp, out)
	return cp
}

// Grantable returns the set of roles r is authorized to grant to others.
func (r Role) Grantable() []Role {
	out := grantable[r]
	cp := make([]Role, len(out))
	copy(cp, out)
	return cp
}

// RoleSet is a set of Roles, used for AuthUser.Roles and authorization math.
type RoleSet map[Role]struct{}

// NewRoleSet builds a RoleSet from a slice of roles.
func NewRoleSet(roles ...Role) RoleSet {
	s := make(RoleSet, len(roles))
	for _, r := range roles {
		s[r] = struct{}{}
	}
	return s
}

// Contains reports whether r is a member of the set.
func (s RoleSet) Contains(r Role) bool {
	_, ok := s[r]
	return ok
}

// Union returns the set union of s and other.
func (s RoleSet) Union(other RoleSet) RoleSet {
	out := make(RoleSet, len(s)+len(other))
	for r := range s {
		out[r] = struct{}{}
	}
	for r := range other {
		out[r] = struct{}{}
	}
	return out
}

// Intersect returns the set intersection of s and other.
func (s RoleSet) Intersect(other RoleSet) RoleSet {
	out := make(RoleSet)
	for r := range s {
		if other.Contains(r) {
			out[r] = struct{}{}
		}
	}
	return out
}

// Minus returns the set difference s \ other.
func (s RoleSet) Minus(other RoleSet) RoleSet {
	out := make(RoleSet)
	for r := range s {
		if !other.Contains(r) {
			out[r] = struct{}{}
		}
	}
	return out
}

// IsEmpty reports whether the set has no members.
func (s RoleSet) IsEmpty() bool { return len(s) == 0 }

// Slice returns the set's members in no particular order.
func (s RoleSet) Slice() []Role {
	out := make([]Role, 0, len(s))
	for r := range s {
		out = append(out, r)
	}
	return out
}

// IncludedRoles returns the union of Included() over every role in s —
// the full set of roles s's holder is entitled to act under.
func (s RoleSet) IncludedRoles() RoleSet {
	out := make(RoleSet)
	for r := range s {
		for _, inc := range r.Included() {
			out[inc] = struct{}{}
		}
	}
	return out
}

// GrantableRoles returns the union of Grantable() over every role in s.
func (s RoleSet) GrantableRoles() RoleSet {
	out := make(RoleSet)
	for r := range s {
		for _, g := range r.Grantable() {
			out[g] = struct{}{}
		}
	}
	return out
}

// IsAdmin reports whether the included-role closure contains ADMIN or higher.
func (s RoleSet) IsAdmin() bool {
	inc := s.IncludedRoles()
	return inc.Contains(RoleAdmin) || inc.Contains(RoleCreateAdmin) || inc.Contains(RoleRoot)
}

// IsSuperOrCreateAdmin reports whether the included-role closure contains
// ROOT or CREATE_ADMIN — the roles exempt from "non-admin login disabled".
func (s RoleSet) IsSuperOrCreateAdmin() bool {
	inc := s.IncludedRoles()
	return inc.Contains(RoleRoot) || inc.Contains(RoleCreateAdmin)
}

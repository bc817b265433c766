package domain

// MaxDisplayNameLookup bounds the number of names or search results
// returned by a single display-name lookup (spec.md §4.10).
const MaxDisplayNameLookup = 10000

// UserSearchSpec describes a bounded search over user display names,
// built with the With* functional options below.
type UserSearchSpec struct {
	Prefix          string
	RoleFilter      []Role
	IncludeDisabled bool
	IncludeRoot     bool
	Limit           int
}

// UserSearchSpecOption configures a UserSearchSpec.
type UserSearchSpecOption func(*UserSearchSpec)

// NewUserSearchSpec builds a UserSearchSpec with sane defaults: no role
// filter, disabled accounts excluded, root excluded, limit at the cap.
func NewUserSearchSpec(opts ...UserSearchSpecOption) UserSearchSpec {
	spec := UserSearchSpec{Limit: MaxDisplayNameLookup}
	for _, opt := range opts {
		opt(&spec)
	}
	if spec.Limit <= 0 || spec.Limit > MaxDisplayNameLookup {
		spec.Limit = MaxDisplayNameLookup
	}
	return spec
}

// WithPrefix filters results to names whose display name begins with p.
func WithPrefix(p string) UserSearchSpecOption {
	return func(s *UserSearchSpec) { s.Prefix = p }
}

// WithRoleFilter restricts results to users holding any of the given roles.
func WithRoleFilter(roles ...Role) UserSearchSpecOption {
	return func(s *UserSearchSpec) { s.RoleFilter = roles }
}

// WithIncludeDisabled includes disabled accounts in the results.
func WithIncludeDisabled() UserSearchSpecOption {
	return func(s *UserSearchSpec) { s.IncludeDisabled = true }
}

// WithLimit overrides the default result cap, clamped to MaxDisplayNameLookup.
func WithLimit(n int) UserSearchSpecOption {
	return func(s *UserSearchSpec) { s.Limit = n }
}

// IsPrefixOnly reports whether this spec is restricted to a prefix match
// with no role filter — the only shape a non-admin caller may use
// (spec.md §4.10).
func (s UserSearchSpec) IsPrefixOnly() bool {
	return len(s.RoleFilter) == 0
}

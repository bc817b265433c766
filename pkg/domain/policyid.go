package domain

import (
	"strings"

	kbautherr "github.com/kbase/auth2/pkg/errors"
)

// PolicyID is an opaque identifier for an externally-defined policy tag
// attached to a user. The engine treats it as an opaque set member; policy
// evaluation is not this component's responsibility.
type PolicyID struct {
	id string
}

// NewPolicyID validates and constructs a PolicyID.
func NewPolicyID(id string) (PolicyID, error) {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return PolicyID{}, kbautherr.NewMissingParameter("policyID")
	}
	return PolicyID{id: trimmed}, nil
}

// String returns the policy id text.
func (p PolicyID) String() string { return p.id }

// CustomRole is a user-defined role, identified by a string id and
// independent of the built-in Role enum.
type CustomRole struct {
	ID   string
	Desc string
}

// NewCustomRole validates and constructs a CustomRole.
func NewCustomRole(id, desc string) (CustomRole, error) {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return CustomRole{}, kbautherr.NewMissingParameter("customRoleID")
	}
	if len(trimmed) > MaxNameLength {
		return CustomRole{}, kbautherr.NewIllegalParameter("customRoleID exceeds maximum length")
	}
	return CustomRole{ID: trimmed, Desc: desc}, nil
}

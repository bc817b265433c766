// Package domain contains the value types shared by every component of the
// authentication engine: names, roles, identities, users, tokens, and the
// server configuration snapshot. Types here validate themselves on
// construction; they carry no storage or network behavior.
package domain

import (
	"fmt"
	"regexp"
	"strings"

	kbautherr "github.com/kbase/auth2/pkg/errors"
)

// MaxNameLength bounds UserName, DisplayName, and token-name length.
const MaxNameLength = 100

// RootUserName is the reserved name of the root account.
const RootUserName = "***ROOT***"

var userNamePattern = regexp.MustCompile(`^[a-z0-9]+$`)

// UserName is a normalized user identifier: lowercase alphanumerics up to
// MaxNameLength, or the reserved RootUserName sentinel.
type UserName struct {
	name string
}

// NewUserName validates and constructs a UserName.
func NewUserName(name string) (UserName, error) {
	if name == RootUserName {
		return UserName{name: name}, nil
	}
	if name == "" {
		return UserName{}, kbautherr.NewMissingParameter("userName")
	}
	if len(name) > MaxNameLength {
		return UserName{}, kbautherr.NewIllegalParameter(
			fmt.Sprintf("userName exceeds maximum length of %d", MaxNameLength))
	}
	if !userNamePattern.MatchString(name) {
		return UserName{}, kbautherr.NewIllegalParameter(
			"userName must contain only lowercase alphanumeric characters")
	}
	return UserName{name: name}, nil
}

// String returns the normalized name.
func (u UserName) String() string { return u.name }

// IsRoot reports whether this is the reserved root account name.
func (u UserName) IsRoot() bool { return u.name == RootUserName }

// Equals reports whether two UserNames refer to the same account.
func (u UserName) Equals(other UserName) bool { return u.name == other.name }

// SanitizeUserName maps arbitrary input to a valid UserName, discarding
// disallowed characters and folding to lowercase, or returns ok=false if
// nothing usable remains.
func SanitizeUserName(raw string) (UserName, bool) {
	lower := strings.ToLower(raw)
	var b strings.Builder
	for _, r := range lower {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if len(cleaned) > MaxNameLength {
		cleaned = cleaned[:MaxNameLength]
	}
	if cleaned == "" {
		return UserName{}, false
	}
	un, err := NewUserName(cleaned)
	if err != nil {
		return UserName{}, false
	}
	return un, true
}

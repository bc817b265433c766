package domain

import (
	"strings"

	kbautherr "github.com/kbase/auth2/pkg/errors"
)

// UnknownDisplayName is the sentinel used when no display name is known.
const UnknownDisplayName = "UNKNOWN"

// DisplayName is a free-text human name, with an UNKNOWN sentinel for
// providers that don't supply one.
type DisplayName struct {
	name string
}

// NewDisplayName validates and constructs a DisplayName. Control characters
// are rejected; length is capped at MaxNameLength.
func NewDisplayName(name string) (DisplayName, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return DisplayName{}, kbautherr.NewMissingParameter("displayName")
	}
	if len(trimmed) > MaxNameLength {
		return DisplayName{}, kbautherr.NewIllegalParameter("displayName exceeds maximum length")
	}
	if containsControl(trimmed) {
		return DisplayName{}, kbautherr.NewIllegalParameter("displayName contains control characters")
	}
	return DisplayName{name: trimmed}, nil
}

// UnknownDisplayNameValue returns the UNKNOWN sentinel DisplayName.
func UnknownDisplayNameValue() DisplayName {
	return DisplayName{name: UnknownDisplayName}
}

// String returns the display name text.
func (d DisplayName) String() string { return d.name }

// IsUnknown reports whether this is the UNKNOWN sentinel.
func (d DisplayName) IsUnknown() bool { return d.name == UnknownDisplayName }

func containsControl(s string) bool {
	for _, r := range s {
		if r < 0x20 || r == 0x7f {
			return true
		}
	}
	return false
}

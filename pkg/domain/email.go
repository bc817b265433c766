package domain

import (
	"regexp"
	"strings"

	kbautherr "github.com/kbase/auth2/pkg/errors"
)

// UnknownEmailAddress is the sentinel used when no email address is known.
const UnknownEmailAddress = "UNKNOWN"

// crude RFC-5322-shaped matcher; the engine does not attempt full RFC
// compliance, only enough to reject obvious garbage.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// EmailAddress is a validated email address, with an UNKNOWN sentinel.
type EmailAddress struct {
	address string
}

// NewEmailAddress validates and constructs an EmailAddress.
func NewEmailAddress(address string) (EmailAddress, error) {
	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		return EmailAddress{}, kbautherr.NewMissingParameter("email")
	}
	if len(trimmed) > MaxNameLength {
		return EmailAddress{}, kbautherr.NewIllegalParameter("email exceeds maximum length")
	}
	if containsControl(trimmed) {
		return EmailAddress{}, kbautherr.NewIllegalParameter("email contains control characters")
	}
	if trimmed != UnknownEmailAddress && !emailPattern.MatchString(trimmed) {
		return EmailAddress{}, kbautherr.NewIllegalParameter("email is not validly formatted")
	}
	return EmailAddress{address: trimmed}, nil
}

// UnknownEmailAddressValue returns the UNKNOWN sentinel EmailAddress.
func UnknownEmailAddressValue() EmailAddress {
	return EmailAddress{address: UnknownEmailAddress}
}

// String returns the email address text.
func (e EmailAddress) String() string { return e.address }

// IsUnknown reports whether this is the UNKNOWN sentinel.
func (e EmailAddress) IsUnknown() bool { return e.address == UnknownEmailAddress }

package domain

import (
	"strings"

	kbautherr "github.com/kbase/auth2/pkg/errors"
)

// RemoteIdentityID identifies a remote account at a specific provider: the
// provider name plus the provider's own local identifier for the account.
type RemoteIdentityID struct {
	ProviderName string
	ProviderID   string
}

// NewRemoteIdentityID validates and constructs a RemoteIdentityID.
func NewRemoteIdentityID(providerName, providerID string) (RemoteIdentityID, error) {
	if strings.TrimSpace(providerName) == "" {
		return RemoteIdentityID{}, kbautherr.NewMissingParameter("providerName")
	}
	if strings.TrimSpace(providerID) == "" {
		return RemoteIdentityID{}, kbautherr.NewMissingParameter("providerID")
	}
	return RemoteIdentityID{ProviderName: providerName, ProviderID: providerID}, nil
}

// Equals reports whether two RemoteIdentityIDs name the same remote account.
func (r RemoteIdentityID) Equals(other RemoteIdentityID) bool {
	return r.ProviderName == other.ProviderName && r.ProviderID == other.ProviderID
}

// RemoteIdentityDetails carries optional display details fetched from the
// provider. Any field may be the empty string if the provider did not
// supply it.
type RemoteIdentityDetails struct {
	Username string
	FullName string
	Email    string
}

// RemoteIdentity is a remote account as reported by a provider: its id plus
// whatever display details were returned alongside it.
type RemoteIdentity struct {
	ID      RemoteIdentityID
	Details RemoteIdentityDetails
}

// RemoteIdentityWithLocalID is a RemoteIdentity plus the UUID the engine
// assigns it the first time it is seen, used as a stable handle across the
// login/link temporary-token continuation.
type RemoteIdentityWithLocalID struct {
	RemoteIdentity
	LocalID string
}

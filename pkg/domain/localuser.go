package domain

import (
	"time"

	kbautherr "github.com/kbase/auth2/pkg/errors"
)

// MinPasswordHashBytes and MinSaltBytes are the invariant lower bounds on
// stored credential material; below these lengths the hash could not have
// come from a real KDF pass.
const (
	MinPasswordHashBytes = 10
	MinSaltBytes          = 2
)

// LocalUser extends AuthUser with the fields needed for password
// authentication. A LocalUser has no linked remote identities.
type LocalUser struct {
	AuthUser
	PasswordHash []byte
	Salt         []byte
	ForceReset   bool
	LastReset    *time.Time
}

// NewLocalUser validates and constructs a LocalUser.
func NewLocalUser(user AuthUser, passwordHash, salt []byte, forceReset bool, lastReset *time.Time) (LocalUser, error) {
	if len(user.Identities) != 0 {
		return LocalUser{}, kbautherr.NewInternal("a local user may not have linked identities", nil)
	}
	if len(passwordHash) < MinPasswordHashBytes {
		return LocalUser{}, kbautherr.NewIllegalParameter("password hash is too short")
	}
	if len(salt) < MinSaltBytes {
		return LocalUser{}, kbautherr.NewIllegalParameter("salt is too short")
	}
	return LocalUser{
		AuthUser:     user,
		PasswordHash: passwordHash,
		Salt:         salt,
		ForceReset:   forceReset,
		LastReset:    lastReset,
	}, nil
}

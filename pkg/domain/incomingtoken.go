package domain

import (
	"strings"

	kbautherr "github.com/kbase/auth2/pkg/errors"
)

// IncomingToken is an opaque bearer token as presented by a caller. It is
// never persisted in plaintext; every Storage lookup is by its hash.
type IncomingToken struct {
	token string
}

// NewIncomingToken trims whitespace and validates that a token was
// actually supplied.
func NewIncomingToken(token string) (IncomingToken, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return IncomingToken{}, kbautherr.NewNoTokenProvided()
	}
	return IncomingToken{token: trimmed}, nil
}

// String returns the trimmed plaintext token. Callers must not persist it.
func (t IncomingToken) String() string { return t.token }

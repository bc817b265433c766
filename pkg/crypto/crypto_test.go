// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSalt(t *testing.T) {
	s1, err := GenerateSalt()
	require.NoError(t, err)
	s2, err := GenerateSalt()
	require.NoError(t, err)

	assert.Len(t, s1, DefaultSaltBytes)
	assert.NotEqual(t, s1, s2)
}

func TestGetEncryptedPassword_RoundTrip(t *testing.T) {
	salt, err := GenerateSalt()
	require.NoError(t, err)

	hash := GetEncryptedPassword([]byte("hunter2"), salt)
	assert.Len(t, hash, DefaultHashBytes)

	assert.True(t, Authenticate([]byte("hunter2"), hash, salt))
	assert.False(t, Authenticate([]byte("wrong"), hash, salt))
}

func TestGetEncryptedPassword_Deterministic(t *testing.T) {
	salt := []byte("fixed-salt-value")
	h1 := GetEncryptedPassword([]byte("plain"), salt)
	h2 := GetEncryptedPassword([]byte("plain"), salt)
	assert.Equal(t, h1, h2)
}

func TestGetTemporaryPassword(t *testing.T) {
	pw, err := GetTemporaryPassword(10)
	require.NoError(t, err)
	assert.Len(t, pw, 10)
	for _, c := range pw {
		assert.Contains(t, string(tempPasswordAlphabet), string(c))
	}
}

func TestGetTemporaryPassword_InvalidLength(t *testing.T) {
	_, err := GetTemporaryPassword(0)
	require.Error(t, err)
}

func TestGetToken_Unique(t *testing.T) {
	t1 := GetToken()
	t2 := GetToken()
	assert.NotEqual(t, t1, t2)
	assert.NotEmpty(t, t1)
}

func TestHashToken_Deterministic(t *testing.T) {
	h1 := HashToken("sometoken")
	h2 := HashToken("sometoken")
	h3 := HashToken("othertoken")
	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
}

func TestZero(t *testing.T) {
	b := []byte{1, 2, 3}
	Zero(b)
	assert.Equal(t, []byte{0, 0, 0}, b)
}

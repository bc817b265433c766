package domain

import (
	"testing"

	kbautherr "github.com/kbase/auth2/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUserName(t *testing.T) {
	un, err := NewUserName("whee")
	require.NoError(t, err)
	assert.Equal(t, "whee", un.String())
	assert.False(t, un.IsRoot())
}

func TestNewUserName_Root(t *testing.T) {
	un, err := NewUserName(RootUserName)
	require.NoError(t, err)
	assert.True(t, un.IsRoot())
}

func TestNewUserName_Empty(t *testing.T) {
	_, err := NewUserName("")
	require.Error(t, err)
	assert.True(t, kbautherr.IsMissingParameter(err))
}

func TestNewUserName_TooLong(t *testing.T) {
	long := make([]byte, MaxNameLength+1)
	for i := range long {
		long[i] = 'a'
	}
	_, err := NewUserName(string(long))
	require.Error(t, err)
	assert.True(t, kbautherr.IsIllegalParameter(err))
}

func TestNewUserName_InvalidChars(t *testing.T) {
	_, err := NewUserName("Whee!")
	require.Error(t, err)
	assert.True(t, kbautherr.IsIllegalParameter(err))
}

func TestUserName_Equals(t *testing.T) {
	a, _ := NewUserName("whee")
	b, _ := NewUserName("whee")
	c, _ := NewUserName("whoo")
	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}

func TestSanitizeUserName(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"Whee123", "whee123", true},
		{"W h.e.e!", "whee", true},
		{"!!!", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := SanitizeUserName(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if ok {
			assert.Equal(t, tt.want, got.String(), tt.in)
		}
	}
}

func TestSanitizeUserName_TooLong(t *testing.T) {
	long := make([]byte, MaxNameLength+50)
	for i := range long {
		long[i] = 'a'
	}
	got, ok := SanitizeUserName(string(long))
	require.True(t, ok)
	assert.Len(t, got.String(), MaxNameLength)
}

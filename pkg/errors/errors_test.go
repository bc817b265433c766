package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "error with cause",
			err: &Error{
				Type:    ErrIllegalParameter,
				Message: "test message",
				Cause:   errors.New("underlying error"),
			},
			want: "illegal_parameter: test message: underlying error",
		},
		{
			name: "error without cause",
			err: &Error{
				Type:    ErrAuthStorage,
				Message: "test message",
				Cause:   nil,
			},
			want: "auth_storage: test message",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := &Error{Type: ErrInternal, Message: "test message", Cause: cause}
	assert.Equal(t, cause, err.Unwrap())

	errNoCause := &Error{Type: ErrInternal, Message: "test message"}
	assert.Nil(t, errNoCause.Unwrap())
}

func TestNew(t *testing.T) {
	cause := errors.New("underlying error")
	err := New(ErrAuthStorage, "test message", cause)

	assert.Equal(t, ErrAuthStorage, err.Type)
	assert.Equal(t, "test message", err.Message)
	assert.Equal(t, cause, err.Cause)
}

func TestNewErrorConstructors(t *testing.T) {
	tests := []struct {
		name        string
		constructor func(string) *Error
		wantType    string
	}{
		{"NewAuthenticationFailed", NewAuthenticationFailed, ErrAuthenticationFailed},
		{"NewUnauthorized", NewUnauthorized, ErrUnauthorized},
		{"NewDisabled", NewDisabled, ErrDisabled},
		{"NewInvalidToken", NewInvalidToken, ErrInvalidToken},
		{"NewMissingParameter", NewMissingParameter, ErrMissingParameter},
		{"NewIllegalParameter", NewIllegalParameter, ErrIllegalParameter},
		{"NewNoSuchUser", NewNoSuchUser, ErrNoSuchUser},
		{"NewNoSuchRole", NewNoSuchRole, ErrNoSuchRole},
		{"NewNoSuchProvider", NewNoSuchProvider, ErrNoSuchProvider},
		{"NewUserExists", NewUserExists, ErrUserExists},
		{"NewIdentityLinked", NewIdentityLinked, ErrIdentityLinked},
		{"NewLinkFailed", NewLinkFailed, ErrLinkFailed},
		{"NewUnlinkFailed", NewUnlinkFailed, ErrUnlinkFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.constructor("test message")
			assert.Equal(t, tt.wantType, err.Type)
			assert.Equal(t, "test message", err.Message)
			assert.Nil(t, err.Cause)
		})
	}
}

func TestNewErrorConstructorsWithCause(t *testing.T) {
	cause := errors.New("cause")

	tests := []struct {
		name        string
		constructor func(string, error) *Error
		wantType    string
	}{
		{"NewAuthStorage", NewAuthStorage, ErrAuthStorage},
		{"NewExternalConfigMapping", NewExternalConfigMapping, ErrExternalConfigMapping},
		{"NewInternal", NewInternal, ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.constructor("test message", cause)
			assert.Equal(t, tt.wantType, err.Type)
			assert.Equal(t, "test message", err.Message)
			assert.Equal(t, cause, err.Cause)
		})
	}
}

func TestNewNoTokenProvided(t *testing.T) {
	err := NewNoTokenProvided()
	assert.Equal(t, ErrNoTokenProvided, err.Type)
}

func TestNewNoSuchToken(t *testing.T) {
	err := NewNoSuchToken()
	assert.Equal(t, ErrNoSuchToken, err.Type)
}

func TestNewIdentityRetrieval(t *testing.T) {
	err := NewIdentityRetrieval("globus", "no access token")
	assert.Equal(t, ErrIdentityRetrieval, err.Type)
	assert.Equal(t, "globus: no access token", err.Message)
}

func TestErrorTypeCheckers(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		checker func(error) bool
		want    bool
	}{
		{"IsAuthenticationFailed matching", NewAuthenticationFailed("test"), IsAuthenticationFailed, true},
		{"IsAuthenticationFailed non-matching", NewUnauthorized("test"), IsAuthenticationFailed, false},
		{"IsAuthenticationFailed non-Error", errors.New("regular error"), IsAuthenticationFailed, false},
		{"IsUnauthorized matching", NewUnauthorized("test"), IsUnauthorized, true},
		{"IsDisabled matching", NewDisabled("test"), IsDisabled, true},
		{"IsInvalidToken matching", NewInvalidToken("test"), IsInvalidToken, true},
		{"IsNoTokenProvided matching", NewNoTokenProvided(), IsNoTokenProvided, true},
		{"IsMissingParameter matching", NewMissingParameter("userName"), IsMissingParameter, true},
		{"IsIllegalParameter matching", NewIllegalParameter("test"), IsIllegalParameter, true},
		{"IsNoSuchUser matching", NewNoSuchUser("whee"), IsNoSuchUser, true},
		{"IsNoSuchRole matching", NewNoSuchRole("admin"), IsNoSuchRole, true},
		{"IsNoSuchProvider matching", NewNoSuchProvider("globus"), IsNoSuchProvider, true},
		{"IsNoSuchToken matching", NewNoSuchToken(), IsNoSuchToken, true},
		{"IsUserExists matching", NewUserExists("whee"), IsUserExists, true},
		{"IsIdentityLinked matching", NewIdentityLinked("test"), IsIdentityLinked, true},
		{"IsLinkFailed matching", NewLinkFailed("test"), IsLinkFailed, true},
		{"IsUnlinkFailed matching", NewUnlinkFailed("test"), IsUnlinkFailed, true},
		{"IsIdentityRetrieval matching", NewIdentityRetrieval("globus", "down"), IsIdentityRetrieval, true},
		{"IsAuthStorage matching", NewAuthStorage("test", nil), IsAuthStorage, true},
		{"IsExternalConfigMapping matching", NewExternalConfigMapping("test", nil), IsExternalConfigMapping, true},
		{"IsInternal matching", NewInternal("test", nil), IsInternal, true},
		{"IsInternal with nil error", nil, IsInternal, false},
		{"IsInternal wraps through Cause", New(ErrAuthStorage, "outer", NewInternal("inner", nil)), IsInternal, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.checker(tt.err))
		})
	}
}

package domain

import "time"

// TokenType distinguishes short-lived login tokens from longer-lived
// developer/server tokens minted from a login token.
type TokenType string

const (
	// TokenTypeLogin is a short-lived session token from an interactive login.
	TokenTypeLogin TokenType = "LOGIN"

	// TokenTypeExtendedLifetime is a long-lived token minted from a LOGIN
	// token, further tagged by TokenSubType.
	TokenTypeExtendedLifetime TokenType = "EXTENDED_LIFETIME"
)

// TokenSubType tags an EXTENDED_LIFETIME token as belonging to a developer
// or a server/service account.
type TokenSubType string

const (
	TokenSubTypeNone      TokenSubType = ""
	TokenSubTypeDeveloper TokenSubType = "DEVELOPER"
	TokenSubTypeServer    TokenSubType = "SERVER"
)

// TokenLifetimeType names one of the configurable token lifetime knobs
// held in AuthConfig.TokenLifetimesMS.
type TokenLifetimeType string

const (
	TokenLifetimeLogin    TokenLifetimeType = "LOGIN"
	TokenLifetimeDev      TokenLifetimeType = "DEV"
	TokenLifetimeServ     TokenLifetimeType = "SERV"
	TokenLifetimeExtCache TokenLifetimeType = "EXT_CACHE"
)

// HashedToken is the server-side record of an issued bearer token. The
// plaintext value is never persisted; only its hash is stored here.
type HashedToken struct {
	ID          string
	Type        TokenType
	SubType     TokenSubType
	Name        string
	UserName    UserName
	Created     time.Time
	Expires     time.Time
	TokenHash   string
}

// IsExpired reports whether the token's lifetime has elapsed as of now.
func (h HashedToken) IsExpired(now time.Time) bool {
	return !now.Before(h.Expires)
}

// TemporaryToken is a short-lived token carrying a set of remote identities
// gathered during a deferred OAuth2 login or link continuation. Only its
// hash and expiry are ever persisted; the identity set travels with it.
type TemporaryToken struct {
	ID           string
	TokenHash    string
	ProviderName string
	Created      time.Time
	Expires      time.Time
	Identities   []RemoteIdentityWithLocalID
}

// IsExpired reports whether the temporary token's lifetime has elapsed.
func (t TemporaryToken) IsExpired(now time.Time) bool {
	return !now.Before(t.Expires)
}

// Default temporary-token lifetimes per spec.
const (
	DefaultLoginTempTokenLifetime = 30 * time.Minute
	DefaultLinkTempTokenLifetime  = 10 * time.Minute
)

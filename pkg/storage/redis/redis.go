// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package redis implements storage.Storage on github.com/redis/go-redis/v9.
// Atomic creation uses SETNX; concurrent-safe multi-field mutations (user
// creation with its identity set, identity link/unlink) use small Lua
// scripts so the check-then-act sequence runs as one atomic unit on the
// server; per-user token membership is tracked with a reverse-index Set,
// pruned lazily on read the way a TTL-backed secondary index has to be.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/kbase/auth2/pkg/domain"
	kbautherr "github.com/kbase/auth2/pkg/errors"
	"github.com/kbase/auth2/pkg/storage"
)

// Config configures the Redis-backed Storage.
type Config struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// Storage is a Redis-backed implementation of storage.Storage.
type Storage struct {
	client    goredis.UniversalClient
	keyPrefix string

	createUserScript *goredis.Script
	linkScript       *goredis.Script
	unlinkScript     *goredis.Script
}

// New connects to Redis per cfg and pings it to fail fast on
// misconfiguration.
func New(ctx context.Context, cfg Config) (*Storage, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, kbautherr.NewAuthStorage("failed to connect to redis", err)
	}
	return newWithClient(client, cfg.KeyPrefix), nil
}

// NewWithClient wraps an already-constructed client, for tests backed by
// miniredis.
func NewWithClient(client goredis.UniversalClient, keyPrefix string) *Storage {
	return newWithClient(client, keyPrefix)
}

func newWithClient(client goredis.UniversalClient, keyPrefix string) *Storage {
	return &Storage{
		client:           client,
		keyPrefix:        keyPrefix,
		createUserScript: goredis.NewScript(createUserLua),
		linkScript:       goredis.NewScript(linkIdentityLua),
		unlinkScript:     goredis.NewScript(unlinkIdentityLua),
	}
}

var _ storage.Storage = (*Storage)(nil)

func (s *Storage) key(parts ...string) string {
	k := s.keyPrefix
	for _, p := range parts {
		k += ":" + p
	}
	return k
}

func (s *Storage) userKey(name string) string      { return s.key("user", name) }
func (s *Storage) identityKey(provider, id string) string { return s.key("identity", provider, id) }
func (s *Storage) usernamesSetKey() string          { return s.key("usernames") }
func (s *Storage) localUserKey(name string) string  { return s.key("localuser", name) }
func (s *Storage) tokenKey(hash string) string      { return s.key("token", hash) }
func (s *Storage) tokenIDKey(id string) string      { return s.key("tokenid", id) }
func (s *Storage) userTokensKey(name string) string { return s.key("usertokens", name) }
func (s *Storage) tempTokenKey(hash string) string  { return s.key("temptoken", hash) }
func (s *Storage) tempTokenIDKey(id string) string  { return s.key("temptokenid", id) }
func (s *Storage) customRoleKey(id string) string   { return s.key("customrole", id) }
func (s *Storage) customRolesSetKey() string        { return s.key("customroles") }
func (s *Storage) configKey() string                { return s.key("config") }

// createUserLua atomically checks the user key and every identity key are
// free, then writes the user record, registers it in the usernames set,
// and points each identity key at the new username.
const createUserLua = `
local userKey = KEYS[1]
local usernamesSet = KEYS[2]
local userJSON = ARGV[1]
local username = ARGV[2]
if redis.call('EXISTS', userKey) == 1 then
  return redis.error_reply('exists')
end
for i = 3, #ARGV, 2 do
  if redis.call('EXISTS', ARGV[i]) == 1 then
    return redis.error_reply('identity_linked')
  end
end
redis.call('SET', userKey, userJSON)
redis.call('SADD', usernamesSet, username)
for i = 3, #ARGV, 2 do
  redis.call('SET', ARGV[i], ARGV[i+1])
end
return 'OK'
`

// linkIdentityLua atomically verifies the identity is unowned, appends it
// to the user's stored identity list, and registers the identity key.
const linkIdentityLua = `
local userKey = KEYS[1]
local identityKey = KEYS[2]
local identityJSON = ARGV[1]
local username = ARGV[2]
if redis.call('EXISTS', userKey) == 0 then
  return redis.error_reply('no_such_user')
end
if redis.call('EXISTS', identityKey) == 1 then
  return redis.error_reply('identity_linked')
end
local user = cjson.decode(redis.call('GET', userKey))
local identity = cjson.decode(identityJSON)
if user.Identities == nil then
  user.Identities = {}
end
table.insert(user.Identities, identity)
redis.call('SET', userKey, cjson.encode(user))
redis.call('SET', identityKey, username)
return 'OK'
`

// unlinkIdentityLua atomically refuses to remove the last identity, else
// removes it from the user's stored list and drops the identity key.
const unlinkIdentityLua = `
local userKey = KEYS[1]
local localID = ARGV[1]
if redis.call('EXISTS', userKey) == 0 then
  return redis.error_reply('no_such_user')
end
local user = cjson.decode(redis.call('GET', userKey))
local identities = user.Identities or {}
if #identities <= 1 then
  return redis.error_reply('unlink_failed')
end
local kept = {}
local removed = nil
for _, ident in ipairs(identities) do
  if ident.LocalID == localID then
    removed = ident
  else
    table.insert(kept, ident)
  end
end
if removed == nil then
  return redis.error_reply('no_such_user')
end
user.Identities = kept
redis.call('SET', userKey, cjson.encode(user))
return cjson.encode(removed)
`

func mapLuaErr(err error, name string) error {
	if err == nil {
		return nil
	}
	switch {
	case containsMsg(err, "exists"):
		return kbautherr.NewUserExists(name)
	case containsMsg(err, "identity_linked"):
		return kbautherr.NewIdentityLinked(name)
	case containsMsg(err, "no_such_user"):
		return kbautherr.NewNoSuchUser(name)
	case containsMsg(err, "unlink_failed"):
		return kbautherr.NewUnlinkFailed("cannot unlink the last remaining identity")
	default:
		return kbautherr.NewAuthStorage("redis operation failed", err)
	}
}

func containsMsg(err error, sub string) bool {
	return err != nil && (err.Error() == sub || containsSubstr(err.Error(), sub))
}

func containsSubstr(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}

// Users.

func (s *Storage) CreateUser(ctx context.Context, user domain.AuthUser) error {
	return s.createUser(ctx, user, nil)
}

func (s *Storage) createUser(ctx context.Context, user domain.AuthUser, local *domain.LocalUser) error {
	rec := storedUser{User: user}
	if local != nil {
		rec.Local = local
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return kbautherr.NewAuthStorage("failed to marshal user", err)
	}

	keys := []string{s.userKey(user.UserName.String()), s.usernamesSetKey()}
	argv := []any{string(data), user.UserName.String()}
	for _, id := range user.Identities {
		argv = append(argv, s.identityKey(id.ID.ProviderName, id.ID.ProviderID), user.UserName.String())
	}

	if err := s.createUserScript.Run(ctx, s.client, keys, argv...).Err(); err != nil {
		return mapLuaErr(err, user.UserName.String())
	}
	return nil
}

type storedUser struct {
	User  domain.AuthUser
	Local *domain.LocalUser `json:",omitempty"`
}

func (s *Storage) loadUser(ctx context.Context, name string) (storedUser, error) {
	data, err := s.client.Get(ctx, s.userKey(name)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return storedUser{}, kbautherr.NewNoSuchUser(name)
	}
	if err != nil {
		return storedUser{}, kbautherr.NewAuthStorage("failed to read user", err)
	}
	var rec storedUser
	if err := json.Unmarshal(data, &rec); err != nil {
		return storedUser{}, kbautherr.NewAuthStorage("failed to decode user", err)
	}
	return rec, nil
}

func (s *Storage) saveUser(ctx context.Context, rec storedUser) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return kbautherr.NewAuthStorage("failed to marshal user", err)
	}
	if err := s.client.Set(ctx, s.userKey(rec.User.UserName.String()), data, 0).Err(); err != nil {
		return kbautherr.NewAuthStorage("failed to write user", err)
	}
	return nil
}

func (s *Storage) GetUser(ctx context.Context, name domain.UserName) (domain.AuthUser, error) {
	rec, err := s.loadUser(ctx, name.String())
	if err != nil {
		return domain.AuthUser{}, err
	}
	return rec.User, nil
}

func (s *Storage) GetUserByIdentity(ctx context.Context, id domain.RemoteIdentityID) (domain.AuthUser, error) {
	name, err := s.client.Get(ctx, s.identityKey(id.ProviderName, id.ProviderID)).Result()
	if errors.Is(err, goredis.Nil) {
		return domain.AuthUser{}, kbautherr.NewNoSuchUser(id.ProviderID)
	}
	if err != nil {
		return domain.AuthUser{}, kbautherr.NewAuthStorage("failed to read identity index", err)
	}
	rec, err := s.loadUser(ctx, name)
	if err != nil {
		return domain.AuthUser{}, err
	}
	return rec.User, nil
}

func (s *Storage) DeleteUser(ctx context.Context, name domain.UserName) error {
	rec, err := s.loadUser(ctx, name.String())
	if err != nil {
		return err
	}
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.userKey(name.String()))
	pipe.Del(ctx, s.localUserKey(name.String()))
	pipe.SRem(ctx, s.usernamesSetKey(), name.String())
	for _, id := range rec.User.Identities {
		pipe.Del(ctx, s.identityKey(id.ID.ProviderName, id.ID.ProviderID))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return kbautherr.NewAuthStorage("failed to delete user", err)
	}
	return nil
}

func (s *Storage) RecordLogin(ctx context.Context, name domain.UserName) error {
	rec, err := s.loadUser(ctx, name.String())
	if err != nil {
		return err
	}
	now := time.Now()
	rec.User.LastLogin = &now
	return s.saveUser(ctx, rec)
}

func (s *Storage) AllUserNames(ctx context.Context) ([]domain.UserName, error) {
	names, err := s.client.SMembers(ctx, s.usernamesSetKey()).Result()
	if err != nil {
		return nil, kbautherr.NewAuthStorage("failed to list usernames", err)
	}
	out := make([]domain.UserName, 0, len(names))
	for _, n := range names {
		un, err := domain.NewUserName(n)
		if err != nil {
			continue
		}
		out = append(out, un)
	}
	return out, nil
}

// Local users.

func (s *Storage) CreateLocalUser(ctx context.Context, user domain.LocalUser) error {
	return s.createUser(ctx, user.AuthUser, &user)
}

func (s *Storage) GetLocalUser(ctx context.Context, name domain.UserName) (domain.LocalUser, error) {
	rec, err := s.loadUser(ctx, name.String())
	if err != nil {
		return domain.LocalUser{}, err
	}
	if rec.Local == nil {
		return domain.LocalUser{}, kbautherr.NewNoSuchUser(name.String())
	}
	return *rec.Local, nil
}

func (s *Storage) ChangePassword(ctx context.Context, name domain.UserName, hash, salt []byte, forceReset bool) error {
	rec, err := s.loadUser(ctx, name.String())
	if err != nil {
		return err
	}
	if rec.Local == nil {
		return kbautherr.NewNoSuchUser(name.String())
	}
	now := time.Now()
	rec.Local.PasswordHash = hash
	rec.Local.Salt = salt
	rec.Local.ForceReset = forceReset
	rec.Local.LastReset = &now
	return s.saveUser(ctx, rec)
}

func (s *Storage) ForceResetPassword(ctx context.Context, name domain.UserName) error {
	rec, err := s.loadUser(ctx, name.String())
	if err != nil {
		return err
	}
	if rec.Local == nil {
		return kbautherr.NewNoSuchUser(name.String())
	}
	rec.Local.ForceReset = true
	return s.saveUser(ctx, rec)
}

func (s *Storage) ForceResetAllPasswords(ctx context.Context) error {
	names, err := s.AllUserNames(ctx)
	if err != nil {
		return err
	}
	for _, n := range names {
		rec, err := s.loadUser(ctx, n.String())
		if err != nil || rec.Local == nil {
			continue
		}
		rec.Local.ForceReset = true
		if err := s.saveUser(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

// Disable/enable.

func (s *Storage) SetDisabled(ctx context.Context, name domain.UserName, disabled bool, reason string) error {
	rec, err := s.loadUser(ctx, name.String())
	if err != nil {
		return err
	}
	rec.User.Disabled = disabled
	if disabled {
		rec.User.DisabledReason = reason
	} else {
		rec.User.DisabledReason = ""
	}
	return s.saveUser(ctx, rec)
}

// Linked identities.

func (s *Storage) LinkIdentity(ctx context.Context, name domain.UserName, identity domain.RemoteIdentityWithLocalID) error {
	data, err := json.Marshal(identity)
	if err != nil {
		return kbautherr.NewAuthStorage("failed to marshal identity", err)
	}
	keys := []string{s.userKey(name.String()), s.identityKey(identity.ID.ProviderName, identity.ID.ProviderID)}
	if err := s.linkScript.Run(ctx, s.client, keys, string(data), name.String()).Err(); err != nil {
		return mapLuaErr(err, name.String())
	}
	return nil
}

func (s *Storage) UnlinkIdentity(ctx context.Context, name domain.UserName, localID string) error {
	rec, err := s.loadUser(ctx, name.String())
	if err != nil {
		return err
	}
	if rec.Local != nil {
		return kbautherr.NewUnlinkFailed("local users have no linked identities")
	}
	removedJSON, err := s.unlinkScript.Run(ctx, s.client, []string{s.userKey(name.String())}, localID).Result()
	if err != nil {
		return mapLuaErr(err, name.String())
	}
	var removed domain.RemoteIdentityWithLocalID
	if str, ok := removedJSON.(string); ok {
		_ = json.Unmarshal([]byte(str), &removed)
	}
	if err := s.client.Del(ctx, s.identityKey(removed.ID.ProviderName, removed.ID.ProviderID)).Err(); err != nil {
		return kbautherr.NewAuthStorage("failed to clear identity index", err)
	}
	return nil
}

// Display-name lookup.

func (s *Storage) GetDisplayNames(ctx context.Context, names []domain.UserName) (map[string]domain.DisplayName, error) {
	out := make(map[string]domain.DisplayName, len(names))
	for _, n := range names {
		rec, err := s.loadUser(ctx, n.String())
		if err != nil {
			continue
		}
		out[n.String()] = rec.User.DisplayName
	}
	return out, nil
}

func (s *Storage) SearchDisplayNames(ctx context.Context, spec domain.UserSearchSpec) (map[string]domain.DisplayName, error) {
	names, err := s.AllUserNames(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]domain.DisplayName)
	roleFilter := domain.NewRoleSet(spec.RoleFilter...)
	for _, n := range names {
		rec, err := s.loadUser(ctx, n.String())
		if err != nil {
			continue
		}
		if !spec.IncludeDisabled && rec.User.Disabled {
			continue
		}
		if !spec.IncludeRoot && rec.User.IsRoot() {
			continue
		}
		if spec.Prefix != "" && !hasPrefixFold(rec.User.DisplayName.String(), spec.Prefix) {
			continue
		}
		if len(roleFilter) > 0 && rec.User.Roles.Intersect(roleFilter).IsEmpty() {
			continue
		}
		out[n.String()] = rec.User.DisplayName
		if len(out) >= spec.Limit {
			break
		}
	}
	return out, nil
}

func hasPrefixFold(s, prefix string) bool {
	if len(prefix) > len(s) {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		a, b := s[i], prefix[i]
		if 'A' <= a && a <= 'Z' {
			a += 'a' - 'A'
		}
		if 'A' <= b && b <= 'Z' {
			b += 'a' - 'A'
		}
		if a != b {
			return false
		}
	}
	return true
}

// Roles and custom roles.

func (s *Storage) SetRoles(ctx context.Context, name domain.UserName, roles domain.RoleSet) error {
	rec, err := s.loadUser(ctx, name.String())
	if err != nil {
		return err
	}
	rec.User.Roles = roles
	return s.saveUser(ctx, rec)
}

func (s *Storage) SetCustomRoles(ctx context.Context, name domain.UserName, roleIDs map[string]struct{}) error {
	rec, err := s.loadUser(ctx, name.String())
	if err != nil {
		return err
	}
	rec.User.CustomRoles = roleIDs
	return s.saveUser(ctx, rec)
}

func (s *Storage) CreateCustomRole(ctx context.Context, role domain.CustomRole) error {
	ok, err := s.client.SetNX(ctx, s.customRoleKey(role.ID), mustJSON(role), 0).Result()
	if err != nil {
		return kbautherr.NewAuthStorage("failed to create custom role", err)
	}
	if !ok {
		return kbautherr.NewUserExists(role.ID)
	}
	if err := s.client.SAdd(ctx, s.customRolesSetKey(), role.ID).Err(); err != nil {
		return kbautherr.NewAuthStorage("failed to index custom role", err)
	}
	return nil
}

func (s *Storage) GetCustomRoles(ctx context.Context) ([]domain.CustomRole, error) {
	ids, err := s.client.SMembers(ctx, s.customRolesSetKey()).Result()
	if err != nil {
		return nil, kbautherr.NewAuthStorage("failed to list custom roles", err)
	}
	out := make([]domain.CustomRole, 0, len(ids))
	for _, id := range ids {
		data, err := s.client.Get(ctx, s.customRoleKey(id)).Bytes()
		if errors.Is(err, goredis.Nil) {
			s.client.SRem(ctx, s.customRolesSetKey(), id)
			continue
		}
		if err != nil {
			return nil, kbautherr.NewAuthStorage("failed to read custom role", err)
		}
		var role domain.CustomRole
		if err := json.Unmarshal(data, &role); err != nil {
			continue
		}
		out = append(out, role)
	}
	return out, nil
}

func (s *Storage) DeleteCustomRole(ctx context.Context, id string) error {
	n, err := s.client.Del(ctx, s.customRoleKey(id)).Result()
	if err != nil {
		return kbautherr.NewAuthStorage("failed to delete custom role", err)
	}
	if n == 0 {
		return kbautherr.NewNoSuchRole(id)
	}
	s.client.SRem(ctx, s.customRolesSetKey(), id)
	return nil
}

// Tokens.

func (s *Storage) CreateToken(ctx context.Context, token domain.HashedToken) error {
	ttl := time.Until(token.Expires)
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.tokenKey(token.TokenHash), mustJSON(token), ttl)
	pipe.Set(ctx, s.tokenIDKey(token.ID), token.TokenHash, ttl)
	pipe.SAdd(ctx, s.userTokensKey(token.UserName.String()), token.TokenHash)
	if _, err := pipe.Exec(ctx); err != nil {
		return kbautherr.NewAuthStorage("failed to create token", err)
	}
	return nil
}

func (s *Storage) GetTokenByHash(ctx context.Context, hash string) (domain.HashedToken, error) {
	data, err := s.client.Get(ctx, s.tokenKey(hash)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return domain.HashedToken{}, kbautherr.NewNoSuchToken()
	}
	if err != nil {
		return domain.HashedToken{}, kbautherr.NewAuthStorage("failed to read token", err)
	}
	var tok domain.HashedToken
	if err := json.Unmarshal(data, &tok); err != nil {
		return domain.HashedToken{}, kbautherr.NewAuthStorage("failed to decode token", err)
	}
	return tok, nil
}

func (s *Storage) GetTokensForUser(ctx context.Context, name domain.UserName) ([]domain.HashedToken, error) {
	hashes, err := s.client.SMembers(ctx, s.userTokensKey(name.String())).Result()
	if err != nil {
		return nil, kbautherr.NewAuthStorage("failed to list user tokens", err)
	}
	out := []domain.HashedToken{}
	for _, hash := range hashes {
		tok, err := s.GetTokenByHash(ctx, hash)
		if err != nil {
			s.client.SRem(ctx, s.userTokensKey(name.String()), hash)
			continue
		}
		out = append(out, tok)
	}
	return out, nil
}

func (s *Storage) DeleteToken(ctx context.Context, id string) error {
	hash, err := s.client.Get(ctx, s.tokenIDKey(id)).Result()
	if errors.Is(err, goredis.Nil) {
		return kbautherr.NewNoSuchToken()
	}
	if err != nil {
		return kbautherr.NewAuthStorage("failed to resolve token id", err)
	}
	tok, err := s.GetTokenByHash(ctx, hash)
	if err == nil {
		s.client.SRem(ctx, s.userTokensKey(tok.UserName.String()), hash)
	}
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.tokenKey(hash))
	pipe.Del(ctx, s.tokenIDKey(id))
	if _, err := pipe.Exec(ctx); err != nil {
		return kbautherr.NewAuthStorage("failed to delete token", err)
	}
	return nil
}

func (s *Storage) DeleteTokensForUser(ctx context.Context, name domain.UserName) error {
	hashes, err := s.client.SMembers(ctx, s.userTokensKey(name.String())).Result()
	if err != nil {
		return kbautherr.NewAuthStorage("failed to list user tokens", err)
	}
	for _, hash := range hashes {
		tok, err := s.GetTokenByHash(ctx, hash)
		if err == nil {
			s.client.Del(ctx, s.tokenIDKey(tok.ID))
		}
		s.client.Del(ctx, s.tokenKey(hash))
	}
	return s.client.Del(ctx, s.userTokensKey(name.String())).Err()
}

func (s *Storage) DeleteAllTokens(ctx context.Context) error {
	names, err := s.AllUserNames(ctx)
	if err != nil {
		return err
	}
	for _, n := range names {
		if err := s.DeleteTokensForUser(ctx, n); err != nil {
			return err
		}
	}
	return nil
}

// Temporary tokens.

func (s *Storage) CreateTemporaryToken(ctx context.Context, token domain.TemporaryToken) error {
	ttl := time.Until(token.Expires)
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.tempTokenKey(token.TokenHash), mustJSON(token), ttl)
	pipe.Set(ctx, s.tempTokenIDKey(token.ID), token.TokenHash, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return kbautherr.NewAuthStorage("failed to create temporary token", err)
	}
	return nil
}

func (s *Storage) GetTemporaryTokenByHash(ctx context.Context, hash string) (domain.TemporaryToken, error) {
	data, err := s.client.Get(ctx, s.tempTokenKey(hash)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return domain.TemporaryToken{}, kbautherr.NewNoSuchToken()
	}
	if err != nil {
		return domain.TemporaryToken{}, kbautherr.NewAuthStorage("failed to read temporary token", err)
	}
	var tok domain.TemporaryToken
	if err := json.Unmarshal(data, &tok); err != nil {
		return domain.TemporaryToken{}, kbautherr.NewAuthStorage("failed to decode temporary token", err)
	}
	return tok, nil
}

func (s *Storage) DeleteTemporaryToken(ctx context.Context, id string) error {
	hash, err := s.client.Get(ctx, s.tempTokenIDKey(id)).Result()
	if errors.Is(err, goredis.Nil) {
		return kbautherr.NewNoSuchToken()
	}
	if err != nil {
		return kbautherr.NewAuthStorage("failed to resolve temporary token id", err)
	}
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.tempTokenKey(hash))
	pipe.Del(ctx, s.tempTokenIDKey(id))
	if _, err := pipe.Exec(ctx); err != nil {
		return kbautherr.NewAuthStorage("failed to delete temporary token", err)
	}
	return nil
}

// Configuration.

func (s *Storage) GetConfig(ctx context.Context) (domain.AuthConfig, error) {
	data, err := s.client.Get(ctx, s.configKey()).Bytes()
	if errors.Is(err, goredis.Nil) {
		return domain.AuthConfig{Providers: map[string]domain.ProviderConfig{}, TokenLifetimesMS: domain.DefaultTokenLifetimes()}, nil
	}
	if err != nil {
		return domain.AuthConfig{}, kbautherr.NewExternalConfigMapping("failed to read config", err)
	}
	var cfg domain.AuthConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return domain.AuthConfig{}, kbautherr.NewExternalConfigMapping("failed to decode config", err)
	}
	return cfg, nil
}

func (s *Storage) UpdateConfig(ctx context.Context, cfg domain.AuthConfig, overwrite bool) error {
	if overwrite {
		return s.writeConfig(ctx, cfg)
	}
	current, err := s.GetConfig(ctx)
	if err != nil {
		return err
	}
	current.LoginAllowedGlobally = cfg.LoginAllowedGlobally
	if current.Providers == nil {
		current.Providers = map[string]domain.ProviderConfig{}
	}
	for k, v := range cfg.Providers {
		current.Providers[k] = v
	}
	if current.TokenLifetimesMS == nil {
		current.TokenLifetimesMS = map[domain.TokenLifetimeType]int64{}
	}
	for k, v := range cfg.TokenLifetimesMS {
		current.TokenLifetimesMS[k] = v
	}
	return s.writeConfig(ctx, current)
}

func (s *Storage) SetConfigDefaults(ctx context.Context, defaults domain.AuthConfig) error {
	current, err := s.GetConfig(ctx)
	if err != nil {
		return err
	}
	if current.Providers == nil {
		current.Providers = map[string]domain.ProviderConfig{}
	}
	if current.TokenLifetimesMS == nil {
		current.TokenLifetimesMS = map[domain.TokenLifetimeType]int64{}
	}
	for k, v := range defaults.Providers {
		if _, exists := current.Providers[k]; !exists {
			current.Providers[k] = v
		}
	}
	for k, v := range defaults.TokenLifetimesMS {
		if _, exists := current.TokenLifetimesMS[k]; !exists {
			current.TokenLifetimesMS[k] = v
		}
	}
	return s.writeConfig(ctx, current)
}

func (s *Storage) writeConfig(ctx context.Context, cfg domain.AuthConfig) error {
	if err := s.client.Set(ctx, s.configKey(), mustJSON(cfg), 0).Err(); err != nil {
		return kbautherr.NewExternalConfigMapping("failed to write config", err)
	}
	return nil
}

func mustJSON(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("storage/redis: unmarshalable value: %v", err))
	}
	return data
}

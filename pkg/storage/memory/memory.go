// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/kbase/auth2/pkg/domain"
	kbautherr "github.com/kbase/auth2/pkg/errors"
	"github.com/kbase/auth2/pkg/storage"
)

// timedEntry wraps a stored value with an expiry, so a single background
// sweep can evict tokens and temporary tokens uniformly.
type timedEntry[T any] struct {
	value   T
	expires time.Time
}

func (e *timedEntry[T]) expired(now time.Time) bool {
	return !e.expires.IsZero() && !now.Before(e.expires)
}

// userRecord is the single source of truth for a user: the AuthUser
// invariant bundle plus, for local (password) accounts, the credential
// material. local is nil for standard (identity-linked) accounts.
type userRecord struct {
	user  domain.AuthUser
	local *domain.LocalUser
}

// Storage is an in-memory reference implementation of storage.Storage,
// backed by maps guarded by a single RWMutex plus a background goroutine
// that sweeps expired tokens and temporary tokens.
type Storage struct {
	mu sync.RWMutex

	users         map[string]*userRecord
	identityIndex map[domain.RemoteIdentityID]string // -> username
	customRoles   map[string]domain.CustomRole

	tokens      map[string]*timedEntry[domain.HashedToken] // key: token hash
	tokensByID  map[string]string                          // id -> hash
	tempTokens  map[string]*timedEntry[domain.TemporaryToken]
	tempByID    map[string]string

	config *domain.AuthConfig

	cleanupInterval time.Duration
	stopCleanup     chan struct{}
	cleanupDone     chan struct{}
}

// Option configures a Storage.
type Option func(*Storage)

// WithCleanupInterval overrides the default background sweep interval.
func WithCleanupInterval(d time.Duration) Option {
	return func(s *Storage) { s.cleanupInterval = d }
}

// New constructs an in-memory Storage and starts its background cleanup
// goroutine. Callers must call Close when done to stop the goroutine.
func New(opts ...Option) *Storage {
	s := &Storage{
		users:           make(map[string]*userRecord),
		identityIndex:   make(map[domain.RemoteIdentityID]string),
		customRoles:     make(map[string]domain.CustomRole),
		tokens:          make(map[string]*timedEntry[domain.HashedToken]),
		tokensByID:      make(map[string]string),
		tempTokens:      make(map[string]*timedEntry[domain.TemporaryToken]),
		tempByID:        make(map[string]string),
		config:          &domain.AuthConfig{Providers: map[string]domain.ProviderConfig{}, TokenLifetimesMS: domain.DefaultTokenLifetimes()},
		cleanupInterval: storage.DefaultCleanupInterval,
		stopCleanup:     make(chan struct{}),
		cleanupDone:     make(chan struct{}),
	}
	go s.cleanupLoop()
	return s
}

// Close stops the background cleanup goroutine.
func (s *Storage) Close() {
	close(s.stopCleanup)
	<-s.cleanupDone
}

func (s *Storage) cleanupLoop() {
	defer close(s.cleanupDone)
	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stopCleanup:
			return
		case now := <-ticker.C:
			s.sweep(now)
		}
	}
}

func (s *Storage) sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for hash, e := range s.tokens {
		if e.expired(now) {
			delete(s.tokensByID, e.value.ID)
			delete(s.tokens, hash)
		}
	}
	for hash, e := range s.tempTokens {
		if e.expired(now) {
			delete(s.tempByID, e.value.ID)
			delete(s.tempTokens, hash)
		}
	}
}

var _ storage.Storage = (*Storage)(nil)

// Users.

func (s *Storage) CreateUser(_ context.Context, user domain.AuthUser) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createUserLocked(user, nil)
}

func (s *Storage) createUserLocked(user domain.AuthUser, local *domain.LocalUser) error {
	key := user.UserName.String()
	if _, exists := s.users[key]; exists {
		return kbautherr.NewUserExists(key)
	}
	for _, id := range user.Identities {
		if _, taken := s.identityIndex[id.ID]; taken {
			return kbautherr.NewIdentityLinked(id.ID.ProviderID)
		}
	}
	s.users[key] = &userRecord{user: user, local: local}
	for _, id := range user.Identities {
		s.identityIndex[id.ID] = key
	}
	return nil
}

func (s *Storage) GetUser(_ context.Context, name domain.UserName) (domain.AuthUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.users[name.String()]
	if !ok {
		return domain.AuthUser{}, kbautherr.NewNoSuchUser(name.String())
	}
	return rec.user, nil
}

func (s *Storage) GetUserByIdentity(_ context.Context, id domain.RemoteIdentityID) (domain.AuthUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	name, ok := s.identityIndex[id]
	if !ok {
		return domain.AuthUser{}, kbautherr.NewNoSuchUser(id.ProviderID)
	}
	return s.users[name].user, nil
}

func (s *Storage) DeleteUser(_ context.Context, name domain.UserName) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[name.String()]
	if !ok {
		return kbautherr.NewNoSuchUser(name.String())
	}
	for _, id := range rec.user.Identities {
		delete(s.identityIndex, id.ID)
	}
	delete(s.users, name.String())
	return nil
}

func (s *Storage) RecordLogin(_ context.Context, name domain.UserName) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[name.String()]
	if !ok {
		return kbautherr.NewNoSuchUser(name.String())
	}
	now := time.Now()
	rec.user.LastLogin = &now
	return nil
}

func (s *Storage) AllUserNames(_ context.Context) ([]domain.UserName, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.UserName, 0, len(s.users))
	for k := range s.users {
		un, err := domain.NewUserName(k)
		if err != nil {
			continue
		}
		out = append(out, un)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out, nil
}

// Local users.

func (s *Storage) CreateLocalUser(_ context.Context, user domain.LocalUser) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createUserLocked(user.AuthUser, &user)
}

func (s *Storage) GetLocalUser(_ context.Context, name domain.UserName) (domain.LocalUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.users[name.String()]
	if !ok || rec.local == nil {
		return domain.LocalUser{}, kbautherr.NewNoSuchUser(name.String())
	}
	return *rec.local, nil
}

func (s *Storage) ChangePassword(_ context.Context, name domain.UserName, hash, salt []byte, forceReset bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[name.String()]
	if !ok || rec.local == nil {
		return kbautherr.NewNoSuchUser(name.String())
	}
	now := time.Now()
	rec.local.PasswordHash = hash
	rec.local.Salt = salt
	rec.local.ForceReset = forceReset
	rec.local.LastReset = &now
	return nil
}

func (s *Storage) ForceResetPassword(_ context.Context, name domain.UserName) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[name.String()]
	if !ok || rec.local == nil {
		return kbautherr.NewNoSuchUser(name.String())
	}
	rec.local.ForceReset = true
	return nil
}

func (s *Storage) ForceResetAllPasswords(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.users {
		if rec.local != nil {
			rec.local.ForceReset = true
		}
	}
	return nil
}

// Disable/enable.

func (s *Storage) SetDisabled(_ context.Context, name domain.UserName, disabled bool, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[name.String()]
	if !ok {
		return kbautherr.NewNoSuchUser(name.String())
	}
	rec.user.Disabled = disabled
	if disabled {
		rec.user.DisabledReason = reason
	} else {
		rec.user.DisabledReason = ""
	}
	return nil
}

// Linked identities.

func (s *Storage) LinkIdentity(_ context.Context, name domain.UserName, identity domain.RemoteIdentityWithLocalID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[name.String()]
	if !ok {
		return kbautherr.NewNoSuchUser(name.String())
	}
	if owner, taken := s.identityIndex[identity.ID]; taken && owner != name.String() {
		return kbautherr.NewIdentityLinked(identity.ID.ProviderID)
	}
	rec.user.Identities = append(rec.user.Identities, identity)
	s.identityIndex[identity.ID] = name.String()
	return nil
}

func (s *Storage) UnlinkIdentity(_ context.Context, name domain.UserName, localID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[name.String()]
	if !ok {
		return kbautherr.NewNoSuchUser(name.String())
	}
	if rec.local != nil {
		return kbautherr.NewUnlinkFailed("local users have no linked identities")
	}
	if len(rec.user.Identities) <= 1 {
		return kbautherr.NewUnlinkFailed("cannot unlink the last remaining identity")
	}
	idx := -1
	for i, ri := range rec.user.Identities {
		if ri.LocalID == localID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return kbautherr.NewNoSuchUser(localID)
	}
	removed := rec.user.Identities[idx]
	rec.user.Identities = append(rec.user.Identities[:idx], rec.user.Identities[idx+1:]...)
	delete(s.identityIndex, removed.ID)
	return nil
}

// Display-name lookup.

func (s *Storage) GetDisplayNames(_ context.Context, names []domain.UserName) (map[string]domain.DisplayName, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]domain.DisplayName, len(names))
	for _, n := range names {
		if rec, ok := s.users[n.String()]; ok {
			out[n.String()] = rec.user.DisplayName
		}
	}
	return out, nil
}

func (s *Storage) SearchDisplayNames(_ context.Context, spec domain.UserSearchSpec) (map[string]domain.DisplayName, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]domain.DisplayName)
	roleFilter := domain.NewRoleSet(spec.RoleFilter...)
	for name, rec := range s.users {
		if !spec.IncludeDisabled && rec.user.Disabled {
			continue
		}
		if !spec.IncludeRoot && rec.user.IsRoot() {
			continue
		}
		if spec.Prefix != "" && !strings.HasPrefix(strings.ToLower(rec.user.DisplayName.String()), strings.ToLower(spec.Prefix)) {
			continue
		}
		if len(roleFilter) > 0 && rec.user.Roles.Intersect(roleFilter).IsEmpty() {
			continue
		}
		out[name] = rec.user.DisplayName
		if len(out) >= spec.Limit {
			break
		}
	}
	return out, nil
}

// Roles and custom roles.

func (s *Storage) SetRoles(_ context.Context, name domain.UserName, roles domain.RoleSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[name.String()]
	if !ok {
		return kbautherr.NewNoSuchUser(name.String())
	}
	rec.user.Roles = roles
	return nil
}

func (s *Storage) SetCustomRoles(_ context.Context, name domain.UserName, roleIDs map[string]struct{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[name.String()]
	if !ok {
		return kbautherr.NewNoSuchUser(name.String())
	}
	rec.user.CustomRoles = roleIDs
	return nil
}

func (s *Storage) CreateCustomRole(_ context.Context, role domain.CustomRole) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.customRoles[role.ID]; exists {
		return kbautherr.NewUserExists(role.ID)
	}
	s.customRoles[role.ID] = role
	return nil
}

func (s *Storage) GetCustomRoles(_ context.Context) ([]domain.CustomRole, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.CustomRole, 0, len(s.customRoles))
	for _, r := range s.customRoles {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Storage) DeleteCustomRole(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.customRoles[id]; !exists {
		return kbautherr.NewNoSuchRole(id)
	}
	delete(s.customRoles, id)
	return nil
}

// Tokens.

func (s *Storage) CreateToken(_ context.Context, token domain.HashedToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token.TokenHash] = &timedEntry[domain.HashedToken]{value: token, expires: token.Expires}
	s.tokensByID[token.ID] = token.TokenHash
	return nil
}

func (s *Storage) GetTokenByHash(_ context.Context, hash string) (domain.HashedToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.tokens[hash]
	if !ok || e.expired(time.Now()) {
		return domain.HashedToken{}, kbautherr.NewNoSuchToken()
	}
	return e.value, nil
}

func (s *Storage) GetTokensForUser(_ context.Context, name domain.UserName) ([]domain.HashedToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	now := time.Now()
	out := []domain.HashedToken{}
	for _, e := range s.tokens {
		if e.expired(now) {
			continue
		}
		if e.value.UserName.Equals(name) {
			out = append(out, e.value)
		}
	}
	return out, nil
}

func (s *Storage) DeleteToken(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	hash, ok := s.tokensByID[id]
	if !ok {
		return kbautherr.NewNoSuchToken()
	}
	delete(s.tokens, hash)
	delete(s.tokensByID, id)
	return nil
}

func (s *Storage) DeleteTokensForUser(_ context.Context, name domain.UserName) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for hash, e := range s.tokens {
		if e.value.UserName.Equals(name) {
			delete(s.tokens, hash)
			delete(s.tokensByID, e.value.ID)
		}
	}
	return nil
}

func (s *Storage) DeleteAllTokens(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = make(map[string]*timedEntry[domain.HashedToken])
	s.tokensByID = make(map[string]string)
	return nil
}

// Temporary tokens.

func (s *Storage) CreateTemporaryToken(_ context.Context, token domain.TemporaryToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tempTokens[token.TokenHash] = &timedEntry[domain.TemporaryToken]{value: token, expires: token.Expires}
	s.tempByID[token.ID] = token.TokenHash
	return nil
}

func (s *Storage) GetTemporaryTokenByHash(_ context.Context, hash string) (domain.TemporaryToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.tempTokens[hash]
	if !ok || e.expired(time.Now()) {
		return domain.TemporaryToken{}, kbautherr.NewNoSuchToken()
	}
	return e.value, nil
}

func (s *Storage) DeleteTemporaryToken(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	hash, ok := s.tempByID[id]
	if !ok {
		return kbautherr.NewNoSuchToken()
	}
	delete(s.tempTokens, hash)
	delete(s.tempByID, id)
	return nil
}

// Configuration.

func (s *Storage) GetConfig(_ context.Context) (domain.AuthConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return *s.config, nil
}

func (s *Storage) UpdateConfig(_ context.Context, cfg domain.AuthConfig, overwrite bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if overwrite {
		s.config = &cfg
		return nil
	}
	merged := *s.config
	merged.LoginAllowedGlobally = cfg.LoginAllowedGlobally
	for k, v := range cfg.Providers {
		merged.Providers[k] = v
	}
	for k, v := range cfg.TokenLifetimesMS {
		merged.TokenLifetimesMS[k] = v
	}
	s.config = &merged
	return nil
}

func (s *Storage) SetConfigDefaults(_ context.Context, defaults domain.AuthConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range defaults.Providers {
		if _, exists := s.config.Providers[k]; !exists {
			s.config.Providers[k] = v
		}
	}
	for k, v := range defaults.TokenLifetimesMS {
		if _, exists := s.config.TokenLifetimesMS[k]; !exists {
			s.config.TokenLifetimesMS[k] = v
		}
	}
	return nil
}

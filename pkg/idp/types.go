// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package idp defines the IdentityProvider capability (C3): the
// per-provider login-URL builder and authcode-to-identities exchange, plus
// a frozen name-to-provider registry consumed by the OAuth2 login and link
// state machines (C8/C9).
package idp

import (
	"context"
	"fmt"
	"strings"

	"github.com/kbase/auth2/pkg/domain"
	kbautherr "github.com/kbase/auth2/pkg/errors"
)

// Config is a single identity provider's configuration, as read from the
// IdentityProviderConfig external surface (spec.md §6).
type Config struct {
	Name           string
	LoginBaseURL   string
	APIBaseURL     string
	ClientID       string
	ClientSecret   string
	ImageURI       string
	LoginRedirect  string
	LinkRedirect   string
	Scopes         []string
	Custom         map[string]string
}

// Validate checks that a Config is complete enough to build a provider
// from. name is the factory's declared provider name; a mismatch is a
// configuration error, not a runtime one (spec.md §4.2, S6).
func (c Config) Validate(name string) error {
	if c.Name != name {
		return kbautherr.NewIllegalParameter(fmt.Sprintf("Bad config name: %s", c.Name))
	}
	if strings.TrimSpace(c.LoginBaseURL) == "" {
		return kbautherr.NewMissingParameter("loginBaseURL")
	}
	if strings.TrimSpace(c.APIBaseURL) == "" {
		return kbautherr.NewMissingParameter("apiBaseURL")
	}
	if strings.TrimSpace(c.ClientID) == "" {
		return kbautherr.NewMissingParameter("clientID")
	}
	if strings.TrimSpace(c.LoginRedirect) == "" {
		return kbautherr.NewMissingParameter("loginRedirect")
	}
	if strings.TrimSpace(c.LinkRedirect) == "" {
		return kbautherr.NewMissingParameter("linkRedirect")
	}
	return nil
}

// IgnoreSecondaryIdentities reports whether this provider's custom config
// map disables secondary-identity hydration (the Globus "identities_set"
// expansion call).
func (c Config) IgnoreSecondaryIdentities() bool {
	return c.Custom["ignore-secondary-identities"] == "true"
}

// Provider is the capability every identity-provider plugin exposes: a
// name, a display image, a login-URL builder, and the authcode exchange.
type Provider interface {
	// Name returns the provider's case-sensitive, unique name.
	Name() string

	// ImageURI returns the provider's display image URI.
	ImageURI() string

	// LoginURL builds the provider's OAuth2 authorize-endpoint redirect
	// URL. isLink selects the link-redirect URI over the login-redirect
	// URI.
	LoginURL(state string, isLink bool) (string, error)

	// GetIdentities exchanges authcode for an access token and fetches
	// the set of remote identities it authorizes. isLink has no bearing
	// on the exchange itself; it is accepted for symmetry with LoginURL
	// and because some providers gate behavior (e.g. forced consent) on
	// the flow kind.
	GetIdentities(ctx context.Context, authcode string, isLink bool) ([]domain.RemoteIdentity, error)
}

// Registry is a frozen name-to-provider map, consulted only from C8/C9.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry freezes a set of providers into a Registry, keyed by each
// provider's own declared Name().
func NewRegistry(providers ...Provider) *Registry {
	m := make(map[string]Provider, len(providers))
	for _, p := range providers {
		m[p.Name()] = p
	}
	return &Registry{providers: m}
}

// Get resolves a provider by name. A provider disabled in AuthConfig must
// be excluded by the caller before calling Get (spec.md §4.2: "a provider
// marked disabled... is treated as unknown to external callers"); Get
// itself only knows about registration, not runtime enablement.
func (r *Registry) Get(name string) (Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, kbautherr.NewNoSuchProvider(name)
	}
	return p, nil
}

// Names returns every registered provider's name, in no particular order.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.providers))
	for name := range r.providers {
		out = append(out, name)
	}
	return out
}

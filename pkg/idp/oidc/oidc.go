// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package oidc implements a generic standards-compliant OIDC identity
// provider (e.g. Google), exercising the registry's polymorphism beyond
// the Globus-specific provider. Discovery and ID-token verification are
// delegated to github.com/coreos/go-oidc/v3; the authorization-code
// exchange uses golang.org/x/oauth2.
package oidc

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	goidc "github.com/coreos/go-oidc/v3/oidc"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"

	"github.com/kbase/auth2/pkg/domain"
	kbautherr "github.com/kbase/auth2/pkg/errors"
	"github.com/kbase/auth2/pkg/idp"
	"github.com/kbase/auth2/pkg/log"
)

// idTokenClaims are the standard OIDC claims this provider maps onto
// RemoteIdentityDetails.
type idTokenClaims struct {
	Subject       string `json:"sub"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	PreferredName string `json:"preferred_username"`
}

// Provider is a generic OIDC identity provider, discovered from the
// declared name's issuer at construction time.
type Provider struct {
	name      string
	config    idp.Config
	oauth2Cfg oauth2.Config
	verifier  *goidc.IDTokenVerifier
	logger    *slog.Logger
}

// Option configures a Provider.
type Option func(*Provider)

// WithLogger overrides the default logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Provider) { p.logger = l }
}

// NewProvider validates cfg against name (the factory's declared name)
// and performs OIDC discovery against cfg.LoginBaseURL as the issuer.
func NewProvider(ctx context.Context, name string, cfg idp.Config, opts ...Option) (*Provider, error) {
	if err := cfg.Validate(name); err != nil {
		return nil, err
	}

	issuer, err := goidc.NewProvider(ctx, cfg.LoginBaseURL)
	if err != nil {
		return nil, kbautherr.NewIdentityRetrieval(name, "OIDC discovery failed: "+err.Error())
	}

	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = []string{goidc.ScopeOpenID, "profile", "email"}
	}

	p := &Provider{
		name:   name,
		config: cfg,
		oauth2Cfg: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     issuer.Endpoint(),
			Scopes:       scopes,
		},
		verifier: issuer.Verifier(&goidc.Config{ClientID: cfg.ClientID}),
		logger:   log.Get(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Name returns this provider's declared name.
func (p *Provider) Name() string { return p.name }

// ImageURI returns the provider's configured display image URI.
func (p *Provider) ImageURI() string { return p.config.ImageURI }

// LoginURL builds the discovered authorization endpoint's redirect URL.
func (p *Provider) LoginURL(state string, isLink bool) (string, error) {
	cfg := p.oauth2Cfg
	if isLink {
		cfg.RedirectURL = p.config.LinkRedirect
	} else {
		cfg.RedirectURL = p.config.LoginRedirect
	}
	return cfg.AuthCodeURL(state), nil
}

// GetIdentities exchanges authcode for tokens and decodes the ID token's
// claims into a single RemoteIdentity.
func (p *Provider) GetIdentities(ctx context.Context, authcode string, isLink bool) ([]domain.RemoteIdentity, error) {
	if strings.TrimSpace(authcode) == "" {
		return nil, kbautherr.NewIllegalParameter("authcode cannot be null or empty")
	}

	cfg := p.oauth2Cfg
	if isLink {
		cfg.RedirectURL = p.config.LinkRedirect
	} else {
		cfg.RedirectURL = p.config.LoginRedirect
	}

	tok, err := cfg.Exchange(ctx, authcode)
	if err != nil {
		return nil, kbautherr.NewIdentityRetrieval(p.name, err.Error())
	}

	rawIDToken, ok := tok.Extra("id_token").(string)
	if !ok || strings.TrimSpace(rawIDToken) == "" {
		return nil, kbautherr.NewIdentityRetrieval(p.name, fmt.Sprintf("No access token was returned by %s", p.name))
	}

	idToken, err := p.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		if sub, subErr := parseUnverifiedSubject(rawIDToken); subErr == nil {
			p.logger.Warn("id token verification failed", "provider", p.name, "subject", sub)
		}
		return nil, kbautherr.NewIdentityRetrieval(p.name, "id token verification failed: "+err.Error())
	}

	var claims idTokenClaims
	if err := idToken.Claims(&claims); err != nil {
		return nil, kbautherr.NewIdentityRetrieval(p.name, "failed to decode id token claims: "+err.Error())
	}

	username := claims.PreferredName
	if username == "" {
		username = claims.Email
	}

	return []domain.RemoteIdentity{{
		ID: domain.RemoteIdentityID{ProviderName: p.name, ProviderID: claims.Subject},
		Details: domain.RemoteIdentityDetails{
			Username: username,
			FullName: claims.Name,
			Email:    claims.Email,
		},
	}}, nil
}

// parseUnverifiedSubject is used only when a caller needs to inspect an ID
// token's subject before full verification is possible (e.g. logging a
// verification failure without decoding claims twice).
func parseUnverifiedSubject(rawIDToken string) (string, error) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(rawIDToken, claims); err != nil {
		return "", err
	}
	sub, _ := claims["sub"].(string)
	return sub, nil
}

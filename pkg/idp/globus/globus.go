// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package globus implements the Globus Auth identity provider (spec.md
// §4.2, §6): OAuth2 authorize-URL construction plus the two-call
// authcode-to-identities exchange (token exchange, then introspect with
// optional secondary-identity hydration).
package globus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kbase/auth2/pkg/domain"
	kbautherr "github.com/kbase/auth2/pkg/errors"
	"github.com/kbase/auth2/pkg/idp"
	"github.com/kbase/auth2/pkg/log"
)

// Name is this factory's declared, canonical provider name. A Config
// naming any other value fails NewProvider (spec.md §4.2, S6).
const Name = "Globus"

// defaultScopes are the scopes requested when Config.Scopes is empty:
// view-identities plus email, matching S1/S2's literal expected URL.
var defaultScopes = []string{"urn:globus:auth:scope:auth.globus.org:view_identities", "email"}

// maxResponseSize caps provider HTTP response bodies read into memory.
const maxResponseSize = 1024 * 1024

// HTTPClient is the capability Provider needs from an HTTP client,
// satisfied by *http.Client and swappable in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Provider is the Globus identity provider.
type Provider struct {
	config idp.Config
	client HTTPClient
	logger *slog.Logger
}

// Option configures a Provider.
type Option func(*Provider)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c HTTPClient) Option {
	return func(p *Provider) { p.client = c }
}

// WithLogger overrides the default logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Provider) { p.logger = l }
}

// NewProvider validates cfg against this factory's declared Name and
// constructs a Provider.
func NewProvider(cfg idp.Config, opts ...Option) (*Provider, error) {
	if err := cfg.Validate(Name); err != nil {
		return nil, err
	}
	if len(cfg.Scopes) == 0 {
		cfg.Scopes = defaultScopes
	}
	p := &Provider{
		config: cfg,
		client: &http.Client{Timeout: 30 * time.Second},
		logger: log.Get(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Name returns "Globus".
func (p *Provider) Name() string { return Name }

// ImageURI returns the provider's configured display image URI.
func (p *Provider) ImageURI() string { return p.config.ImageURI }

// LoginURL builds the Globus authorize-endpoint redirect URL. Field order
// and encoding match spec.md S1/S2 exactly: scope, state, redirect_uri,
// response_type, client_id, each percent-encoded with scopes joined by a
// literal "+".
func (p *Provider) LoginURL(state string, isLink bool) (string, error) {
	redirect := p.config.LoginRedirect
	if isLink {
		redirect = p.config.LinkRedirect
	}
	scope := strings.Join(p.config.Scopes, " ")

	var b strings.Builder
	b.WriteString(p.config.LoginBaseURL)
	b.WriteString("/v2/oauth2/authorize?scope=")
	b.WriteString(url.QueryEscape(scope))
	b.WriteString("&state=")
	b.WriteString(url.QueryEscape(state))
	b.WriteString("&redirect_uri=")
	b.WriteString(url.QueryEscape(redirect))
	b.WriteString("&response_type=code")
	b.WriteString("&client_id=")
	b.WriteString(url.QueryEscape(p.config.ClientID))
	return b.String(), nil
}

// GetIdentities exchanges authcode for an access token, then introspects
// it and (unless suppressed by config) hydrates secondary identities.
func (p *Provider) GetIdentities(ctx context.Context, authcode string, isLink bool) ([]domain.RemoteIdentity, error) {
	redirect := p.config.LoginRedirect
	if isLink {
		redirect = p.config.LinkRedirect
	}

	accessToken, err := p.exchangeToken(ctx, authcode, redirect)
	if err != nil {
		return nil, err
	}

	introspect, err := p.introspect(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	identities := []domain.RemoteIdentity{{
		ID: domain.RemoteIdentityID{ProviderName: Name, ProviderID: introspect.Sub},
		Details: domain.RemoteIdentityDetails{
			Username: introspect.Username,
			FullName: introspect.Name,
			Email:    introspect.Email,
		},
	}}

	secondaryIDs := make([]string, 0, len(introspect.IdentitiesSet))
	for _, id := range introspect.IdentitiesSet {
		if id != introspect.Sub {
			secondaryIDs = append(secondaryIDs, id)
		}
	}

	if len(secondaryIDs) == 0 || p.config.IgnoreSecondaryIdentities() {
		return identities, nil
	}

	secondaries, err := p.fetchIdentities(ctx, accessToken, secondaryIDs)
	if err != nil {
		return nil, err
	}
	for _, s := range secondaries {
		identities = append(identities, domain.RemoteIdentity{
			ID: domain.RemoteIdentityID{ProviderName: Name, ProviderID: s.ID},
			Details: domain.RemoteIdentityDetails{
				Username: s.Username,
				FullName: s.Name,
				Email:    s.Email,
			},
		})
	}
	return identities, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

func (p *Provider) exchangeToken(ctx context.Context, authcode, redirect string) (string, error) {
	form := url.Values{}
	form.Set("code", authcode)
	form.Set("grant_type", "authorization_code")
	form.Set("redirect_uri", redirect)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.config.APIBaseURL+"/v2/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", kbautherr.NewIdentityRetrieval(Name, err.Error())
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(p.config.ClientID, p.config.ClientSecret)

	var tok tokenResponse
	if err := p.doJSON(req, &tok); err != nil {
		return "", err
	}
	if strings.TrimSpace(tok.AccessToken) == "" {
		return "", kbautherr.NewIdentityRetrieval(Name, fmt.Sprintf("No access token was returned by %s", Name))
	}
	return tok.AccessToken, nil
}

type introspectResponse struct {
	Aud           []string `json:"aud"`
	Sub           string   `json:"sub"`
	Username      string   `json:"username"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	IdentitiesSet []string `json:"identities_set"`
}

func (p *Provider) introspect(ctx context.Context, accessToken string) (*introspectResponse, error) {
	form := url.Values{}
	form.Set("include", "identities_set")
	form.Set("token", accessToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.config.APIBaseURL+"/v2/oauth2/token/introspect", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, kbautherr.NewIdentityRetrieval(Name, err.Error())
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(accessToken, "")

	var resp introspectResponse
	if err := p.doJSON(req, &resp); err != nil {
		return nil, err
	}
	if len(resp.Aud) > 0 && !containsString(resp.Aud, p.config.ClientID) {
		p.logger.Warn("introspect audience does not include configured client id", "provider", Name)
		return nil, kbautherr.NewIdentityRetrieval(Name, "token audience does not match configured client id")
	}
	return &resp, nil
}

type identityRecord struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

type identitiesResponse struct {
	Identities []identityRecord `json:"identities"`
}

func (p *Provider) fetchIdentities(ctx context.Context, accessToken string, ids []string) ([]identityRecord, error) {
	u := p.config.APIBaseURL + "/v2/api/identities?ids=" + url.QueryEscape(strings.Join(ids, ","))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, kbautherr.NewIdentityRetrieval(Name, err.Error())
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	var resp identitiesResponse
	if err := p.doJSON(req, &resp); err != nil {
		return nil, err
	}
	return resp.Identities, nil
}

func (p *Provider) doJSON(req *http.Request, out any) error {
	resp, err := p.client.Do(req)
	if err != nil {
		return kbautherr.NewIdentityRetrieval(Name, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return kbautherr.NewIdentityRetrieval(Name, err.Error())
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return kbautherr.NewIdentityRetrieval(Name, fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return kbautherr.NewIdentityRetrieval(Name, "malformed response: "+err.Error())
	}
	return nil
}

func containsString(hay []string, needle string) bool {
	for _, h := range hay {
		if h == needle {
			return true
		}
	}
	return false
}

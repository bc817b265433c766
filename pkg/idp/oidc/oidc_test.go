// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package oidc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	kbautherr "github.com/kbase/auth2/pkg/errors"
	"github.com/kbase/auth2/pkg/idp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newDiscoveryServer stands up a minimal OIDC discovery + jwks endpoint so
// NewProvider's discovery call succeeds against a local issuer.
func newDiscoveryServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	var srv *httptest.Server
	mux.HandleFunc("/.well-known/openid-configuration", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"issuer":                 srv.URL,
			"authorization_endpoint": srv.URL + "/authorize",
			"token_endpoint":         srv.URL + "/token",
			"jwks_uri":               srv.URL + "/jwks",
		})
	})
	mux.HandleFunc("/jwks", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"keys": []any{}})
	})
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func baseConfig(issuer string) idp.Config {
	return idp.Config{
		Name:          "Google",
		LoginBaseURL:  issuer,
		APIBaseURL:    issuer,
		ClientID:      "client-id",
		ClientSecret:  "secret",
		LoginRedirect: "https://loginredir.com",
		LinkRedirect:  "https://linkredir.com",
	}
}

func TestNewProvider_BadConfigName(t *testing.T) {
	srv := newDiscoveryServer(t)
	cfg := baseConfig(srv.URL)
	cfg.Name = "wrong"
	_, err := NewProvider(context.Background(), "Google", cfg)
	require.Error(t, err)
	assert.True(t, kbautherr.IsIllegalParameter(err))
}

func TestLoginURL(t *testing.T) {
	srv := newDiscoveryServer(t)
	p, err := NewProvider(context.Background(), "Google", baseConfig(srv.URL))
	require.NoError(t, err)

	loginURL, err := p.LoginURL("state1", false)
	require.NoError(t, err)
	assert.Contains(t, loginURL, "state=state1")
	assert.Contains(t, loginURL, "client_id=client-id")

	linkURL, err := p.LoginURL("state2", true)
	require.NoError(t, err)
	assert.Contains(t, linkURL, "state=state2")
}

func TestGetIdentities_EmptyAuthcode(t *testing.T) {
	srv := newDiscoveryServer(t)
	p, err := NewProvider(context.Background(), "Google", baseConfig(srv.URL))
	require.NoError(t, err)

	_, err = p.GetIdentities(context.Background(), "  ", false)
	require.Error(t, err)
	assert.True(t, kbautherr.IsIllegalParameter(err))
}

func TestName(t *testing.T) {
	srv := newDiscoveryServer(t)
	p, err := NewProvider(context.Background(), "Google", baseConfig(srv.URL))
	require.NoError(t, err)
	assert.Equal(t, "Google", p.Name())
}

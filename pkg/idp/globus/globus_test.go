// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package globus

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	kbautherr "github.com/kbase/auth2/pkg/errors"
	"github.com/kbase/auth2/pkg/idp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig() idp.Config {
	return idp.Config{
		Name:          Name,
		LoginBaseURL:  "https://login.com",
		APIBaseURL:    "https://api.com",
		ClientID:      "foo",
		ClientSecret:  "shh",
		LoginRedirect: "https://loginredir.com",
		LinkRedirect:  "https://linkredir.com",
	}
}

// S1 — Globus login URL.
func TestLoginURL_Login(t *testing.T) {
	p, err := NewProvider(baseConfig())
	require.NoError(t, err)

	got, err := p.LoginURL("foo2", false)
	require.NoError(t, err)
	want := "https://login.com/v2/oauth2/authorize?scope=urn%3Aglobus%3Aauth%3Ascope%3Aauth.globus.org%3Aview_identities+email&state=foo2&redirect_uri=https%3A%2F%2Floginredir.com&response_type=code&client_id=foo"
	assert.Equal(t, want, got)
}

// S2 — Globus login URL, link mode.
func TestLoginURL_Link(t *testing.T) {
	p, err := NewProvider(baseConfig())
	require.NoError(t, err)

	got, err := p.LoginURL("foo3", true)
	require.NoError(t, err)
	want := "https://login.com/v2/oauth2/authorize?scope=urn%3Aglobus%3Aauth%3Ascope%3Aauth.globus.org%3Aview_identities+email&state=foo3&redirect_uri=https%3A%2F%2Flinkredir.com&response_type=code&client_id=foo"
	assert.Equal(t, want, got)
}

// S6 — Provider-name mismatch.
func TestNewProvider_BadConfigName(t *testing.T) {
	cfg := baseConfig()
	cfg.Name = "foo"
	_, err := NewProvider(cfg)
	require.Error(t, err)
	assert.True(t, kbautherr.IsIllegalParameter(err))
	assert.Contains(t, err.Error(), "Bad config name: foo")
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) Do(req *http.Request) (*http.Response, error) { return f(req) }

func jsonResponse(t *testing.T, status int, body any) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(string(b))),
	}
}

// S3 — No access token returned.
func TestGetIdentities_NoAccessToken(t *testing.T) {
	client := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		assert.Contains(t, req.URL.String(), "/v2/oauth2/token")
		return jsonResponse(t, 200, map[string]any{"access_token": nil}), nil
	})
	p, err := NewProvider(baseConfig(), WithHTTPClient(client))
	require.NoError(t, err)

	_, err = p.GetIdentities(context.Background(), "authcode3", false)
	require.Error(t, err)
	assert.True(t, kbautherr.IsIdentityRetrieval(err))
	assert.Contains(t, err.Error(), "No access token was returned by Globus")
}

// S4 — Globus identities with secondaries.
func TestGetIdentities_WithSecondaries(t *testing.T) {
	calls := 0
	client := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		calls++
		switch {
		case strings.Contains(req.URL.Path, "/v2/oauth2/token") && !strings.Contains(req.URL.Path, "introspect"):
			return jsonResponse(t, 200, map[string]any{"access_token": "footoken"}), nil
		case strings.Contains(req.URL.Path, "introspect"):
			return jsonResponse(t, 200, map[string]any{
				"aud":            []string{"foo"},
				"sub":            "anID",
				"username":       "aUsername",
				"name":           "fullname",
				"email":          "anEmail",
				"identities_set": []string{"ident1", "anID", "ident2"},
			}), nil
		case strings.Contains(req.URL.Path, "/v2/api/identities"):
			ids := req.URL.Query().Get("ids")
			set := map[string]bool{}
			for _, id := range strings.Split(ids, ",") {
				set[id] = true
			}
			assert.True(t, set["ident1"])
			assert.True(t, set["ident2"])
			return jsonResponse(t, 200, map[string]any{
				"identities": []map[string]any{
					{"id": "ident1", "username": "user1", "name": "name1", "email": nil},
					{"id": "ident2", "username": "user2", "name": nil, "email": "email2"},
				},
			}), nil
		}
		t.Fatalf("unexpected request: %s", req.URL.String())
		return nil, nil
	})

	p, err := NewProvider(baseConfig(), WithHTTPClient(client))
	require.NoError(t, err)

	ids, err := p.GetIdentities(context.Background(), "authcode4", false)
	require.NoError(t, err)
	require.Len(t, ids, 3)
	assert.Equal(t, 3, calls)

	byID := map[string]string{}
	for _, id := range ids {
		byID[id.ID.ProviderID] = id.Details.Username
	}
	assert.Equal(t, "aUsername", byID["anID"])
	assert.Equal(t, "user1", byID["ident1"])
	assert.Equal(t, "user2", byID["ident2"])
}

// S5 — Globus identities without secondaries.
func TestGetIdentities_NoSecondaries(t *testing.T) {
	secondaryCalled := false
	client := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		switch {
		case strings.Contains(req.URL.Path, "introspect"):
			return jsonResponse(t, 200, map[string]any{
				"sub":            "anID2",
				"username":       "aUsername2",
				"identities_set": []string{"anID2"},
			}), nil
		case strings.Contains(req.URL.Path, "/v2/api/identities"):
			secondaryCalled = true
			return jsonResponse(t, 200, map[string]any{"identities": []map[string]any{}}), nil
		default:
			return jsonResponse(t, 200, map[string]any{"access_token": "footoken"}), nil
		}
	})

	p, err := NewProvider(baseConfig(), WithHTTPClient(client))
	require.NoError(t, err)

	ids, err := p.GetIdentities(context.Background(), "authcode5", false)
	require.NoError(t, err)
	require.Len(t, ids, 1)
	assert.Equal(t, "anID2", ids[0].ID.ProviderID)
	assert.Equal(t, "aUsername2", ids[0].Details.Username)
	assert.False(t, secondaryCalled)
}

func TestExchangeToken_RedirectMatchesFlow(t *testing.T) {
	var gotRedirect string
	client := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if strings.Contains(req.URL.Path, "/v2/oauth2/token") && !strings.Contains(req.URL.Path, "introspect") {
			body, _ := io.ReadAll(req.Body)
			form, _ := url.ParseQuery(string(body))
			gotRedirect = form.Get("redirect_uri")
			return jsonResponse(t, 200, map[string]any{"access_token": "tok"}), nil
		}
		return jsonResponse(t, 200, map[string]any{"sub": "x", "identities_set": []string{"x"}}), nil
	})

	p, err := NewProvider(baseConfig(), WithHTTPClient(client))
	require.NoError(t, err)

	_, err = p.GetIdentities(context.Background(), "code", true)
	require.NoError(t, err)
	assert.Equal(t, "https://linkredir.com", gotRedirect)
}

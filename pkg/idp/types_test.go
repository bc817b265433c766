// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package idp

import (
	"context"
	"testing"

	"github.com/kbase/auth2/pkg/domain"
	kbautherr "github.com/kbase/auth2/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct{ name string }

func (f fakeProvider) Name() string     { return f.name }
func (f fakeProvider) ImageURI() string { return "https://example.com/" + f.name + ".png" }
func (f fakeProvider) LoginURL(state string, isLink bool) (string, error) {
	return "https://example.com/authorize?state=" + state, nil
}
func (f fakeProvider) GetIdentities(_ context.Context, _ string, _ bool) ([]domain.RemoteIdentity, error) {
	return nil, nil
}

func TestRegistry_Get(t *testing.T) {
	reg := NewRegistry(fakeProvider{name: "Globus"}, fakeProvider{name: "Google"})

	p, err := reg.Get("Globus")
	require.NoError(t, err)
	assert.Equal(t, "Globus", p.Name())

	_, err = reg.Get("Nope")
	require.Error(t, err)
	assert.True(t, kbautherr.IsNoSuchProvider(err))
}

func TestRegistry_Names(t *testing.T) {
	reg := NewRegistry(fakeProvider{name: "Globus"}, fakeProvider{name: "Google"})
	assert.ElementsMatch(t, []string{"Globus", "Google"}, reg.Names())
}

func TestConfig_Validate_BadName(t *testing.T) {
	cfg := Config{Name: "foo"}
	err := cfg.Validate("Globus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bad config name: foo")
}

func TestConfig_Validate_MissingFields(t *testing.T) {
	cfg := Config{Name: "Globus"}
	err := cfg.Validate("Globus")
	require.Error(t, err)
	assert.True(t, kbautherr.IsMissingParameter(err))
}

func TestConfig_IgnoreSecondaryIdentities(t *testing.T) {
	cfg := Config{Custom: map[string]string{"ignore-secondary-identities": "true"}}
	assert.True(t, cfg.IgnoreSecondaryIdentities())

	cfg2 := Config{}
	assert.False(t, cfg2.IgnoreSecondaryIdentities())
}

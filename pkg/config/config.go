// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package config loads the process environment into a typed
// configuration struct consumed at startup to build an identity-provider
// registry and an Engine. File-based config parsing is out of scope.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/kbase/auth2/pkg/idp"
)

// EngineConfig holds the top-level engine parameters read from the
// process environment.
type EngineConfig struct {
	// ConfigCacheTTL bounds how stale a cached AuthConfig read may be
	// before the next caller triggers a refresh.
	ConfigCacheTTLSeconds int `env:"CONFIG_CACHE_TTL_SECONDS" envDefault:"30"`

	// RedisAddr, if set, selects the Redis storage backend over the
	// in-memory reference implementation.
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisKeyPrefix string `env:"REDIS_KEY_PREFIX" envDefault:"kbauth:"`
}

// ProviderConfig is one identity provider's environment-sourced
// configuration, keyed by its declared name via envPrefix.
type ProviderConfig struct {
	Name          string   `env:"-"`
	LoginBaseURL  string   `env:"LOGIN_BASE_URL"`
	APIBaseURL    string   `env:"API_BASE_URL"`
	ClientID      string   `env:"CLIENT_ID"`
	ClientSecret  string   `env:"CLIENT_SECRET"`
	ImageURI      string   `env:"IMAGE_URI"`
	LoginRedirect string   `env:"LOGIN_REDIRECT"`
	LinkRedirect  string   `env:"LINK_REDIRECT"`
	Scopes        []string `env:"SCOPES" envSeparator:","`
}

// IdentityProviderConfig is the full set of identity providers this
// deployment configures, each under its own env-var prefix, e.g.
// GLOBUS_CLIENT_ID, GOOGLE_CLIENT_ID.
type IdentityProviderConfig struct {
	Globus ProviderConfig `envPrefix:"GLOBUS_"`
	Google ProviderConfig `envPrefix:"GOOGLE_"`
}

// IDPConfig converts p to the idp.Config shape a provider factory
// validates and builds from.
func (p ProviderConfig) IDPConfig() idp.Config {
	return idp.Config{
		Name:          p.Name,
		LoginBaseURL:  p.LoginBaseURL,
		APIBaseURL:    p.APIBaseURL,
		ClientID:      p.ClientID,
		ClientSecret:  p.ClientSecret,
		ImageURI:      p.ImageURI,
		LoginRedirect: p.LoginRedirect,
		LinkRedirect:  p.LinkRedirect,
		Scopes:        p.Scopes,
	}
}

// Config aggregates engine and identity-provider configuration, parsed
// once from the process environment at startup.
type Config struct {
	Engine    EngineConfig           `envPrefix:"KBAUTH_"`
	Providers IdentityProviderConfig `envPrefix:"KBAUTH_"`
}

// Load parses the process environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.Providers.Globus.Name = "Globus"
	cfg.Providers.Google.Name = "Google"
	return cfg, nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the raw configuration container populated by each
// source (flags, environment, JSON file, defaults) before merging.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the credential sealing
	// key and refresh behaviour.
	App App `envPrefix:"APP_"`

	// Adapter holds the backend address and outbound request timeout.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Storage holds configuration for the local credential store.
	Storage Storage `envPrefix:"STORAGE_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// StoreKey is the secret used to derive the key that seals persisted
	// credentials. Empty means credentials are stored unsealed.
	// Env: APP_STORE_KEY
	StoreKey string `env:"STORE_KEY"`

	// RefreshCoalescing makes concurrent calls that detect an expired access
	// token share a single refresh request instead of issuing one each.
	// Env: APP_REFRESH_COALESCING
	RefreshCoalescing bool `env:"REFRESH_COALESCING"`
}

// Adapter holds network settings of the outbound transport.
type Adapter struct {
	// HTTPAddress is the backend base URL (e.g. "http://localhost:8000").
	// A missing scheme defaults to http.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single outbound HTTP exchange (e.g. "15s").
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage groups the credential storage settings.
type Storage struct {
	// DB holds the local database settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local SQLite database.
type DB struct {
	// DSN is the SQLite file path. ":memory:" selects a non-persistent
	// in-process store.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// ClientConfig is the merged and validated client configuration.
type ClientConfig struct {
	App     App
	Adapter Adapter
	Storage Storage
}

const (
	defaultHTTPAddress    = "http://localhost:8000"
	defaultRequestTimeout = 15 * time.Second
	defaultDSN            = "sqledu-credentials.db"
)

func defaults() *StructuredConfig {
	return &StructuredConfig{
		Adapter: Adapter{
			HTTPAddress:    defaultHTTPAddress,
			RequestTimeout: defaultRequestTimeout,
		},
		Storage: Storage{DB: DB{DSN: defaultDSN}},
	}
}

// GetClientConfig loads, merges, and validates the client configuration.
// args are the command-line arguments without the program name; the
// arguments left after flag parsing (the CLI command and its operands) are
// returned alongside the config.
func GetClientConfig(args []string) (*ClientConfig, []string, error) {
	b := newConfigBuilder().
		withFlags(args).
		withEnv().
		withJSON().
		withDefaults()

	cfg, err := b.build()
	if err != nil {
		return nil, nil, err
	}

	return cfg, b.rest, nil
}

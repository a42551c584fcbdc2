// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fernando Mashimo

package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
)

// StructuredConfig is the top-level configuration container for the
// github-users-db application. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line
// flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// GitHub holds settings for the outbound GitHub API client.
	GitHub GitHub `envPrefix:"GITHUB_"`

	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// GitHub holds configuration for the outbound GitHub REST API client.
type GitHub struct {
	// APIBaseURL is the root of the GitHub REST API.
	// Env: GITHUB_API_BASE_URL
	APIBaseURL string `env:"API_BASE_URL"`

	// APIToken is the pre-provisioned bearer credential sent with every
	// request. Must be kept confidential.
	// Env: GITHUB_API_TOKEN
	APIToken string `env:"API_TOKEN"`

	// RequestTimeout bounds a single outbound request (e.g. "15s").
	// Env: GITHUB_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// PageSize is the per_page value used when listing repositories.
	// Env: GITHUB_PAGE_SIZE
	PageSize int `env:"PAGE_SIZE"`
}

// DB holds the PostgreSQL connection settings. Either URI is provided whole,
// or the discrete fields are assembled into a DSN via [DB.DSN].
type DB struct {
	// URI is a complete connection string. When set it takes precedence
	// over the discrete host/port/name/user/password fields.
	// Env: DB_URI
	URI string `env:"URI"`

	// Host is the database server host.
	// Env: DB_HOST
	Host string `env:"HOST"`

	// Port is the database server port.
	// Env: DB_PORT
	Port int `env:"PORT"`

	// Name is the database name.
	// Env: DB_NAME
	Name string `env:"NAME"`

	// User is the database role used for all connections.
	// Env: DB_USER
	User string `env:"USER"`

	// Password is the database role password.
	// Env: DB_PASSWORD
	Password string `env:"PASSWORD"`
}

// DSN returns the connection string for the configured database: URI when
// set, otherwise a keyword/value DSN assembled from the discrete fields.
func (db DB) DSN() string {
	if db.URI != "" {
		return db.URI
	}

	return fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=disable",
		db.Host, db.Port, db.Name, db.User, db.Password)
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (earlier sources win for non-zero fields):
//  1. Environment variables (a .env file in the working directory is loaded
//     first, mirroring the usual local development setup)
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults, filling whatever the other sources left unset
//
// Flag parsing stops at the first positional argument, so configuration
// flags precede the command: `ghusersdb -d <dsn> fetch <username>`. The
// positional remainder (command and its arguments) is returned alongside the
// config for the CLI dispatcher to consume.
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig(args []string) (*StructuredConfig, []string, error) {
	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	builder := newConfigBuilder().
		withEnv().
		withFlags(args).
		withJSON().
		withDefaults()

	cfg, err := builder.build()
	return cfg, builder.remaining, err
}

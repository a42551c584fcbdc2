// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fernando Mashimo

package config

import (
	"flag"
	"time"
)

// ParseFlags parses configuration flags from args (without the program
// name). Parsing stops at the first positional argument; the remainder is
// returned for the command dispatcher.
//
// Flags:
//
//	-d database DSN
//	-db-host database host
//	-db-port database port
//	-db-name database name
//	-db-user database user
//	-db-password database password
//	-token GitHub API bearer token
//	-api-base-url GitHub API base URL
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-page-size repositories page size
//	-c/-config json file path with configs
func ParseFlags(args []string) (*StructuredConfig, []string) {
	var databaseDSN string
	var dbHost, dbName, dbUser, dbPassword string
	var dbPort int
	var apiToken string
	var apiBaseURL string
	var requestTimeout time.Duration
	var pageSize int
	var jsonConfigPath string

	flags := flag.NewFlagSet("ghusersdb", flag.ExitOnError)
	flags.StringVar(&databaseDSN, "d", "", "Database DSN")
	flags.StringVar(&dbHost, "db-host", "", "Database host")
	flags.IntVar(&dbPort, "db-port", 0, "Database port")
	flags.StringVar(&dbName, "db-name", "", "Database name")
	flags.StringVar(&dbUser, "db-user", "", "Database user")
	flags.StringVar(&dbPassword, "db-password", "", "Database password")
	flags.StringVar(&apiToken, "token", "", "GitHub API bearer token")
	flags.StringVar(&apiBaseURL, "api-base-url", "", "GitHub API base URL")
	flags.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flags.IntVar(&pageSize, "page-size", 0, "Repositories page size")
	flags.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flags.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	// ExitOnError: a malformed flag prints usage and exits.
	_ = flags.Parse(args)

	return &StructuredConfig{
		GitHub: GitHub{
			APIBaseURL:     apiBaseURL,
			APIToken:       apiToken,
			RequestTimeout: requestTimeout,
			PageSize:       pageSize,
		},
		DB: DB{
			URI:      databaseDSN,
			Host:     dbHost,
			Port:     dbPort,
			Name:     dbName,
			User:     dbUser,
			Password: dbPassword,
		},
		JSONFilePath: jsonConfigPath,
	}, flags.Args()
}

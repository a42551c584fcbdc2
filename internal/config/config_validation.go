// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fernando Mashimo

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// The GitHub API token is deliberately not required here: unauthenticated
// requests are accepted by the API at a lower rate limit, and the `list`
// and `migrate` commands never talk to GitHub at all.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.DB.URI == "" && (cfg.DB.Host == "" || cfg.DB.Name == "" || cfg.DB.Port <= 0) {
		return ErrInvalidStorageConfigs
	}

	if cfg.GitHub.APIBaseURL == "" || cfg.GitHub.PageSize <= 0 || cfg.GitHub.RequestTimeout <= 0 {
		return ErrInvalidGitHubConfigs
	}

	return nil
}

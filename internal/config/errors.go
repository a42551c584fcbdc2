package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid database settings
	// (for example, no DSN and no discrete connection fields).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidGitHubConfigs indicates invalid GitHub client settings
	// (for example, an empty API base URL or non-positive page size).
	ErrInvalidGitHubConfigs = errors.New("invalid github configuration")
)

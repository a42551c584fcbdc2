package github

import "errors"

// Sentinel errors returned by [Client] methods to signal well-known remote
// failure conditions. Callers should use [errors.Is] to match against these
// values.
var (
	// ErrUserNotFound is returned when the requested username has no
	// matching GitHub account.
	ErrUserNotFound = errors.New("github user not found")

	// ErrUnauthorized is returned when the configured credential is
	// rejected by the API.
	ErrUnauthorized = errors.New("github credentials rejected")

	// ErrForbidden is returned when the API refuses the request, most
	// commonly because the rate limit is exhausted.
	ErrForbidden = errors.New("github request forbidden")
)

package service

import "errors"

var (
	ErrEmptyUsername = errors.New("no username provided")

	// ErrRemoteUserNotFound means the username does not exist on GitHub.
	ErrRemoteUserNotFound = errors.New("user not found on remote")

	// ErrFetchFailed covers every other remote failure: rejected
	// credentials, rate limiting, transport errors.
	ErrFetchFailed = errors.New("failed to fetch user data")

	// ErrPersistenceFailed covers storage failures during sync or list.
	ErrPersistenceFailed = errors.New("failed to persist user data")
)

package store

import (
	"context"

	"github.com/fernando-mashimo/github-users-db/models"
	"github.com/google/uuid"
)

// UserRepository is the persistence contract for synchronized users and
// their language associations.
type UserRepository interface {
	// GetUserByExternalID returns the stored user for the given GitHub
	// account id, including its aggregated language set.
	// Returns [ErrUserNotFound] when no row matches.
	GetUserByExternalID(ctx context.Context, externalID int64) (models.User, error)

	// GetUsersByFilters returns all stored users passing the given
	// filters. An empty filter set returns every user; no match returns
	// an empty slice, never an error.
	GetUsersByFilters(ctx context.Context, filters models.ListFilters) ([]models.User, error)

	// CreateUser inserts the user row plus its language associations in
	// one transaction. Returns [ErrUserAlreadyExists] (and persists
	// nothing) when the external id is already stored.
	CreateUser(ctx context.Context, user models.User) (uuid.UUID, error)

	// UpdateUser overwrites the user row matched by external id and
	// replaces all its language associations in one transaction.
	// Returns [ErrUserNotFound] when the external id is not stored.
	UpdateUser(ctx context.Context, user models.User) (uuid.UUID, error)
}

// ErrorClassificator classifies low-level database errors as retryable or
// not, so that callers can decide whether a re-invocation is worthwhile.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

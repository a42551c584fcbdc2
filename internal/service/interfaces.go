package service

import (
	"context"

	"github.com/fernando-mashimo/github-users-db/models"
)

// Fetcher retrieves a GitHub user's profile and repositories from the
// remote API. Implemented by the github package client.
type Fetcher interface {
	GetUserData(ctx context.Context, username string) (models.UserData, error)
}

// UserService orchestrates synchronization and lookup of GitHub users.
type UserService interface {
	// Sync fetches the given username from the remote API, normalizes the
	// payload and persists it, creating or updating the stored user as
	// needed. Returns the synchronized user.
	Sync(ctx context.Context, username string) (models.User, error)

	// List returns the stored users passing the given filters.
	List(ctx context.Context, filters models.ListFilters) ([]models.User, error)
}

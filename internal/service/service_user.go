// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fernando Mashimo

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fernando-mashimo/github-users-db/internal/github"
	"github.com/fernando-mashimo/github-users-db/internal/logger"
	"github.com/fernando-mashimo/github-users-db/internal/store"
	"github.com/fernando-mashimo/github-users-db/models"
)

// userService implements [UserService]: it pulls user data through a
// [Fetcher], normalizes it and routes it to the create or update path of
// the [store.UserRepository].
type userService struct {
	fetcher        Fetcher
	userRepository store.UserRepository

	logger *logger.Logger
}

func NewUserService(fetcher Fetcher, userRepository store.UserRepository, logger *logger.Logger) UserService {
	return &userService{
		fetcher:        fetcher,
		userRepository: userRepository,
		logger:         logger,
	}
}

// Sync synchronizes one GitHub account into the store. The remote fetch
// happens first; when it fails nothing is persisted. The create/update
// branch is decided by an existence lookup on the remote account id, so
// re-syncing the same username is idempotent.
func (s *userService) Sync(ctx context.Context, username string) (models.User, error) {
	log := logger.FromContext(ctx)

	username = strings.TrimSpace(username)
	if username == "" {
		return models.User{}, ErrEmptyUsername
	}

	data, err := s.fetcher.GetUserData(ctx, username)
	switch {
	case errors.Is(err, github.ErrUserNotFound):
		return models.User{}, fmt.Errorf("%w: %s", ErrRemoteUserNotFound, username)
	case err != nil:
		log.Err(err).
			Str("func", "*userService.Sync").
			Str("username", username).
			Msg("remote fetch failed")
		return models.User{}, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	user := github.NormalizeUser(data)

	_, err = s.userRepository.GetUserByExternalID(ctx, user.ExternalID)
	switch {
	case err == nil:
		return s.updateUser(ctx, user)
	case errors.Is(err, store.ErrUserNotFound):
		return s.createUser(ctx, user)
	default:
		log.Err(err).
			Str("func", "*userService.Sync").
			Str("username", username).
			Msg("existence lookup failed")
		return models.User{}, fmt.Errorf("%w: %w", ErrPersistenceFailed, err)
	}
}

// List returns the stored users passing the given filters.
func (s *userService) List(ctx context.Context, filters models.ListFilters) ([]models.User, error) {
	users, err := s.userRepository.GetUsersByFilters(ctx, filters)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*userService.List").
			Msg("failed to list users")
		return nil, fmt.Errorf("%w: %w", ErrPersistenceFailed, err)
	}

	return users, nil
}

func (s *userService) createUser(ctx context.Context, user models.User) (models.User, error) {
	id, err := s.userRepository.CreateUser(ctx, user)
	if errors.Is(err, store.ErrUserAlreadyExists) {
		// lost the insert race to a concurrent sync of the same account
		return s.updateUser(ctx, user)
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*userService.createUser").
			Str("username", user.Username).
			Msg("failed to create user")
		return models.User{}, fmt.Errorf("%w: %w", ErrPersistenceFailed, err)
	}

	user.ID = id
	return user, nil
}

func (s *userService) updateUser(ctx context.Context, user models.User) (models.User, error) {
	id, err := s.userRepository.UpdateUser(ctx, user)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*userService.updateUser").
			Str("username", user.Username).
			Msg("failed to update user")
		return models.User{}, fmt.Errorf("%w: %w", ErrPersistenceFailed, err)
	}

	user.ID = id
	return user, nil
}

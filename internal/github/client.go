// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fernando Mashimo

// Package github implements the outbound GitHub REST API client used to
// retrieve profile and repository data for a username, plus the pure
// normalization step that turns raw API payloads into domain records.
package github

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/fernando-mashimo/github-users-db/internal/config"
	"github.com/fernando-mashimo/github-users-db/internal/logger"
	"github.com/fernando-mashimo/github-users-db/models"
	"github.com/go-resty/resty/v2"
	"golang.org/x/sync/errgroup"
)

const apiVersion = "2022-11-28"

// Client talks to the GitHub REST API. All requests carry the fixed Accept
// and X-GitHub-Api-Version headers; when a bearer token is configured it is
// sent in the Authorization header.
type Client struct {
	client   *resty.Client
	pageSize int
	logger   *logger.Logger
}

// NewClient constructs a [Client] from the GitHub section of the
// application configuration.
func NewClient(cfg config.GitHub, log *logger.Logger) *Client {
	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.APIBaseURL, "/")).
		SetTimeout(cfg.RequestTimeout).
		SetHeader("Accept", "application/vnd.github+json").
		SetHeader("X-GitHub-Api-Version", apiVersion)

	if cfg.APIToken != "" {
		cli.SetAuthToken(cfg.APIToken)
	}

	return &Client{
		client:   cli,
		pageSize: cfg.PageSize,
		logger:   log,
	}
}

// GetUserData retrieves the profile and the complete repository list for
// username. The two retrievals run concurrently and are joined before
// returning; if either fails the first error wins and the other request is
// cancelled through the shared context.
//
// Error handling:
//   - username has no GitHub account → [ErrUserNotFound]
//   - credential rejected → [ErrUnauthorized] / [ErrForbidden]
//   - any other fault → wrapped transport error
func (c *Client) GetUserData(ctx context.Context, username string) (models.UserData, error) {
	log := logger.FromContext(ctx)

	var profile models.GitHubProfile
	var repositories []models.GitHubRepository

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profile, err = c.getProfile(gctx, username)
		return err
	})
	g.Go(func() error {
		var err error
		repositories, err = c.getRepositories(gctx, username)
		return err
	})

	if err := g.Wait(); err != nil {
		log.Err(err).
			Str("func", "*Client.GetUserData").
			Str("username", username).
			Msg("failed to fetch user data from GitHub")
		return models.UserData{}, err
	}

	return models.UserData{Profile: profile, Repositories: repositories}, nil
}

// getProfile retrieves GET /users/{username}.
func (c *Client) getProfile(ctx context.Context, username string) (models.GitHubProfile, error) {
	var profile models.GitHubProfile

	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&profile).
		Get("/users/" + username)
	if err != nil {
		return models.GitHubProfile{}, fmt.Errorf("profile request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.GitHubProfile{}, err
	}

	return profile, nil
}

// getRepositories retrieves every page of GET /users/{username}/repos.
//
// The first page is fetched synchronously; its Link response header names
// the last page. Remaining pages are fetched concurrently into an
// index-ordered slice so that the aggregate preserves ascending page order
// regardless of completion order. A page that fails to download is logged
// and dropped from the aggregate (best-effort accumulation); only a failure
// of the first request is terminal.
func (c *Client) getRepositories(ctx context.Context, username string) ([]models.GitHubRepository, error) {
	log := logger.FromContext(ctx)

	firstPage, lastPage, err := c.getRepositoryPage(ctx, username, 1)
	if err != nil {
		return nil, err
	}
	if lastPage <= 1 {
		return firstPage, nil
	}

	pages := make([][]models.GitHubRepository, lastPage+1)
	pages[1] = firstPage

	g := new(errgroup.Group)
	for page := 2; page <= lastPage; page++ {
		g.Go(func() error {
			repositories, _, pageErr := c.getRepositoryPage(ctx, username, page)
			if pageErr != nil {
				// Best-effort aggregation: drop the failed page.
				log.Warn().
					Err(pageErr).
					Str("func", "*Client.getRepositories").
					Str("username", username).
					Int("page", page).
					Msg("dropping repository page that failed to download")
				return nil
			}
			pages[page] = repositories
			return nil
		})
	}
	_ = g.Wait()

	var all []models.GitHubRepository
	for _, p := range pages {
		all = append(all, p...)
	}

	return all, nil
}

// getRepositoryPage retrieves a single repositories page and the index of
// the last available page as announced by the Link response header (1 when
// the header is absent).
func (c *Client) getRepositoryPage(ctx context.Context, username string, page int) ([]models.GitHubRepository, int, error) {
	var repositories []models.GitHubRepository

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("per_page", strconv.Itoa(c.pageSize)).
		SetQueryParam("page", strconv.Itoa(page)).
		SetResult(&repositories).
		Get("/users/" + username + "/repos")
	if err != nil {
		return nil, 0, fmt.Errorf("repositories request (page %d): %w", page, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, 0, err
	}

	return repositories, parseLastPage(resp.Header().Get("Link")), nil
}

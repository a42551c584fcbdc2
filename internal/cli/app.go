// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fernando Mashimo

package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fernando-mashimo/github-users-db/internal/logger"
	"github.com/fernando-mashimo/github-users-db/internal/service"
	"github.com/fernando-mashimo/github-users-db/internal/store"
	"github.com/fernando-mashimo/github-users-db/models"
)

var (
	ErrNoCommand      = errors.New("no command provided")
	ErrUnknownCommand = errors.New("unknown command")
	ErrNoUsername     = errors.New("fetch requires exactly one username argument")
)

// App dispatches the command-line subcommands. Global configuration flags
// are consumed before construction; Run receives only the subcommand and
// its arguments.
type App struct {
	services *service.Services
	db       *store.DB

	logger *logger.Logger
	out    io.Writer
}

func NewApp(services *service.Services, db *store.DB, logger *logger.Logger) *App {
	return &App{
		services: services,
		db:       db,
		logger:   logger,
		out:      os.Stdout,
	}
}

// Run executes the subcommand named by the first argument.
func (a *App) Run(ctx context.Context, args []string) error {
	ctx = a.logger.WithContext(ctx)

	if len(args) == 0 {
		a.printUsage()
		return ErrNoCommand
	}

	command, commandArgs := args[0], args[1:]

	switch command {
	case "fetch":
		return a.runFetch(ctx, commandArgs)
	case "list":
		return a.runList(ctx, commandArgs)
	case "migrate":
		return a.runMigrate(ctx)
	case "help":
		a.printUsage()
		return nil
	default:
		a.printUsage()
		return fmt.Errorf("%w: %s", ErrUnknownCommand, command)
	}
}

// runFetch synchronizes one GitHub account into the store and prints the
// synchronized user.
func (a *App) runFetch(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return ErrNoUsername
	}

	user, err := a.services.UserService.Sync(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, renderUser(user))
	return nil
}

// runList prints the stored users passing the optional filters.
func (a *App) runList(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("list", flag.ContinueOnError)
	flags.SetOutput(a.out)

	location := flags.String("location", "", "filter users by location substring")
	languages := flags.String("languages", "", "filter users by programming languages, comma-separated")

	if err := flags.Parse(args); err != nil {
		return err
	}

	filters := models.ListFilters{
		Location:  *location,
		Languages: splitCSV(*languages),
	}

	users, err := a.services.UserService.List(ctx, filters)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, renderUserList(users))
	return nil
}

// runMigrate applies the embedded schema migrations.
func (a *App) runMigrate(ctx context.Context) error {
	if a.db == nil {
		return errors.New("storage is not configured")
	}

	if err := a.db.Migrate(); err != nil {
		return err
	}

	logger.FromContext(ctx).Info().
		Str("func", "*App.runMigrate").
		Msg("migrations applied")

	fmt.Fprintln(a.out, successStyle.Render("migrations applied"))
	return nil
}

func (a *App) printUsage() {
	fmt.Fprintln(a.out, renderUsage())
}

// splitCSV splits a comma-separated flag value, trimming spaces and
// discarding empty items.
func splitCSV(s string) []string {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}

	return items
}

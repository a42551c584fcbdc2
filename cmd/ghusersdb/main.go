package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fernando-mashimo/github-users-db/internal/cli"
	"github.com/fernando-mashimo/github-users-db/internal/config"
	"github.com/fernando-mashimo/github-users-db/internal/github"
	"github.com/fernando-mashimo/github-users-db/internal/logger"
	"github.com/fernando-mashimo/github-users-db/internal/service"
	"github.com/fernando-mashimo/github-users-db/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("ghusersdb")

	cfg, commandArgs, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var db *store.DB
	var services *service.Services

	if commandNeedsStorage(commandArgs) {
		db, err = store.NewConnectPostgres(ctx, cfg.DB, log)
		if err != nil {
			log.Fatal().Err(err).Msg("error connecting to database")
		}
		defer db.Close()

		fetcher := github.NewClient(cfg.GitHub, log)
		services = service.NewServices(fetcher, store.NewUserRepository(db, log), log)
	}

	app := cli.NewApp(services, db, log)
	if err := app.Run(ctx, commandArgs); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// commandNeedsStorage reports whether the invoked subcommand talks to the
// database. help and usage output work without a connection.
func commandNeedsStorage(args []string) bool {
	if len(args) == 0 {
		return false
	}

	switch args[0] {
	case "fetch", "list", "migrate":
		return true
	default:
		return false
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Fprintf(os.Stderr, "Build version: %s\n", buildVersion)
	fmt.Fprintf(os.Stderr, "Build date: %s\n", buildDate)
	fmt.Fprintf(os.Stderr, "Build commit: %s\n", buildCommit)
}

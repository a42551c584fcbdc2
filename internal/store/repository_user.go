// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fernando Mashimo

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fernando-mashimo/github-users-db/internal/logger"
	"github.com/fernando-mashimo/github-users-db/models"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles all reads and writes against the "users", "languages" and
// "user_languages" tables.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, invocation-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// GetUserByExternalID retrieves the user whose external id matches,
// aggregating its language names in the same query. The joins are LEFT
// joins so that a user with no languages is still found.
//
// Error handling:
//   - no matching row → [ErrUserNotFound]
//   - any other driver-level error → wrapped as [ErrExecutingQuery]
func (r *userRepository) GetUserByExternalID(ctx context.Context, externalID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	var user models.User
	var languagesCSV string

	row := r.db.QueryRowContext(ctx, findUserByExternalID, externalID)
	err := row.Scan(
		&user.ID,
		&user.ExternalID,
		&user.Username,
		&user.Name,
		&user.Location,
		&user.Email,
		&user.PageURL,
		&user.AvatarURL,
		&user.Bio,
		&user.CreatedAt,
		&languagesCSV,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "*userRepository.GetUserByExternalID").
			Int64("external_id", externalID).
			Msg("failed to find user by external id")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	user.ProgrammingLanguages = splitLanguages(languagesCSV)
	return user, nil
}

// GetUsersByFilters retrieves every user passing the given filters, each
// with its aggregated language set. Returns an empty slice when nothing
// matches.
func (r *userRepository) GetUsersByFilters(ctx context.Context, filters models.ListFilters) ([]models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindUsersByFiltersQuery(filters)
	if err != nil {
		log.Err(err).
			Str("func", "*userRepository.GetUsersByFilters").
			Msg("failed to build filtered users query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*userRepository.GetUsersByFilters").
			Str("location", filters.Location).
			Int("languages_count", len(filters.Languages)).
			Msg("failed to execute filtered users query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.User, 0, 50)

	for rows.Next() {
		var user models.User
		var languagesCSV string

		scanErr := rows.Scan(
			&user.ID,
			&user.ExternalID,
			&user.Username,
			&user.Name,
			&user.Location,
			&user.Email,
			&user.PageURL,
			&user.AvatarURL,
			&user.Bio,
			&user.CreatedAt,
			&languagesCSV,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "*userRepository.GetUsersByFilters").
				Msg("failed to scan user row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		user.ProgrammingLanguages = splitLanguages(languagesCSV)
		users = append(users, user)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "*userRepository.GetUsersByFilters").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return users, nil
}

// CreateUser inserts the user row plus its deduplicated language
// associations inside one transaction: either everything commits together
// or nothing does.
//
// The INSERT carries ON CONFLICT (external_id) DO NOTHING, so a create that
// races another sync of the same account never raises a duplicate-key
// error; the losing insert simply returns no row and the method reports
// [ErrUserAlreadyExists]. Callers should then take the update path.
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (uuid.UUID, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "*userRepository.CreateUser").
			Int64("external_id", user.ExternalID).
			Msg("failed to begin transaction")
		return uuid.Nil, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	var userID uuid.UUID
	err = tx.QueryRowContext(ctx, createUser,
		uuid.New(),
		user.ExternalID,
		user.Username,
		user.Name,
		user.Location,
		user.Email,
		user.PageURL,
		user.AvatarURL,
		user.Bio,
		user.CreatedAt,
	).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		// conflict on external_id: nothing inserted
		return uuid.Nil, ErrUserAlreadyExists
	}
	if err != nil {
		log.Err(err).
			Str("func", "*userRepository.CreateUser").
			Int64("external_id", user.ExternalID).
			Bool("retryable", r.db.errorClassifier.Classify(err) == Retryable).
			Msg("failed to insert user")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return uuid.Nil, ErrUserAlreadyExists
		default:
			return uuid.Nil, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if err = r.saveLanguages(ctx, tx, userID, user.ProgrammingLanguages); err != nil {
		return uuid.Nil, err
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "*userRepository.CreateUser").
			Int64("external_id", user.ExternalID).
			Msg("failed to commit transaction")
		return uuid.Nil, fmt.Errorf("%w: %w", ErrCommittingTransaction, err)
	}

	log.Info().
		Str("func", "*userRepository.CreateUser").
		Int64("external_id", user.ExternalID).
		Str("username", user.Username).
		Msg("user created")

	return userID, nil
}

// UpdateUser overwrites every profile field of the row matched by external
// id, then replaces all language associations: the existing rows are
// deleted and the deduplicated set is re-inserted. All of it happens in one
// transaction, so no reader ever observes the window between delete and
// re-insert.
//
// It is the caller's responsibility to have confirmed existence; a missing
// row yields [ErrUserNotFound].
func (r *userRepository) UpdateUser(ctx context.Context, user models.User) (uuid.UUID, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "*userRepository.UpdateUser").
			Int64("external_id", user.ExternalID).
			Msg("failed to begin transaction")
		return uuid.Nil, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	var userID uuid.UUID
	err = tx.QueryRowContext(ctx, updateUserByExternalID,
		user.Username,
		user.Name,
		user.Location,
		user.Email,
		user.PageURL,
		user.AvatarURL,
		user.Bio,
		user.CreatedAt,
		user.ExternalID,
	).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "*userRepository.UpdateUser").
			Int64("external_id", user.ExternalID).
			Bool("retryable", r.db.errorClassifier.Classify(err) == Retryable).
			Msg("failed to update user")
		return uuid.Nil, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if _, err = tx.ExecContext(ctx, deleteUserLanguages, userID); err != nil {
		log.Err(err).
			Str("func", "*userRepository.UpdateUser").
			Int64("external_id", user.ExternalID).
			Msg("failed to delete user language associations")
		return uuid.Nil, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err = r.saveLanguages(ctx, tx, userID, user.ProgrammingLanguages); err != nil {
		return uuid.Nil, err
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "*userRepository.UpdateUser").
			Int64("external_id", user.ExternalID).
			Msg("failed to commit transaction")
		return uuid.Nil, fmt.Errorf("%w: %w", ErrCommittingTransaction, err)
	}

	log.Info().
		Str("func", "*userRepository.UpdateUser").
		Int64("external_id", user.ExternalID).
		Str("username", user.Username).
		Msg("user updated")

	return userID, nil
}

// saveLanguages inserts the language dictionary entries and user
// associations for the given user inside the caller's transaction.
//
// Each distinct language takes a conflict-tolerant dictionary upsert:
// INSERT ... ON CONFLICT (name) DO NOTHING RETURNING id, falling back to a
// plain SELECT when the name already exists. Two concurrent syncs inserting
// the same new language therefore never fail or double-insert: exactly one
// insert wins, the other resolves the existing identifier.
func (r *userRepository) saveLanguages(ctx context.Context, tx *sql.Tx, userID uuid.UUID, languages []string) error {
	log := logger.FromContext(ctx)

	for _, language := range dedupLanguages(languages) {
		var languageID uuid.UUID

		err := tx.QueryRowContext(ctx, insertLanguage, uuid.New(), language).Scan(&languageID)
		if errors.Is(err, sql.ErrNoRows) {
			err = tx.QueryRowContext(ctx, findLanguageByName, language).Scan(&languageID)
		}
		if err != nil {
			log.Err(err).
				Str("func", "*userRepository.saveLanguages").
				Str("language", language).
				Msg("failed to upsert language")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		if _, err = tx.ExecContext(ctx, insertUserLanguage, userID, languageID); err != nil {
			log.Err(err).
				Str("func", "*userRepository.saveLanguages").
				Str("language", language).
				Msg("failed to insert user language association")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	return nil
}

// dedupLanguages drops duplicates and empty names, preserving order. The
// normalizer already deduplicates; this keeps the uniqueness invariant
// local to the store as well.
func dedupLanguages(languages []string) []string {
	seen := make(map[string]struct{}, len(languages))
	distinct := make([]string, 0, len(languages))

	for _, language := range languages {
		if language == "" {
			continue
		}
		if _, ok := seen[language]; ok {
			continue
		}
		seen[language] = struct{}{}
		distinct = append(distinct, language)
	}

	return distinct
}

func splitLanguages(csv string) []string {
	if csv == "" {
		return nil
	}
	return strings.Split(csv, ",")
}

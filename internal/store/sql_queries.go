// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fernando Mashimo

package store

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/fernando-mashimo/github-users-db/models"
)

const (
	createUser = `INSERT INTO users (id, external_id, username, name, location, email, page_url, avatar_url, bio, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (external_id) DO NOTHING
		RETURNING id;`

	updateUserByExternalID = `UPDATE users SET
			username   = $1,
			name       = $2,
			location   = $3,
			email      = $4,
			page_url   = $5,
			avatar_url = $6,
			bio        = $7,
			created_at = $8
		WHERE external_id = $9
		RETURNING id;`

	deleteUserLanguages = `DELETE FROM user_languages
		WHERE user_id = $1;`

	// Dictionary upsert: on a name conflict nothing is inserted and no row
	// is returned; the caller falls back to findLanguageByName. Never
	// check-then-insert, which races under concurrent syncs.
	insertLanguage = `INSERT INTO languages (id, name)
		VALUES ($1, $2)
		ON CONFLICT (name) DO NOTHING
		RETURNING id;`

	findLanguageByName = `SELECT id FROM languages
		WHERE name = $1;`

	insertUserLanguage = `INSERT INTO user_languages (user_id, language_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING;`

	findUserByExternalID = `SELECT
			u.id,
			u.external_id,
			u.username,
			u.name,
			u.location,
			u.email,
			u.page_url,
			u.avatar_url,
			u.bio,
			u.created_at,
			array_to_string(array_remove(array_agg(l.name), NULL), ',') AS programming_languages
		FROM users u
		LEFT JOIN user_languages ul ON ul.user_id = u.id
		LEFT JOIN languages l ON l.id = ul.language_id
		WHERE u.external_id = $1
		GROUP BY u.id;`
)

// userColumns are the selected expressions shared by all user listings.
// Languages are aggregated to a comma-separated string because database/sql
// has no portable array scan; language names never contain commas.
var userColumns = []string{
	"u.id",
	"u.external_id",
	"u.username",
	"u.name",
	"u.location",
	"u.email",
	"u.page_url",
	"u.avatar_url",
	"u.bio",
	"u.created_at",
	"array_to_string(array_remove(array_agg(l.name), NULL), ',') AS programming_languages",
}

// buildFindUsersByFiltersQuery builds the filtered listing dynamically:
// every provided filter adds one conjunct, an absent filter adds none.
//
// Filter semantics: a user passes the location filter when the stored
// location case-insensitively contains the given substring, and passes the
// language filter when at least one stored language case-insensitively
// equals one of the given names. A user is returned only when it passes
// both.
func buildFindUsersByFiltersQuery(filters models.ListFilters) (string, []any, error) {
	builder := sq.Select(userColumns...).
		From("users u").
		LeftJoin("user_languages ul ON ul.user_id = u.id").
		LeftJoin("languages l ON l.id = ul.language_id").
		GroupBy("u.id").
		OrderBy("u.username").
		PlaceholderFormat(sq.Dollar)

	if filters.Location != "" {
		builder = builder.Where(
			sq.Like{"LOWER(u.location)": "%" + strings.ToLower(filters.Location) + "%"},
		)
	}

	if len(filters.Languages) > 0 {
		lowered := make([]string, 0, len(filters.Languages))
		for _, language := range filters.Languages {
			lowered = append(lowered, strings.ToLower(language))
		}

		builder = builder.Where(sq.Expr(
			`EXISTS (
				SELECT 1 FROM user_languages ul2
				JOIN languages l2 ON l2.id = ul2.language_id
				WHERE ul2.user_id = u.id AND LOWER(l2.name) = ANY(?)
			)`,
			lowered,
		))
	}

	return builder.ToSql()
}

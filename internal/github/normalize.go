// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fernando Mashimo

package github

import "github.com/fernando-mashimo/github-users-db/models"

// NormalizeUser maps the raw API payloads onto the domain [models.User].
// It is a pure transformation: profile fields carry over 1:1, with fields
// GitHub reports as null (location in particular) becoming empty strings,
// and the language set derived from the repository list.
func NormalizeUser(data models.UserData) models.User {
	return models.User{
		ExternalID:           data.Profile.ID,
		Username:             data.Profile.Login,
		Name:                 deref(data.Profile.Name),
		Location:             deref(data.Profile.Location),
		Email:                deref(data.Profile.Email),
		PageURL:              data.Profile.HTMLURL,
		AvatarURL:            data.Profile.AvatarURL,
		Bio:                  deref(data.Profile.Bio),
		CreatedAt:            data.Profile.CreatedAt,
		ProgrammingLanguages: distinctLanguages(data.Repositories),
	}
}

// distinctLanguages collects each repository's language tag, discarding
// empty or absent tags and duplicates. First-seen order is kept for stable
// display; storage treats the result as a set.
func distinctLanguages(repositories []models.GitHubRepository) []string {
	seen := make(map[string]struct{}, len(repositories))
	languages := make([]string, 0, len(repositories))

	for _, repo := range repositories {
		lang := deref(repo.Language)
		if lang == "" {
			continue
		}
		if _, ok := seen[lang]; ok {
			continue
		}
		seen[lang] = struct{}{}
		languages = append(languages, lang)
	}

	return languages
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

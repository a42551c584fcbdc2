package models

import "github.com/google/uuid"

// User represents a GitHub account synchronized into the local database.
// ExternalID is the provider's permanent numeric identifier and is the only
// stable sync key; the username can change on the provider side at any time.
type User struct {
	// ID is the internal unique identifier of the user row.
	// It is not exposed via JSON and is used only at the persistence layer.
	ID uuid.UUID `json:"-"`

	// ExternalID is GitHub's immutable numeric account identifier.
	// At most one stored user exists per ExternalID.
	ExternalID int64 `json:"external_id"`

	// Username is the GitHub login the user was last synced under.
	Username string `json:"username"`

	// Name is the display name of the user. May be empty.
	Name string `json:"name"`

	// Location is the free-form location string. May be empty.
	Location string `json:"location"`

	// Email is the public profile e-mail. May be empty.
	Email string `json:"email"`

	// PageURL is the user's GitHub profile page URL.
	PageURL string `json:"page_url"`

	// AvatarURL is the user's avatar image URL.
	AvatarURL string `json:"avatar_url"`

	// Bio is the profile biography text. May be empty.
	Bio string `json:"bio"`

	// CreatedAt is the account creation timestamp as reported by GitHub.
	// It is stored verbatim; it is never the time of synchronization.
	CreatedAt string `json:"created_at"`

	// ProgrammingLanguages is the set of distinct non-empty languages
	// collected from the user's repositories. Order is not significant.
	ProgrammingLanguages []string `json:"programming_languages"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Language is an entry of the global language dictionary. Language rows are
// shared between users, created lazily and never deleted or renamed.
type Language struct {
	ID   uuid.UUID `json:"-"`
	Name string    `json:"name"`
}

// TableName returns the name of the database table
// associated with the Language model.
func (l Language) TableName() string {
	return "languages"
}

// ListFilters narrows a stored-user listing. A zero-value field means
// "no constraint": an empty Location matches every location, an empty
// Languages slice matches every language set.
type ListFilters struct {
	// Location is matched as a case-insensitive substring of the stored
	// location.
	Location string `json:"location,omitempty"`

	// Languages match when at least one stored language equals (case
	// insensitively) one of the given names.
	Languages []string `json:"languages,omitempty"`
}

// Empty reports whether no filter constraint was provided at all.
func (f ListFilters) Empty() bool {
	return f.Location == "" && len(f.Languages) == 0
}

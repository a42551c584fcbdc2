package models

// GitHubProfile is the raw profile payload returned by GET /users/{username}.
// Fields GitHub reports as null are pointers so that absence survives
// decoding; normalization maps them to empty strings.
type GitHubProfile struct {
	ID        int64   `json:"id"`
	Login     string  `json:"login"`
	Name      *string `json:"name"`
	Location  *string `json:"location"`
	Email     *string `json:"email"`
	HTMLURL   string  `json:"html_url"`
	AvatarURL string  `json:"avatar_url"`
	Bio       *string `json:"bio"`
	CreatedAt string  `json:"created_at"`
}

// GitHubRepository is the single field of interest from the repository
// objects returned by GET /users/{username}/repos. Language is null for
// repositories GitHub could not classify.
type GitHubRepository struct {
	Language *string `json:"language"`
}

// UserData aggregates the two remote retrievals for one username: the
// profile and the complete repository list across all pages.
type UserData struct {
	Profile      GitHubProfile
	Repositories []GitHubRepository
}

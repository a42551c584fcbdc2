package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fernando-mashimo/github-users-db/models"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	labelStyle   = lipgloss.NewStyle().Faint(true)
	successStyle = lipgloss.NewStyle().Bold(true)
	cardStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// renderUser renders one user as a bordered card.
func renderUser(user models.User) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(user.Username))
	b.WriteString("\n")

	writeField(&b, "name", user.Name)
	writeField(&b, "location", user.Location)
	writeField(&b, "email", user.Email)
	writeField(&b, "url", user.PageURL)
	writeField(&b, "bio", user.Bio)
	writeField(&b, "member since", user.CreatedAt)
	writeField(&b, "languages", strings.Join(user.ProgrammingLanguages, ", "))

	return cardStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// renderUserList renders a compact one-line-per-user listing with a
// trailing match count.
func renderUserList(users []models.User) string {
	if len(users) == 0 {
		return labelStyle.Render("no users found")
	}

	var b strings.Builder
	for _, user := range users {
		b.WriteString(titleStyle.Render(user.Username))
		if user.Location != "" {
			b.WriteString(labelStyle.Render(" · " + user.Location))
		}
		if len(user.ProgrammingLanguages) > 0 {
			b.WriteString(" [" + strings.Join(user.ProgrammingLanguages, ", ") + "]")
		}
		b.WriteString("\n")
	}

	b.WriteString(labelStyle.Render(fmt.Sprintf("%d user(s)", len(users))))

	return b.String()
}

func renderUsage() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("ghusersdb") + " - sync GitHub users into PostgreSQL\n\n")
	b.WriteString("usage:\n")
	b.WriteString("  ghusersdb [flags] fetch <username>\n")
	b.WriteString("  ghusersdb [flags] list [-location <substring>] [-languages <csv>]\n")
	b.WriteString("  ghusersdb [flags] migrate\n")
	b.WriteString("  ghusersdb help\n")

	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "%s %s\n", labelStyle.Render(label+":"), value)
}

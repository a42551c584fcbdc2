package github

import (
	"net/url"
	"strconv"
	"strings"
)

// parseLastPage extracts the last page number announced by a Link response
// header of the form
//
//	<https://api.github.com/user/1/repos?per_page=100&page=2>; rel="next",
//	<https://api.github.com/user/1/repos?per_page=100&page=34>; rel="last"
//
// Returns 1 when the header is absent, carries no rel="last" entry, or
// cannot be parsed — the response in hand is then the only page.
func parseLastPage(linkHeader string) int {
	if linkHeader == "" {
		return 1
	}

	for _, part := range strings.Split(linkHeader, ",") {
		section := strings.Split(part, ";")
		if len(section) < 2 {
			continue
		}

		isLast := false
		for _, attr := range section[1:] {
			if strings.TrimSpace(attr) == `rel="last"` {
				isLast = true
				break
			}
		}
		if !isLast {
			continue
		}

		rawURL := strings.TrimSpace(section[0])
		rawURL = strings.TrimPrefix(rawURL, "<")
		rawURL = strings.TrimSuffix(rawURL, ">")

		u, err := url.Parse(rawURL)
		if err != nil {
			return 1
		}

		page, err := strconv.Atoi(u.Query().Get("page"))
		if err != nil || page < 1 {
			return 1
		}

		return page
	}

	return 1
}

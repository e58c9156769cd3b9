package domain

import (
	"fmt"
	"strings"
)

const (
	// MaxListedIssues bounds the rendered preview; the header still reports
	// the true total from the tracker.
	MaxListedIssues = 25
	// MaxResponseLength is the downstream message-size limit.
	MaxResponseLength = 3800

	noResultsLine = "No matching issues found."
)

// FormatSearchResult renders a search result for delivery: a header with
// the true total, then at most MaxListedIssues lines, truncated as a whole
// to MaxResponseLength.
func FormatSearchResult(title string, result *SearchResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s — Total: %d", title, result.Total)

	if len(result.Issues) == 0 {
		b.WriteString("\n" + noResultsLine)
		return Truncate(b.String(), MaxResponseLength)
	}

	issues := result.Issues
	if len(issues) > MaxListedIssues {
		issues = issues[:MaxListedIssues]
	}

	for _, issue := range issues {
		fmt.Fprintf(&b, "\n<%s|%s> — %s — %s — %s",
			issue.Link, issue.Key, issue.Type, issue.Status, issue.Summary)
	}

	return Truncate(b.String(), MaxResponseLength)
}

func Truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}

	return text[:limit]
}

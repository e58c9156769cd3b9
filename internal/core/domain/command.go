package domain

import (
	"regexp"
	"strings"
)

// The marker must be at the start of the text or preceded by whitespace,
// so URL fragments and mid-word hashes never match.
var freeTextPattern = regexp.MustCompile(`(?:^|\s)#(\w+)`)

// ParseFreeText extracts the first command token from a free-form message.
// A message without a marker is a no-op, not an error.
func ParseFreeText(text string) (string, bool) {
	match := freeTextPattern.FindStringSubmatch(text)
	if match == nil {
		return "", false
	}

	return strings.ToLower(match[1]), true
}

// ParseSlashCommand normalizes an already-delimited command field.
func ParseSlashCommand(command string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(command), "/"))
}

package utils

import (
	"regexp"
	"strings"
)

var nonSlugChars = regexp.MustCompile(`[^a-zA-Z0-9-]`)

// Slugify joins the space-separated words of title with hyphens, lowercases
// the result and drops anything outside [a-zA-Z0-9-]. Runs of spaces become
// runs of hyphens.
func Slugify(title string) string {
	slug := strings.ToLower(strings.Join(strings.Split(title, " "), "-"))
	return nonSlugChars.ReplaceAllString(slug, "")
}

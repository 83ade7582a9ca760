package story

import (
	"regexp"
	"strings"
)

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9-]`)
	hyphenRuns   = regexp.MustCompile(`-+`)
)

// Slugify converts a human-authored name into a stable folder/record key:
// lowercase, non-alphanumeric runs become single hyphens, no leading or
// trailing hyphens. Pure and idempotent: Slugify(Slugify(x)) == Slugify(x).
func Slugify(text string) string {
	s := strings.ToLower(text)
	s = nonSlugChars.ReplaceAllString(s, "-")
	s = hyphenRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

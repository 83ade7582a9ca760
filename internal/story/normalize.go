package story

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// Pandoc emits hard line breaks as a trailing backslash. Continuations
	// join into a single space before whitespace collapsing.
	backslashNewline  = regexp.MustCompile(`\\\s*\n`)
	backslashRun      = regexp.MustCompile(`\\\s+`)
	trailingBackslash = regexp.MustCompile(`\\\s*$`)
	whitespaceRun     = regexp.MustCompile(`\s+`)

	storySuffix = regexp.MustCompile(`-story$`)
)

// NormalizeText flattens a raw markdown span into a single trimmed line:
// backslash line continuations become spaces, a leftover trailing backslash is
// dropped, and all whitespace runs (including newlines) collapse to one space.
func NormalizeText(s string) string {
	s = backslashNewline.ReplaceAllString(s, " ")
	s = backslashRun.ReplaceAllString(s, " ")
	s = trailingBackslash.ReplaceAllString(s, "")
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// TitleFromFolder derives a display title from a story folder name or slug:
// a trailing "-story" suffix is stripped, hyphens become spaces, and each word
// is title-cased. "adult-train-ride-story" -> "Adult Train Ride".
func TitleFromFolder(name string) string {
	s := storySuffix.ReplaceAllString(name, "")
	s = strings.ReplaceAll(s, "-", " ")
	return cases.Title(language.English).String(s)
}

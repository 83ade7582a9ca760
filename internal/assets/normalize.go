package assets

import (
	"fmt"
	"regexp"
	"strings"
)

// legacyPagePattern matches old page naming: Pg1.png, pg 1.png, Pg1 Extra.png.
// Groups: page number, optional suffix.
var legacyPagePattern = regexp.MustCompile(`^[Pp]g\s*(\d+)(.*)\.png$`)

// NormalizePageName converts a legacy page filename to the standard
// "PageN.png" / "PageN Suffix.png" form. Returns false when the name is not
// on the legacy pattern.
func NormalizePageName(filename string) (string, bool) {
	m := legacyPagePattern.FindStringSubmatch(filename)
	if m == nil {
		return "", false
	}

	number := m[1]
	suffix := strings.TrimSpace(m[2])
	if suffix != "" {
		return fmt.Sprintf("Page%s %s.png", number, suffix), true
	}
	return fmt.Sprintf("Page%s.png", number), true
}

// NormalizeCoverName maps any PNG whose name contains "cover"
// (case-insensitive) to the standard "Cover.png". Returns false when the name
// is not a cover variant or is already standard.
func NormalizeCoverName(filename string) (string, bool) {
	lower := strings.ToLower(filename)
	if !strings.HasSuffix(lower, ".png") || !strings.Contains(lower, "cover") {
		return "", false
	}
	if filename == "Cover.png" {
		return "", false
	}
	return "Cover.png", true
}

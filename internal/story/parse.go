package story

import (
	"regexp"
	"sort"
	"strings"

	"github.com/fablehouse/storypipe/internal/errors"
)

// titleInlinePattern matches an emphasized title marker like "***Title: My Story***".
var titleInlinePattern = regexp.MustCompile(`\*\*\*Title:\s*(.+?)\*\*\*`)

// titleLinePattern matches a plain "Title: My Story" line anchored at line start.
var titleLinePattern = regexp.MustCompile(`(?m)^Title:\s*(.+?)$`)

// tagsLinePattern captures everything between the tags label and the next newline.
var tagsLinePattern = regexp.MustCompile(`\*\*Tags:\*\*\s*(.+?)(?:\n|$)`)

// Parse turns one loosely-structured story document into a Record. The
// fallbackName (normally the story folder name) supplies the title when the
// document carries no title marker; Parse fails with a MISSING_TITLE error
// only when both are absent.
func Parse(markup, fallbackName string) (*Record, error) {
	title, source, err := extractTitle(markup, fallbackName)
	if err != nil {
		return nil, err
	}

	spans := pageSpans(markup)
	pages := make([]Page, 0, len(spans))
	for _, sp := range spans {
		content, coaching := splitCoaching(sp.body)
		pages = append(pages, Page{
			Number:   sp.number,
			Content:  NormalizeText(content),
			Coaching: NormalizeText(coaching),
		})
	}

	// Re-sort by numeric label; segmentation order is document order.
	// Stable so duplicate numbers keep their document order.
	sort.SliceStable(pages, func(i, j int) bool {
		return pages[i].Number < pages[j].Number
	})

	return &Record{
		Title:       title,
		TitleSource: source,
		Pages:       pages,
		Tags:        extractTags(markup),
	}, nil
}

// extractTitle tries the title rules in order: emphasized inline marker, plain
// title line, then a title derived from the fallback name. First hit wins.
func extractTitle(markup, fallbackName string) (string, TitleSource, error) {
	if m := titleInlinePattern.FindStringSubmatch(markup); m != nil {
		return strings.TrimSpace(m[1]), TitleSourceDocument, nil
	}

	if m := titleLinePattern.FindStringSubmatch(markup); m != nil {
		return strings.TrimSpace(m[1]), TitleSourceDocument, nil
	}

	if fallbackName != "" {
		if title := TitleFromFolder(fallbackName); title != "" {
			return title, TitleSourceFolderName, nil
		}
	}

	return "", "", errors.NewMissingTitle()
}

// extractTags splits the tags line on commas and trims each piece. A missing
// label yields an empty list, not an error. Duplicates are preserved.
func extractTags(markup string) []string {
	tags := []string{}

	m := tagsLinePattern.FindStringSubmatch(markup)
	if m == nil {
		return tags
	}

	for _, piece := range strings.Split(m[1], ",") {
		piece = strings.TrimSpace(piece)
		if piece != "" {
			tags = append(tags, piece)
		}
	}
	return tags
}

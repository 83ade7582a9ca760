package story

import (
	"regexp"
	"strconv"
)

// pageMarkerPattern matches a bold page label like "**Page 3**".
// Groups: full match, page number.
var pageMarkerPattern = regexp.MustCompile(`\*\*Page (\d+)\*\*`)

// tagsMarkerPattern matches the bold tags label that terminates page content.
var tagsMarkerPattern = regexp.MustCompile(`\*\*Tags:\*\*`)

// coachingLabelPattern matches the coaching note label inside a page span.
// \s* tolerates an inserted space and the label wrapping across lines.
var coachingLabelPattern = regexp.MustCompile(`\*\*Coaching\s*Note:\*\*`)

// pageMarker is one located "**Page N**" label.
type pageMarker struct {
	number int
	start  int // byte offset of the opening **
	end    int // byte offset just past the closing **
}

// rawPage is one page's unprocessed text span.
type rawPage struct {
	number int
	body   string
}

// scanPageMarkers locates every page label in document order.
// Duplicate page numbers are kept; the resulting order for duplicates is
// undefined downstream (the source never disambiguated them).
func scanPageMarkers(text string) []pageMarker {
	matches := pageMarkerPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}

	markers := make([]pageMarker, len(matches))
	for i, match := range matches {
		// match indices: [fullStart, fullEnd, numStart, numEnd]
		n, _ := strconv.Atoi(text[match[2]:match[3]])
		markers[i] = pageMarker{number: n, start: match[0], end: match[1]}
	}
	return markers
}

// pageSpans slices the document into per-page text spans. Each span runs from
// just after its marker to the next page marker, the tags marker, or end of
// document, whichever comes first. Segmentation is greedy and non-overlapping,
// so markers must appear in document order for correct slicing.
func pageSpans(text string) []rawPage {
	markers := scanPageMarkers(text)
	if len(markers) == 0 {
		return nil
	}

	tagsStart := -1
	if loc := tagsMarkerPattern.FindStringIndex(text); loc != nil {
		tagsStart = loc[0]
	}

	spans := make([]rawPage, len(markers))
	for i, m := range markers {
		end := len(text)
		if i+1 < len(markers) {
			end = markers[i+1].start
		}
		if tagsStart >= m.end && tagsStart < end {
			end = tagsStart
		}
		spans[i] = rawPage{number: m.number, body: text[m.end:end]}
	}
	return spans
}

// splitCoaching separates a page span into narrative content and coaching
// text. The coaching span runs from just after the label to the first
// sentence-terminal punctuation (optionally followed by a closing quote); the
// scan is bounded by the page span, so a note that never terminates leaves the
// span untouched with empty coaching.
func splitCoaching(span string) (content, coaching string) {
	loc := coachingLabelPattern.FindStringIndex(span)
	if loc == nil {
		return span, ""
	}

	rest := span[loc[1]:]
	end := sentenceEnd(rest)
	if end < 0 {
		return span, ""
	}

	return span[:loc[0]] + rest[end:], rest[:end]
}

// sentenceEnd returns the offset just past the first sentence terminator in s
// (including a directly following closing quote), or -1 if none exists.
func sentenceEnd(s string) int {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '.', '!', '?':
			j := i + 1
			if j < len(s) && (s[j] == '"' || s[j] == '\'') {
				j++
			}
			return j
		}
	}
	return -1
}

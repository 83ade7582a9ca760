package story

import (
	"strings"
	"testing"
)

func TestScanPageMarkers(t *testing.T) {
	text := "intro\n**Page 1**\nfirst\n**Page 2**\nsecond\n"

	markers := scanPageMarkers(text)
	if len(markers) != 2 {
		t.Fatalf("expected 2 markers, got %d", len(markers))
	}
	if markers[0].number != 1 || markers[1].number != 2 {
		t.Errorf("marker numbers = %d, %d, want 1, 2", markers[0].number, markers[1].number)
	}
	if markers[0].start >= markers[0].end {
		t.Errorf("marker offsets not ordered: start %d end %d", markers[0].start, markers[0].end)
	}
	if text[markers[0].start:markers[0].end] != "**Page 1**" {
		t.Errorf("marker slice = %q, want the full label", text[markers[0].start:markers[0].end])
	}
}

func TestScanPageMarkersNone(t *testing.T) {
	if markers := scanPageMarkers("no pages here"); markers != nil {
		t.Errorf("expected nil, got %v", markers)
	}
}

func TestPageSpans(t *testing.T) {
	text := "**Page 1**\nfirst span\n**Page 2**\nsecond span\n**Tags:** fun\n"

	spans := pageSpans(text)
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}

	if !strings.Contains(spans[0].body, "first span") {
		t.Errorf("span 1 = %q, want first span text", spans[0].body)
	}
	if strings.Contains(spans[0].body, "second span") {
		t.Errorf("span 1 leaked into span 2: %q", spans[0].body)
	}
	if strings.Contains(spans[1].body, "Tags:") {
		t.Errorf("span 2 should stop before tags marker: %q", spans[1].body)
	}
}

func TestPageSpansLastPageRunsToEOF(t *testing.T) {
	text := "**Page 1**\nonly page text"

	spans := pageSpans(text)
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if !strings.Contains(spans[0].body, "only page text") {
		t.Errorf("span = %q, want text up to EOF", spans[0].body)
	}
}

func TestPageSpansDuplicateNumbersKept(t *testing.T) {
	text := "**Page 1**\nfirst occurrence\n**Page 1**\nsecond occurrence\n"

	spans := pageSpans(text)
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans for duplicate markers, got %d", len(spans))
	}
	if spans[0].number != 1 || spans[1].number != 1 {
		t.Errorf("both spans should carry number 1, got %d and %d", spans[0].number, spans[1].number)
	}
}

func TestSplitCoaching(t *testing.T) {
	span := "The train pulled away.\n**Coaching Note:** Be gentle and encouraging.\nIt was a long ride."

	content, coaching := splitCoaching(span)
	if got := strings.TrimSpace(coaching); got != "Be gentle and encouraging." {
		t.Errorf("coaching = %q, want the labeled sentence", got)
	}
	if strings.Contains(content, "Be gentle") {
		t.Errorf("content still contains coaching text: %q", content)
	}
	if strings.Contains(content, "Coaching Note") {
		t.Errorf("content still contains the label: %q", content)
	}
	if !strings.Contains(content, "The train pulled away.") {
		t.Errorf("content lost narrative before the note: %q", content)
	}
	if !strings.Contains(content, "It was a long ride.") {
		t.Errorf("content lost narrative after the note: %q", content)
	}
}

func TestSplitCoachingLabelWrappedAcrossLines(t *testing.T) {
	span := "text\n**Coaching\nNote:** Stay calm!\nmore"

	_, coaching := splitCoaching(span)
	if got := strings.TrimSpace(coaching); got != "Stay calm!" {
		t.Errorf("coaching = %q, want wrapped label handled", got)
	}
}

func TestSplitCoachingClosingQuote(t *testing.T) {
	span := `**Coaching Note:** Ask "what happens next?" after reading.`

	_, coaching := splitCoaching(span)
	if got := strings.TrimSpace(coaching); got != `Ask "what happens next?"` {
		t.Errorf("coaching = %q, want quote included after terminator", got)
	}
}

func TestSplitCoachingNoLabel(t *testing.T) {
	span := "just narrative text"

	content, coaching := splitCoaching(span)
	if coaching != "" {
		t.Errorf("coaching = %q, want empty", coaching)
	}
	if content != span {
		t.Errorf("content = %q, want untouched span", content)
	}
}

func TestSplitCoachingUnterminatedNote(t *testing.T) {
	// No sentence-terminal punctuation before the span ends: the scan is
	// bounded and the span stays untouched.
	span := "**Coaching Note:** this note never ends"

	content, coaching := splitCoaching(span)
	if coaching != "" {
		t.Errorf("coaching = %q, want empty for unterminated note", coaching)
	}
	if content != span {
		t.Errorf("content = %q, want untouched span", content)
	}
}

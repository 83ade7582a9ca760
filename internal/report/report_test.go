package report

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeStoryJSON(t *testing.T, root, slug, content string) {
	t.Helper()
	dir := filepath.Join(root, slug)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "story.json"), []byte(content), 0o644))
}

func TestGenerate(t *testing.T) {
	root := t.TempDir()
	writeStoryJSON(t, root, "beach-day", `{
		"title": "Beach Day",
		"title_source": "document",
		"pages": [
			{"number": 1, "content": "We went to the **beach**.", "coaching": "Ask about the waves."},
			{"number": 2, "content": "The sun was warm.", "coaching": ""}
		],
		"tags": ["fun", "family"]
	}`)
	writeStoryJSON(t, root, "adult-train-ride", `{
		"title": "Adult Train Ride",
		"title_source": "folder_name",
		"pages": [{"number": 1, "content": "All aboard.", "coaching": ""}],
		"tags": []
	}`)
	require.NoError(t, os.WriteFile(
		filepath.Join(root, "beach-day", "manifest.json"),
		[]byte(`{"name":"Beach Day","slug":"beach-day","source_document":"Beach.docx","cover":"cover.webp","page_count":2,"processed_at":"2026-08-01T10:00:00Z"}`),
		0o644))

	outPath := filepath.Join(root, "report.html")
	count, err := Generate(root, outPath, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	raw, err := os.ReadFile(outPath)
	require.NoError(t, err)
	html := string(raw)

	assert.Contains(t, html, "Beach Day")
	assert.Contains(t, html, "Adult Train Ride")
	// Markdown emphasis rendered to HTML.
	assert.Contains(t, html, "<strong>beach</strong>")
	assert.Contains(t, html, "Ask about the waves.")
	assert.Contains(t, html, "fun, family")
	assert.Contains(t, html, "2026-08-01T10:00:00Z")
	// Alphabetical by slug.
	assert.Less(t, strings.Index(html, "Adult Train Ride"), strings.Index(html, "Beach Day"))
}

func TestGenerateSkipsFoldersWithoutStoryJSON(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "half-done"), 0o755))
	writeStoryJSON(t, root, "beach-day", `{"title":"Beach Day","title_source":"document","pages":[],"tags":[]}`)

	outPath := filepath.Join(root, "report.html")
	count, err := Generate(root, outPath, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestGenerateEmptyRoot(t *testing.T) {
	root := t.TempDir()
	outPath := filepath.Join(root, "report.html")
	count, err := Generate(root, outPath, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	raw, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "No processed stories found.")
}

func TestGenerateMissingRoot(t *testing.T) {
	_, err := Generate(filepath.Join(t.TempDir(), "nope"), "out.html", quietLogger())
	require.Error(t, err)
}

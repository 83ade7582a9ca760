package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fablehouse/storypipe/internal/story"
)

func writeProcessedStory(t *testing.T, root, slug, markdown string) {
	t.Helper()
	dir := filepath.Join(root, slug)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "story.md"), []byte(markdown), 0o644))
}

func TestParseAllWritesStoryJSON(t *testing.T) {
	root := t.TempDir()
	writeProcessedStory(t, root, "sample-story", sampleMarkdown)

	summary, err := ParseAll(root, quietLogger())
	require.NoError(t, err)
	require.Equal(t, Summary{Total: 1, Succeeded: 1}, summary)

	data, err := os.ReadFile(filepath.Join(root, "sample-story", "story.json"))
	require.NoError(t, err)

	var rec story.Record
	require.NoError(t, json.Unmarshal(data, &rec))
	require.Equal(t, "Sample Story", rec.Title)
	require.Equal(t, story.TitleSourceDocument, rec.TitleSource)
	require.Len(t, rec.Pages, 1)
	require.Equal(t, []string{"fun"}, rec.Tags)
}

func TestParseAllFallbackTitle(t *testing.T) {
	root := t.TempDir()
	writeProcessedStory(t, root, "adult-train-ride-story", "**Page 1**\ntext\n")

	summary, err := ParseAll(root, quietLogger())
	require.NoError(t, err)
	require.Equal(t, 1, summary.Succeeded)

	data, err := os.ReadFile(filepath.Join(root, "adult-train-ride-story", "story.json"))
	require.NoError(t, err)

	var rec story.Record
	require.NoError(t, json.Unmarshal(data, &rec))
	require.Equal(t, "Adult Train Ride", rec.Title)
	require.Equal(t, story.TitleSourceFolderName, rec.TitleSource)
}

func TestParseAllMissingMarkdownFails(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty-story"), 0o755))
	writeProcessedStory(t, root, "good-story", sampleMarkdown)

	summary, err := ParseAll(root, quietLogger())
	require.NoError(t, err)
	require.Equal(t, Summary{Total: 2, Succeeded: 1, Failed: 1}, summary)

	_, statErr := os.Stat(filepath.Join(root, "empty-story", "story.json"))
	require.True(t, os.IsNotExist(statErr))
}

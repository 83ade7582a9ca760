package batch

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fablehouse/storypipe/internal/assets"
	"github.com/fablehouse/storypipe/internal/errors"
	"github.com/fablehouse/storypipe/internal/story"
)

// ParseAll converts every story.md under outputRoot into a structured
// story.json, using each folder's name as the title fallback. Per-story
// failures are logged and counted; the walk never aborts early.
func ParseAll(outputRoot string, logger *slog.Logger) (Summary, error) {
	dirs, err := assets.StoryDirs(outputRoot)
	if err != nil {
		return Summary{}, fmt.Errorf("scan output root %s: %w", outputRoot, err)
	}

	summary := Summary{Total: len(dirs)}
	for _, dir := range dirs {
		slug := filepath.Base(dir)
		if err := parseStory(dir, slug); err != nil {
			logger.Error("parse failed", "slug", slug, "error", err)
			summary.Failed++
			continue
		}
		summary.Succeeded++
		logger.Info("parsed", "slug", slug)
	}

	logger.Info("parse run complete",
		"total", summary.Total,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
	)
	return summary, nil
}

func parseStory(dir, slug string) error {
	markdown, err := os.ReadFile(filepath.Join(dir, "story.md"))
	if err != nil {
		return errors.NewMissingAsset(slug, "story.md")
	}

	rec, err := story.Parse(string(markdown), slug)
	if err != nil {
		return errors.NewParseFailed(slug, err)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return errors.NewInternal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "story.json"), data, 0o644); err != nil {
		return errors.NewPersistence(err)
	}
	return nil
}

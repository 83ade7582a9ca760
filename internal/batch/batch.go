// Package batch drives the story conversion pipeline: it iterates story
// folders, consults the progress ledger, invokes the external converters, and
// writes a per-story manifest. Processing is strictly sequential; one story's
// failure never aborts the batch.
package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/fablehouse/storypipe/internal/assets"
	"github.com/fablehouse/storypipe/internal/config"
	"github.com/fablehouse/storypipe/internal/convert"
	"github.com/fablehouse/storypipe/internal/errors"
	"github.com/fablehouse/storypipe/internal/ledger"
	"github.com/fablehouse/storypipe/internal/story"
)

// Summary aggregates the outcome of one batch run. Skipped stories count as
// succeeded: a slug the ledger already handled is not reprocessed.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	Skipped   int
}

// Manifest is the per-story metadata written alongside converted assets.
type Manifest struct {
	Name           string `json:"name"`
	Slug           string `json:"slug"`
	SourceDocument string `json:"source_document"`
	Cover          string `json:"cover"`
	PageCount      int    `json:"page_count"`
	ProcessedAt    string `json:"processed_at"`
}

// Processor runs the batch pipeline against one workspace.
type Processor struct {
	cfg    *config.Config
	ledger *ledger.Ledger
	docs   convert.DocumentConverter
	images convert.ImageConverter
	logger *slog.Logger
	lock   *flock.Flock
}

// New constructs a Processor. The converters are injectable so the driver can
// be exercised without pandoc or cwebp installed.
func New(cfg *config.Config, led *ledger.Ledger, docs convert.DocumentConverter, images convert.ImageConverter, logger *slog.Logger) *Processor {
	return &Processor{
		cfg:    cfg,
		ledger: led,
		docs:   docs,
		images: images,
		logger: logger,
		lock:   flock.New(lockPath(cfg)),
	}
}

func lockPath(cfg *config.Config) string {
	return filepath.Join(cfg.LogRoot, "storypipe.lock")
}

// ProcessAll processes every immediate subdirectory of the source root in
// lexicographic order. Ledger persistence errors abort the run; everything
// else is accounted per story. The returned error is nil even when individual
// stories failed; callers decide the exit code from the Summary.
func (p *Processor) ProcessAll(ctx context.Context) (Summary, error) {
	locked, err := p.lock.TryLock()
	if err != nil {
		return Summary{}, fmt.Errorf("acquire batch lock: %w", err)
	}
	if !locked {
		return Summary{}, fmt.Errorf("another batch run is already in progress (lock %s)", lockPath(p.cfg))
	}
	defer p.lock.Unlock()

	dirs, err := assets.StoryDirs(p.cfg.SourceRoot)
	if err != nil {
		return Summary{}, fmt.Errorf("scan source root %s: %w", p.cfg.SourceRoot, err)
	}

	summary := Summary{Total: len(dirs)}
	p.logger.Info("starting batch run", "source", p.cfg.SourceRoot, "stories", len(dirs))

	if err := p.ledger.SetTotalSeen(len(dirs)); err != nil {
		return summary, errors.NewPersistence(err)
	}

	for _, dir := range dirs {
		name := filepath.Base(dir)
		slug := story.Slugify(name)
		p.logger.Info("processing story", "name", name, "slug", slug)

		if slug == "" {
			p.logger.Error("folder name produces an empty slug", "name", name)
			summary.Failed++
			continue
		}

		if p.ledger.IsHandled(slug) {
			p.logger.Info("already handled, skipping", "slug", slug)
			summary.Skipped++
			summary.Succeeded++
			continue
		}

		if storyErr := p.processStory(ctx, dir, name, slug); storyErr != nil {
			p.logger.Error("story failed", "slug", slug, "error", storyErr)
			if err := p.ledger.MarkFailed(slug); err != nil {
				return summary, errors.NewPersistence(err)
			}
			summary.Failed++
			continue
		}

		if err := p.ledger.MarkSucceeded(slug); err != nil {
			return summary, errors.NewPersistence(err)
		}
		summary.Succeeded++
		p.logger.Info("story complete", "slug", slug)
	}

	p.logger.Info("batch run complete",
		"total", summary.Total,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
		"skipped", summary.Skipped,
	)
	return summary, nil
}

// processStory runs the full conversion sequence for one story folder. Any
// error aborts the story's remaining steps; the caller records the outcome.
func (p *Processor) processStory(ctx context.Context, dir, name, slug string) error {
	folder, err := assets.Scan(dir)
	if err != nil {
		return errors.NewInternal(err)
	}

	// Distinct hard failures; first match wins when several exist.
	if len(folder.Documents) == 0 {
		return errors.NewMissingAsset(slug, "document")
	}
	if len(folder.Covers) == 0 {
		return errors.NewMissingAsset(slug, "cover")
	}
	if len(folder.Pages) == 0 {
		return errors.NewMissingAsset(slug, "pages")
	}

	outDir := filepath.Join(p.cfg.OutputRoot, slug)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return errors.NewPersistence(err)
	}

	doc := folder.Documents[0]
	p.logger.Info("converting document", "slug", slug, "file", filepath.Base(doc))
	if err := p.docs.Convert(ctx, doc, filepath.Join(outDir, "story.md")); err != nil {
		return errors.NewConversionFailed(slug, "document", err)
	}

	p.logger.Info("converting cover", "slug", slug)
	if err := p.images.Convert(ctx, folder.Covers[0], filepath.Join(outDir, "cover.webp"), p.cfg.ImageQuality); err != nil {
		return errors.NewConversionFailed(slug, "cover", err)
	}

	for i, page := range folder.Pages {
		n := i + 1
		p.logger.Info("converting page", "slug", slug, "page", n)
		out := filepath.Join(outDir, fmt.Sprintf("page-%d.webp", n))
		if err := p.images.Convert(ctx, page, out, p.cfg.ImageQuality); err != nil {
			return errors.NewConversionFailed(slug, fmt.Sprintf("page %d", n), err)
		}
	}

	manifest := Manifest{
		Name:           name,
		Slug:           slug,
		SourceDocument: filepath.Base(doc),
		Cover:          "cover.webp",
		PageCount:      len(folder.Pages),
		ProcessedAt:    time.Now().Format(time.RFC3339),
	}
	if err := writeManifest(filepath.Join(outDir, "manifest.json"), manifest); err != nil {
		return errors.NewPersistence(err)
	}
	return nil
}

func writeManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

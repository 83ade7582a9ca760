// Package report renders a single HTML overview of every processed story so
// editors can review page content and coaching notes without opening the raw
// output folders.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/yuin/goldmark"

	"github.com/fablehouse/storypipe/internal/batch"
	"github.com/fablehouse/storypipe/internal/story"
)

// storyEntry is the template data for one processed story.
type storyEntry struct {
	Slug      string
	Title     string
	TagLine   string
	PageCount int
	Processed string
	Pages     []pageEntry
}

type pageEntry struct {
	Number   int
	Content  template.HTML
	Coaching template.HTML
}

type reportData struct {
	Generated string
	Stories   []storyEntry
}

// Generate walks outputRoot for story.json files, renders each story's pages
// to HTML, and writes a self-contained report to outPath. It returns the
// number of stories included. Folders without a story.json are skipped.
func Generate(outputRoot, outPath string, logger *slog.Logger) (int, error) {
	entries, err := os.ReadDir(outputRoot)
	if err != nil {
		return 0, fmt.Errorf("read output root: %w", err)
	}

	var stories []storyEntry
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(outputRoot, entry.Name())
		rec, err := loadStory(dir)
		if err != nil {
			logger.Warn("skipping folder", "folder", entry.Name(), "error", err)
			continue
		}
		stories = append(stories, buildEntry(entry.Name(), dir, rec))
	}
	sort.Slice(stories, func(i, j int) bool { return stories[i].Slug < stories[j].Slug })

	var buf bytes.Buffer
	data := reportData{Generated: nowFunc().Format("2006-01-02 15:04"), Stories: stories}
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return 0, fmt.Errorf("render report: %w", err)
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return 0, fmt.Errorf("write report: %w", err)
	}
	logger.Info("report written", "path", outPath, "stories", len(stories))
	return len(stories), nil
}

func loadStory(dir string) (*story.Record, error) {
	raw, err := os.ReadFile(filepath.Join(dir, "story.json"))
	if err != nil {
		return nil, err
	}
	var rec story.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode story.json: %w", err)
	}
	return &rec, nil
}

func buildEntry(slug, dir string, rec *story.Record) storyEntry {
	e := storyEntry{
		Slug:      slug,
		Title:     rec.Title,
		PageCount: len(rec.Pages),
	}
	if len(rec.Tags) > 0 {
		e.TagLine = joinTags(rec.Tags)
	}
	if m, err := loadManifest(dir); err == nil {
		e.Processed = m.ProcessedAt
	}
	for _, p := range rec.Pages {
		e.Pages = append(e.Pages, pageEntry{
			Number:   p.Number,
			Content:  renderMarkdown(p.Content),
			Coaching: renderMarkdown(p.Coaching),
		})
	}
	return e
}

func loadManifest(dir string) (*batch.Manifest, error) {
	raw, err := os.ReadFile(filepath.Join(dir, "manifest.json"))
	if err != nil {
		return nil, err
	}
	var m batch.Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func joinTags(tags []string) string {
	out := ""
	for i, t := range tags {
		if i > 0 {
			out += ", "
		}
		out += t
	}
	return out
}

// renderMarkdown converts markdown text to HTML using goldmark.
func renderMarkdown(md string) template.HTML {
	if md == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

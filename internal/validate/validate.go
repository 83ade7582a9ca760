// Package validate is the preflight check run before batch processing. It
// reports, per story folder, whether the required assets are present and
// flags multiplicity and legacy naming as warnings.
package validate

import (
	"fmt"
	"path/filepath"

	"github.com/fablehouse/storypipe/internal/assets"
	"github.com/fablehouse/storypipe/internal/story"
)

// Level classifies an issue's severity.
type Level string

const (
	LevelError   Level = "error"
	LevelWarning Level = "warning"
)

// Issue is one finding for a story folder.
type Issue struct {
	Level   Level
	Message string
}

// FolderReport is the validation outcome for one story folder.
type FolderReport struct {
	Name   string
	Slug   string
	Issues []Issue
}

// HasErrors reports whether any issue is a hard error.
func (r *FolderReport) HasErrors() bool {
	for _, issue := range r.Issues {
		if issue.Level == LevelError {
			return true
		}
	}
	return false
}

// Result aggregates validation across every story folder.
type Result struct {
	Folders  []FolderReport
	Errors   int
	Warnings int
}

// Run validates every immediate subdirectory of sourceRoot.
func Run(sourceRoot string) (*Result, error) {
	dirs, err := assets.StoryDirs(sourceRoot)
	if err != nil {
		return nil, fmt.Errorf("scan source root %s: %w", sourceRoot, err)
	}

	result := &Result{}
	for _, dir := range dirs {
		report := checkFolder(dir)
		for _, issue := range report.Issues {
			switch issue.Level {
			case LevelError:
				result.Errors++
			case LevelWarning:
				result.Warnings++
			}
		}
		result.Folders = append(result.Folders, report)
	}
	return result, nil
}

func checkFolder(dir string) FolderReport {
	name := filepath.Base(dir)
	report := FolderReport{Name: name, Slug: story.Slugify(name)}

	folder, err := assets.Scan(dir)
	if err != nil {
		report.Issues = append(report.Issues, Issue{LevelError, fmt.Sprintf("cannot read folder: %v", err)})
		return report
	}

	docs := len(folder.Documents) + len(folder.PDFs)
	switch {
	case docs == 0:
		report.Issues = append(report.Issues, Issue{LevelError, "no .docx or .pdf file found"})
	case docs > 1:
		report.Issues = append(report.Issues, Issue{LevelWarning, fmt.Sprintf("multiple story files found (%d)", docs)})
	}

	switch {
	case len(folder.Covers) == 0:
		report.Issues = append(report.Issues, Issue{LevelError, "no cover image found"})
	case len(folder.Covers) > 1:
		report.Issues = append(report.Issues, Issue{LevelWarning, fmt.Sprintf("multiple cover images found (%d)", len(folder.Covers))})
	}

	pages := len(folder.Pages) + len(folder.LegacyPages)
	if pages == 0 {
		report.Issues = append(report.Issues, Issue{LevelError, "no page images found"})
	}
	if len(folder.LegacyPages) > 0 {
		report.Issues = append(report.Issues, Issue{
			LevelWarning,
			fmt.Sprintf("%d page images use legacy naming; run normalize", len(folder.LegacyPages)),
		})
	}

	return report
}

package assets

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// RenameResult aggregates a filename normalization pass.
type RenameResult struct {
	Folders int
	Renamed int
	Skipped int // rename target already existed
}

// NormalizeAll renames legacy page and cover filenames to the standard
// pattern across every story folder under sourceRoot. With dryRun, planned
// renames are logged but nothing changes on disk.
func NormalizeAll(sourceRoot string, dryRun bool, logger *slog.Logger) (RenameResult, error) {
	dirs, err := StoryDirs(sourceRoot)
	if err != nil {
		return RenameResult{}, fmt.Errorf("scan source root %s: %w", sourceRoot, err)
	}

	result := RenameResult{Folders: len(dirs)}
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return result, fmt.Errorf("read %s: %w", dir, err)
		}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}

			newName, ok := NormalizePageName(entry.Name())
			if !ok {
				newName, ok = NormalizeCoverName(entry.Name())
			}
			if !ok {
				continue
			}

			target := filepath.Join(dir, newName)
			if _, err := os.Stat(target); err == nil {
				logger.Warn("skipping rename, target exists",
					"folder", filepath.Base(dir), "from", entry.Name(), "to", newName)
				result.Skipped++
				continue
			}

			logger.Info("rename", "folder", filepath.Base(dir), "from", entry.Name(), "to", newName)
			if !dryRun {
				if err := os.Rename(filepath.Join(dir, entry.Name()), target); err != nil {
					return result, fmt.Errorf("rename %s: %w", entry.Name(), err)
				}
			}
			result.Renamed++
		}
	}
	return result, nil
}

// Package migrate bulk-copies community story rows from one environment
// database to another, reassigning ownership to a single target user. Success
// is judged by a count match against the target after the copy.
package migrate

import (
	"crypto/rand"
	"fmt"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/fablehouse/storypipe/internal/db"
	"github.com/fablehouse/storypipe/internal/errors"
)

// Result is the outcome of one migration run.
type Result struct {
	Total        int
	Copied       int
	Failed       int
	TargetCount  int
	CountMatched bool
}

// Run copies every community story from the database at sourcePath into the
// database at targetPath. Rows keep their IDs (minting a ULID when absent),
// ownership moves to targetUserID, and the original story reference is
// cleared since it does not exist in the target environment. Row failures are
// counted, not fatal.
func Run(sourcePath, targetPath, targetUserID string, logger *slog.Logger) (*Result, error) {
	if targetUserID == "" {
		return nil, errors.NewInvalidRequest("target user id is required")
	}

	source, err := db.Open(sourcePath)
	if err != nil {
		return nil, err
	}
	defer source.Close()

	target, err := db.Open(targetPath)
	if err != nil {
		return nil, err
	}
	defer target.Close()

	if err := db.EnsureSchema(source); err != nil {
		return nil, err
	}
	if err := db.EnsureSchema(target); err != nil {
		return nil, err
	}

	stories, err := db.ListStories(source)
	if err != nil {
		return nil, err
	}
	logger.Info("fetched stories from source", "count", len(stories))

	result := &Result{Total: len(stories)}
	for i := range stories {
		s := stories[i]
		if s.ID == "" {
			id, err := generateULID()
			if err != nil {
				return result, errors.NewInternal(err)
			}
			s.ID = id
		}
		s.OriginalUserID = targetUserID
		s.OriginalStoryID = nil

		if err := db.InsertStory(target, &s); err != nil {
			logger.Error("row copy failed", "id", s.ID, "title", s.Title, "error", err)
			result.Failed++
			continue
		}
		logger.Info("copied", "id", s.ID, "title", s.Title)
		result.Copied++
	}

	count, err := db.CountStories(target)
	if err != nil {
		return result, err
	}
	result.TargetCount = count
	result.CountMatched = count == result.Total

	logger.Info("migration complete",
		"total", result.Total,
		"copied", result.Copied,
		"failed", result.Failed,
		"target_count", result.TargetCount,
		"count_matched", result.CountMatched,
	)
	if !result.CountMatched {
		logger.Error(fmt.Sprintf("expected %d stories in target, found %d", result.Total, result.TargetCount))
	}
	return result, nil
}

// generateULID creates a new ULID with monotonic entropy.
func generateULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Package ledger persists which story slugs have completed batch processing,
// making re-runs idempotent. A slug in either the succeeded or failed set is
// treated as handled and never reprocessed; clearing the failed set is a
// manual operation (see Reset).
package ledger

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
)

// Ledger tracks terminal outcomes per story slug. It is persisted in full on
// every mutation, so a crash loses at most the story in flight.
type Ledger struct {
	path string

	Succeeded []string `json:"succeeded"`
	Failed    []string `json:"failed"`
	TotalSeen int      `json:"total_seen"`
}

// Load reads the ledger at path, returning an empty ledger if no persisted
// state exists. Missing state is never an error.
func Load(path string) (*Ledger, error) {
	l := &Ledger{
		path:      path,
		Succeeded: []string{},
		Failed:    []string{},
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return l, nil
		}
		return nil, fmt.Errorf("read ledger: %w", err)
	}

	if err := json.Unmarshal(data, l); err != nil {
		return nil, fmt.Errorf("parse ledger %s: %w", path, err)
	}
	if l.Succeeded == nil {
		l.Succeeded = []string{}
	}
	if l.Failed == nil {
		l.Failed = []string{}
	}
	return l, nil
}

// IsHandled reports whether slug already has a terminal outcome.
func (l *Ledger) IsHandled(slug string) bool {
	return slices.Contains(l.Succeeded, slug) || slices.Contains(l.Failed, slug)
}

// MarkSucceeded records a successful story and persists immediately.
// Adding an already-present slug is a no-op for the set.
func (l *Ledger) MarkSucceeded(slug string) error {
	if !slices.Contains(l.Succeeded, slug) {
		l.Succeeded = append(l.Succeeded, slug)
	}
	return l.Save()
}

// MarkFailed records a failed story and persists immediately.
func (l *Ledger) MarkFailed(slug string) error {
	if !slices.Contains(l.Failed, slug) {
		l.Failed = append(l.Failed, slug)
	}
	return l.Save()
}

// SetTotalSeen records the folder count for the current run and persists.
func (l *Ledger) SetTotalSeen(n int) error {
	l.TotalSeen = n
	return l.Save()
}

// Reset clears the ledger sets. With failedOnly, only the failed set is
// cleared, which is the manual remedy for retrying previously failed stories.
func (l *Ledger) Reset(failedOnly bool) error {
	l.Failed = []string{}
	if !failedOnly {
		l.Succeeded = []string{}
		l.TotalSeen = 0
	}
	return l.Save()
}

// Save writes the complete ledger in one write via a temp file and rename, so
// a concurrent reader never observes a partially written file.
func (l *Ledger) Save() error {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}

	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create ledger directory: %w", err)
		}
	}

	randBytes := make([]byte, 8)
	if _, err := rand.Read(randBytes); err != nil {
		return fmt.Errorf("generate temp file name: %w", err)
	}
	tempPath := l.path + "." + hex.EncodeToString(randBytes) + ".tmp"

	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return fmt.Errorf("write ledger: %w", err)
	}
	if err := os.Rename(tempPath, l.path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("replace ledger: %w", err)
	}
	return nil
}

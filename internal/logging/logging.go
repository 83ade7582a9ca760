// Package logging builds the per-run logger pair: every batch invocation gets
// an append-only processing log and a separate error log, both named by the
// run's start time, plus console output.
package logging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

const fileStamp = "20060102-150405"

// RunLogs is the logger for one batch invocation together with the paths it
// writes to. Close releases the underlying files.
type RunLogs struct {
	Logger    *slog.Logger
	RunPath   string
	ErrorPath string

	files []*os.File
}

// NewRunLogs opens the processing/error log pair under logRoot for a run
// started at start. Records at LevelError and above are duplicated into the
// error log; everything goes to the run log and stdout.
func NewRunLogs(logRoot string, start time.Time) (*RunLogs, error) {
	if err := os.MkdirAll(logRoot, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	stamp := start.Format(fileStamp)
	runPath := filepath.Join(logRoot, "processing-"+stamp+".log")
	errorPath := filepath.Join(logRoot, "errors-"+stamp+".log")

	runFile, err := os.OpenFile(runPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open run log: %w", err)
	}
	errFile, err := os.OpenFile(errorPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		runFile.Close()
		return nil, fmt.Errorf("open error log: %w", err)
	}

	handler := newFanoutHandler(
		newLineHandler(os.Stdout, slog.LevelInfo),
		newLineHandler(runFile, slog.LevelInfo),
		newLineHandler(errFile, slog.LevelError),
	)

	return &RunLogs{
		Logger:    slog.New(handler),
		RunPath:   runPath,
		ErrorPath: errorPath,
		files:     []*os.File{runFile, errFile},
	}, nil
}

// NewConsole returns a stdout-only logger in the same line format as the run
// logs. Used by commands that do not produce log files.
func NewConsole() *slog.Logger {
	return slog.New(newLineHandler(os.Stdout, slog.LevelInfo))
}

// Close closes the underlying log files.
func (r *RunLogs) Close() error {
	var firstErr error
	for _, f := range r.files {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

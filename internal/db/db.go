// Package db provides SQLite access to the community_stories table used by
// the environment migration command.
package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// CurrentSchemaVersion is the latest schema version.
// Bump this when adding migrations.
const CurrentSchemaVersion = 1

// Open opens the SQLite database at path with pragmas applied to every
// connection. The file is created if it does not exist.
func Open(path string) (*sql.DB, error) {
	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	database, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	if err := database.Ping(); err != nil {
		database.Close()
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	return database, nil
}

// EnsureSchema applies schema migrations based on user_version.
func EnsureSchema(database *sql.DB) error {
	version, err := GetUserVersion(database)
	if err != nil {
		return err
	}

	if version < 1 {
		schema := `
		CREATE TABLE IF NOT EXISTS community_stories (
		  id                TEXT PRIMARY KEY,
		  title             TEXT NOT NULL,
		  original_story_id TEXT,
		  original_user_id  TEXT NOT NULL,
		  likes_count       INTEGER NOT NULL DEFAULT 0,
		  views_count       INTEGER NOT NULL DEFAULT 0,
		  shared_at         INTEGER NOT NULL,
		  is_featured       INTEGER NOT NULL DEFAULT 0,
		  is_approved       INTEGER NOT NULL DEFAULT 1,
		  pages_json        TEXT NOT NULL,
		  tags_json         TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_community_stories_shared_at
		ON community_stories(shared_at DESC);

		CREATE INDEX IF NOT EXISTS idx_community_stories_user
		ON community_stories(original_user_id);
		`
		if _, err := database.Exec(schema); err != nil {
			return fmt.Errorf("migration 1 failed: %w", err)
		}
		if err := SetUserVersion(database, 1); err != nil {
			return err
		}
	}

	return nil
}

// GetUserVersion returns the current schema version (user_version pragma).
func GetUserVersion(database *sql.DB) (int, error) {
	var version int
	if err := database.QueryRow("PRAGMA user_version;").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get user_version: %w", err)
	}
	return version, nil
}

// SetUserVersion sets the schema version (user_version pragma).
func SetUserVersion(database *sql.DB, version int) error {
	_, err := database.Exec(fmt.Sprintf("PRAGMA user_version=%d", version))
	if err != nil {
		return fmt.Errorf("failed to set user_version: %w", err)
	}
	return nil
}

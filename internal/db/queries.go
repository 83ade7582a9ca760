package db

import (
	"database/sql"
	"fmt"
)

// CommunityStory is one shared-story row.
type CommunityStory struct {
	ID              string
	Title           string
	OriginalStoryID *string
	OriginalUserID  string
	LikesCount      int
	ViewsCount      int
	SharedAt        int64 // Unix timestamp
	IsFeatured      bool
	IsApproved      bool
	PagesJSON       string
	TagsJSON        *string
}

const storyColumns = `id, title, original_story_id, original_user_id,
	likes_count, views_count, shared_at, is_featured, is_approved,
	pages_json, tags_json`

// ListStories returns every row ordered by shared_at descending.
func ListStories(database *sql.DB) ([]CommunityStory, error) {
	query := `SELECT ` + storyColumns + `
		FROM community_stories
		ORDER BY shared_at DESC`

	rows, err := database.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list stories: %w", err)
	}
	defer rows.Close()

	var stories []CommunityStory
	for rows.Next() {
		var s CommunityStory
		var originalStoryID, tagsJSON sql.NullString
		if err := rows.Scan(
			&s.ID, &s.Title, &originalStoryID, &s.OriginalUserID,
			&s.LikesCount, &s.ViewsCount, &s.SharedAt, &s.IsFeatured, &s.IsApproved,
			&s.PagesJSON, &tagsJSON,
		); err != nil {
			return nil, fmt.Errorf("scan story: %w", err)
		}
		s.OriginalStoryID = fromNullString(originalStoryID)
		s.TagsJSON = fromNullString(tagsJSON)
		stories = append(stories, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stories: %w", err)
	}
	return stories, nil
}

// InsertStory stores one row.
func InsertStory(database *sql.DB, s *CommunityStory) error {
	query := `
		INSERT INTO community_stories (` + storyColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := database.Exec(query,
		s.ID, s.Title, toNullString(s.OriginalStoryID), s.OriginalUserID,
		s.LikesCount, s.ViewsCount, s.SharedAt, s.IsFeatured, s.IsApproved,
		s.PagesJSON, toNullString(s.TagsJSON),
	)
	if err != nil {
		return fmt.Errorf("insert story %s: %w", s.ID, err)
	}
	return nil
}

// CountStories returns the row count.
func CountStories(database *sql.DB) (int, error) {
	var count int
	if err := database.QueryRow("SELECT COUNT(*) FROM community_stories").Scan(&count); err != nil {
		return 0, fmt.Errorf("count stories: %w", err)
	}
	return count, nil
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

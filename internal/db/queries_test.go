package db

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := Open(filepath.Join(t.TempDir(), "stories.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	if err := EnsureSchema(database); err != nil {
		t.Fatalf("EnsureSchema failed: %v", err)
	}
	return database
}

func strPtr(s string) *string {
	return &s
}

func TestInsertAndListStories(t *testing.T) {
	database := testDB(t)

	older := &CommunityStory{
		ID:             "01A",
		Title:          "Older Story",
		OriginalUserID: "user-1",
		SharedAt:       1000,
		IsApproved:     true,
		PagesJSON:      `[{"number":1,"content":"x","coaching":""}]`,
	}
	newer := &CommunityStory{
		ID:             "01B",
		Title:          "Newer Story",
		OriginalUserID: "user-1",
		SharedAt:       2000,
		IsApproved:     true,
		PagesJSON:      `[]`,
		TagsJSON:       strPtr(`["fun"]`),
	}

	if err := InsertStory(database, older); err != nil {
		t.Fatalf("InsertStory failed: %v", err)
	}
	if err := InsertStory(database, newer); err != nil {
		t.Fatalf("InsertStory failed: %v", err)
	}

	stories, err := ListStories(database)
	if err != nil {
		t.Fatalf("ListStories failed: %v", err)
	}
	if len(stories) != 2 {
		t.Fatalf("expected 2 stories, got %d", len(stories))
	}
	if stories[0].ID != "01B" {
		t.Errorf("expected newest first, got %s", stories[0].ID)
	}
	if stories[0].TagsJSON == nil || *stories[0].TagsJSON != `["fun"]` {
		t.Errorf("TagsJSON round trip failed: %v", stories[0].TagsJSON)
	}
	if stories[1].OriginalStoryID != nil {
		t.Errorf("OriginalStoryID should be nil, got %v", *stories[1].OriginalStoryID)
	}
}

func TestInsertDuplicateIDFails(t *testing.T) {
	database := testDB(t)

	s := &CommunityStory{ID: "01A", Title: "T", OriginalUserID: "u", SharedAt: 1, PagesJSON: "[]"}
	if err := InsertStory(database, s); err != nil {
		t.Fatalf("InsertStory failed: %v", err)
	}
	if err := InsertStory(database, s); err == nil {
		t.Fatal("expected primary key violation")
	}
}

func TestCountStories(t *testing.T) {
	database := testDB(t)

	count, err := CountStories(database)
	if err != nil {
		t.Fatalf("CountStories failed: %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}

	s := &CommunityStory{ID: "01A", Title: "T", OriginalUserID: "u", SharedAt: 1, PagesJSON: "[]"}
	if err := InsertStory(database, s); err != nil {
		t.Fatalf("InsertStory failed: %v", err)
	}

	count, err = CountStories(database)
	if err != nil {
		t.Fatalf("CountStories failed: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

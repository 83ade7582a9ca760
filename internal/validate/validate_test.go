package validate

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFolder(t *testing.T, root, name string, files ...string) {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(dir, f), []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", f, err)
		}
	}
}

func TestRunCleanFolder(t *testing.T) {
	root := t.TempDir()
	writeFolder(t, root, "Good Story", "Good Story.docx", "Cover.png", "Page1.png", "Page2.png")

	result, err := Run(root)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Errors != 0 || result.Warnings != 0 {
		t.Errorf("expected clean result, got %d errors %d warnings", result.Errors, result.Warnings)
	}
	if len(result.Folders) != 1 {
		t.Fatalf("expected 1 folder report, got %d", len(result.Folders))
	}
	if result.Folders[0].Slug != "good-story" {
		t.Errorf("Slug = %q, want good-story", result.Folders[0].Slug)
	}
}

func TestRunMissingAssetsAreErrors(t *testing.T) {
	root := t.TempDir()
	writeFolder(t, root, "Empty Story")

	result, err := Run(root)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Errors != 3 {
		t.Errorf("Errors = %d, want 3 (document, cover, pages)", result.Errors)
	}
	if !result.Folders[0].HasErrors() {
		t.Error("folder report should have errors")
	}
}

func TestRunMultiplicityIsWarning(t *testing.T) {
	root := t.TempDir()
	writeFolder(t, root, "Dup Story",
		"a.docx", "b.docx",
		"Cover.png", "cover2.png",
		"Page1.png",
	)

	result, err := Run(root)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Errors != 0 {
		t.Errorf("Errors = %d, want 0 (multiplicity is best-effort)", result.Errors)
	}
	if result.Warnings != 2 {
		t.Errorf("Warnings = %d, want 2", result.Warnings)
	}
}

func TestRunPDFCountsAsDocument(t *testing.T) {
	root := t.TempDir()
	writeFolder(t, root, "PDF Story", "story.pdf", "Cover.png", "Page1.png")

	result, err := Run(root)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Errors != 0 {
		t.Errorf("Errors = %d, want 0 for pdf document", result.Errors)
	}
}

func TestRunLegacyPagesWarnButCount(t *testing.T) {
	root := t.TempDir()
	writeFolder(t, root, "Legacy Story", "story.docx", "Cover.png", "Pg1.png")

	result, err := Run(root)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Errors != 0 {
		t.Errorf("Errors = %d, want 0 (legacy pages still count)", result.Errors)
	}
	if result.Warnings != 1 {
		t.Errorf("Warnings = %d, want legacy-naming warning", result.Warnings)
	}
}

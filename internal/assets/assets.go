// Package assets locates the fixed set of files a story folder must carry:
// one source document, one cover image, and numbered page images.
package assets

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Folder is the discovered contents of one story folder.
type Folder struct {
	// Documents holds .docx files, sorted by name. The first entry is the
	// one processed when several exist.
	Documents []string

	// PDFs holds .pdf files; accepted by validation, not by conversion.
	PDFs []string

	// Covers holds cover*.png files (case-insensitive prefix), sorted.
	Covers []string

	// Pages holds page*.png files (case-insensitive prefix), sorted by
	// filename; that order determines page numbering.
	Pages []string

	// LegacyPages holds pg*.png files still on the old naming pattern.
	// They are reported by validation and fixed by normalize, but the
	// batch driver does not pick them up.
	LegacyPages []string
}

// Scan inspects dir and buckets its files. Subdirectories are ignored.
func Scan(dir string) (*Folder, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	f := &Folder{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		lower := strings.ToLower(name)
		path := filepath.Join(dir, name)

		switch {
		case strings.HasSuffix(lower, ".docx"):
			f.Documents = append(f.Documents, path)
		case strings.HasSuffix(lower, ".pdf"):
			f.PDFs = append(f.PDFs, path)
		case strings.HasSuffix(lower, ".png") && strings.HasPrefix(lower, "cover"):
			f.Covers = append(f.Covers, path)
		case strings.HasSuffix(lower, ".png") && strings.HasPrefix(lower, "page"):
			f.Pages = append(f.Pages, path)
		case strings.HasSuffix(lower, ".png") && strings.HasPrefix(lower, "pg"):
			f.LegacyPages = append(f.LegacyPages, path)
		}
	}

	sort.Strings(f.Documents)
	sort.Strings(f.PDFs)
	sort.Strings(f.Covers)
	sort.Strings(f.Pages)
	sort.Strings(f.LegacyPages)
	return f, nil
}

// StoryDirs lists the immediate subdirectories of root in lexicographic
// order. These are the story folders a batch run iterates.
func StoryDirs(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, filepath.Join(root, entry.Name()))
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

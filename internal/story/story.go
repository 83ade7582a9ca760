package story

// TitleSource records where a story's title came from, for downstream auditing.
type TitleSource string

const (
	// TitleSourceDocument means the title was read from an explicit marker in the markdown.
	TitleSourceDocument TitleSource = "document"

	// TitleSourceFolderName means the title was derived from the story folder name.
	TitleSourceFolderName TitleSource = "folder_name"
)

// Page is one story page: narrative content plus an optional coaching note.
// Content and Coaching are whitespace-normalized single-line strings; once the
// coaching note is separated it never appears in Content.
type Page struct {
	// Number is the 1-based page label from the document. Normal input is
	// contiguous, but gaps are preserved as-is.
	Number int `json:"number"`

	// Content is the page's narrative text.
	Content string `json:"content"`

	// Coaching is the instructional annotation, empty if the page has none.
	Coaching string `json:"coaching"`
}

// Record is the parsed structured form of one story document.
type Record struct {
	Title       string      `json:"title"`
	TitleSource TitleSource `json:"title_source"`

	// Pages is sorted ascending by Number regardless of document order.
	Pages []Page `json:"pages"`

	// Tags preserves source order and duplicates; no de-duplication happens.
	Tags []string `json:"tags"`
}

package search

// Finder answers find-in-article queries over one article's paragraphs.
type Finder interface {
	Find(query string, limit int) ([]Hit, error)
	Close() error
}

// Hit is a matching paragraph.
type Hit struct {
	Paragraph int
	Snippet   string
	Score     float64
}

// DebugStatser provides lightweight stats for visibility/debugging.
type DebugStatser interface {
	DocCount() (int, error)
}

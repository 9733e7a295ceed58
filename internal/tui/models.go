package tui

type View int

const (
	ViewHome View = iota
	ViewArticles
	ViewArticleDetail
	ViewResearch
	ViewResearchDetail
	ViewBookmarks
	ViewGoto
	ViewNotFound
)

func (v View) String() string {
	switch v {
	case ViewHome:
		return "home"
	case ViewArticles:
		return "articles"
	case ViewArticleDetail:
		return "article"
	case ViewResearch:
		return "research"
	case ViewResearchDetail:
		return "research-detail"
	case ViewBookmarks:
		return "bookmarks"
	case ViewGoto:
		return "goto"
	case ViewNotFound:
		return "not-found"
	default:
		return "unknown"
	}
}

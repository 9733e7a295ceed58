package tui

import (
	"strings"

	"github.com/dentalink/dentalink/internal/listing"
)

type route struct {
	view View
	id   string
}

// parseRoute maps a location to the view that shows it.
func parseRoute(location string) route {
	path, _ := listing.SplitLocation(location)
	segments := strings.Split(strings.Trim(path, "/"), "/")

	switch {
	case path == "/":
		return route{view: ViewHome}
	case len(segments) == 1 && segments[0] == "articles":
		return route{view: ViewArticles}
	case len(segments) == 2 && segments[0] == "articles" && segments[1] != "":
		return route{view: ViewArticleDetail, id: segments[1]}
	case len(segments) == 1 && segments[0] == "research":
		return route{view: ViewResearch}
	case len(segments) == 2 && segments[0] == "research" && segments[1] != "":
		return route{view: ViewResearchDetail, id: segments[1]}
	case len(segments) == 1 && segments[0] == "bookmarks":
		return route{view: ViewBookmarks}
	default:
		return route{view: ViewNotFound}
	}
}

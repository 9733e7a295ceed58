package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dentalink/dentalink/internal/debuglog"
	"github.com/dentalink/dentalink/internal/storage"
)

// statusMsg carries the outcome of a background action to the status bar.
type statusMsg struct {
	text string
	kind StatusKind
}

// navigate shows location. push records the current location so esc can
// return to it.
func (a *App) navigate(location string, push bool) tea.Cmd {
	location = strings.TrimSpace(location)
	if location == "" {
		location = "/"
	}
	if !strings.HasPrefix(location, "/") {
		location = "/" + location
	}

	r := parseRoute(location)
	if push && a.location != "" {
		a.history = append(a.history, a.location)
	}
	a.view = r.view
	a.status = ""

	debuglog.WithFields(map[string]any{"location": location, "view": r.view.String()}).Debugf("navigate")

	var cmd tea.Cmd
	switch r.view {
	case ViewHome:
		a.location = "/"
		cmd = a.home.submit(a.ctx)
	case ViewArticles:
		a.articles.mount(location)
		a.location = a.articles.location()
		cmd = a.articles.submit(a.ctx)
	case ViewResearch:
		a.research.mount(location)
		a.location = a.research.location()
		cmd = tea.Batch(a.research.submit(a.ctx), a.loadJournals())
	case ViewArticleDetail:
		a.location = "/articles/" + r.id
		cmd = a.loadArticle(r.id)
	case ViewResearchDetail:
		a.location = "/research/" + r.id
		cmd = a.loadResearch(r.id)
	case ViewBookmarks:
		a.location = "/bookmarks"
		cmd = a.loadBookmarks()
	default:
		a.location = location
	}

	if r.view == ViewNotFound {
		return cmd
	}
	return tea.Batch(cmd, a.saveLastLocation(a.location))
}

// back returns to the previous location; false when there is none.
func (a *App) back() (tea.Cmd, bool) {
	if len(a.history) == 0 {
		return nil, false
	}
	prev := a.history[len(a.history)-1]
	a.history = a.history[:len(a.history)-1]
	return a.navigate(prev, false), true
}

// replaceLocation records a query change of the visible listing without
// adding a history entry.
func (a *App) replaceLocation(location string) tea.Cmd {
	a.location = location
	return a.saveLastLocation(location)
}

func (a *App) saveLastLocation(location string) tea.Cmd {
	store := a.store
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		if err := store.SetLastLocation(location); err != nil {
			debuglog.Warnf("saving last location: %v", err)
		}
		return nil
	}
}

// shareLink is the public web address of the current location.
func (a *App) shareLink() string {
	base := strings.TrimRight(a.config.Site.BaseURL, "/")
	if base == "" {
		base = strings.TrimRight(a.config.API.BaseURL, "/")
	}
	return base + a.location
}

func (a *App) copyLink() tea.Cmd {
	link := a.shareLink()
	write := a.copy
	return func() tea.Msg {
		if err := write(link); err != nil {
			debuglog.Warnf("clipboard: %v", err)
			return statusMsg{text: err.Error(), kind: StatusError}
		}
		return statusMsg{text: MsgLinkCopied, kind: StatusSuccess}
	}
}

func (a *App) openLink(link string) tea.Cmd {
	if strings.TrimSpace(link) == "" {
		return a.setStatus(MsgNoFile, StatusWarn, statusDefaultExpiry)
	}
	if a.opener == nil {
		return a.setStatus(MsgNoFile, StatusWarn, statusDefaultExpiry)
	}
	opener := a.opener
	status := a.setStatus(MsgOpening, StatusInfo, 0)
	return tea.Batch(status, func() tea.Msg {
		if err := opener.Open(link); err != nil {
			debuglog.Warnf("open %s: %v", link, err)
			return statusMsg{text: err.Error(), kind: StatusError}
		}
		return statusMsg{text: MsgOpened, kind: StatusSuccess}
	})
}

// currentBookmark describes the visible location for the bookmark store.
func (a *App) currentBookmark() *storage.Bookmark {
	b := &storage.Bookmark{Location: a.location, Kind: storage.KindListing}
	switch a.view {
	case ViewArticleDetail:
		b.Kind = storage.KindArticle
		b.Title = a.article.article.Title
	case ViewResearchDetail:
		b.Kind = storage.KindResearch
		b.Title = a.paper.paper.Title
	case ViewArticles:
		b.Title = articlesTitle(a.articles.qs.Query())
	case ViewResearch:
		b.Title = researchTitle(a.research.qs.Query())
	case ViewHome:
		b.Title = Tagline
	}
	return b
}

func (a *App) toggleBookmark() tea.Cmd {
	if a.store == nil {
		return a.setStatus(MsgBookmarksOff, StatusWarn, statusDefaultExpiry)
	}
	store := a.store
	b := a.currentBookmark()
	return func() tea.Msg {
		added, err := store.ToggleBookmark(b)
		return bookmarkToggledMsg{added: added, err: wrapErr("bookmark", err)}
	}
}

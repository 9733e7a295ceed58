package tui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/dentalink/dentalink/internal/storage"
)

type bookmarksView struct {
	list list.Model
}

func newBookmarksView() *bookmarksView {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "› الإشارات المرجعية"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.SetStatusBarItemName("إشارة", "إشارات")
	return &bookmarksView{list: l}
}

func (v *bookmarksView) setItems(bookmarks []*storage.Bookmark) {
	items := make([]list.Item, len(bookmarks))
	for i, b := range bookmarks {
		items[i] = bookmarkItem{bookmark: b}
	}
	v.list.SetItems(items)
}

func (v *bookmarksView) selected() (*storage.Bookmark, bool) {
	item, ok := v.list.SelectedItem().(bookmarkItem)
	if !ok {
		return nil, false
	}
	return item.bookmark, true
}

type bookmarkItem struct {
	bookmark *storage.Bookmark
}

func (i bookmarkItem) Title() string {
	if i.bookmark.Title != "" {
		return i.bookmark.Title
	}
	return i.bookmark.Location
}

func (i bookmarkItem) Description() string {
	desc := i.bookmark.Location
	if !i.bookmark.CreatedAt.IsZero() {
		desc += " • " + humanize.Time(i.bookmark.CreatedAt)
	}
	return desc
}

func (i bookmarkItem) FilterValue() string {
	return i.bookmark.Title + " " + i.bookmark.Location
}

type bookmarksLoadedMsg struct {
	bookmarks []*storage.Bookmark
	err       error
}

type bookmarkToggledMsg struct {
	added bool
	err   error
}

func (a *App) loadBookmarks() tea.Cmd {
	store := a.store
	return func() tea.Msg {
		if store == nil {
			return bookmarksLoadedMsg{}
		}
		bookmarks, err := store.ListBookmarks()
		return bookmarksLoadedMsg{bookmarks: bookmarks, err: wrapErr("listing bookmarks", err)}
	}
}

func (a *App) deleteBookmark(location string) tea.Cmd {
	store := a.store
	return func() tea.Msg {
		if store == nil {
			return bookmarksLoadedMsg{}
		}
		if err := store.DeleteBookmark(location); err != nil {
			return bookmarksLoadedMsg{err: wrapErr("deleting bookmark", err)}
		}
		bookmarks, err := store.ListBookmarks()
		return bookmarksLoadedMsg{bookmarks: bookmarks, err: wrapErr("listing bookmarks", err)}
	}
}

package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dentalink/dentalink/internal/api"
	"github.com/dentalink/dentalink/internal/config"
	"github.com/dentalink/dentalink/internal/listing"
)

type keyMap struct {
	Quit         key.Binding
	Back         key.Binding
	Goto         key.Binding
	Home         key.Binding
	Articles     key.Binding
	Research     key.Binding
	Search       key.Binding
	Open         key.Binding
	Up           key.Binding
	Down         key.Binding
	Left         key.Binding
	Right        key.Binding
	Section      key.Binding
	NextPage     key.Binding
	PrevPage     key.Binding
	ChipNext     key.Binding
	ChipPrev     key.Binding
	ChipToggle   key.Binding
	Copy         key.Binding
	Refresh      key.Binding
	Bookmark     key.Binding
	Bookmarks    key.Binding
	ClearFilters key.Binding
	Find         key.Binding
	Next         key.Binding
	OpenFile     key.Binding
	Related      key.Binding
	Delete       key.Binding
}

func newKeyMap(mod string) keyMap {
	return keyMap{
		Quit:         key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "خروج")),
		Back:         key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "رجوع")),
		Goto:         key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "انتقال")),
		Home:         key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "الرئيسية")),
		Articles:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "المقالات")),
		Research:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "الأبحاث")),
		Search:       key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "بحث")),
		Open:         key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "فتح")),
		Up:           key.NewBinding(key.WithKeys("up", "k")),
		Down:         key.NewBinding(key.WithKeys("down", "j")),
		Left:         key.NewBinding(key.WithKeys("left")),
		Right:        key.NewBinding(key.WithKeys("right")),
		Section:      key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "القسم التالي")),
		NextPage:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n/p", "الصفحات")),
		PrevPage:     key.NewBinding(key.WithKeys("p")),
		ChipNext:     key.NewBinding(key.WithKeys("]"), key.WithHelp("[/]", "الفلاتر")),
		ChipPrev:     key.NewBinding(key.WithKeys("[")),
		ChipToggle:   key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "تحديد")),
		Copy:         key.NewBinding(key.WithKeys(mod+"y"), key.WithHelp(mod+"y", "نسخ الرابط")),
		Refresh:      key.NewBinding(key.WithKeys(mod+"r"), key.WithHelp(mod+"r", "تحديث")),
		Bookmark:     key.NewBinding(key.WithKeys(mod+"b"), key.WithHelp(mod+"b", "حفظ")),
		Bookmarks:    key.NewBinding(key.WithKeys(mod+"l"), key.WithHelp(mod+"l", "المحفوظات")),
		ClearFilters: key.NewBinding(key.WithKeys(mod+"x"), key.WithHelp(mod+"x", "مسح الفلاتر")),
		Find:         key.NewBinding(key.WithKeys(mod+"f"), key.WithHelp(mod+"f", "بحث في المقال")),
		Next:         key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "المقال التالي")),
		OpenFile:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "فتح الملف")),
		Related:      key.NewBinding(key.WithKeys("1", "2", "3"), key.WithHelp("1-3", "مقالات ذات صلة")),
		Delete:       key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "حذف")),
	}
}

type KeyHandler struct {
	app         *App
	config      *config.Config
	modifierKey string
	keys        keyMap
}

func NewKeyHandler(app *App, cfg *config.Config) *KeyHandler {
	modifierKey := cfg.Keys.Modifier + "+"
	return &KeyHandler{app: app, config: cfg, modifierKey: modifierKey, keys: newKeyMap(modifierKey)}
}

func (kh *KeyHandler) HandleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return kh.app, tea.Quit
	}

	if kh.isInTextInputMode() {
		return kh.handleTextInputMode(msg)
	}

	if model, cmd, handled := kh.handleCustomKeys(msg); handled {
		return model, cmd
	}

	return kh.delegateToCharm(msg)
}

func (kh *KeyHandler) isInTextInputMode() bool {
	a := kh.app
	switch a.view {
	case ViewArticles:
		return a.articles.search.Focused()
	case ViewResearch:
		return a.research.search.Focused()
	case ViewGoto:
		return true
	case ViewArticleDetail:
		return a.article.finding && a.article.find.Focused()
	case ViewBookmarks:
		return a.bookmarks.list.FilterState() == list.Filtering
	default:
		return false
	}
}

func (kh *KeyHandler) handleTextInputMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := kh.app
	switch a.view {
	case ViewGoto:
		return kh.handleGotoInput(msg)
	case ViewArticles:
		return a, handleSearchInput(a, a.articles, msg)
	case ViewResearch:
		return a, handleSearchInput(a, a.research, msg)
	case ViewArticleDetail:
		return kh.handleFindInput(msg)
	case ViewBookmarks:
		var cmd tea.Cmd
		a.bookmarks.list, cmd = a.bookmarks.list.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (kh *KeyHandler) handleGotoInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := kh.app
	switch msg.String() {
	case "esc":
		a.gotoInput.Blur()
		a.view = a.prevView
		return a, nil
	case "enter":
		target := a.gotoInput.Value()
		a.gotoInput.Blur()
		a.view = a.prevView
		if target == "" {
			return a, nil
		}
		return a, a.navigate(target, true)
	}
	var cmd tea.Cmd
	a.gotoInput, cmd = a.gotoInput.Update(msg)
	return a, cmd
}

// handleSearchInput feeds a key to a listing's search box. Every edit that
// changes the normalised query submits immediately.
func handleSearchInput[T any](a *App, lv *listingView[T], msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "enter", "tab", "down":
		lv.search.Blur()
		return nil
	}

	var cmd tea.Cmd
	lv.search, cmd = lv.search.Update(msg)
	if !lv.setSearch(lv.search.Value()) {
		return cmd
	}
	return tea.Batch(cmd, a.replaceLocation(lv.location()), lv.submit(a.ctx))
}

func (kh *KeyHandler) handleFindInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := kh.app
	d := a.article
	switch msg.String() {
	case "esc":
		d.finding = false
		d.hits = nil
		d.find.Blur()
		return a, nil
	case "enter", "tab":
		d.find.Blur()
		return a, nil
	}

	prev := d.find.Value()
	var cmd tea.Cmd
	d.find, cmd = d.find.Update(msg)
	if d.find.Value() == prev {
		return a, cmd
	}
	return a, tea.Batch(cmd, a.runFind())
}

// handleCustomKeys handles only our custom action keys
func (kh *KeyHandler) handleCustomKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	a := kh.app
	k := kh.keys

	// Keys that shadow the global bindings in a particular state.
	switch {
	case a.view == ViewArticleDetail && a.article.finding && key.Matches(msg, k.Back):
		a.article.finding = false
		a.article.hits = nil
		return a, nil, true
	case a.view == ViewBookmarks && a.bookmarks.list.FilterState() == list.FilterApplied && key.Matches(msg, k.Back):
		model, cmd := kh.delegateToCharm(msg)
		return model, cmd, true
	}

	// Global custom keys
	switch {
	case key.Matches(msg, k.Quit):
		return a, tea.Quit, true
	case key.Matches(msg, k.Back):
		cmd, _ := a.back()
		return a, cmd, true
	case key.Matches(msg, k.Goto):
		a.prevView = a.view
		a.view = ViewGoto
		a.gotoInput.SetValue(a.location)
		a.gotoInput.CursorEnd()
		return a, a.gotoInput.Focus(), true
	case key.Matches(msg, k.Home):
		return a, a.navigate("/", true), true
	case key.Matches(msg, k.Articles):
		return a, a.navigate("/articles", true), true
	case key.Matches(msg, k.Research):
		return a, a.navigate("/research", true), true
	case key.Matches(msg, k.Copy):
		return a, a.copyLink(), true
	case key.Matches(msg, k.Bookmark):
		return a, a.toggleBookmark(), true
	case key.Matches(msg, k.Bookmarks):
		return a, a.navigate("/bookmarks", true), true
	case key.Matches(msg, k.Refresh):
		return a, kh.refresh(), true
	}

	// View-specific custom keys
	switch a.view {
	case ViewHome:
		return kh.handleHomeKeys(msg)
	case ViewArticles:
		cmd, handled := handleListingKeys(kh, a.articles, msg, func(it api.Article) string {
			return listing.ArticleLocation(it.ID)
		})
		return a, cmd, handled
	case ViewResearch:
		cmd, handled := handleListingKeys(kh, a.research, msg, func(it api.ResearchPaper) string {
			return listing.ResearchLocation(it.ID)
		})
		return a, cmd, handled
	case ViewArticleDetail:
		return kh.handleArticleKeys(msg)
	case ViewResearchDetail:
		return kh.handleResearchKeys(msg)
	case ViewBookmarks:
		return kh.handleBookmarksKeys(msg)
	case ViewNotFound:
		if key.Matches(msg, k.Open) {
			return a, a.navigate("/", true), true
		}
	}
	return a, nil, false
}

// refresh re-submits whatever the current view shows. It is the only
// retry path for a failed fetch besides editing the query.
func (kh *KeyHandler) refresh() tea.Cmd {
	a := kh.app
	switch a.view {
	case ViewHome:
		return a.home.submit(a.ctx)
	case ViewArticles:
		return a.articles.submit(a.ctx)
	case ViewResearch:
		return tea.Batch(a.research.submit(a.ctx), a.loadJournals())
	case ViewArticleDetail:
		return a.loadArticle(a.article.id)
	case ViewResearchDetail:
		return a.loadResearch(a.paper.id)
	case ViewBookmarks:
		return a.loadBookmarks()
	}
	return nil
}

func (kh *KeyHandler) handleHomeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	a := kh.app
	h := a.home
	k := kh.keys
	switch {
	case key.Matches(msg, k.Section):
		if msg.String() == "shift+tab" {
			h.cycleFocus(-1)
		} else {
			h.cycleFocus(1)
		}
	case key.Matches(msg, k.Up):
		h.cycleFocus(-1)
	case key.Matches(msg, k.Down):
		h.cycleFocus(1)
	// Cards run right to left, so left moves forward.
	case key.Matches(msg, k.Left):
		h.move(1)
	case key.Matches(msg, k.Right):
		h.move(-1)
	case key.Matches(msg, k.Open):
		if target := h.target(); target != "" {
			return a, a.navigate(target, true), true
		}
	default:
		return a, nil, false
	}
	return a, nil, true
}

func handleListingKeys[T any](kh *KeyHandler, lv *listingView[T], msg tea.KeyMsg, location func(T) string) (tea.Cmd, bool) {
	a := kh.app
	k := kh.keys
	cols := gridColumns(a.width, a.cardWidth())

	changed := false
	switch {
	case key.Matches(msg, k.Search):
		return lv.search.Focus(), true
	case key.Matches(msg, k.Up):
		lv.moveCursor(-cols)
	case key.Matches(msg, k.Down):
		lv.moveCursor(cols)
	case key.Matches(msg, k.Left):
		lv.moveCursor(1)
	case key.Matches(msg, k.Right):
		lv.moveCursor(-1)
	case key.Matches(msg, k.Open):
		if item, ok := lv.selected(); ok {
			return a.navigate(location(item), true), true
		}
	case key.Matches(msg, k.NextPage):
		changed = lv.nextPage()
	case key.Matches(msg, k.PrevPage):
		changed = lv.prevPage()
	case key.Matches(msg, k.ChipNext):
		lv.moveChip(1)
	case key.Matches(msg, k.ChipPrev):
		lv.moveChip(-1)
	case key.Matches(msg, k.ChipToggle):
		changed = lv.toggleChip()
	case key.Matches(msg, k.ClearFilters):
		if !lv.clear() {
			return nil, true
		}
		status := a.setStatus(MsgFiltersCleared, StatusInfo, statusDefaultExpiry)
		return tea.Batch(status, a.replaceLocation(lv.location()), lv.submit(a.ctx)), true
	default:
		return nil, false
	}

	if !changed {
		return nil, true
	}
	return tea.Batch(a.replaceLocation(lv.location()), lv.submit(a.ctx)), true
}

func (kh *KeyHandler) handleArticleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	a := kh.app
	d := a.article
	k := kh.keys

	if !d.found {
		if !d.loading && key.Matches(msg, k.Open) {
			return a, a.navigate("/articles", true), true
		}
		return a, nil, false
	}

	switch {
	case key.Matches(msg, k.Find):
		return a, a.startFind(), true
	case key.Matches(msg, k.Search) && d.finding:
		return a, d.find.Focus(), true
	case key.Matches(msg, k.Next):
		return a, a.navigate(d.nextLocation(), true), true
	case key.Matches(msg, k.OpenFile):
		return a, a.openLink(d.article.CoverImage), true
	case key.Matches(msg, k.Related):
		i := int(msg.String()[0] - '1')
		if i < len(d.related) {
			return a, a.navigate(listing.ArticleLocation(d.related[i].ID), true), true
		}
		return a, nil, true
	}
	return a, nil, false
}

func (kh *KeyHandler) handleResearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	a := kh.app
	d := a.paper
	k := kh.keys

	if !d.found {
		if !d.loading && key.Matches(msg, k.Open) {
			return a, a.navigate("/research", true), true
		}
		return a, nil, false
	}
	if key.Matches(msg, k.OpenFile) {
		return a, a.openLink(d.paper.FileURL), true
	}
	return a, nil, false
}

func (kh *KeyHandler) handleBookmarksKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	a := kh.app
	k := kh.keys
	switch {
	case key.Matches(msg, k.Open):
		if b, ok := a.bookmarks.selected(); ok {
			return a, a.navigate(b.Location, true), true
		}
		return a, nil, true
	case key.Matches(msg, k.Delete):
		if b, ok := a.bookmarks.selected(); ok {
			return a, a.deleteBookmark(b.Location), true
		}
		return a, nil, true
	}
	return a, nil, false
}

// delegateToCharm lets Charm handle all keys we don't intercept
func (kh *KeyHandler) delegateToCharm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := kh.app
	var cmd tea.Cmd

	switch a.view {
	case ViewArticleDetail, ViewResearchDetail:
		a.viewport, cmd = a.viewport.Update(msg)
	case ViewBookmarks:
		a.bookmarks.list, cmd = a.bookmarks.list.Update(msg)
	}
	return a, cmd
}

// HelpForCurrentView lists the bindings shown in the status bar.
func (kh *KeyHandler) HelpForCurrentView() []key.Binding {
	k := kh.keys
	switch kh.app.view {
	case ViewHome:
		return []key.Binding{k.Open, k.Section, k.Articles, k.Research, k.Goto, k.Quit}
	case ViewArticles, ViewResearch:
		return []key.Binding{k.Search, k.Open, k.ChipNext, k.ChipToggle, k.ClearFilters, k.NextPage, k.Copy, k.Back}
	case ViewArticleDetail:
		return []key.Binding{k.Related, k.Next, k.Find, k.OpenFile, k.Bookmark, k.Copy, k.Back}
	case ViewResearchDetail:
		return []key.Binding{k.OpenFile, k.Bookmark, k.Copy, k.Back}
	case ViewBookmarks:
		return []key.Binding{k.Open, k.Delete, k.Back}
	case ViewGoto:
		return []key.Binding{k.Open, k.Back}
	default:
		return []key.Binding{k.Home, k.Back, k.Quit}
	}
}

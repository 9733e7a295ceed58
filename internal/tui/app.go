package tui

import (
	"context"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/dentalink/dentalink/internal/api"
	"github.com/dentalink/dentalink/internal/config"
	"github.com/dentalink/dentalink/internal/debuglog"
	"github.com/dentalink/dentalink/internal/listing"
	"github.com/dentalink/dentalink/internal/storage"
)

// ContentAPI is the part of the content API client the views use.
type ContentAPI interface {
	ListArticles(ctx context.Context, p api.ArticleParams) (api.Result[api.Article], error)
	FeaturedArticles(ctx context.Context) ([]api.Article, error)
	Article(ctx context.Context, id string) (api.Article, error)
	RelatedArticles(ctx context.Context, id string, limit int) ([]api.Article, error)
	ListResearch(ctx context.Context, p api.ResearchParams) (api.Result[api.ResearchPaper], error)
	Research(ctx context.Context, id string) (api.ResearchPaper, error)
	Journals(ctx context.Context) ([]string, error)
	Author(ctx context.Context, name string) api.Author
}

// BookmarkStore persists bookmarks and the last visited location.
type BookmarkStore interface {
	ToggleBookmark(b *storage.Bookmark) (bool, error)
	IsBookmarked(location string) bool
	ListBookmarks() ([]*storage.Bookmark, error)
	DeleteBookmark(location string) error
	SetLastLocation(location string) error
}

// Opener hands a link to an external program.
type Opener interface {
	Open(link string) error
}

const (
	viewArticles       = "articles"
	viewResearch       = "research"
	viewHomeFeatured   = "home.featured"
	viewHomeCategories = "home.categories"
	viewHomeLatest     = "home.latest"

	// specialtiesCount is the fixed figure on the research stats row.
	specialtiesCount = 24
	// chromeHeight is the lines taken by the title bar and status bar.
	chromeHeight = 4
)

type App struct {
	ctx        context.Context
	config     *config.Config
	api        ContentAPI
	store      BookmarkStore
	opener     Opener
	copy       func(string) error
	now        func() time.Time
	keyHandler *KeyHandler
	help       help.Model
	spinner    spinner.Model

	view     View
	prevView View
	start    string
	location string
	history  []string

	home      *homeView
	articles  *listingView[api.Article]
	research  *listingView[api.ResearchPaper]
	article   *articleDetail
	paper     *researchDetail
	bookmarks *bookmarksView
	gotoInput textinput.Model
	viewport  viewport.Model

	journals []string

	width  int
	height int

	status     string
	statusKind StatusKind
	statusSeq  int

	glamourRenderer *glamour.TermRenderer
	rendererWidth   int
}

// NewApp builds the application model. store and opener may be nil, which
// disables bookmarks and external viewers respectively.
func NewApp(ctx context.Context, client ContentAPI, store BookmarkStore, opener Opener, cfg *config.Config) *App {
	if ctx == nil {
		ctx = context.Background()
	}

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = lipgloss.NewStyle().Foreground(AccentColor)

	gi := textinput.New()
	gi.Placeholder = "/articles?tag=..."
	gi.Prompt = "› "

	a := &App{
		ctx:       ctx,
		config:    cfg,
		api:       client,
		store:     store,
		opener:    opener,
		copy:      clipboard.WriteAll,
		now:       time.Now,
		help:      help.New(),
		spinner:   sp,
		gotoInput: gi,
		viewport:  viewport.New(0, 0),
		view:      ViewHome,
		width:     80,
		height:    24,
	}

	lc := cfg.Listing

	articlesVM := listing.NewViewModel(viewArticles, a.fetchArticles, listing.ArticleTerms)
	a.articles = newListingView("/articles", "tag", lc.PageLimit, articlesVM, "ابحث في المقالات...")
	a.articles.empty = listing.ArticlesEmptyText
	a.articles.hint = listing.ArticlesHintText
	a.articles.card = listing.CardFormat.ArticleCard

	researchVM := listing.NewViewModel(viewResearch, a.fetchResearch, listing.ResearchTerms)
	a.research = newListingView("/research", "journal", lc.ResearchLimit, researchVM, "ابحث في الأبحاث...")
	a.research.empty = listing.ResearchEmptyText
	a.research.hint = listing.ResearchHintText
	a.research.card = listing.CardFormat.ResearchCard

	a.home = newHomeView(a)
	a.article = newArticleDetail()
	a.paper = &researchDetail{}
	a.bookmarks = newBookmarksView()
	a.keyHandler = NewKeyHandler(a, cfg)

	return a
}

func (a *App) fetchArticles(ctx context.Context, q listing.Query) (api.Result[api.Article], error) {
	return a.api.ListArticles(ctx, api.ArticleParams{Tag: q.Filter, Search: q.Search, Limit: q.Limit, Page: q.Page})
}

func (a *App) fetchResearch(ctx context.Context, q listing.Query) (api.Result[api.ResearchPaper], error) {
	return a.api.ListResearch(ctx, api.ResearchParams{Journal: q.Filter, Search: q.Search, Limit: q.Limit, Page: q.Page})
}

// Start sets the location shown once the program starts; "/" when empty.
func (a *App) Start(location string) {
	a.start = location
}

func (a *App) Location() string {
	return a.location
}

func (a *App) CurrentView() View {
	return a.view
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.navigate(a.start, false))
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.keyHandler.HandleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case clearStatusMsg:
		a.clearStatus(msg.seq)
		return a, nil

	case statusMsg:
		return a, a.setStatus(msg.text, msg.kind, statusDefaultExpiry)

	case listing.Settled[api.Article]:
		return a, a.settleArticles(msg)

	case listing.Settled[api.ResearchPaper]:
		if a.research.settle(msg) {
			return a, a.reportFailure(a.research.vm.State().Err)
		}
		return a, nil

	case journalsLoadedMsg:
		a.journals = msg.journals
		a.research.vocab = listing.NewVocabulary(msg.journals...)
		return a, nil

	case articleLoadedMsg:
		a.applyArticle(msg)
		return a, nil

	case researchLoadedMsg:
		a.applyResearch(msg)
		return a, nil

	case bookmarksLoadedMsg:
		if msg.err != nil {
			return a, a.setStatus(describeErr(msg.err), StatusError, statusDefaultExpiry)
		}
		a.bookmarks.setItems(msg.bookmarks)
		return a, nil

	case bookmarkToggledMsg:
		if msg.err != nil {
			return a, a.setStatus(describeErr(msg.err), StatusError, statusDefaultExpiry)
		}
		text := MsgBookmarkRemoved
		if msg.added {
			text = MsgBookmarkAdded
		}
		return a, a.setStatus(text, StatusSuccess, statusDefaultExpiry)
	}

	return a, nil
}

func (a *App) settleArticles(msg listing.Settled[api.Article]) tea.Cmd {
	switch msg.View {
	case viewArticles:
		if a.articles.settle(msg) {
			return a.reportFailure(a.articles.vm.State().Err)
		}
	case viewHomeFeatured, viewHomeCategories, viewHomeLatest:
		a.home.settle(msg)
	}
	return nil
}

// reportFailure flashes a failed fetch in the status bar; the page itself
// shows the empty state.
func (a *App) reportFailure(err error) tea.Cmd {
	if err == nil {
		return nil
	}
	return a.setStatus(describeErr(err), StatusError, statusDefaultExpiry)
}

func (a *App) resize(width, height int) {
	a.width = width
	a.height = height
	a.viewport.Width = width
	a.viewport.Height = a.bodyHeight()
	a.bookmarks.list.SetSize(width, a.bodyHeight())

	inputWidth := width - 8
	if inputWidth < 10 {
		inputWidth = width
	}
	a.gotoInput.Width = inputWidth
	a.articles.search.Width = inputWidth
	a.research.search.Width = inputWidth

	switch a.view {
	case ViewArticleDetail:
		a.renderArticle()
	case ViewResearchDetail:
		a.renderResearch()
	}
}

func (a *App) bodyHeight() int {
	h := a.height - chromeHeight
	if h < 3 {
		h = 3
	}
	return h
}

// cardFormat sizes card summaries to the configured card width.
func (a *App) cardFormat(lines int) listing.CardFormat {
	w := a.cardWidth() - 4
	if w < 10 {
		w = 10
	}
	return listing.CardFormat{Width: w, Lines: lines, Now: a.now}
}

func (a *App) cardWidth() int {
	w := a.config.UI.CardWidth
	if w <= 0 {
		w = 38
	}
	if w > a.width {
		w = a.width
	}
	return w
}

func (a *App) getRenderer() (*glamour.TermRenderer, error) {
	maxWidth := a.config.UI.WordWrapMaxWidth
	if maxWidth <= 0 {
		maxWidth = 120
	}
	minWidth := a.config.UI.WordWrapMinWidth
	if minWidth <= 0 {
		minWidth = 40
	}

	wordWrapWidth := (a.width * 9) / 10
	if wordWrapWidth > maxWidth {
		wordWrapWidth = maxWidth
	}
	if wordWrapWidth < minWidth {
		wordWrapWidth = minWidth
	}
	if a.width < 50 {
		wordWrapWidth = a.width - 4
		if wordWrapWidth < 20 {
			wordWrapWidth = 20
		}
	}

	if a.glamourRenderer == nil || abs(a.rendererWidth-wordWrapWidth) > 10 {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wordWrapWidth),
		)
		if err != nil {
			return nil, err
		}
		a.glamourRenderer = r
		a.rendererWidth = wordWrapWidth
	}

	return a.glamourRenderer, nil
}

// renderMarkdown renders md for the detail viewport, falling back to the
// raw text if glamour fails.
func (a *App) renderMarkdown(md string) string {
	r, err := a.getRenderer()
	if err != nil {
		debuglog.Warnf("renderer unavailable: %v", err)
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		debuglog.Warnf("render failed: %v", err)
		return md
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func (a *App) loading() bool {
	switch a.view {
	case ViewHome:
		return a.home.loading()
	case ViewArticles:
		return a.articles.loading()
	case ViewResearch:
		return a.research.loading()
	case ViewArticleDetail:
		return a.article.loading
	case ViewResearchDetail:
		return a.paper.loading
	}
	return false
}

func (a *App) View() string {
	var content string
	bodyHeight := a.bodyHeight()

	switch a.view {
	case ViewHome:
		content = a.viewHome(bodyHeight)
	case ViewArticles:
		content = a.viewArticles(bodyHeight)
	case ViewResearch:
		content = a.viewResearch(bodyHeight)
	case ViewArticleDetail:
		content = a.viewArticleDetail(bodyHeight)
	case ViewResearchDetail:
		content = a.viewResearchDetail(bodyHeight)
	case ViewBookmarks:
		content = a.bookmarks.list.View()
	case ViewGoto:
		content = renderCentered(a.width, bodyHeight, lipgloss.JoinVertical(
			lipgloss.Center,
			TitleStyle.Render("› الانتقال إلى عنوان"),
			"",
			renderInputFrame(a.gotoInput.View(), true, a.gotoInput.Width),
			"",
			renderHelp("enter: انتقال • esc: إلغاء"),
		))
	case ViewNotFound:
		content = renderCentered(a.width, bodyHeight, lipgloss.JoinVertical(
			lipgloss.Center,
			HeaderStyle.Render("الصفحة غير موجودة"),
			"",
			renderMuted(truncateMiddle(a.location, a.width-4)),
			"",
			renderHelp("h: الرئيسية • esc: رجوع"),
		))
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(bodyHeight).
		MaxHeight(bodyHeight).
		Render(content)

	separatorWidth := a.width
	if separatorWidth < 0 {
		separatorWidth = 0
	}
	separator := SeparatorStyle.Render(strings.Repeat("─", separatorWidth))

	return lipgloss.JoinVertical(lipgloss.Left, a.titleBar(), separator, content, separator, a.statusBar())
}

func (a *App) titleBar() string {
	left := LogoStyle.Render(CompactLogo)
	if a.loading() {
		left += " " + a.spinner.View()
	}
	loc := renderMuted(truncateMiddle(a.location, a.width/2))
	gap := a.width - lipgloss.Width(left) - lipgloss.Width(loc)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + loc
}

func (a *App) statusBar() string {
	if a.status != "" {
		style := StatusInfoStyle
		switch a.statusKind {
		case StatusSuccess:
			style = StatusSuccessStyle
		case StatusWarn:
			style = StatusWarnStyle
		case StatusError:
			style = StatusErrorStyle
		}
		text := a.status
		if a.statusKind == StatusError {
			text = "✗ " + text
		}
		return lipgloss.NewStyle().Width(a.width).Padding(0, 1).Render(style.Render(text))
	}

	a.help.Width = a.width
	return lipgloss.NewStyle().Width(a.width).Padding(0, 1).
		Render(a.help.ShortHelpView(a.keyHandler.HelpForCurrentView()))
}

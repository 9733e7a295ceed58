package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dentalink/dentalink/internal/api"
	"github.com/dentalink/dentalink/internal/listing"
)

type homeSection int

const (
	sectionFeatured homeSection = iota
	sectionCategories
	sectionLatest
	sectionCount
)

// homeView is the landing page. Each section loads independently, so one
// failing endpoint leaves the others on screen.
type homeView struct {
	featured   *listing.ViewModel[api.Article]
	categories *listing.ViewModel[api.Article]
	latest     *listing.ViewModel[api.Article]

	latestLimit   int
	categoryLimit int
	categoryCount int

	focus    homeSection
	slide    int
	category int
	cursor   int
}

func newHomeView(a *App) *homeView {
	lc := a.config.Listing
	h := &homeView{
		latestLimit:   lc.HomeLatest,
		categoryLimit: lc.CategorySourceLimit,
		categoryCount: lc.CategoryCount,
	}

	h.featured = listing.NewViewModel(viewHomeFeatured,
		func(ctx context.Context, _ listing.Query) (api.Result[api.Article], error) {
			items, err := a.api.FeaturedArticles(ctx)
			return api.Result[api.Article]{Items: items, Total: len(items)}, err
		}, listing.ArticleTerms)
	h.categories = listing.NewViewModel(viewHomeCategories, a.fetchArticles, listing.ArticleTerms)
	h.latest = listing.NewViewModel(viewHomeLatest, a.fetchArticles, listing.ArticleTerms)
	return h
}

// submit reloads all three sections.
func (h *homeView) submit(ctx context.Context) tea.Cmd {
	featured := h.featured.Submit(listing.Query{Page: 1})
	categories := h.categories.Submit(listing.Query{Limit: h.categoryLimit, Page: 1})
	latest := h.latest.Submit(listing.Query{Limit: h.latestLimit, Page: 1})
	h.slide, h.category, h.cursor = 0, 0, 0
	return tea.Batch(
		func() tea.Msg { return featured.Run(ctx) },
		func() tea.Msg { return categories.Run(ctx) },
		func() tea.Msg { return latest.Run(ctx) },
	)
}

func (h *homeView) settle(s listing.Settled[api.Article]) {
	switch s.View {
	case viewHomeFeatured:
		h.featured.Settle(s)
		h.slide = clamp(h.slide, 0, len(h.featured.State().Items())-1)
	case viewHomeCategories:
		h.categories.Settle(s)
		h.category = clamp(h.category, 0, len(h.categoryNames())-1)
	case viewHomeLatest:
		h.latest.Settle(s)
		h.cursor = clamp(h.cursor, 0, len(h.latest.State().Items())-1)
	}
	if h.focus == sectionFeatured && len(h.featured.State().Items()) == 0 && !h.loading() {
		h.focus = sectionCategories
	}
}

func (h *homeView) loading() bool {
	return h.featured.State().Phase == listing.Loading ||
		h.categories.State().Phase == listing.Loading ||
		h.latest.State().Phase == listing.Loading
}

// categoryNames is the first few distinct tags of the category source page.
func (h *homeView) categoryNames() []string {
	return h.categories.Vocabulary().Head(h.categoryCount)
}

// showFeatured is false once the featured section settled with nothing to show.
func (h *homeView) showFeatured() bool {
	st := h.featured.State()
	return st.Phase == listing.Loading || st.Phase == listing.Idle || len(st.Items()) > 0
}

func (h *homeView) cycleFocus(delta int) {
	for i := 0; i < int(sectionCount); i++ {
		h.focus = homeSection((int(h.focus) + delta + int(sectionCount)) % int(sectionCount))
		if h.focus != sectionFeatured || h.showFeatured() {
			return
		}
	}
}

// move shifts the selection inside the focused section. The carousel wraps.
func (h *homeView) move(delta int) {
	switch h.focus {
	case sectionFeatured:
		n := len(h.featured.State().Items())
		if n > 0 {
			h.slide = ((h.slide+delta)%n + n) % n
		}
	case sectionCategories:
		h.category = clamp(h.category+delta, 0, len(h.categoryNames())-1)
	case sectionLatest:
		h.cursor = clamp(h.cursor+delta, 0, len(h.latest.State().Items())-1)
	}
}

// target is the location behind the current selection, or "".
func (h *homeView) target() string {
	switch h.focus {
	case sectionFeatured:
		items := h.featured.State().Items()
		if h.slide < len(items) {
			return listing.ArticleLocation(items[h.slide].ID)
		}
	case sectionCategories:
		names := h.categoryNames()
		if h.category < len(names) {
			qs := listing.NewQueryState("/articles", "tag", 0)
			qs.SetFilterValue(names[h.category])
			return qs.Location()
		}
	case sectionLatest:
		items := h.latest.State().Items()
		if h.cursor < len(items) {
			return listing.ArticleLocation(items[h.cursor].ID)
		}
	}
	return ""
}

func (a *App) viewHome(height int) string {
	h := a.home
	width := a.width
	var sections []string

	if height >= 40 {
		banner := GetCompactBanner("موسوعة متكاملة من المقالات والأبحاث العلمية في مجال طب الأسنان")
		sections = append(sections, lipgloss.PlaceHorizontal(width, lipgloss.Center, banner))
	} else {
		sections = append(sections, rtl(width).Render(HeaderStyle.Render(Tagline)))
	}

	if h.showFeatured() {
		sections = append(sections, "", a.sectionTitle("مقالات مميزة", sectionFeatured))
		st := h.featured.State()
		if st.Phase != listing.Succeeded {
			sections = append(sections, rtl(width).Render(renderSkeletonCard(min(width, 2*a.cardWidth()))))
		} else {
			items := st.Items()
			card := a.cardFormat(a.config.Listing.SummaryLines).ArticleCard(items[h.slide])
			slide := renderCard(card, min(width, 2*a.cardWidth()), h.focus == sectionFeatured)
			dots := renderMuted(fmt.Sprintf("‹ %d / %d ›", h.slide+1, len(items)))
			sections = append(sections, rtl(width).Render(lipgloss.JoinVertical(lipgloss.Center, slide, dots)))
		}
	}

	sections = append(sections, "", a.sectionTitle("التخصصات الطبية", sectionCategories))
	if h.categories.State().Phase == listing.Loading {
		sections = append(sections, rtl(width).Render(renderMuted(MsgLoading)))
	} else {
		var chips []listing.Chip
		for _, name := range h.categoryNames() {
			chips = append(chips, listing.Chip{Label: name})
		}
		focus := -1
		if h.focus == sectionCategories {
			focus = h.category
		}
		sections = append(sections, renderChips(chips, focus, width))
	}

	sections = append(sections, "", a.sectionTitle("أحدث المقالات", sectionLatest))
	latest := listing.Render(h.latest.State(), listing.Query{}, listing.NewVocabulary(), listing.RenderOptions[api.Article]{
		Skeletons: h.latestLimit,
		EmptyText: listing.ArticlesEmptyText,
		Card:      a.cardFormat(a.config.Listing.SummaryLines).ArticleCard,
	})
	cursor := -1
	if h.focus == sectionLatest {
		cursor = h.cursor
	}
	used := lipgloss.Height(lipgloss.JoinVertical(lipgloss.Right, sections...))
	sections = append(sections, renderPage(latest, cursor, width, height-used-1, a.cardWidth()))

	return lipgloss.JoinVertical(lipgloss.Right, sections...)
}

func (a *App) sectionTitle(title string, s homeSection) string {
	if a.home.focus == s {
		title = "▍" + title
	}
	return renderHeader(title, "", a.width)
}

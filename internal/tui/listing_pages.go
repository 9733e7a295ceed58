package tui

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/dentalink/dentalink/internal/listing"
)

// articlesTitle is the page header; it names the selected tag.
func articlesTitle(q listing.Query) string {
	if q.Filter != "" {
		return "مقالات في " + q.Filter
	}
	return "جميع المقالات"
}

func researchTitle(q listing.Query) string {
	if q.Filter != "" {
		return "أبحاث " + q.Filter
	}
	return "الأبحاث العلمية"
}

func pageSubtitle(p listing.Page, q listing.Query) string {
	if p.Kind != listing.PageCards {
		return ""
	}
	sub := MsgResultsCount(len(p.Cards), p.Total)
	if q.Page > 1 {
		sub += " • صفحة " + strconv.Itoa(q.Page)
	}
	return sub
}

func (a *App) viewArticles(height int) string {
	lv := a.articles
	q := lv.qs.Query()
	page := lv.page(a.cardFormat(a.config.Listing.SummaryLines), a.config.Listing.Skeletons)

	chipFocus := -1
	if !lv.search.Focused() {
		chipFocus = lv.chip
	}

	top := lipgloss.JoinVertical(lipgloss.Right,
		renderHeader(articlesTitle(q), pageSubtitle(page, q), a.width),
		rtl(a.width).Render(renderInputFrame(lv.search.View(), lv.search.Focused(), lv.search.Width)),
		renderChips(page.Chips, chipFocus, a.width),
	)
	rest := height - lipgloss.Height(top) - 1
	return lipgloss.JoinVertical(lipgloss.Right, top, renderPage(page, lv.cursor, a.width, rest, a.cardWidth()))
}

func (a *App) viewResearch(height int) string {
	lv := a.research
	q := lv.qs.Query()
	page := lv.page(a.cardFormat(a.config.Listing.AbstractLines), a.config.Listing.Skeletons)

	chipFocus := -1
	if !lv.search.Focused() {
		chipFocus = lv.chip
	}

	stats := renderStats(a.width,
		[2]string{strconv.Itoa(len(lv.items())), "بحث علمي"},
		[2]string{strconv.Itoa(len(a.journals)), "مجلة علمية"},
		[2]string{strconv.Itoa(specialtiesCount), "تخصص طبي"},
	)

	top := lipgloss.JoinVertical(lipgloss.Right,
		renderHeader(researchTitle(q), pageSubtitle(page, q), a.width),
		stats,
		rtl(a.width).Render(renderInputFrame(lv.search.View(), lv.search.Focused(), lv.search.Width)),
		renderChips(page.Chips, chipFocus, a.width),
	)
	rest := height - lipgloss.Height(top) - 1
	return lipgloss.JoinVertical(lipgloss.Right, top, renderPage(page, lv.cursor, a.width, rest, a.cardWidth()))
}

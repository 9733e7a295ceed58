package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dentalink/dentalink/internal/listing"
)

// renderHeader returns a consistently styled header with an optional muted subtitle.
func renderHeader(title, subtitle string, width int) string {
	title = truncateEnd(title, width-2)
	subtitle = truncateEnd(subtitle, width-2)
	rows := []string{rtl(width).Inherit(HeaderStyle).Render(title)}
	if subtitle != "" {
		rows = append(rows, rtl(width).Render(renderMuted(subtitle)))
	}
	return lipgloss.JoinVertical(lipgloss.Right, rows...)
}

// renderInputFrame draws a rounded bordered container around a rendered input view.
func renderInputFrame(inputView string, focused bool, contentWidth int) string {
	borderColor := MutedColor
	if focused {
		borderColor = AccentColor
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(contentWidth + 4).
		Render(inputView)
}

// renderCentered centers the provided content within the given width/height box.
func renderCentered(width, height int, content string) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func renderMuted(text string) string {
	return lipgloss.NewStyle().Foreground(MutedColor).Render(text)
}

func renderHelp(text string) string {
	return HelpStyle.Render(text)
}

// rtl right-aligns a block of the given width; Arabic text reads from the right edge.
func rtl(width int) lipgloss.Style {
	if width < 1 {
		width = 1
	}
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Right)
}

// renderChips draws the filter chips right to left. focus is the chip
// under the cursor, or -1.
func renderChips(chips []listing.Chip, focus, width int) string {
	if len(chips) == 0 {
		return ""
	}
	var rendered []string
	for i, c := range chips {
		style := ChipStyle
		switch {
		case c.Selected:
			style = SelectedChipStyle
		case i == focus:
			style = FocusedChipStyle
		}
		label := c.Label
		if i == focus {
			label = "›" + label
		}
		rendered = append(rendered, style.Render(label))
	}

	// Lay chips out in rows that fit the width, first chip at the right.
	var rows []string
	var row []string
	rowWidth := 0
	for _, chip := range rendered {
		w := lipgloss.Width(chip) + 1
		if rowWidth+w > width && len(row) > 0 {
			rows = append(rows, joinRTL(row))
			row, rowWidth = nil, 0
		}
		row = append(row, chip)
		rowWidth += w
	}
	if len(row) > 0 {
		rows = append(rows, joinRTL(row))
	}
	return rtl(width).Render(strings.Join(rows, "\n"))
}

func joinRTL(items []string) string {
	reversed := make([]string, len(items))
	for i, s := range items {
		reversed[len(items)-1-i] = s
	}
	return strings.Join(reversed, " ")
}

// renderCard draws one card box of the given outer width.
func renderCard(c listing.Card, width int, selected bool) string {
	inner := width - 4
	if inner < 10 {
		inner = 10
	}

	rows := []string{CardTitleStyle.Render(truncateEnd(c.Title, inner))}
	meta := c.Meta
	if c.Date != "" {
		if meta != "" {
			meta = c.Date + " • " + meta
		} else {
			meta = c.Date
		}
	}
	if meta != "" {
		rows = append(rows, TimeStyle.Render(truncateEnd(meta, inner)))
	}
	if c.Summary != "" {
		rows = append(rows, c.Summary)
	}
	if len(c.Tags) > 0 {
		var tags []string
		for _, t := range c.Tags {
			tags = append(tags, ChipStyle.Render(t))
		}
		rows = append(rows, joinRTL(tags))
	}

	style := CardStyle
	if selected {
		style = SelectedCardStyle
	}
	body := lipgloss.NewStyle().Width(inner).Align(lipgloss.Right).Render(strings.Join(rows, "\n"))
	return style.Width(width - 2).Render(body)
}

func renderSkeletonCard(width int) string {
	inner := width - 4
	if inner < 10 {
		inner = 10
	}
	bar := func(frac int) string {
		n := inner * frac / 4
		if n < 1 {
			n = 1
		}
		return SkeletonStyle.Render(strings.Repeat("░", n))
	}
	body := lipgloss.NewStyle().Width(inner).Align(lipgloss.Right).
		Render(strings.Join([]string{bar(1), bar(3), bar(4), bar(2)}, "\n"))
	return CardStyle.Width(width - 2).Render(body)
}

// gridColumns is how many cards of cardWidth fit in width.
func gridColumns(width, cardWidth int) int {
	if cardWidth <= 0 {
		return 1
	}
	cols := width / cardWidth
	if cols < 1 {
		cols = 1
	}
	return cols
}

// renderGrid lays out cells right to left in rows of cols.
func renderGrid(cells []string, cols int) string {
	var rows []string
	for i := 0; i < len(cells); i += cols {
		end := i + cols
		if end > len(cells) {
			end = len(cells)
		}
		row := make([]string, 0, end-i)
		for j := end - 1; j >= i; j-- {
			row = append(row, cells[j])
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Right, rows...)
}

// renderPage draws a listing page: skeletons, the empty state or the card
// grid. Rows scroll so the row holding cursor stays within height.
func renderPage(p listing.Page, cursor, width, height, cardWidth int) string {
	cols := gridColumns(width, cardWidth)
	cw := width / cols
	if cw > cardWidth && cardWidth > 0 {
		cw = cardWidth
	}

	switch p.Kind {
	case listing.PageSkeleton:
		cells := make([]string, p.Skeletons)
		for i := range cells {
			cells[i] = renderSkeletonCard(cw)
		}
		return rtl(width).Render(renderGrid(visibleRows(cells, cols, 0, height), cols))

	case listing.PageEmpty:
		rows := []string{HeaderStyle.Render(p.EmptyText)}
		if p.ClearFiltersHint && p.HintText != "" {
			rows = append(rows, "", renderHelp(p.HintText))
		}
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
			Render(lipgloss.JoinVertical(lipgloss.Center, rows...))

	default:
		cells := make([]string, len(p.Cards))
		for i, c := range p.Cards {
			cells[i] = renderCard(c, cw, i == cursor)
		}
		return rtl(width).Render(renderGrid(visibleRows(cells, cols, cursor, height), cols))
	}
}

// visibleRows drops whole rows of cells so that the row of cursor fits
// into height lines.
func visibleRows(cells []string, cols, cursor, height int) []string {
	if len(cells) == 0 || height <= 0 {
		return cells
	}
	cellHeight := 0
	for _, c := range cells {
		if h := lipgloss.Height(c); h > cellHeight {
			cellHeight = h
		}
	}
	fit := height / cellHeight
	if fit < 1 {
		fit = 1
	}
	row := 0
	if cursor > 0 {
		row = cursor / cols
	}
	first := 0
	if row >= fit {
		first = row - fit + 1
	}
	start := first * cols
	end := start + fit*cols
	if end > len(cells) {
		end = len(cells)
	}
	return cells[start:end]
}

// RenderPage draws p as a single column of cards for plain output.
func RenderPage(p listing.Page, width int) string {
	return renderPage(p, -1, width, 0, width)
}

// renderStats draws labelled counters right to left.
func renderStats(width int, stats ...[2]string) string {
	var cells []string
	for _, s := range stats {
		cells = append(cells, lipgloss.JoinVertical(lipgloss.Center,
			StatValueStyle.Render(s[0]),
			StatLabelStyle.Render(s[1]),
		))
	}
	return rtl(width).Render(joinRTL(cells))
}

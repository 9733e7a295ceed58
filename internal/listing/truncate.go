package listing

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
)

const ellipsis = "…"

// Truncate word-wraps text to width and keeps at most lines lines,
// marking a cut with an ellipsis.
func Truncate(text string, width, lines int) string {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" || lines <= 0 {
		return ""
	}
	if width <= 0 {
		return text
	}

	wrapped := strings.Split(wordwrap.String(text, width), "\n")
	for i, line := range wrapped {
		wrapped[i] = runewidth.Truncate(line, width, ellipsis)
	}
	if len(wrapped) <= lines {
		return strings.Join(wrapped, "\n")
	}

	kept := wrapped[:lines]
	last := strings.TrimSuffix(kept[lines-1], ellipsis)
	room := width - runewidth.StringWidth(ellipsis)
	if runewidth.StringWidth(last) > room {
		last = runewidth.Truncate(last, room, "")
	}
	last = strings.TrimRight(last, " ") + ellipsis
	kept[lines-1] = last
	return strings.Join(kept, "\n")
}

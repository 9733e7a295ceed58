package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dentalink/dentalink/internal/listing"
)

// listingView couples one QueryState with its ViewModel and the cursor
// state of the card grid and chip row.
type listingView[T any] struct {
	qs     *listing.QueryState
	vm     *listing.ViewModel[T]
	path   string
	param  string
	limit  int
	search textinput.Model

	// vocab, when non-empty, replaces the result vocabulary as the chip source.
	vocab listing.Vocabulary

	empty string
	hint  string
	card  func(listing.CardFormat, T) listing.Card

	cursor int
	chip   int
}

func newListingView[T any](path, param string, limit int, vm *listing.ViewModel[T], placeholder string) *listingView[T] {
	si := textinput.New()
	si.Placeholder = placeholder
	si.Prompt = "› "

	return &listingView[T]{
		qs:     listing.NewQueryState(path, param, limit),
		vm:     vm,
		path:   path,
		param:  param,
		limit:  limit,
		search: si,
		vocab:  listing.NewVocabulary(),
		chip:   -1,
	}
}

// mount replaces the query with the one encoded in location.
func (lv *listingView[T]) mount(location string) {
	lv.qs = listing.ParseLocation(location, lv.param, lv.limit)
	lv.search.SetValue(lv.qs.Query().Search)
	lv.search.Blur()
	lv.cursor = 0
	lv.chip = -1
}

// submit issues a request for the current query. The returned command
// runs the fetch off the UI goroutine and delivers a listing.Settled.
func (lv *listingView[T]) submit(ctx context.Context) tea.Cmd {
	req := lv.vm.Submit(lv.qs.Query())
	return func() tea.Msg {
		return req.Run(ctx)
	}
}

func (lv *listingView[T]) settle(s listing.Settled[T]) bool {
	if !lv.vm.Settle(s) {
		return false
	}
	lv.cursor = clamp(lv.cursor, 0, len(lv.vm.State().Items())-1)
	return true
}

func (lv *listingView[T]) location() string {
	return lv.qs.Location()
}

func (lv *listingView[T]) loading() bool {
	return lv.vm.State().Phase == listing.Loading
}

func (lv *listingView[T]) items() []T {
	return lv.vm.State().Items()
}

func (lv *listingView[T]) selected() (T, bool) {
	var zero T
	items := lv.items()
	if lv.cursor < 0 || lv.cursor >= len(items) {
		return zero, false
	}
	return items[lv.cursor], true
}

func (lv *listingView[T]) chipVocabulary() listing.Vocabulary {
	if lv.vocab.Len() > 0 {
		return lv.vocab
	}
	return lv.vm.Vocabulary()
}

func (lv *listingView[T]) chips() []listing.Chip {
	return listing.Chips(lv.chipVocabulary(), lv.qs.Query().Filter)
}

func (lv *listingView[T]) page(format listing.CardFormat, skeletons int) listing.Page {
	return listing.Render(lv.vm.State(), lv.qs.Query(), lv.chipVocabulary(), listing.RenderOptions[T]{
		Skeletons: skeletons,
		EmptyText: lv.empty,
		HintText:  lv.hint,
		Card: func(item T) listing.Card {
			return lv.card(format, item)
		},
	})
}

// setSearch applies the text of the search box; true when the query changed.
func (lv *listingView[T]) setSearch(text string) bool {
	if lv.qs.SetSearchText(text) {
		lv.cursor = 0
		return true
	}
	return false
}

// moveChip shifts the chip cursor by delta, wrapping around.
func (lv *listingView[T]) moveChip(delta int) {
	n := len(lv.chips())
	if n == 0 {
		lv.chip = -1
		return
	}
	if lv.chip < 0 {
		if delta > 0 {
			lv.chip = 0
		} else {
			lv.chip = n - 1
		}
		return
	}
	lv.chip = ((lv.chip+delta)%n + n) % n
}

// toggleChip toggles the chip under the cursor; true when the query changed.
func (lv *listingView[T]) toggleChip() bool {
	chips := lv.chips()
	if lv.chip < 0 || lv.chip >= len(chips) {
		return false
	}
	label := chips[lv.chip].Label
	if !lv.qs.ToggleFilter(label) {
		return false
	}
	lv.cursor = 0
	// The chip list is rebuilt around the new selection; keep the cursor on it.
	for i, c := range lv.chips() {
		if c.Label == label {
			lv.chip = i
			break
		}
	}
	return true
}

func (lv *listingView[T]) clear() bool {
	if !lv.qs.Clear() {
		return false
	}
	lv.search.SetValue("")
	lv.cursor = 0
	lv.chip = -1
	return true
}

// nextPage advances when the current page is full or the total says more remain.
func (lv *listingView[T]) nextPage() bool {
	state := lv.vm.State()
	if state.Phase != listing.Succeeded {
		return false
	}
	q := lv.qs.Query()
	shown := len(state.Result.Items)
	more := q.Limit > 0 && shown >= q.Limit
	if state.Result.Total > 0 && q.Limit > 0 {
		more = state.Result.Total > q.Page*q.Limit
	}
	if !more {
		return false
	}
	lv.cursor = 0
	return lv.qs.SetPage(q.Page + 1)
}

func (lv *listingView[T]) prevPage() bool {
	q := lv.qs.Query()
	if q.Page <= 1 {
		return false
	}
	lv.cursor = 0
	return lv.qs.SetPage(q.Page - 1)
}

func (lv *listingView[T]) moveCursor(delta int) {
	n := len(lv.items())
	if n == 0 {
		lv.cursor = 0
		return
	}
	lv.cursor = clamp(lv.cursor+delta, 0, n-1)
}

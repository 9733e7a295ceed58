package listing

// PageKind selects which of the three listing layouts to draw.
type PageKind int

const (
	PageSkeleton PageKind = iota
	PageEmpty
	PageCards
)

func (k PageKind) String() string {
	switch k {
	case PageSkeleton:
		return "skeleton"
	case PageEmpty:
		return "empty"
	case PageCards:
		return "cards"
	default:
		return "unknown"
	}
}

// DefaultSkeletons is the placeholder count while a listing loads.
const DefaultSkeletons = 6

type Card struct {
	Title    string
	Summary  string
	Date     string
	Meta     string
	Tags     []string
	Location string
}

type Chip struct {
	Label    string
	Selected bool
}

// Page is a drawable description of a listing; the TUI styles it.
type Page struct {
	Kind             PageKind
	Skeletons        int
	Cards            []Card
	Chips            []Chip
	Total            int
	EmptyText        string
	ClearFiltersHint bool
	HintText         string
}

type RenderOptions[T any] struct {
	Skeletons int
	EmptyText string
	HintText  string
	Card      func(T) Card
}

// Render maps request state, query and vocabulary to a Page. A failed
// request renders exactly like an empty result.
func Render[T any](state RequestState[T], q Query, vocab Vocabulary, opts RenderOptions[T]) Page {
	page := Page{Chips: Chips(vocab, q.Filter)}

	switch state.Phase {
	case Idle, Loading:
		page.Kind = PageSkeleton
		page.Skeletons = opts.Skeletons
		if page.Skeletons <= 0 {
			page.Skeletons = DefaultSkeletons
		}
		return page
	}

	items := state.Items()
	if len(items) == 0 {
		page.Kind = PageEmpty
		page.EmptyText = opts.EmptyText
		page.ClearFiltersHint = q.Active()
		if page.ClearFiltersHint {
			page.HintText = opts.HintText
		}
		return page
	}

	page.Kind = PageCards
	page.Total = state.Result.Total
	page.Cards = make([]Card, 0, len(items))
	for _, item := range items {
		if opts.Card != nil {
			page.Cards = append(page.Cards, opts.Card(item))
		}
	}
	return page
}

// Chips lists one chip per vocabulary value with the selected filter
// marked. A selected value missing from the vocabulary is put first so the
// active filter stays visible.
func Chips(vocab Vocabulary, selected string) []Chip {
	chips := make([]Chip, 0, vocab.Len()+1)
	if selected != "" && !vocab.Contains(selected) {
		chips = append(chips, Chip{Label: selected, Selected: true})
	}
	for _, value := range vocab.values {
		chips = append(chips, Chip{Label: value, Selected: value == selected})
	}
	return chips
}

package listing

import (
	"context"

	"github.com/dentalink/dentalink/internal/api"
	"github.com/dentalink/dentalink/internal/debuglog"
)

// Phase tags the variant held by RequestState.
type Phase int

const (
	Idle Phase = iota
	Loading
	Succeeded
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// RequestState is Idle, Loading, Succeeded(Result) or Failed(Err).
// Result is only meaningful when Succeeded, Err only when Failed.
type RequestState[T any] struct {
	Phase  Phase
	Result api.Result[T]
	Err    error
}

// Items returns the committed items; empty unless Succeeded.
func (s RequestState[T]) Items() []T {
	if s.Phase != Succeeded {
		return nil
	}
	return s.Result.Items
}

// FetchFunc loads one page for q.
type FetchFunc[T any] func(ctx context.Context, q Query) (api.Result[T], error)

// Request is a fetch bound to the generation that issued it.
type Request[T any] struct {
	View  string
	Gen   uint64
	Query Query
	fetch FetchFunc[T]
}

// Settled is the outcome of a Request, delivered back to the view.
type Settled[T any] struct {
	View   string
	Gen    uint64
	Query  Query
	Result api.Result[T]
	Err    error
}

// Run performs the fetch. It is safe to call from any goroutine.
func (r Request[T]) Run(ctx context.Context) Settled[T] {
	res, err := r.fetch(ctx, r.Query)
	if err == nil && res.Total < len(res.Items) {
		res.Total = len(res.Items)
	}
	return Settled[T]{View: r.View, Gen: r.Gen, Query: r.Query, Result: res, Err: err}
}

// ViewModel owns the request state of one listing view. Only the most
// recently issued request may commit; earlier ones finish and are dropped.
// It is not safe for concurrent use; callers drive it from one goroutine.
type ViewModel[T any] struct {
	name  string
	fetch FetchFunc[T]
	terms func(T) []string

	gen   uint64
	state RequestState[T]
	vocab Vocabulary
}

// NewViewModel creates an Idle view. terms extracts the filter values an
// item contributes to the vocabulary.
func NewViewModel[T any](name string, fetch FetchFunc[T], terms func(T) []string) *ViewModel[T] {
	return &ViewModel[T]{
		name:  name,
		fetch: fetch,
		terms: terms,
		vocab: NewVocabulary(),
	}
}

func (vm *ViewModel[T]) Name() string {
	return vm.name
}

// Submit starts a new generation for q and moves to Loading before
// returning. The caller runs the returned Request asynchronously.
func (vm *ViewModel[T]) Submit(q Query) Request[T] {
	vm.gen++
	vm.state = RequestState[T]{Phase: Loading}
	debuglog.WithFields(map[string]any{
		"view":   vm.name,
		"gen":    vm.gen,
		"search": q.Search,
		"filter": q.Filter,
		"page":   q.Page,
	}).Debugf("submit")
	return Request[T]{View: vm.name, Gen: vm.gen, Query: q, fetch: vm.fetch}
}

// Settle commits s if it belongs to the current generation and reports
// whether it did. Success replaces the vocabulary; failure leaves it.
func (vm *ViewModel[T]) Settle(s Settled[T]) bool {
	log := debuglog.WithFields(map[string]any{"view": vm.name, "gen": s.Gen, "current": vm.gen})
	if s.Gen != vm.gen || vm.state.Phase != Loading {
		log.Debugf("dropping stale response")
		return false
	}

	if s.Err != nil {
		log.Warnf("fetch failed: %v", s.Err)
		vm.state = RequestState[T]{Phase: Failed, Result: api.Result[T]{Items: []T{}}, Err: s.Err}
		return true
	}

	res := s.Result
	if res.Items == nil {
		res.Items = []T{}
	}
	vm.state = RequestState[T]{Phase: Succeeded, Result: res}
	vm.vocab = VocabularyOf(res.Items, vm.terms)
	log.Debugf("committed %d items (total %d)", len(res.Items), res.Total)
	return true
}

func (vm *ViewModel[T]) State() RequestState[T] {
	return vm.state
}

func (vm *ViewModel[T]) Vocabulary() Vocabulary {
	return vm.vocab
}

func (vm *ViewModel[T]) Generation() uint64 {
	return vm.gen
}

// ArticleTerms is the vocabulary source for article listings.
func ArticleTerms(a api.Article) []string {
	return a.Tags
}

// ResearchTerms is the vocabulary source for research listings.
func ResearchTerms(r api.ResearchPaper) []string {
	return []string{r.Journal}
}

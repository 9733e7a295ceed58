package tui

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/dentalink/dentalink/internal/api"
	"github.com/dentalink/dentalink/internal/config"
	"github.com/dentalink/dentalink/internal/storage"
)

// fakeAPI answers from fixed data and records every list request.
type fakeAPI struct {
	mu sync.Mutex

	articles     []api.Article
	articlesErr  error
	featured     []api.Article
	research     []api.ResearchPaper
	researchErr  error
	journals     []string
	detail       map[string]api.Article
	detailErr    error
	related      []api.Article
	relatedErr   error
	papers       map[string]api.ResearchPaper
	articleCalls []api.ArticleParams
	researchCall []api.ResearchParams
	authorCalls  []string
}

func (f *fakeAPI) ListArticles(_ context.Context, p api.ArticleParams) (api.Result[api.Article], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.articleCalls = append(f.articleCalls, p)
	if f.articlesErr != nil {
		return api.Result[api.Article]{}, f.articlesErr
	}
	return api.Result[api.Article]{Items: f.articles, Total: len(f.articles)}, nil
}

func (f *fakeAPI) FeaturedArticles(context.Context) ([]api.Article, error) {
	return f.featured, nil
}

func (f *fakeAPI) Article(_ context.Context, id string) (api.Article, error) {
	if f.detailErr != nil {
		return api.Article{}, f.detailErr
	}
	a, ok := f.detail[id]
	if !ok {
		return api.Article{}, &api.StatusError{Status: 404, Path: "/articles/" + id}
	}
	return a, nil
}

func (f *fakeAPI) RelatedArticles(context.Context, string, int) ([]api.Article, error) {
	return f.related, f.relatedErr
}

func (f *fakeAPI) ListResearch(_ context.Context, p api.ResearchParams) (api.Result[api.ResearchPaper], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.researchCall = append(f.researchCall, p)
	if f.researchErr != nil {
		return api.Result[api.ResearchPaper]{}, f.researchErr
	}
	return api.Result[api.ResearchPaper]{Items: f.research, Total: len(f.research)}, nil
}

func (f *fakeAPI) Research(_ context.Context, id string) (api.ResearchPaper, error) {
	p, ok := f.papers[id]
	if !ok {
		return api.ResearchPaper{}, &api.StatusError{Status: 404, Path: "/research/" + id}
	}
	return p, nil
}

func (f *fakeAPI) Journals(context.Context) ([]string, error) {
	return f.journals, nil
}

func (f *fakeAPI) Author(_ context.Context, name string) api.Author {
	f.mu.Lock()
	f.authorCalls = append(f.authorCalls, name)
	f.mu.Unlock()
	return api.PlaceholderAuthor(name)
}

func (f *fakeAPI) lastArticleCall(t *testing.T) api.ArticleParams {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.articleCalls)
	return f.articleCalls[len(f.articleCalls)-1]
}

func (f *fakeAPI) lastResearchCall(t *testing.T) api.ResearchParams {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.researchCall)
	return f.researchCall[len(f.researchCall)-1]
}

// fakeStore is an in-memory BookmarkStore.
type fakeStore struct {
	mu        sync.Mutex
	bookmarks map[string]*storage.Bookmark
	last      string
}

func newFakeStore() *fakeStore {
	return &fakeStore{bookmarks: map[string]*storage.Bookmark{}}
}

func (s *fakeStore) ToggleBookmark(b *storage.Bookmark) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bookmarks[b.Location]; ok {
		delete(s.bookmarks, b.Location)
		return false, nil
	}
	s.bookmarks[b.Location] = b
	return true, nil
}

func (s *fakeStore) IsBookmarked(location string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.bookmarks[location]
	return ok
}

func (s *fakeStore) ListBookmarks() ([]*storage.Bookmark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*storage.Bookmark, 0, len(s.bookmarks))
	for _, b := range s.bookmarks {
		out = append(out, b)
	}
	return out, nil
}

func (s *fakeStore) DeleteBookmark(location string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.bookmarks, location)
	return nil
}

func (s *fakeStore) SetLastLocation(location string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = location
	return nil
}

func (s *fakeStore) lastLocation() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

type fakeOpener struct {
	opened []string
}

func (o *fakeOpener) Open(link string) error {
	o.opened = append(o.opened, link)
	return nil
}

func newTestApp(t *testing.T, client ContentAPI, store BookmarkStore) *App {
	t.Helper()
	cfg := config.TestConfig()
	app := NewApp(context.Background(), client, store, &fakeOpener{}, cfg)
	app.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	app.resize(120, 40)
	return app
}

// drain runs cmd and every command it batches, returning the produced
// messages. Commands that block (ticks, cursor blinks) are abandoned.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(200 * time.Millisecond):
		return nil
	}

	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// pump feeds the messages produced by cmd back into the app until no
// more follow.
func pump(a *App, cmd tea.Cmd) {
	queue := drain(cmd)
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]
		_, next := a.Update(msg)
		queue = append(queue, drain(next)...)
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(a *App, msg tea.KeyMsg) tea.Cmd {
	_, cmd := a.Update(msg)
	return cmd
}

package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dentalink/dentalink/internal/api"
	"github.com/dentalink/dentalink/internal/config"
)

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestKeyHandler_QuitKeys(t *testing.T) {
	app := newTestApp(t, &fakeAPI{}, nil)
	app.navigate("/articles", false)

	assert.True(t, isQuit(press(app, keyRunes("q"))))
	assert.True(t, isQuit(press(app, tea.KeyMsg{Type: tea.KeyCtrlC})))
}

func TestKeyHandler_SearchTypingSubmitsEachChange(t *testing.T) {
	client := &fakeAPI{articles: sampleArticles(1)}
	app := newTestApp(t, client, nil)
	pump(app, app.navigate("/articles", false))
	before := len(client.articleCalls)

	press(app, keyRunes("/"))
	require.True(t, app.articles.search.Focused())

	// "q" is text while the search box has focus.
	for _, r := range "qa" {
		pump(app, press(app, keyRunes(string(r))))
	}
	assert.Equal(t, ViewArticles, app.view)

	client.mu.Lock()
	calls := client.articleCalls[before:]
	client.mu.Unlock()
	require.Len(t, calls, 2)
	assert.Equal(t, "q", calls[0].Search)
	assert.Equal(t, "qa", calls[1].Search)
	assert.Equal(t, "/articles?search=qa", app.location)

	// Whitespace does not change the normalised query, so nothing is sent.
	pump(app, press(app, tea.KeyMsg{Type: tea.KeySpace}))
	client.mu.Lock()
	assert.Len(t, client.articleCalls[before:], 2)
	client.mu.Unlock()

	press(app, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, app.articles.search.Focused())
	assert.Equal(t, ViewArticles, app.view, "esc leaves the search box, not the page")
}

func TestKeyHandler_CustomModifier(t *testing.T) {
	cfg := config.TestConfig()
	cfg.Keys.Modifier = "alt"
	app := NewApp(context.Background(), &fakeAPI{}, nil, nil, cfg)
	var copied []string
	app.copy = func(s string) error {
		copied = append(copied, s)
		return nil
	}
	app.navigate("/research", false)

	pump(app, press(app, tea.KeyMsg{Type: tea.KeyCtrlY}))
	assert.Empty(t, copied)

	pump(app, press(app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}, Alt: true}))
	assert.Equal(t, []string{"https://dental.test/research"}, copied)
}

func TestKeyHandler_Goto(t *testing.T) {
	client := &fakeAPI{papers: map[string]api.ResearchPaper{"7": {ID: "7", Title: "Paper"}}}
	app := newTestApp(t, client, nil)
	app.navigate("/", false)

	press(app, keyRunes("g"))
	require.Equal(t, ViewGoto, app.view)

	// Typing "h" must not jump home while the input is focused.
	app.gotoInput.SetValue("")
	press(app, keyRunes("h"))
	assert.Equal(t, ViewGoto, app.view)

	app.gotoInput.SetValue("/research/7")
	pump(app, press(app, tea.KeyMsg{Type: tea.KeyEnter}))
	assert.Equal(t, ViewResearchDetail, app.view)
	assert.Equal(t, "/research/7", app.location)

	press(app, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, "/", app.location)
}

func TestKeyHandler_GotoCancel(t *testing.T) {
	app := newTestApp(t, &fakeAPI{}, nil)
	app.navigate("/articles", false)

	press(app, keyRunes("g"))
	press(app, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ViewArticles, app.view)
	assert.Equal(t, "/articles", app.location)
}

func TestKeyHandler_JumpKeys(t *testing.T) {
	app := newTestApp(t, &fakeAPI{}, nil)
	app.navigate("/", false)

	press(app, keyRunes("a"))
	assert.Equal(t, ViewArticles, app.view)
	press(app, keyRunes("r"))
	assert.Equal(t, ViewResearch, app.view)
	press(app, keyRunes("h"))
	assert.Equal(t, ViewHome, app.view)
	assert.Len(t, app.history, 3)
}

func TestKeyHandler_CardCursorAndOpen(t *testing.T) {
	client := &fakeAPI{articles: sampleArticles(4)}
	app := newTestApp(t, client, nil)
	pump(app, app.navigate("/articles", false))

	// Cards run right to left: left arrow moves to the next card.
	press(app, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 1, app.articles.cursor)
	press(app, tea.KeyMsg{Type: tea.KeyRight})
	press(app, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 0, app.articles.cursor)

	press(app, tea.KeyMsg{Type: tea.KeyLeft})
	press(app, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ViewArticleDetail, app.view)
	assert.Equal(t, "/articles/2", app.location)
}

func TestKeyHandler_HelpPerView(t *testing.T) {
	app := newTestApp(t, &fakeAPI{}, nil)

	views := []View{ViewHome, ViewArticles, ViewResearch, ViewArticleDetail, ViewResearchDetail, ViewBookmarks, ViewGoto, ViewNotFound}
	for _, v := range views {
		app.view = v
		assert.NotEmpty(t, app.keyHandler.HelpForCurrentView(), v.String())
	}
}

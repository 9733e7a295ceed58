package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"github.com/dentalink/dentalink/internal/api"
	"github.com/dentalink/dentalink/internal/debuglog"
	"github.com/dentalink/dentalink/internal/listing"
	"github.com/dentalink/dentalink/internal/search"
)

const findLimit = 5

type articleDetail struct {
	gen     uint64
	id      string
	loading bool
	found   bool
	article api.Article
	author  api.Author
	related []api.Article

	finder  search.Finder
	find    textinput.Model
	finding bool
	hits    []search.Hit
}

func newArticleDetail() *articleDetail {
	fi := textinput.New()
	fi.Placeholder = "ابحث في المقال..."
	fi.Prompt = "› "
	return &articleDetail{find: fi}
}

type researchDetail struct {
	gen     uint64
	id      string
	loading bool
	found   bool
	paper   api.ResearchPaper
}

type articleLoadedMsg struct {
	gen     uint64
	id      string
	article api.Article
	author  api.Author
	related []api.Article
	finder  search.Finder
	err     error
}

type researchLoadedMsg struct {
	gen   uint64
	id    string
	paper api.ResearchPaper
	err   error
}

// loadArticle fetches the article and, concurrently, its related list.
// The author profile needs the article's author name so it follows the
// article fetch. Related and author are best effort.
func (a *App) loadArticle(id string) tea.Cmd {
	d := a.article
	d.gen++
	d.id = id
	d.loading = true
	d.found = false
	d.closeFinder()

	gen := d.gen
	ctx := a.ctx
	client := a.api
	limit := a.config.Listing.RelatedLimit

	return func() tea.Msg {
		msg := articleLoadedMsg{gen: gen, id: id}
		log := debuglog.WithFields(map[string]any{"article": id, "gen": gen})

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			art, err := client.Article(gctx, id)
			if err != nil {
				return wrapErr("loading article", err)
			}
			msg.article = art
			msg.author = client.Author(gctx, art.Author)
			msg.finder = search.NewFinder(art.Title, art.Content)
			return nil
		})
		g.Go(func() error {
			related, err := client.RelatedArticles(gctx, id, limit)
			if err != nil {
				log.Warnf("related articles unavailable: %v", err)
				return nil
			}
			msg.related = related
			return nil
		})

		if err := g.Wait(); err != nil {
			log.Warnf("%v", err)
			msg.err = err
			if msg.finder != nil {
				_ = msg.finder.Close()
				msg.finder = nil
			}
		}
		return msg
	}
}

func (a *App) applyArticle(msg articleLoadedMsg) {
	d := a.article
	if msg.gen != d.gen {
		if msg.finder != nil {
			_ = msg.finder.Close()
		}
		return
	}
	d.loading = false
	if msg.err != nil {
		d.found = false
		return
	}
	d.found = true
	d.article = msg.article
	d.author = msg.author
	d.related = msg.related
	d.finder = msg.finder
	a.renderArticle()
	a.viewport.GotoTop()
}

func (d *articleDetail) closeFinder() {
	if d.finder != nil {
		_ = d.finder.Close()
		d.finder = nil
	}
	d.finding = false
	d.hits = nil
	d.find.Blur()
	d.find.SetValue("")
}

// nextLocation is the first related article, else the article listing.
func (d *articleDetail) nextLocation() string {
	if len(d.related) > 0 {
		return listing.ArticleLocation(d.related[0].ID)
	}
	return "/articles"
}

func (a *App) renderArticle() {
	d := a.article
	if !d.found {
		return
	}
	a.viewport.SetContent(a.renderMarkdown(articleMarkdown(d.article, d.author, d.related, a.cardFormat(a.config.Listing.SummaryLines))))
}

func articleMarkdown(art api.Article, author api.Author, related []api.Article, format listing.CardFormat) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", art.Title)

	var meta []string
	if art.Author != "" {
		meta = append(meta, art.Author)
	}
	if t, ok := art.Published(); ok {
		meta = append(meta, listing.AbsoluteDate(t))
	}
	if len(art.Tags) > 0 {
		meta = append(meta, "`"+strings.Join(art.Tags, "` `")+"`")
	}
	if len(meta) > 0 {
		fmt.Fprintf(&b, "*%s*\n\n", strings.Join(meta, " • "))
	}

	if art.Excerpt != "" {
		fmt.Fprintf(&b, "**%s**\n\n", art.Excerpt)
	}

	// Line breaks in the body are significant.
	b.WriteString(strings.ReplaceAll(strings.TrimSpace(art.Content), "\n", "  \n"))
	b.WriteString("\n\n---\n\n")

	if author.Name != "" {
		b.WriteString("## عن الكاتب\n\n")
		fmt.Fprintf(&b, "**%s**", author.Name)
		if author.Specialization != "" {
			fmt.Fprintf(&b, " (%s)", author.Specialization)
		}
		b.WriteString("\n\n")
		if author.Bio != "" {
			b.WriteString(author.Bio + "\n\n")
		}
		if author.Education != "" {
			fmt.Fprintf(&b, "- %s\n", author.Education)
		}
		if author.ExperienceYears > 0 {
			fmt.Fprintf(&b, "- %d سنوات خبرة\n", author.ExperienceYears)
		}
		if author.Location != "" {
			fmt.Fprintf(&b, "- %s\n", author.Location)
		}
		b.WriteString("\n")
	}

	if len(related) > 0 {
		b.WriteString("## مقالات ذات صلة\n\n")
		for i, r := range related {
			card := format.ArticleCard(r)
			fmt.Fprintf(&b, "%d. **%s**", i+1, card.Title)
			if card.Date != "" {
				fmt.Fprintf(&b, " (%s)", card.Date)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (a *App) viewArticleDetail(height int) string {
	d := a.article
	if d.loading {
		return renderCentered(a.width, height, renderMuted(MsgLoading))
	}
	if !d.found {
		return renderCentered(a.width, height, lipgloss.JoinVertical(
			lipgloss.Center,
			HeaderStyle.Render("المقال غير موجود"),
			"",
			renderMuted("عذراً، المقال الذي تبحث عنه غير موجود أو تم نقله."),
			"",
			renderHelp("enter: العودة إلى المقالات"),
		))
	}

	crumbs := renderMuted(truncateEnd("الرئيسية / المقالات / "+d.article.Title, a.width-2))
	if !d.finding {
		a.viewport.Height = height - 1
		return lipgloss.JoinVertical(lipgloss.Right, rtl(a.width).Render(crumbs), a.viewport.View())
	}

	panel := []string{rtl(a.width).Render(renderInputFrame(d.find.View(), d.find.Focused(), a.width-8))}
	for _, h := range d.hits {
		panel = append(panel, rtl(a.width).Render(renderMuted(truncateEnd(h.Snippet, a.width-2))))
	}
	findBlock := lipgloss.JoinVertical(lipgloss.Right, panel...)
	a.viewport.Height = height - 1 - lipgloss.Height(findBlock)
	if a.viewport.Height < 1 {
		a.viewport.Height = 1
	}
	return lipgloss.JoinVertical(lipgloss.Right, rtl(a.width).Render(crumbs), a.viewport.View(), findBlock)
}

// startFind opens the find box over the loaded article.
func (a *App) startFind() tea.Cmd {
	d := a.article
	if !d.found || d.finder == nil {
		return nil
	}
	d.finding = true
	return d.find.Focus()
}

// runFind refreshes hits for the text in the find box.
func (a *App) runFind() tea.Cmd {
	d := a.article
	if d.finder == nil {
		return nil
	}
	hits, err := d.finder.Find(d.find.Value(), findLimit)
	if err != nil {
		debuglog.Warnf("find failed: %v", err)
		d.hits = nil
		return nil
	}
	d.hits = hits
	if strings.TrimSpace(d.find.Value()) == "" {
		return nil
	}
	if len(hits) == 0 {
		return a.setStatus(MsgNoMatches, StatusWarn, statusDefaultExpiry)
	}
	return a.setStatus(MsgMatches(len(hits)), StatusInfo, statusDefaultExpiry)
}

func (a *App) loadResearch(id string) tea.Cmd {
	d := a.paper
	d.gen++
	d.id = id
	d.loading = true
	d.found = false

	gen := d.gen
	ctx := a.ctx
	client := a.api
	return func() tea.Msg {
		paper, err := client.Research(ctx, id)
		if err != nil {
			debuglog.WithFields(map[string]any{"research": id, "gen": gen}).Warnf("loading research: %v", err)
		}
		return researchLoadedMsg{gen: gen, id: id, paper: paper, err: err}
	}
}

func (a *App) applyResearch(msg researchLoadedMsg) {
	d := a.paper
	if msg.gen != d.gen {
		return
	}
	d.loading = false
	d.found = msg.err == nil
	if d.found {
		d.paper = msg.paper
		a.renderResearch()
		a.viewport.GotoTop()
	}
}

func (a *App) renderResearch() {
	if !a.paper.found {
		return
	}
	a.viewport.SetContent(a.renderMarkdown(researchMarkdown(a.paper.paper)))
}

func researchMarkdown(p api.ResearchPaper) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Title)
	if p.Journal != "" {
		fmt.Fprintf(&b, "**المجلة:** %s\n\n", p.Journal)
	}
	if len(p.Authors) > 0 {
		fmt.Fprintf(&b, "**المؤلفون:** %s\n\n", listing.JoinAuthors(p.Authors))
	}
	if t, ok := p.Published(); ok {
		fmt.Fprintf(&b, "**تاريخ النشر:** %s\n\n", listing.AbsoluteDate(t))
	}
	b.WriteString("## الملخص\n\n")
	b.WriteString(strings.TrimSpace(p.Abstract))
	b.WriteString("\n")
	if p.FileURL != "" {
		fmt.Fprintf(&b, "\n---\n\n[تحميل البحث](%s)\n", p.FileURL)
	}
	return b.String()
}

func (a *App) viewResearchDetail(height int) string {
	d := a.paper
	if d.loading {
		return renderCentered(a.width, height, renderMuted(MsgLoading))
	}
	if !d.found {
		return renderCentered(a.width, height, lipgloss.JoinVertical(
			lipgloss.Center,
			HeaderStyle.Render("البحث غير موجود"),
			"",
			renderHelp("enter: العودة إلى الأبحاث"),
		))
	}
	crumbs := renderMuted(truncateEnd("الرئيسية / الأبحاث / "+d.paper.Title, a.width-2))
	a.viewport.Height = height - 1
	return lipgloss.JoinVertical(lipgloss.Right, rtl(a.width).Render(crumbs), a.viewport.View())
}

// loadJournals fills the research journal chips; failures are logged only.
func (a *App) loadJournals() tea.Cmd {
	ctx := a.ctx
	client := a.api
	return func() tea.Msg {
		journals, err := client.Journals(ctx)
		if err != nil {
			debuglog.Warnf("journals unavailable: %v", err)
			return journalsLoadedMsg{}
		}
		return journalsLoadedMsg{journals: journals}
	}
}

type journalsLoadedMsg struct {
	journals []string
}

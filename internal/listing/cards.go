package listing

import (
	"strings"
	"time"

	"github.com/dentalink/dentalink/internal/api"
)

const (
	ArticlesEmptyText = "لا توجد مقالات متاحة."
	ArticlesHintText  = "جرّب كلمات بحث أخرى أو امسح الفلاتر (ctrl+x)."
	ResearchEmptyText = "لا توجد أبحاث متطابقة"
	ResearchHintText  = "لم نتمكن من العثور على أبحاث تطابق معايير البحث. يرجى تعديل المعايير والمحاولة مرة أخرى."

	// cardTags is how many tags an article card shows.
	cardTags = 2
)

// CardFormat controls summary wrapping and the clock used for relative dates.
type CardFormat struct {
	Width int
	Lines int
	Now   func() time.Time
}

func (f CardFormat) now() time.Time {
	if f.Now != nil {
		return f.Now()
	}
	return time.Now()
}

func ArticleLocation(id api.ID) string {
	return "/articles/" + id.String()
}

func ResearchLocation(id api.ID) string {
	return "/research/" + id.String()
}

// ArticleCard builds the card for an article: excerpt summary,
// relative date, author and the first two tags.
func (f CardFormat) ArticleCard(a api.Article) Card {
	card := Card{
		Title:    a.Title,
		Summary:  Truncate(a.Excerpt, f.Width, f.Lines),
		Meta:     a.Author,
		Location: ArticleLocation(a.ID),
	}
	if t, ok := a.Published(); ok {
		card.Date = RelativeDate(t, f.now())
	}
	if len(a.Tags) > cardTags {
		card.Tags = append([]string(nil), a.Tags[:cardTags]...)
	} else {
		card.Tags = append([]string(nil), a.Tags...)
	}
	return card
}

// ResearchCard builds the card for a paper: abstract summary, absolute
// date, authors and journal.
func (f CardFormat) ResearchCard(r api.ResearchPaper) Card {
	card := Card{
		Title:    r.Title,
		Summary:  Truncate(r.Abstract, f.Width, f.Lines),
		Meta:     JoinAuthors(r.Authors),
		Location: ResearchLocation(r.ID),
	}
	if t, ok := r.Published(); ok {
		card.Date = AbsoluteDate(t)
	}
	if r.Journal != "" {
		card.Tags = []string{r.Journal}
	}
	return card
}

// JoinAuthors joins names with the Arabic comma.
func JoinAuthors(authors []string) string {
	return strings.Join(authors, "، ")
}

package api

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// ID accepts both numeric and string identifiers from the API.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

type Article struct {
	ID              ID       `json:"id"`
	Title           string   `json:"title"`
	Excerpt         string   `json:"excerpt"`
	Content         string   `json:"content"`
	CoverImage      string   `json:"cover_image"`
	PublicationDate string   `json:"publication_date"`
	Author          string   `json:"author"`
	Tags            []string `json:"tags"`
}

// Published parses PublicationDate; ok is false when the value is missing or unparseable.
func (a Article) Published() (time.Time, bool) {
	return ParseDate(a.PublicationDate)
}

type ResearchPaper struct {
	ID              ID       `json:"id"`
	Title           string   `json:"title"`
	Abstract        string   `json:"abstract"`
	PublicationDate string   `json:"publication_date"`
	Authors         []string `json:"authors"`
	FileURL         string   `json:"file_url"`
	Journal         string   `json:"journal"`
}

func (r ResearchPaper) Published() (time.Time, bool) {
	return ParseDate(r.PublicationDate)
}

type Author struct {
	Name            string `json:"name"`
	Bio             string `json:"bio"`
	Image           string `json:"image"`
	Specialization  string `json:"specialization"`
	ExperienceYears int    `json:"experience_years"`
	Education       string `json:"education"`
	Location        string `json:"location"`
}

// PlaceholderAuthor is shown whenever an author profile cannot be loaded.
func PlaceholderAuthor(name string) Author {
	return Author{
		Name:            name,
		Bio:             "طبيب أسنان متخصص ومؤلف في مجال طب الأسنان",
		Image:           "https://images.pexels.com/photos/5327585/pexels-photo-5327585.jpeg?auto=compress&cs=tinysrgb&w=150&h=150&dpr=2",
		Specialization:  "طب الأسنان العام",
		ExperienceYears: 5,
		Education:       "بكالوريوس طب وجراحة الأسنان",
		Location:        "المملكة العربية السعودية",
	}
}

// Result is one page of a list endpoint.
type Result[T any] struct {
	Items []T
	Total int
}

// ArticleParams are the list filters for GET /articles.
type ArticleParams struct {
	Tag    string
	Search string
	Limit  int
	Page   int
}

// ResearchParams are the list filters for GET /research.
type ResearchParams struct {
	Journal string
	Search  string
	Limit   int
	Page    int
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate understands the ISO forms the API emits, plus unix seconds.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(secs, 0).UTC(), true
	}
	return time.Time{}, false
}

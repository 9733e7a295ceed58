package listing

import (
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Query is an immutable snapshot of what a listing view asks for.
// An empty Filter means no filter is selected.
type Query struct {
	Search string
	Filter string
	Limit  int
	Page   int
}

// Active reports whether the user has narrowed the listing.
func (q Query) Active() bool {
	return q.Search != "" || q.Filter != ""
}

// NormalizeSearch NFC-normalises text, collapses runs of whitespace and
// trims it. Whitespace-only input becomes "".
func NormalizeSearch(text string) string {
	return strings.Join(strings.Fields(norm.NFC.String(text)), " ")
}

// QueryState holds the current Query of one listing view and mirrors it
// to a location such as /articles?tag=orthodontics&search=تقويم.
// Every setter reports whether the query changed; an unchanged query
// must not trigger a fetch.
type QueryState struct {
	path  string
	param string
	q     Query
}

// NewQueryState starts an unfiltered first page. param is the query-string
// key of the filter ("tag" for articles, "journal" for research).
func NewQueryState(path, param string, limit int) *QueryState {
	return &QueryState{
		path:  path,
		param: param,
		q:     Query{Limit: limit, Page: 1},
	}
}

func (s *QueryState) Query() Query {
	return s.q
}

func (s *QueryState) Path() string {
	return s.path
}

func (s *QueryState) FilterParam() string {
	return s.param
}

func (s *QueryState) set(next Query) bool {
	if next == s.q {
		return false
	}
	s.q = next
	return true
}

// SetSearchText replaces the search text. Any change returns to page 1.
func (s *QueryState) SetSearchText(text string) bool {
	next := s.q
	next.Search = NormalizeSearch(text)
	if next.Search != s.q.Search {
		next.Page = 1
	}
	return s.set(next)
}

// SetFilterValue selects value, or clears the filter when value is "".
func (s *QueryState) SetFilterValue(value string) bool {
	next := s.q
	next.Filter = strings.TrimSpace(value)
	if next.Filter != s.q.Filter {
		next.Page = 1
	}
	return s.set(next)
}

// ToggleFilter selects value; selecting the already selected value clears it.
func (s *QueryState) ToggleFilter(value string) bool {
	if strings.TrimSpace(value) == s.q.Filter {
		return s.SetFilterValue("")
	}
	return s.SetFilterValue(value)
}

func (s *QueryState) SetPage(page int) bool {
	if page < 1 {
		page = 1
	}
	next := s.q
	next.Page = page
	return s.set(next)
}

// Clear removes both search and filter.
func (s *QueryState) Clear() bool {
	return s.set(Query{Limit: s.q.Limit, Page: 1})
}

// Location serialises the query. search and the filter param appear only
// when set, page only past the first. The page size is not part of a link.
func (s *QueryState) Location() string {
	v := url.Values{}
	if s.q.Search != "" {
		v.Set("search", s.q.Search)
	}
	if s.q.Filter != "" {
		v.Set(s.param, s.q.Filter)
	}
	if s.q.Page > 1 {
		v.Set("page", strconv.Itoa(s.q.Page))
	}
	if len(v) == 0 {
		return s.path
	}
	return s.path + "?" + EncodeValues(v)
}

// ParseLocation builds a QueryState from a deep link. Unknown parameters
// are ignored; a missing or malformed page means page 1.
func ParseLocation(location, param string, limit int) *QueryState {
	path, values := SplitLocation(location)
	s := NewQueryState(path, param, limit)
	s.q.Search = NormalizeSearch(values.Get("search"))
	s.q.Filter = strings.TrimSpace(values.Get(param))
	if page, err := strconv.Atoi(values.Get("page")); err == nil && page > 1 {
		s.q.Page = page
	}
	return s
}

// SplitLocation separates a location into its cleaned path and query values.
func SplitLocation(location string) (string, url.Values) {
	location = strings.TrimSpace(location)
	path, raw, _ := strings.Cut(location, "?")
	path = "/" + strings.Trim(path, "/")
	// ParseQuery keeps the pairs it could decode.
	values, _ := url.ParseQuery(raw)
	return path, values
}

// EncodeValues is url.Values.Encode with spaces written as %20.
func EncodeValues(v url.Values) string {
	return strings.ReplaceAll(v.Encode(), "+", "%20")
}

package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryState_Defaults(t *testing.T) {
	s := NewQueryState("/articles", "tag", 24)

	q := s.Query()
	assert.Equal(t, Query{Limit: 24, Page: 1}, q)
	assert.False(t, q.Active())
	assert.Equal(t, "/articles", s.Location())
}

func TestQueryState_WhitespaceSearchIsAbsent(t *testing.T) {
	s := NewQueryState("/articles", "tag", 12)

	assert.False(t, s.SetSearchText("   \t "), "whitespace-only search must not change the query")
	assert.Equal(t, "", s.Query().Search)
	assert.Equal(t, "/articles", s.Location())
}

func TestQueryState_EmptyQueryIdempotent(t *testing.T) {
	s := NewQueryState("/research", "journal", 0)
	before := s.Query()

	assert.False(t, s.SetSearchText(""))
	assert.False(t, s.SetFilterValue(""))
	assert.False(t, s.Clear())
	assert.Equal(t, before, s.Query())
}

func TestQueryState_SearchNormalised(t *testing.T) {
	s := NewQueryState("/articles", "tag", 12)

	// "e" + combining acute composes to a single rune under NFC.
	require.True(t, s.SetSearchText("  cafe\u0301   implants "))
	assert.Equal(t, "caf\u00e9 implants", s.Query().Search)
	assert.False(t, s.SetSearchText("caf\u00e9 implants"), "equivalent text is not a change")
}

func TestQueryState_SingleSelectFilter(t *testing.T) {
	s := NewQueryState("/articles", "tag", 12)

	require.True(t, s.ToggleFilter("implants"))
	assert.Equal(t, "implants", s.Query().Filter)

	require.True(t, s.ToggleFilter("orthodontics"))
	assert.Equal(t, "orthodontics", s.Query().Filter, "selecting another value replaces the selection")

	require.True(t, s.ToggleFilter("orthodontics"))
	assert.Equal(t, "", s.Query().Filter, "selecting the selected value clears it")
}

func TestQueryState_Clear(t *testing.T) {
	s := NewQueryState("/articles", "tag", 12)
	s.SetSearchText("زراعة")
	s.SetFilterValue("implants")
	s.SetPage(3)

	require.True(t, s.Clear())
	assert.Equal(t, Query{Limit: 12, Page: 1}, s.Query())
	assert.Equal(t, "/articles", s.Location())
}

func TestQueryState_EditResetsPage(t *testing.T) {
	s := NewQueryState("/research", "journal", 0)
	s.SetPage(4)

	require.True(t, s.SetSearchText("caries"))
	assert.Equal(t, 1, s.Query().Page)

	s.SetPage(2)
	require.True(t, s.SetFilterValue("Journal A"))
	assert.Equal(t, 1, s.Query().Page)
}

func TestQueryState_LocationRoundTrip(t *testing.T) {
	s := NewQueryState("/articles", "tag", 24)
	s.SetSearchText("زراعة")
	s.SetFilterValue("implants")

	loc := s.Location()
	assert.Contains(t, loc, "tag=implants")
	assert.Contains(t, loc, "search=")

	parsed := ParseLocation(loc, "tag", 24)
	assert.Equal(t, s.Query(), parsed.Query())
	assert.Equal(t, "/articles", parsed.Path())
	assert.Equal(t, loc, parsed.Location())
}

func TestQueryState_LocationParams(t *testing.T) {
	tests := []struct {
		name   string
		search string
		filter string
		page   int
		want   string
	}{
		{"nothing", "", "", 1, "/research"},
		{"search only", "caries", "", 1, "/research?search=caries"},
		{"filter with space", "", "Journal A", 1, "/research?journal=Journal%20A"},
		{"second page", "", "", 2, "/research?page=2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewQueryState("/research", "journal", 10)
			s.SetSearchText(tt.search)
			s.SetFilterValue(tt.filter)
			s.SetPage(tt.page)
			assert.Equal(t, tt.want, s.Location())
			assert.NotContains(t, s.Location(), "limit")
		})
	}
}

func TestParseLocation(t *testing.T) {
	s := ParseLocation("articles/?tag=implants&search=%D8%B2%D8%B1%D8%A7%D8%B9%D8%A9&page=x&foo=bar", "tag", 12)

	assert.Equal(t, "/articles", s.Path())
	assert.Equal(t, Query{Search: "زراعة", Filter: "implants", Limit: 12, Page: 1}, s.Query())

	s = ParseLocation("/research?journal=Journal+A&page=3", "journal", 0)
	assert.Equal(t, "Journal A", s.Query().Filter)
	assert.Equal(t, 3, s.Query().Page)
}

func TestSplitLocation(t *testing.T) {
	path, values := SplitLocation("")
	assert.Equal(t, "/", path)
	assert.Empty(t, values)

	path, values = SplitLocation("/articles/42")
	assert.Equal(t, "/articles/42", path)
	assert.Empty(t, values)

	path, values = SplitLocation("/articles?tag=a;b&search=x")
	assert.Equal(t, "/articles", path)
	assert.Equal(t, "x", values.Get("search"))
}

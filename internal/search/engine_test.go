package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleContent = `زراعة الأسنان حل دائم لتعويض الأسنان المفقودة.

تقويم الأسنان الشفاف مناسب للبالغين الذين يرغبون في علاج غير ملحوظ.

Brushing twice a day prevents caries and gum disease.`

func TestParagraphs(t *testing.T) {
	ps := Paragraphs("  عنوان المقال ", "first\r\n\r\nsecond   line\nwrapped\n\n\n\n  ")
	assert.Equal(t, []string{"عنوان المقال", "first", "second line wrapped"}, ps)

	assert.Empty(t, Paragraphs("", "   "))
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"hello", "world"}, tokenize("Hello, World! a"))
	// Diacritics are removed so vocalised and plain spellings match.
	assert.Equal(t, []string{"طب"}, tokenize("طِبّ"))
	assert.Empty(t, tokenize("a b c"))
}

func TestScanEngine_Find(t *testing.T) {
	e := NewScanEngine(Paragraphs("", sampleContent))

	hits, err := e.Find("تقويم", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, 1, hits[0].Paragraph)
	assert.Contains(t, hits[0].Snippet, "تقويم")

	hits, err = e.Find("الأسنان", 10)
	require.NoError(t, err)
	assert.Len(t, hits, 2)

	hits, err = e.Find("CARIES", 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, 2, hits[0].Paragraph)
}

func TestScanEngine_ShortQueries(t *testing.T) {
	e := NewScanEngine(Paragraphs("", sampleContent))

	for _, q := range []string{"", "a", "   "} {
		hits, err := e.Find(q, 10)
		assert.NoError(t, err)
		assert.NotNil(t, hits)
		assert.Empty(t, hits, "short queries should return empty results")
	}
}

func TestBleveEngine_Find(t *testing.T) {
	f, err := NewBleveEngine(Paragraphs("", sampleContent))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	stats, ok := f.(DebugStatser)
	require.True(t, ok)
	n, err := stats.DocCount()
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	hits, err := f.Find("زراعة", 10)
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Equal(t, 0, hits[0].Paragraph)

	hits, err = f.Find("caries", 10)
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Equal(t, 2, hits[0].Paragraph)

	hits, err = f.Find("x", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestNewFinder(t *testing.T) {
	f := NewFinder("تقويم الأسنان", sampleContent)
	t.Cleanup(func() { _ = f.Close() })

	hits, err := f.Find("caries", 5)
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	// Title is paragraph 0, so content paragraphs shift by one.
	assert.Equal(t, 3, hits[0].Paragraph)
}

func TestFindBestSnippet(t *testing.T) {
	assert.Equal(t, "", findBestSnippet("", []string{"x"}, 40))
	assert.Equal(t, "short text", findBestSnippet("short text", []string{"short"}, 160))

	long := "alpha beta gamma delta epsilon zeta eta theta iota kappa lambda mu nu xi omicron pi rho sigma tau upsilon"
	snippet := findBestSnippet(long, []string{"sigma"}, 40)
	assert.Contains(t, snippet, "sigma")
}

package search

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"

	"github.com/dentalink/dentalink/internal/debuglog"
)

// NewFinder indexes the article with bleve and falls back to a plain
// scan when the index cannot be built.
func NewFinder(title, content string) Finder {
	paragraphs := Paragraphs(title, content)
	f, err := NewBleveEngine(paragraphs)
	if err != nil {
		debuglog.Warnf("search: falling back to scan finder: %v", err)
		return NewScanEngine(paragraphs)
	}
	return f
}

// ScanEngine scores paragraphs directly without building an index.
type ScanEngine struct {
	paragraphs []string
}

func NewScanEngine(paragraphs []string) *ScanEngine {
	return &ScanEngine{paragraphs: paragraphs}
}

func (e *ScanEngine) Find(query string, limit int) ([]Hit, error) {
	if len(strings.TrimSpace(query)) < 2 {
		return []Hit{}, nil
	}

	terms := tokenize(query)
	if len(terms) == 0 {
		return []Hit{}, nil
	}

	hits := []Hit{}
	for i, p := range e.paragraphs {
		if score := scoreField(p, terms, 1.0); score > 0 {
			hits = append(hits, Hit{
				Paragraph: i,
				Snippet:   findBestSnippet(p, terms, 160),
				Score:     score,
			})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})

	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

func (e *ScanEngine) Close() error { return nil }

// scoreField calculates relevance score for a field
func scoreField(text string, terms []string, weight float64) float64 {
	if text == "" {
		return 0
	}

	lower := strings.ToLower(text)
	words := tokenize(text)
	if len(words) == 0 {
		return 0
	}

	var score float64
	matchedTerms := 0

	for _, term := range terms {
		// Exact phrase match (highest score)
		if strings.Contains(lower, term) {
			score += 2.0
			matchedTerms++
		}

		for _, word := range words {
			switch {
			case word == term:
				score += 1.5
				matchedTerms++
			case strings.HasPrefix(word, term) || strings.HasSuffix(word, term):
				score += 1.0
				matchedTerms++
			case strings.Contains(word, term):
				score += 0.5
				matchedTerms++
			}
		}
	}

	if len(terms) > 1 && matchedTerms > 1 {
		score *= 1.0 + float64(matchedTerms)/float64(len(terms))
	}

	tf := float64(matchedTerms) / float64(len(words))
	score *= (1.0 + math.Log(1.0+tf))

	return score * weight
}

// findBestSnippet finds the most relevant text snippet containing search terms
func findBestSnippet(text string, terms []string, maxWidth int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	windowSize := maxWidth / 8 // Approximate words in snippet
	if windowSize >= len(words) {
		return runewidth.Truncate(text, maxWidth, "…")
	}

	bestScore := 0.0
	bestStart := 0
	for i := 0; i <= len(words)-windowSize; i++ {
		windowText := strings.ToLower(strings.Join(words[i:i+windowSize], " "))
		score := 0.0
		for _, term := range terms {
			if strings.Contains(windowText, term) {
				score += 1.0
			}
		}
		if score > bestScore {
			bestScore = score
			bestStart = i
		}
	}

	snippet := strings.Join(words[bestStart:bestStart+windowSize], " ")
	return runewidth.Truncate(snippet, maxWidth, "…")
}

// tokenize breaks text into lower-cased terms, skipping single characters.
// Arabic diacritics (marks) are dropped.
func tokenize(text string) []string {
	var terms []string
	current := strings.Builder{}
	runes := 0

	flush := func() {
		if runes > 1 {
			terms = append(terms, current.String())
		}
		current.Reset()
		runes = 0
	}

	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			current.WriteRune(unicode.ToLower(r))
			runes++
		case unicode.Is(unicode.Mn, r):
		default:
			flush()
		}
	}
	flush()

	return terms
}

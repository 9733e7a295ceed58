package search

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/lang/ar"
	"github.com/blevesearch/bleve/v2/mapping"
	bleveQuery "github.com/blevesearch/bleve/v2/search/query"

	"github.com/dentalink/dentalink/internal/debuglog"
)

type bleveEngine struct {
	idx        bleve.Index
	paragraphs []string
}

// NewBleveEngine builds an in-memory index over paragraphs using the
// Arabic analyzer (normalisation, stop words, light stemming).
func NewBleveEngine(paragraphs []string) (Finder, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("creating index: %w", err)
	}

	batch := idx.NewBatch()
	for i, p := range paragraphs {
		if err := batch.Index(docID(i), map[string]any{"text": p}); err != nil {
			idx.Close()
			return nil, fmt.Errorf("indexing paragraph %d: %w", i, err)
		}
	}
	if err := idx.Batch(batch); err != nil {
		idx.Close()
		return nil, fmt.Errorf("indexing: %w", err)
	}

	return &bleveEngine{idx: idx, paragraphs: paragraphs}, nil
}

func buildIndexMapping() mapping.IndexMapping {
	im := bleve.NewIndexMapping()
	im.DefaultAnalyzer = ar.AnalyzerName

	dm := bleve.NewDocumentMapping()

	text := bleve.NewTextFieldMapping()
	text.Analyzer = ar.AnalyzerName
	text.Store = false
	text.IncludeTermVectors = true

	dm.AddFieldMappingsAt("text", text)

	im.DefaultMapping = dm
	return im
}

func (b *bleveEngine) Find(query string, limit int) ([]Hit, error) {
	if len(strings.TrimSpace(query)) < 2 {
		return []Hit{}, nil
	}
	if limit <= 0 {
		limit = len(b.paragraphs)
	}

	// Match goes through the analyzer; prefix catches partially typed words.
	var qs []bleveQuery.Query
	for _, tok := range tokenize(query) {
		qm := bleve.NewMatchQuery(tok)
		qm.SetField("text")
		qm.SetBoost(2.0)
		qs = append(qs, qm)

		qp := bleve.NewPrefixQuery(tok)
		qp.SetField("text")
		qp.SetBoost(1.0)
		qs = append(qs, qp)
	}
	if len(qs) == 0 {
		return []Hit{}, nil
	}

	req := bleve.NewSearchRequestOptions(bleve.NewDisjunctionQuery(qs...), limit, 0, false)
	res, err := b.idx.Search(req)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}

	terms := tokenize(query)
	out := make([]Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		i, convErr := strconv.Atoi(strings.TrimPrefix(h.ID, "p:"))
		if convErr != nil || i < 0 || i >= len(b.paragraphs) {
			debuglog.Warnf("search: unexpected hit id %q", h.ID)
			continue
		}
		out = append(out, Hit{
			Paragraph: i,
			Snippet:   findBestSnippet(b.paragraphs[i], terms, 160),
			Score:     h.Score,
		})
	}
	return out, nil
}

// DocCount reports total documents in the index.
func (b *bleveEngine) DocCount() (int, error) {
	n, err := b.idx.DocCount()
	return int(n), err
}

func (b *bleveEngine) Close() error {
	return b.idx.Close()
}

func docID(i int) string { return "p:" + strconv.Itoa(i) }

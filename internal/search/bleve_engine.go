package search

import (
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	bleveQuery "github.com/blevesearch/bleve/v2/search/query"

	"github.com/pders01/castdex/internal/storage"
)

// BleveIndex is an in-memory bleve index over full episode records.
type BleveIndex struct {
	idx    bleve.Index
	bySlug map[string]*storage.EpisodeDetail
}

// NewBleveIndex indexes episodes in memory. Nothing is written to disk.
func NewBleveIndex(episodes []storage.EpisodeDetail) (*BleveIndex, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("creating index: %w", err)
	}

	b := &BleveIndex{idx: idx, bySlug: make(map[string]*storage.EpisodeDetail, len(episodes))}

	batch := idx.NewBatch()
	for i := range episodes {
		ep := &episodes[i]
		b.bySlug[ep.Slug] = ep
		if err := batch.Index(ep.Slug, map[string]any{
			"slug":        ep.Slug,
			"guest":       ep.Guest,
			"title":       ep.Title,
			"keywords":    strings.Join(ep.Keywords, " "),
			"description": ep.Description,
			"transcript":  ep.Transcript,
		}); err != nil {
			idx.Close()
			return nil, fmt.Errorf("indexing %s: %w", ep.Slug, err)
		}
	}
	if err := idx.Batch(batch); err != nil {
		idx.Close()
		return nil, fmt.Errorf("writing index batch: %w", err)
	}
	return b, nil
}

func buildIndexMapping() mapping.IndexMapping {
	im := bleve.NewIndexMapping()
	im.DefaultAnalyzer = standard.Name

	dm := bleve.NewDocumentMapping()

	slug := bleve.NewTextFieldMapping()
	slug.Analyzer = keyword.Name
	slug.Store = true

	stored := func() *mapping.FieldMapping {
		f := bleve.NewTextFieldMapping()
		f.Analyzer = standard.Name
		f.Store = true
		return f
	}

	transcript := bleve.NewTextFieldMapping()
	transcript.Analyzer = standard.Name
	transcript.Store = false
	transcript.IncludeTermVectors = false

	dm.AddFieldMappingsAt("slug", slug)
	dm.AddFieldMappingsAt("guest", stored())
	dm.AddFieldMappingsAt("title", stored())
	dm.AddFieldMappingsAt("keywords", stored())
	dm.AddFieldMappingsAt("description", stored())
	dm.AddFieldMappingsAt("transcript", transcript)

	im.DefaultMapping = dm
	return im
}

var fieldBoosts = []struct {
	field string
	boost float64
}{
	{"title", weightTitle},
	{"guest", weightGuest},
	{"keywords", weightKeywords},
	{"description", weightDescription},
	{"transcript", weightTranscript},
}

// Search builds an OR of per-term match and prefix queries across the
// boosted fields.
func (b *BleveIndex) Search(query string, limit int) ([]Result, error) {
	if len(strings.TrimSpace(query)) < MinQueryLength {
		return []Result{}, nil
	}
	if limit <= 0 {
		limit = 10
	}

	tokens := tokenize(query)
	var qs []bleveQuery.Query
	for _, tok := range tokens {
		for _, fb := range fieldBoosts {
			mq := bleve.NewMatchQuery(tok)
			mq.SetField(fb.field)
			mq.SetBoost(fb.boost)
			qs = append(qs, mq)

			pq := bleve.NewPrefixQuery(tok)
			pq.SetField(fb.field)
			pq.SetBoost(fb.boost * 0.8)
			qs = append(qs, pq)
		}
	}
	if len(qs) == 0 {
		return []Result{}, nil
	}

	req := bleve.NewSearchRequestOptions(bleve.NewDisjunctionQuery(qs...), limit, 0, false)
	req.Fields = []string{"guest", "title"}
	res, err := b.idx.Search(req)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}

	out := make([]Result, 0, len(res.Hits))
	for _, h := range res.Hits {
		r := Result{Slug: h.ID, Score: h.Score}
		if g, ok := h.Fields["guest"].(string); ok {
			r.Guest = g
		}
		if t, ok := h.Fields["title"].(string); ok {
			r.Title = t
		}
		if ep, ok := b.bySlug[h.ID]; ok {
			r.Snippet = findBestSnippet(ep.Transcript, tokens, snippetLength)
		}
		out = append(out, r)
	}
	return out, nil
}

// DocCount reports total documents in the index.
func (b *BleveIndex) DocCount() (int, error) {
	n, err := b.idx.DocCount()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// Close releases the index.
func (b *BleveIndex) Close() error {
	return b.idx.Close()
}

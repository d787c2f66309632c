// Package search ranks episodes by how well their text, transcript
// included, matches a free-text query.
package search

// Result is one ranked episode.
type Result struct {
	Slug    string
	Guest   string
	Title   string
	Score   float64
	Snippet string
}

// Searcher defines the search API used by the CLI.
type Searcher interface {
	Search(query string, limit int) ([]Result, error)
}

// DocCounter reports how many episodes a searcher holds.
type DocCounter interface {
	DocCount() (int, error)
}

var (
	_ DocCounter = (*BleveIndex)(nil)
	_ DocCounter = (*Engine)(nil)
)

// MinQueryLength is the shortest query that is searched at all.
const MinQueryLength = 2

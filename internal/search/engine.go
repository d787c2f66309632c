package search

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/pders01/castdex/internal/debuglog"
	"github.com/pders01/castdex/internal/storage"
)

const snippetLength = 200

// Field weights shared by both engines.
const (
	weightTitle       = 4.0
	weightGuest       = 3.0
	weightKeywords    = 2.0
	weightDescription = 2.0
	weightTranscript  = 1.0
)

// Engine scores episodes by scanning them, without an index.
type Engine struct {
	episodes []storage.EpisodeDetail
}

// NewEngine creates a scanning engine over episodes.
func NewEngine(episodes []storage.EpisodeDetail) *Engine {
	return &Engine{episodes: episodes}
}

// New returns a bleve index over episodes, falling back to the scanning
// engine when the index cannot be built.
func New(episodes []storage.EpisodeDetail) Searcher {
	idx, err := NewBleveIndex(episodes)
	if err != nil {
		debuglog.Warnf("building search index failed, scanning instead: %v", err)
		return NewEngine(episodes)
	}
	return idx
}

// Search ranks episodes by relevance, highest first.
func (e *Engine) Search(query string, limit int) ([]Result, error) {
	if len(strings.TrimSpace(query)) < MinQueryLength {
		return []Result{}, nil
	}

	terms := tokenize(query)
	if len(terms) == 0 {
		return []Result{}, nil
	}

	var results []Result
	for i := range e.episodes {
		ep := &e.episodes[i]
		score := scoreEpisode(ep, terms)
		if score <= 0 {
			continue
		}
		results = append(results, Result{
			Slug:    ep.Slug,
			Guest:   ep.Guest,
			Title:   ep.Title,
			Score:   score,
			Snippet: findBestSnippet(ep.Transcript, terms, snippetLength),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// DocCount reports the number of searchable episodes.
func (e *Engine) DocCount() (int, error) {
	return len(e.episodes), nil
}

func scoreEpisode(ep *storage.EpisodeDetail, terms []string) float64 {
	return scoreField(ep.Title, terms, weightTitle) +
		scoreField(ep.Guest, terms, weightGuest) +
		scoreField(strings.Join(ep.Keywords, " "), terms, weightKeywords) +
		scoreField(ep.Description, terms, weightDescription) +
		scoreField(ep.Transcript, terms, weightTranscript)
}

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

	// Long transcripts would otherwise win on volume alone.
	tf := float64(matchedTerms) / float64(len(words))
	score *= 1.0 + math.Log(1.0+tf)

	return score * weight
}

// findBestSnippet returns the window of text containing the most terms.
func findBestSnippet(text string, terms []string, maxLength int) string {
	words := strings.Fields(text)
	if len(words) == 0 || len(terms) == 0 {
		return ""
	}

	windowSize := maxLength / 8
	if windowSize >= len(words) {
		return truncate(strings.Join(words, " "), maxLength)
	}

	bestScore := 0
	bestStart := 0
	for i := 0; i <= len(words)-windowSize; i++ {
		window := strings.ToLower(strings.Join(words[i:i+windowSize], " "))
		score := 0
		for _, term := range terms {
			if strings.Contains(window, term) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			bestStart = i
		}
	}
	if bestScore == 0 {
		return ""
	}

	return truncate(strings.Join(words[bestStart:bestStart+windowSize], " "), maxLength)
}

// tokenize breaks text into lower-cased searchable terms
func tokenize(text string) []string {
	var terms []string
	current := strings.Builder{}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			current.WriteRune(unicode.ToLower(r))
		} else if current.Len() > 0 {
			if term := current.String(); len([]rune(term)) > 1 {
				terms = append(terms, term)
			}
			current.Reset()
		}
	}

	if len([]rune(current.String())) > 1 {
		terms = append(terms, current.String())
	}

	return terms
}

// truncate limits text to maxLen runes with an ellipsis
func truncate(text string, maxLen int) string {
	r := []rune(text)
	if len(r) <= maxLen {
		return text
	}
	return string(r[:maxLen-1]) + "…"
}

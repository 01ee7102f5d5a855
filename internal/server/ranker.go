package server

import (
	"sort"
	"strings"
	"unicode"

	"github.com/sreehariX/sarcv2/internal/models"
)

// maxResults caps how many ranked matches a query returns.
const maxResults = 5

// RankedMatch is a match together with its similarity to the query.
type RankedMatch struct {
	models.Match
	Similarity float64 `json:"similarity"`
}

// Ranker scores FAQ entries against a query by lexical token overlap.
// Entries are tokenized once at construction.
type Ranker struct {
	entries []models.Match
	tokens  []map[string]struct{}
}

// NewRanker builds a ranker over the given entries.
func NewRanker(entries []models.Match) *Ranker {
	tokens := make([]map[string]struct{}, len(entries))
	for i, entry := range entries {
		tokens[i] = tokenSet(entry.Question + " " + entry.Answer)
	}
	return &Ranker{entries: entries, tokens: tokens}
}

// Rank returns entries scored against the query, best first, capped at
// maxResults. Entries with no overlap are dropped. Ties keep entry
// order, so results are stable for a given corpus.
func (r *Ranker) Rank(query string) []RankedMatch {
	queryTokens := tokenSet(query)
	if len(queryTokens) == 0 {
		return []RankedMatch{}
	}

	ranked := make([]RankedMatch, 0, len(r.entries))
	for i, entry := range r.entries {
		score := overlap(queryTokens, r.tokens[i])
		if score == 0 {
			continue
		}
		ranked = append(ranked, RankedMatch{Match: entry, Similarity: score})
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Similarity > ranked[b].Similarity
	})

	if len(ranked) > maxResults {
		ranked = ranked[:maxResults]
	}
	return ranked
}

// overlap is the fraction of query tokens present in the entry.
func overlap(query, entry map[string]struct{}) float64 {
	hits := 0
	for token := range query {
		if _, ok := entry[token]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(query))
}

func tokenSet(text string) map[string]struct{} {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	set := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		if stopwords[field] {
			continue
		}
		set[field] = struct{}{}
	}
	return set
}

// stopwords are ignored when tokenizing. Keeping the list small avoids
// dropping content words in short FAQ questions.
var stopwords = map[string]bool{
	"a": true, "an": true, "the": true, "is": true, "are": true,
	"what": true, "how": true, "do": true, "does": true, "i": true,
	"my": true, "to": true, "of": true, "in": true, "for": true,
	"can": true,
}

// ABOUTME: Fuzzy matching of command lines over sahilm/fuzzy
// ABOUTME: Best picks a single winner, preferring later items on equal score

package fuzzy

import "github.com/sahilm/fuzzy"

// Match is one fuzzy match result.
type Match struct {
	Str            string
	Index          int
	MatchedIndexes []int
	Score          int
}

// Find matches pattern against items, best score first.
func Find(pattern string, items []string) []Match {
	results := fuzzy.Find(pattern, items)
	matches := make([]Match, len(results))
	for i, r := range results {
		matches[i] = Match{
			Str:            r.Str,
			Index:          r.Index,
			MatchedIndexes: r.MatchedIndexes,
			Score:          r.Score,
		}
	}
	return matches
}

// Best returns the highest scoring item. Ties go to the item with the
// larger index, so for oldest-first lists the newest one wins.
func Best(pattern string, items []string) (Match, bool) {
	matches := Find(pattern, items)
	if len(matches) == 0 {
		return Match{}, false
	}
	best := matches[0]
	for _, m := range matches[1:] {
		if m.Score > best.Score || (m.Score == best.Score && m.Index > best.Index) {
			best = m
		}
	}
	return best, true
}

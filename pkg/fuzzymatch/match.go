// Package fuzzymatch ranks candidate names against a mistyped query.
package fuzzymatch

import (
	"sort"
	"strings"
	"unicode"
)

// FuzzyMatch is one ranked candidate.
type FuzzyMatch struct {
	Text     string
	Score    int
	Indices  []int // positions of matched characters
	Original int   // original index in the input slice
}

// FuzzyMatcher scores candidates by ordered character matches and falls
// back to edit distance for typos that break the subsequence.
type FuzzyMatcher struct {
	caseSensitive bool
	maxDistance   int
}

// NewFuzzyMatcher creates a matcher. Candidates further than maxDistance
// edits from the query are dropped unless the query is a subsequence.
func NewFuzzyMatcher(caseSensitive bool, maxDistance int) *FuzzyMatcher {
	return &FuzzyMatcher{caseSensitive: caseSensitive, maxDistance: maxDistance}
}

// Match returns the matching candidates, best first.
func (fm *FuzzyMatcher) Match(query string, candidates []string) []FuzzyMatch {
	var results []FuzzyMatch
	for i, candidate := range candidates {
		if match := fm.matchString(query, candidate, i); match != nil {
			results = append(results, *match)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// Suggest returns at most limit candidate texts, best first.
func (fm *FuzzyMatcher) Suggest(query string, candidates []string, limit int) []string {
	var out []string
	for _, m := range fm.Match(query, candidates) {
		if len(out) == limit {
			break
		}
		out = append(out, m.Text)
	}
	return out
}

func (fm *FuzzyMatcher) matchString(query, candidate string, originalIndex int) *FuzzyMatch {
	q, c := query, candidate
	if !fm.caseSensitive {
		q, c = strings.ToLower(q), strings.ToLower(c)
	}
	queryRunes, candidateRunes := []rune(q), []rune(c)

	indices, score := subsequence(queryRunes, candidateRunes)
	if indices == nil {
		dist := Distance(q, c)
		if dist > fm.maxDistance {
			return nil
		}
		// typos rank below every subsequence match
		score = -100 * dist
	} else {
		score += fm.calculateWordBoundaryBonus(candidate, indices)
	}
	score += (1000 - len(candidateRunes)) / 10

	return &FuzzyMatch{
		Text:     candidate,
		Score:    score,
		Indices:  indices,
		Original: originalIndex,
	}
}

// subsequence matches query characters in order. It returns nil indices
// when a character is missing.
func subsequence(query, candidate []rune) ([]int, int) {
	if len(query) == 0 {
		return []int{}, 0
	}
	queryIdx, score := 0, 0
	indices := []int{}
	for i, r := range candidate {
		if queryIdx == len(query) || r != query[queryIdx] {
			continue
		}
		indices = append(indices, i)
		queryIdx++
		switch {
		case queryIdx == 1 && i == 0:
			score += 100
		case queryIdx == 1:
			score += 50
		case indices[len(indices)-2] == i-1:
			score += 50
		default:
			score += 20
		}
	}
	if queryIdx < len(query) {
		return nil, 0
	}
	return indices, score
}

// calculateWordBoundaryBonus rewards matches right after a separator.
func (fm *FuzzyMatcher) calculateWordBoundaryBonus(candidate string, indices []int) int {
	bonus := 0
	candidateRunes := []rune(candidate)
	for _, idx := range indices {
		if idx == 0 {
			bonus += 10
			continue
		}
		prev := candidateRunes[idx-1]
		if unicode.IsSpace(prev) || prev == '_' || prev == '.' {
			bonus += 15
		}
	}
	return bonus
}

// Distance is the Levenshtein distance between a and b.
func Distance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}

package suggest

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"attrstore/utils"
)

// DefaultMinScore is the lowest score worth suggesting.
const DefaultMinScore = 0.5

// Candidate is a known path scored against a target.
type Candidate struct {
	Path  string
	Score float64
}

// CandidateList is sorted by score, best first.
type CandidateList []Candidate

// Score returns the similarity of two paths in [0, 1]: one minus the edit
// distance of their normalized forms over the longer length.
func Score(a, b, sep string) float64 {
	normA := NormalizePath(a, sep)
	normB := NormalizePath(b, sep)

	if normA == "" && normB == "" {
		return 1.0
	}

	maxLen := max(len([]rune(normA)), len([]rune(normB)))
	distance := levenshtein.ComputeDistance(normA, normB)

	return 1.0 - float64(distance)/float64(maxLen)
}

// Rank scores every known path against target. Paths sharing the target's
// parent get a small boost so siblings sort ahead of distant matches.
func Rank(target string, known []string, sep string) CandidateList {
	const siblingBoost = 0.05

	parent := parentOf(target, sep)
	candidates := make(CandidateList, 0, len(known))

	for _, p := range known {
		if p == target {
			continue
		}

		score := Score(target, p, sep)
		if parent != "" && parentOf(p, sep) == parent {
			score = utils.Clamp(0, score+siblingBoost, 1.0)
		}

		candidates = append(candidates, Candidate{Path: p, Score: score})
	}

	sort.Sort(candidates)

	return candidates
}

func parentOf(p, sep string) string {
	idx := strings.LastIndex(p, sep)
	if idx < 0 {
		return ""
	}

	return p[:idx]
}

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface.
// Sorts by score descending, then by path for determinism.
func (c CandidateList) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}

	return c[i].Path < c[j].Path
}

// Top returns the top n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n >= len(c) {
		return c
	}

	return c[:n]
}

// AboveThreshold returns candidates scoring at least minScore.
func (c CandidateList) AboveThreshold(minScore float64) CandidateList {
	var result CandidateList

	for _, cand := range c {
		if cand.Score >= minScore {
			result = append(result, cand)
		}
	}

	return result
}

// Paths returns the candidate paths in order.
func (c CandidateList) Paths() []string {
	out := make([]string, len(c))
	for i, cand := range c {
		out[i] = cand.Path
	}

	return out
}

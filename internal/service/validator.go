package service

import (
	"strings"
	"unicode"
)

// AnswerMatcher maps a typed answer onto one of a question's options with
// fuzzy matching support.
type AnswerMatcher struct {
	threshold float64 // Similarity threshold (0.0 - 1.0)
}

// NewAnswerMatcher creates a new AnswerMatcher.
func NewAnswerMatcher() *AnswerMatcher {
	return &AnswerMatcher{
		threshold: 0.8, // 80% similarity required
	}
}

// Match returns the option most similar to the typed answer, if any option
// reaches the threshold. Exact matches after normalization always win.
func (m *AnswerMatcher) Match(answer string, options []string) (string, bool) {
	typed := m.normalize(answer)
	if typed == "" {
		return "", false
	}

	var (
		best      string
		bestScore float64
	)
	for _, opt := range options {
		candidate := m.normalize(opt)
		if candidate == typed {
			return opt, true
		}

		if score := m.similarity(typed, candidate); score > bestScore {
			best, bestScore = opt, score
		}
	}

	if bestScore >= m.threshold {
		return best, true
	}
	return "", false
}

// normalize lowercases, drops punctuation and symbols, and collapses whitespace.
func (m *AnswerMatcher) normalize(s string) string {
	s = strings.ToLower(s)

	s = strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return -1
		}
		return r
	}, s)

	return strings.Join(strings.Fields(s), " ")
}

// similarity calculates the similarity between two strings using Levenshtein distance.
func (m *AnswerMatcher) similarity(s1, s2 string) float64 {
	distance := levenshteinDistance(s1, s2)
	maxLen := max(len([]rune(s1)), len([]rune(s2)))

	if maxLen == 0 {
		return 1.0
	}

	return 1.0 - float64(distance)/float64(maxLen)
}

// levenshteinDistance calculates the Levenshtein distance between two strings.
func levenshteinDistance(s1, s2 string) int {
	r1 := []rune(s1)
	r2 := []rune(s2)

	rows := len(r1) + 1
	cols := len(r2) + 1

	// Two rows are enough.
	prev := make([]int, cols)
	curr := make([]int, cols)

	for j := 0; j < cols; j++ {
		prev[j] = j
	}

	for i := 1; i < rows; i++ {
		curr[0] = i

		for j := 1; j < cols; j++ {
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
			}

			curr[j] = min(
				curr[j-1]+1,    // Insertion
				prev[j]+1,      // Deletion
				prev[j-1]+cost, // Substitution
			)
		}

		prev, curr = curr, prev
	}

	return prev[cols-1]
}

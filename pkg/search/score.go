package search

import (
	"math"
	"strings"
	"unicode"

	"github.com/sahilm/fuzzy"

	"github.com/rupanjan/devlog/pkg/core"
)

// Field weights of the similarity model. Content dominates, the project name
// stands in as the title field, tags contribute least.
const (
	weightContent = 0.7
	weightTitle   = 0.2
	weightTags    = 0.1

	// minDistance keeps a perfect field match from collapsing the weighted
	// product to zero; the combined distance stays comparable across entries.
	minDistance = 0.001
)

// distance computes the combined similarity distance of an entry against a
// query on the 0.0=exact .. 1.0=match-anything scale. Each field's distance
// is raised to its weight and the results multiplied, so a strong match in a
// heavy field pulls the total down the most.
func distance(entry core.LogEntry, query string) float64 {
	content := fieldDistance(query, entry.Content)
	title := fieldDistance(query, entry.Project)
	tags := fieldDistance(query, strings.Join(entry.Tags, " "))

	return math.Pow(clampDistance(content), weightContent) *
		math.Pow(clampDistance(title), weightTitle) *
		math.Pow(clampDistance(tags), weightTags)
}

func clampDistance(d float64) float64 {
	if d < minDistance {
		return minDistance
	}
	if d > 1 {
		return 1
	}
	return d
}

// fieldDistance scores a query against a single text field: the average of
// each query token's distance. An empty field matches nothing.
func fieldDistance(query, field string) float64 {
	tokens := tokenize(query)
	if len(tokens) == 0 || field == "" {
		return 1
	}

	fieldLower := strings.ToLower(field)
	words := tokenize(fieldLower)

	var total float64
	for _, token := range tokens {
		total += tokenDistance(token, fieldLower, words)
	}
	return total / float64(len(tokens))
}

// tokenDistance measures how far a single query token is from a field.
// An exact substring is distance zero. Otherwise candidate words are found
// by in-order character matching and the best one is measured by normalized
// edit distance; a token whose characters never appear in order is a miss.
func tokenDistance(token, fieldLower string, words []string) float64 {
	if strings.Contains(fieldLower, token) {
		return 0
	}

	matches := fuzzy.Find(token, words)
	if len(matches) == 0 {
		return 1
	}

	best := 1.0
	for _, m := range matches {
		w := words[m.Index]
		n := len([]rune(w))
		if l := len([]rune(token)); l > n {
			n = l
		}
		if n == 0 {
			continue
		}
		d := float64(levenshtein(token, w)) / float64(n)
		if d < best {
			best = d
		}
	}
	return best
}

// relevance computes the substring-based ranking points layered on top of
// the fuzzy distance: +10 for the full query in the content, +1 per query
// word found in the content, +5 per tag containing the query. Entries with
// an exact substring hit therefore always outrank fuzzy-only matches.
func relevance(entry core.LogEntry, query string) int {
	q := strings.ToLower(query)
	content := strings.ToLower(entry.Content)

	score := 0
	if strings.Contains(content, q) {
		score += 10
	}
	for _, word := range strings.Fields(q) {
		if strings.Contains(content, word) {
			score++
		}
	}
	for _, tag := range entry.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			score += 5
		}
	}
	return score
}

// tokenize splits text into lowercase letter/digit runs.
func tokenize(s string) []string {
	var tokens []string
	var current strings.Builder

	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			current.WriteRune(r)
		} else if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens
}

// levenshtein computes the edit distance between two strings over runes.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = minInt(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func minInt(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

package search

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/rupanjan/devlog/pkg/core"
)

// Defaults of the search engine.
const (
	DefaultThreshold = 0.4
	DefaultLimit     = 50
)

// Filters narrows the candidate set before any text matching. All populated
// filters must pass (conjunctive).
type Filters struct {
	// Project matches the project name exactly, or as a glob when the value
	// contains glob metacharacters (e.g. "web*").
	Project string
	// Author is a case-insensitive substring match.
	Author string
	// Tags is a comma-separated list; an entry matches when any requested
	// tag is present on it, case-insensitively.
	Tags string
	// After / Before bound the entry's creation time inclusively. Zero
	// values are unset.
	After  time.Time
	Before time.Time
}

// Empty reports whether no filter is populated.
func (f Filters) Empty() bool {
	return f.Project == "" && f.Author == "" && f.Tags == "" &&
		f.After.IsZero() && f.Before.IsZero()
}

// Options tunes a single search call.
type Options struct {
	// Exact keeps only case-insensitive substring hits, skipping fuzzy
	// matching entirely.
	Exact bool
	// Threshold is the similarity distance above which fuzzy candidates are
	// excluded (0.0=exact .. 1.0=match-anything). Zero or negative means
	// DefaultThreshold.
	Threshold float64
	// Limit caps the result count after ranking. Zero or negative means
	// DefaultLimit.
	Limit int
}

// Result is one ranked search hit.
type Result struct {
	Entry core.LogEntry
	// Distance is the combined similarity distance; zero for exact and
	// unranked results.
	Distance float64
	// Relevance is the substring-based ranking score.
	Relevance int
}

// Engine ranks log entries against free-text queries. Relevance is
// recomputed on every query; nothing is indexed or persisted.
type Engine struct {
	store  core.LogStore
	logger *slog.Logger
}

// NewEngine creates a search engine over the given store.
func NewEngine(store core.LogStore, logger *slog.Logger) *Engine {
	return &Engine{store: store, logger: logger}
}

// Search fetches candidates at the requested scope, applies the structured
// filters, then ranks by exact or fuzzy text match. The limit is applied
// after ranking only, so it never biases which results are considered best.
func (e *Engine) Search(ctx context.Context, query string, filters Filters, scope core.Scope, opts Options) ([]Result, error) {
	logs, err := e.store.Read(ctx, scope)
	if err != nil {
		return nil, err
	}

	if opts.Threshold <= 0 {
		opts.Threshold = DefaultThreshold
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}

	candidates := applyFilters(logs, filters)

	var results []Result
	switch {
	case query == "":
		// No text query: the filtered set, unranked, in storage order.
		results = make([]Result, 0, len(candidates))
		for _, entry := range candidates {
			results = append(results, Result{Entry: entry})
		}

	case opts.Exact:
		results = exactMatch(candidates, query)

	default:
		results = rankFuzzy(candidates, query, opts.Threshold)
		if len(results) == 0 && IsNumeric(query) {
			results = e.numericFallback(candidates, query, opts.Threshold)
		}
	}

	if e.logger != nil {
		e.logger.Debug("search complete",
			"scope", scope, "candidates", len(candidates), "results", len(results))
	}

	if len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	return results, nil
}

// numericFallback retries a purely numeric query as its words form
// ("404" -> "four hundred four"), then degrades to a plain substring check
// against both forms before declaring no results.
func (e *Engine) numericFallback(candidates []core.LogEntry, query string, threshold float64) []Result {
	words := NumberToWords(query)
	if e.logger != nil {
		e.logger.Debug("numeric query yielded no fuzzy hits, retrying", "normalized", words)
	}

	if results := rankFuzzy(candidates, words, threshold); len(results) > 0 {
		return results
	}

	var results []Result
	for _, entry := range candidates {
		if containsFold(entry, query) || containsFold(entry, words) {
			results = append(results, Result{Entry: entry, Relevance: relevance(entry, query)})
		}
	}
	return results
}

// exactMatch keeps only entries whose content contains the query as a
// case-insensitive substring, preserving storage order.
func exactMatch(candidates []core.LogEntry, query string) []Result {
	q := strings.ToLower(query)
	var results []Result
	for _, entry := range candidates {
		if strings.Contains(strings.ToLower(entry.Content), q) {
			results = append(results, Result{Entry: entry, Relevance: relevance(entry, query)})
		}
	}
	return results
}

// rankFuzzy scores every candidate against the query with the weighted
// field model, drops those beyond the threshold, and orders the rest by
// relevance points then distance. The sort is stable so ties keep storage
// order.
func rankFuzzy(candidates []core.LogEntry, query string, threshold float64) []Result {
	var results []Result
	for _, entry := range candidates {
		d := distance(entry, query)
		if d > threshold {
			continue
		}
		results = append(results, Result{
			Entry:     entry,
			Distance:  d,
			Relevance: relevance(entry, query),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Relevance != results[j].Relevance {
			return results[i].Relevance > results[j].Relevance
		}
		return results[i].Distance < results[j].Distance
	})
	return results
}

func applyFilters(logs []core.LogEntry, f Filters) []core.LogEntry {
	if f.Empty() {
		return logs
	}

	var requestedTags []string
	if f.Tags != "" {
		for _, t := range strings.Split(f.Tags, ",") {
			if t = strings.TrimSpace(t); t != "" {
				requestedTags = append(requestedTags, strings.ToLower(t))
			}
		}
	}

	var out []core.LogEntry
	for _, entry := range logs {
		if f.Project != "" && !matchProject(f.Project, entry.Project) {
			continue
		}
		if f.Author != "" && !strings.Contains(strings.ToLower(entry.Author), strings.ToLower(f.Author)) {
			continue
		}
		if len(requestedTags) > 0 && !matchAnyTag(requestedTags, entry.Tags) {
			continue
		}
		if !f.After.IsZero() && entry.ID < f.After.UnixMilli() {
			continue
		}
		if !f.Before.IsZero() && entry.ID > f.Before.UnixMilli() {
			continue
		}
		out = append(out, entry)
	}
	return out
}

// matchProject tries exact name equality first, then falls back to glob
// matching when the pattern carries metacharacters. Exact-first keeps a
// project whose literal name contains "*" or "?" addressable, since names
// default to folder basenames.
func matchProject(pattern, project string) bool {
	if pattern == project {
		return true
	}
	if !strings.ContainsAny(pattern, "*?[{") {
		return false
	}
	ok, err := doublestar.Match(pattern, project)
	return err == nil && ok
}

func matchAnyTag(requested []string, tags []string) bool {
	for _, tag := range tags {
		lower := strings.ToLower(tag)
		for _, want := range requested {
			if lower == want {
				return true
			}
		}
	}
	return false
}

func containsFold(entry core.LogEntry, needle string) bool {
	n := strings.ToLower(needle)
	if strings.Contains(strings.ToLower(entry.Content), n) {
		return true
	}
	for _, tag := range entry.Tags {
		if strings.Contains(strings.ToLower(tag), n) {
			return true
		}
	}
	return false
}

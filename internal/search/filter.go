// Package search provides the catalog table's quick-filter: an
// in-memory ranked index over display name and SKU.
package search

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	sahilm "github.com/sahilm/fuzzy"

	"github.com/mfergus/tiller/internal/domain"
)

// FilterResult is one matching row with match metadata for highlighting.
type FilterResult struct {
	Record         domain.RecordSummary
	MatchedIndexes []int // Positions into the haystack string of the row
	Score          int   // Higher is better
}

// FilterIndex implements sahilm/fuzzy.Source for zero-allocation fuzzy
// matching over the current record list. Rebuild it whenever the list
// changes; it never mutates after construction.
type FilterIndex struct {
	rows      []domain.RecordSummary
	haystacks []string // Pre-computed lowercase "name sku" per row
}

// NewFilterIndex builds an index over the given rows, in order.
func NewFilterIndex(rows []domain.RecordSummary) *FilterIndex {
	haystacks := make([]string, len(rows))
	for i, r := range rows {
		haystacks[i] = strings.ToLower(r.DisplayName + " " + r.SKU)
	}
	return &FilterIndex{rows: rows, haystacks: haystacks}
}

// String returns the haystack at index i (implements fuzzy.Source).
func (idx *FilterIndex) String(i int) string { return idx.haystacks[i] }

// Len returns the number of rows (implements fuzzy.Source).
func (idx *FilterIndex) Len() int { return len(idx.rows) }

// Filter returns the rows matching the query, best match first. An
// empty query returns every row in list order with no highlights.
func (idx *FilterIndex) Filter(query string) []FilterResult {
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		results := make([]FilterResult, len(idx.rows))
		for i, r := range idx.rows {
			results[i] = FilterResult{Record: r}
		}
		return results
	}

	matches := sahilm.FindFrom(query, idx)
	if len(matches) > 0 {
		results := make([]FilterResult, len(matches))
		for i, m := range matches {
			results[i] = FilterResult{
				Record:         idx.rows[m.Index],
				MatchedIndexes: m.MatchedIndexes,
				Score:          m.Score,
			}
		}
		return results
	}

	// Character-order matching found nothing; retry with unicode
	// folding so accented names still hit ("café" for "cafe").
	return idx.foldFilter(query)
}

func (idx *FilterIndex) foldFilter(query string) []FilterResult {
	ranks := fuzzy.RankFindNormalizedFold(query, idx.haystacks)
	sort.Slice(ranks, func(i, j int) bool {
		return ranks[i].Distance < ranks[j].Distance
	})

	results := make([]FilterResult, 0, len(ranks))
	for _, r := range ranks {
		results = append(results, FilterResult{
			Record: idx.rows[r.OriginalIndex],
			Score:  -r.Distance,
		})
	}
	return results
}

// Package search implements universal search over the library: structured
// filters from domain.Filter, fuzzy text ranking, and tag suggestions.
package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	sfuzzy "github.com/sahilm/fuzzy"

	"github.com/riordanpawley/hearth/internal/domain"
)

// Query combines the search text, structured filters and sort option
type Query struct {
	Filter *domain.Filter
	Sort   domain.Sort
}

// NewQuery returns an empty query with the default sort
func NewQuery() *Query {
	return &Query{
		Filter: domain.NewFilter(),
		Sort:   domain.DefaultSort(),
	}
}

// Text returns the search text
func (q *Query) Text() string {
	return q.Filter.SearchQuery
}

// SetText replaces the search text
func (q *Query) SetText(text string) {
	q.Filter.SearchQuery = strings.TrimSpace(text)
}

// IsActive reports whether anything narrows the results
func (q *Query) IsActive() bool {
	return q.Filter.IsActive()
}

// Clear resets filters and text; the sort option is kept
func (q *Query) Clear() {
	q.Filter.Clear()
}

// ActiveCount returns the number of active filters, tags included
func (q *Query) ActiveCount() int {
	n := len(q.Filter.Tags)
	for _, on := range []bool{
		q.Filter.FavoritesOnly,
		q.Filter.PreviouslyUsedOnly,
		q.Filter.MultipleCharactersOnly,
		q.Filter.UntaggedOnly,
		q.Filter.SearchQuery != "",
	} {
		if on {
			n++
		}
	}
	return n
}

// Summary describes the query for the status bar
func (q *Query) Summary() string {
	sortLabel := fmt.Sprintf("%s %s", q.Sort.Field, q.Sort.Arrow())
	switch n := q.ActiveCount(); n {
	case 0:
		return sortLabel
	case 1:
		return "1 filter · " + sortLabel
	default:
		return fmt.Sprintf("%d filters · %s", n, sortLabel)
	}
}

// structural returns a copy of the filter without the text part
func (q *Query) structural() *domain.Filter {
	f := *q.Filter
	f.SearchQuery = ""
	return &f
}

// Result is one match with the positions of matched runes in its title
type Result[T any] struct {
	Item           T
	MatchedIndexes []int
	Score          int
}

// Items strips match metadata from results
func Items[T any](results []Result[T]) []T {
	out := make([]T, len(results))
	for i, r := range results {
		out[i] = r.Item
	}
	return out
}

// titles implements sahilm/fuzzy.Source over item titles
type titles []string

func (t titles) String(i int) string { return t[i] }
func (t titles) Len() int            { return len(t) }

// rank orders items for the query. Without text the sort option applies.
// With text, fuzzy title matches come first (best score first), followed
// by items that only match on secondary fields, in sort order.
func rank[T any](q *Query, items []T, title func(T) string, secondary func(T) bool) []Result[T] {
	text := q.Text()
	if text == "" {
		out := make([]Result[T], len(items))
		for i, item := range items {
			out[i] = Result[T]{Item: item}
		}
		return out
	}

	src := make(titles, len(items))
	for i, item := range items {
		src[i] = title(item)
	}

	matches := sfuzzy.FindFrom(text, src)
	seen := make(map[int]bool, len(matches))
	out := make([]Result[T], 0, len(items))
	for _, m := range matches {
		seen[m.Index] = true
		out = append(out, Result[T]{
			Item:           items[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		})
	}
	for i, item := range items {
		if !seen[i] && secondary(item) {
			out = append(out, Result[T]{Item: item})
		}
	}
	return out
}

// Stories filters, sorts and ranks stories
func Stories(q *Query, stories []domain.Story) []Result[domain.Story] {
	filtered := q.structural().ApplyStories(stories)
	sorted := q.Sort.ApplyStories(filtered)
	return rank(q, sorted,
		func(s domain.Story) string { return s.Title },
		func(s domain.Story) bool { return q.Filter.MatchesStory(s) },
	)
}

// Cards filters, sorts and ranks characters or scenarios
func Cards[T domain.CardItem](q *Query, items []T) []Result[T] {
	filtered := domain.ApplyCards(q.structural(), items)
	sorted := domain.ApplyCardSort(q.Sort, filtered)
	return rank(q, sorted,
		func(item T) string { return item.CardData().Name },
		func(item T) bool { return q.Filter.MatchesCard(item.CardData()) },
	)
}

// SuggestTags returns tags whose names fuzzily contain input, closest
// first. Empty input returns every tag unchanged.
func SuggestTags(input string, tags []domain.Tag) []domain.Tag {
	input = strings.TrimSpace(input)
	if input == "" {
		return tags
	}

	names := make([]string, len(tags))
	byName := make(map[string]domain.Tag, len(tags))
	for i, t := range tags {
		names[i] = t.Name
		byName[t.Name] = t
	}

	ranks := fuzzy.RankFindFold(input, names)
	sort.Stable(ranks)

	out := make([]domain.Tag, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, byName[r.Target])
	}
	return out
}

// ResolveTag maps free text to a known tag name, case-insensitively. Input
// that is an in-order subsequence of a tag, such as an abbreviation with
// dropped letters, also resolves. Swapped or wrong letters do not.
func ResolveTag(input string, tags []domain.Tag) (string, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", false
	}
	for _, t := range tags {
		if strings.EqualFold(t.Name, input) {
			return t.Name, true
		}
	}
	if s := SuggestTags(input, tags); len(s) > 0 {
		return s[0].Name, true
	}
	return "", false
}

package domain

import (
	"strings"
	"time"
)

// TagState is the tri-state selection of a tag in the search panel
type TagState int

const (
	TagNone     TagState = iota // not selected
	TagPositive                 // item must have the tag
	TagNegative                 // item must not have the tag
)

// Next cycles None -> Positive -> Negative -> None
func (s TagState) Next() TagState {
	return (s + 1) % 3
}

func (s TagState) String() string {
	switch s {
	case TagPositive:
		return "wanted"
	case TagNegative:
		return "unwanted"
	default:
		return "none"
	}
}

// Filter represents library filtering state
type Filter struct {
	FavoritesOnly          bool
	PreviouslyUsedOnly     bool
	MultipleCharactersOnly bool // stories only
	UntaggedOnly           bool // cards only
	Tags                   map[string]TagState
	SearchQuery            string
}

// NewFilter creates a new empty filter
func NewFilter() *Filter {
	return &Filter{
		Tags: make(map[string]TagState),
	}
}

// IsActive returns true if any filter is active
func (f *Filter) IsActive() bool {
	return f.FavoritesOnly ||
		f.PreviouslyUsedOnly ||
		f.MultipleCharactersOnly ||
		f.UntaggedOnly ||
		len(f.Tags) > 0 ||
		f.SearchQuery != ""
}

// CycleTag advances the tag's state and returns the new one
func (f *Filter) CycleTag(tag string) TagState {
	next := f.Tags[tag].Next()
	if next == TagNone {
		delete(f.Tags, tag)
	} else {
		f.Tags[tag] = next
	}
	return next
}

// WantedTags returns tags that items must carry
func (f *Filter) WantedTags() []string {
	return f.tagsIn(TagPositive)
}

// UnwantedTags returns tags that items must not carry
func (f *Filter) UnwantedTags() []string {
	return f.tagsIn(TagNegative)
}

func (f *Filter) tagsIn(state TagState) []string {
	var out []string
	for tag, s := range f.Tags {
		if s == state {
			out = append(out, tag)
		}
	}
	sortStrings(out)
	return out
}

// MatchesCard returns true if the card passes all active filters
func (f *Filter) MatchesCard(c Card) bool {
	if f.FavoritesOnly && !c.IsFavorite {
		return false
	}
	if f.PreviouslyUsedOnly && c.LastUsed == nil {
		return false
	}
	if f.UntaggedOnly && len(c.Tags) > 0 {
		return false
	}

	for tag, state := range f.Tags {
		has := c.HasTag(tag)
		if state == TagPositive && !has {
			return false
		}
		if state == TagNegative && has {
			return false
		}
	}

	// Search query (case-insensitive, matches name or description)
	if f.SearchQuery != "" {
		query := strings.ToLower(f.SearchQuery)
		if !strings.Contains(strings.ToLower(c.Name), query) &&
			!strings.Contains(strings.ToLower(c.Description), query) {
			return false
		}
	}

	return true
}

// MatchesStory returns true if the story passes all active filters.
// Tag filters do not apply to stories.
func (f *Filter) MatchesStory(s Story) bool {
	if f.FavoritesOnly && !s.IsFavorite {
		return false
	}
	if f.PreviouslyUsedOnly && s.MessageCount == 0 {
		return false
	}
	if f.MultipleCharactersOnly && !s.IsGroup() {
		return false
	}

	if f.SearchQuery != "" {
		query := strings.ToLower(f.SearchQuery)
		if !strings.Contains(strings.ToLower(s.Title), query) &&
			!strings.Contains(strings.ToLower(s.CharacterNames()), query) &&
			!strings.Contains(strings.ToLower(s.ScenarioName), query) {
			return false
		}
	}

	return true
}

// ApplyCards filters a list of characters or scenarios
func ApplyCards[T CardItem](f *Filter, items []T) []T {
	if !f.IsActive() {
		return items
	}

	result := make([]T, 0, len(items))
	for _, item := range items {
		if f.MatchesCard(item.CardData()) {
			result = append(result, item)
		}
	}
	return result
}

// ApplyStories filters a list of stories
func (f *Filter) ApplyStories(stories []Story) []Story {
	if !f.IsActive() {
		return stories
	}

	result := make([]Story, 0, len(stories))
	for _, s := range stories {
		if f.MatchesStory(s) {
			result = append(result, s)
		}
	}
	return result
}

// FilterCharacters applies a CharacterFilter at time now
func FilterCharacters(filter CharacterFilter, chars []Character, now time.Time) []Character {
	if filter == FilterAll {
		return chars
	}
	result := make([]Character, 0, len(chars))
	for _, c := range chars {
		if filter.Matches(c.Card, now) {
			result = append(result, c)
		}
	}
	return result
}

// Clear resets all filters
func (f *Filter) Clear() {
	f.FavoritesOnly = false
	f.PreviouslyUsedOnly = false
	f.MultipleCharactersOnly = false
	f.UntaggedOnly = false
	f.Tags = make(map[string]TagState)
	f.SearchQuery = ""
}

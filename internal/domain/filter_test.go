package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagState_Next(t *testing.T) {
	assert.Equal(t, TagPositive, TagNone.Next())
	assert.Equal(t, TagNegative, TagPositive.Next())
	assert.Equal(t, TagNone, TagNegative.Next())
}

func TestFilter_IsActive(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Filter)
		want   bool
	}{
		{"empty", func(f *Filter) {}, false},
		{"favorites", func(f *Filter) { f.FavoritesOnly = true }, true},
		{"previously used", func(f *Filter) { f.PreviouslyUsedOnly = true }, true},
		{"multiple characters", func(f *Filter) { f.MultipleCharactersOnly = true }, true},
		{"untagged", func(f *Filter) { f.UntaggedOnly = true }, true},
		{"tag", func(f *Filter) { f.CycleTag("Fantasy") }, true},
		{"search", func(f *Filter) { f.SearchQuery = "alice" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFilter()
			tt.modify(f)
			assert.Equal(t, tt.want, f.IsActive())
		})
	}
}

func TestFilter_CycleTag(t *testing.T) {
	f := NewFilter()

	assert.Equal(t, TagPositive, f.CycleTag("Magic"))
	assert.Equal(t, []string{"Magic"}, f.WantedTags())

	assert.Equal(t, TagNegative, f.CycleTag("Magic"))
	assert.Empty(t, f.WantedTags())
	assert.Equal(t, []string{"Magic"}, f.UnwantedTags())

	assert.Equal(t, TagNone, f.CycleTag("Magic"))
	assert.False(t, f.IsActive(), "cycling back to none removes the tag")
}

func TestFilter_MatchesCard(t *testing.T) {
	now := time.Now()
	alice := Card{
		Name:        "Alice",
		Description: "A cheerful tavern keeper",
		Tags:        []string{"Fantasy", "Friendly"},
		IsFavorite:  true,
		LastUsed:    ago(now, time.Hour),
	}
	plain := Card{Name: "Nobody", Description: "No tags"}

	tests := []struct {
		name   string
		modify func(*Filter)
		card   Card
		want   bool
	}{
		{"no filter", func(f *Filter) {}, plain, true},
		{"favorites match", func(f *Filter) { f.FavoritesOnly = true }, alice, true},
		{"favorites reject", func(f *Filter) { f.FavoritesOnly = true }, plain, false},
		{"previously used reject", func(f *Filter) { f.PreviouslyUsedOnly = true }, plain, false},
		{"untagged match", func(f *Filter) { f.UntaggedOnly = true }, plain, true},
		{"untagged reject", func(f *Filter) { f.UntaggedOnly = true }, alice, false},
		{"wanted tag", func(f *Filter) { f.Tags["fantasy"] = TagPositive }, alice, true},
		{"wanted tag missing", func(f *Filter) { f.Tags["Sci-Fi"] = TagPositive }, alice, false},
		{"unwanted tag", func(f *Filter) { f.Tags["Friendly"] = TagNegative }, alice, false},
		{"search name", func(f *Filter) { f.SearchQuery = "ALI" }, alice, true},
		{"search description", func(f *Filter) { f.SearchQuery = "tavern" }, alice, true},
		{"search miss", func(f *Filter) { f.SearchQuery = "robot" }, alice, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFilter()
			tt.modify(f)
			assert.Equal(t, tt.want, f.MatchesCard(tt.card))
		})
	}
}

func TestFilter_MatchesStory(t *testing.T) {
	stories := SampleStories(time.Now())
	solo, group := stories[0], stories[1]

	f := NewFilter()
	f.MultipleCharactersOnly = true
	assert.False(t, f.MatchesStory(solo))
	assert.True(t, f.MatchesStory(group))

	f.Clear()
	f.SearchQuery = "professor"
	assert.True(t, f.MatchesStory(group), "search matches character names")

	f.SearchQuery = "magical academy"
	assert.True(t, f.MatchesStory(group), "search matches scenario name")

	f.Clear()
	f.FavoritesOnly = true
	assert.True(t, f.MatchesStory(solo))
	assert.False(t, f.MatchesStory(group))
}

func TestApplyCards(t *testing.T) {
	chars := SampleCharacters(time.Now())

	f := NewFilter()
	assert.Len(t, ApplyCards(f, chars), len(chars), "inactive filter returns everything")

	f.Tags["Fantasy"] = TagPositive
	got := ApplyCards(f, chars)
	require.NotEmpty(t, got)
	for _, c := range got {
		assert.True(t, c.HasTag("Fantasy"), c.Name)
	}
}

func TestFilterCharacters(t *testing.T) {
	now := time.Now()
	chars := SampleCharacters(now)

	favs := FilterCharacters(FilterFavorites, chars, now)
	for _, c := range favs {
		assert.True(t, c.IsFavorite)
	}

	recent := FilterCharacters(FilterRecent, chars, now)
	for _, c := range recent {
		require.NotNil(t, c.LastUsed)
	}
	assert.Less(t, len(recent), len(chars))
	assert.Len(t, FilterCharacters(FilterAll, chars, now), len(chars))
}

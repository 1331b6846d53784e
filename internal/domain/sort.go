package domain

import (
	"sort"
	"strings"
	"time"
)

// SortField represents a field to sort by
type SortField string

const (
	SortByRecent  SortField = "Recent"
	SortByCreated SortField = "Created"
	SortByName    SortField = "A-Z"
	SortByUsage   SortField = "Usage"
)

// SortFields lists the sort options in the order the search panel shows them
var SortFields = []SortField{SortByRecent, SortByCreated, SortByName, SortByUsage}

// SortOrder represents sort direction
type SortOrder int

const (
	SortAsc SortOrder = iota
	SortDesc
)

// Sort represents sorting state
type Sort struct {
	Field SortField
	Order SortOrder
}

// DefaultSort shows the most recently active items first
func DefaultSort() Sort {
	return Sort{Field: SortByRecent, Order: SortDesc}
}

// Toggle toggles the sort field or direction
// If field is different, sets new field with ascending order
// If field is same, toggles between ascending and descending
func (s *Sort) Toggle(field SortField) {
	if s.Field == field {
		if s.Order == SortAsc {
			s.Order = SortDesc
		} else {
			s.Order = SortAsc
		}
	} else {
		s.Field = field
		s.Order = SortAsc
	}
}

// Arrow returns a glyph for the current direction
func (s Sort) Arrow() string {
	if s.Order == SortAsc {
		return "↑"
	}
	return "↓"
}

// ApplyStories sorts a copy of stories
func (s Sort) ApplyStories(stories []Story) []Story {
	result := make([]Story, len(stories))
	copy(result, stories)

	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i], result[j]
		switch s.Field {
		case SortByCreated:
			return s.less(a.CreatedAt.Before(b.CreatedAt), b.CreatedAt.Before(a.CreatedAt))
		case SortByName:
			return s.lessString(a.Title, b.Title)
		case SortByUsage:
			return s.less(a.MessageCount < b.MessageCount, b.MessageCount < a.MessageCount)
		default:
			return s.less(a.UpdatedAt.Before(b.UpdatedAt), b.UpdatedAt.Before(a.UpdatedAt))
		}
	})
	return result
}

// ApplyCardSort sorts a copy of characters or scenarios
func ApplyCardSort[T CardItem](s Sort, items []T) []T {
	result := make([]T, len(items))
	copy(result, items)

	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i].CardData(), result[j].CardData()
		switch s.Field {
		case SortByCreated:
			return s.less(a.CreatedAt.Before(b.CreatedAt), b.CreatedAt.Before(a.CreatedAt))
		case SortByName:
			return s.lessString(a.Name, b.Name)
		case SortByUsage:
			return s.less(a.StoryCount < b.StoryCount, b.StoryCount < a.StoryCount)
		default:
			ta, tb := lastUsed(a), lastUsed(b)
			return s.less(ta.Before(tb), tb.Before(ta))
		}
	})
	return result
}

// less picks the comparison matching the sort order
func (s Sort) less(asc, desc bool) bool {
	if s.Order == SortAsc {
		return asc
	}
	return desc
}

func (s Sort) lessString(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	return s.less(la < lb, lb < la)
}

// lastUsed treats never-used cards as oldest
func lastUsed(c Card) time.Time {
	if c.LastUsed == nil {
		return time.Time{}
	}
	return *c.LastUsed
}

func sortTags(tags []Tag) {
	sort.Slice(tags, func(i, j int) bool {
		if tags[i].Count != tags[j].Count {
			return tags[i].Count > tags[j].Count
		}
		return tags[i].Name < tags[j].Name
	})
}

func sortStrings(s []string) {
	sort.Strings(s)
}

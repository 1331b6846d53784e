// Package domain contains the core library types for Hearth: stories,
// characters, scenarios and the tags used to find them.
package domain

import (
	"fmt"
	"strings"
	"time"
)

// Tag is a label with the number of library items that carry it
type Tag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// DisplayWithCount renders the tag as "Name (count)"
func (t Tag) DisplayWithCount() string {
	return fmt.Sprintf("%s (%d)", t.Name, t.Count)
}

// TagID derives a stable identifier from a tag name
func TagID(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

// Participant is a character taking part in a story
type Participant struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// Initials returns up to two uppercase initials for avatar placeholders
func (p Participant) Initials() string {
	fields := strings.Fields(p.Name)
	var out []rune
	for _, f := range fields {
		if len(out) == 2 {
			break
		}
		out = append(out, []rune(strings.ToUpper(f))[0])
	}
	return string(out)
}

// Role identifies who wrote a story message
type Role string

const (
	RoleNarrator  Role = "narrator"
	RoleUser      Role = "user"
	RoleCharacter Role = "character"
)

// Message is one entry in a story transcript. Content is markdown.
type Message struct {
	ID      string    `json:"id"`
	Role    Role      `json:"role"`
	Speaker string    `json:"speaker,omitempty"` // empty for the narrator
	Content string    `json:"content"`
	SentAt  time.Time `json:"sent_at"`
}

// Story is a conversation between the user's persona and one or more characters
type Story struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Characters    []Participant `json:"characters"`
	UserCharacter *Participant  `json:"user_character,omitempty"`
	LastMessage   string        `json:"last_message"`
	LastSpeaker   string        `json:"last_speaker"`
	UpdatedAt     time.Time     `json:"updated_at"`
	CreatedAt     time.Time     `json:"created_at"`
	ScenarioName  string        `json:"scenario_name,omitempty"`
	MessageCount  int           `json:"message_count"`
	IsFavorite    bool          `json:"is_favorite"`
	Messages      []Message     `json:"messages,omitempty"`
}

// IsGroup reports whether more than one character takes part
func (s Story) IsGroup() bool {
	return len(s.Characters) > 1
}

// CharacterNames joins the participating character names
func (s Story) CharacterNames() string {
	names := make([]string, len(s.Characters))
	for i, c := range s.Characters {
		names[i] = c.Name
	}
	return strings.Join(names, ", ")
}

// Append adds a message and updates the story summary fields
func (s *Story) Append(m Message) {
	s.Messages = append(s.Messages, m)
	s.MessageCount++
	s.LastMessage = m.Content
	s.LastSpeaker = m.Speaker
	if m.Role == RoleNarrator {
		s.LastSpeaker = "Narrator"
	}
	s.UpdatedAt = m.SentAt
}

// Card holds the fields shared by characters and scenarios
type Card struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Avatar      string     `json:"avatar,omitempty"`
	Tags        []string   `json:"tags"`
	IsFavorite  bool       `json:"is_favorite"`
	LastUsed    *time.Time `json:"last_used,omitempty"`
	StoryCount  int        `json:"story_count"`
	CreatedAt   time.Time  `json:"created_at"`
}

// CardData returns the card itself; Character and Scenario inherit it
func (c Card) CardData() Card {
	return c
}

// HasTag reports whether the card carries tag, ignoring case
func (c Card) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Character is a persona the user can talk with
type Character struct {
	Card
}

// Scenario is a setting a story can take place in
type Scenario struct {
	Card
}

// CardItem is implemented by every library item shown as a card
type CardItem interface {
	CardData() Card
}

// CharacterFilter selects a subset of characters
type CharacterFilter int

const (
	FilterAll CharacterFilter = iota
	FilterFavorites
	FilterRecent
)

// RecentWindow is how far back a card counts as recently used
const RecentWindow = 7 * 24 * time.Hour

func (f CharacterFilter) String() string {
	switch f {
	case FilterFavorites:
		return "Favorites"
	case FilterRecent:
		return "Recent"
	default:
		return "All"
	}
}

// Next cycles All -> Favorites -> Recent -> All
func (f CharacterFilter) Next() CharacterFilter {
	return (f + 1) % 3
}

// Matches reports whether the card passes the filter at time now
func (f CharacterFilter) Matches(c Card, now time.Time) bool {
	switch f {
	case FilterFavorites:
		return c.IsFavorite
	case FilterRecent:
		return c.LastUsed != nil && now.Sub(*c.LastUsed) <= RecentWindow
	default:
		return true
	}
}

// ViewMode controls how card collections are laid out
type ViewMode int

const (
	ViewGrid ViewMode = iota
	ViewList
)

func (v ViewMode) String() string {
	if v == ViewList {
		return "List"
	}
	return "Grid"
}

// Toggle switches between grid and list
func (v ViewMode) Toggle() ViewMode {
	if v == ViewGrid {
		return ViewList
	}
	return ViewGrid
}

// RelativeTime renders t relative to now the way library cards show it
func RelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		return plural(int(d/time.Minute), "minute") + " ago"
	case d < 24*time.Hour:
		return plural(int(d/time.Hour), "hour") + " ago"
	case d < 48*time.Hour:
		return "Yesterday"
	case d < 7*24*time.Hour:
		return plural(int(d/(24*time.Hour)), "day") + " ago"
	default:
		return plural(int(d/(7*24*time.Hour)), "week") + " ago"
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// CountTags tallies tags across items, most used first then by name
func CountTags[T CardItem](items []T) []Tag {
	counts := make(map[string]int)
	for _, item := range items {
		for _, tag := range item.CardData().Tags {
			counts[tag]++
		}
	}

	tags := make([]Tag, 0, len(counts))
	for name, n := range counts {
		tags = append(tags, Tag{ID: TagID(name), Name: name, Count: n})
	}
	sortTags(tags)
	return tags
}

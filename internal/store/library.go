package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/riordanpawley/hearth/internal/domain"
)

// ErrEmptyID is returned when saving a record without an ID
var ErrEmptyID = errors.New("record has no id")

// === Stories ===

// Stories returns every story ordered by ID
func (s *Store) Stories(ctx context.Context) ([]domain.Story, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return list[domain.Story](s, bucketStories)
}

// Story returns one story, or an error wrapping domain.ErrNotFound
func (s *Store) Story(ctx context.Context, id string) (domain.Story, error) {
	var story domain.Story
	if err := ctx.Err(); err != nil {
		return story, err
	}
	err := s.get(bucketStories, id, &story)
	return story, err
}

// SaveStory inserts or replaces a story
func (s *Store) SaveStory(ctx context.Context, story domain.Story) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if story.ID == "" {
		return &domain.StorageError{Op: "put", Bucket: string(bucketStories), Err: ErrEmptyID}
	}
	return s.set(bucketStories, story.ID, story)
}

// DeleteStory removes a story
func (s *Store) DeleteStory(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.delete(bucketStories, id)
}

// AppendMessage adds a message to a story and saves it. A blank message ID
// is filled with a fresh UUID.
func (s *Store) AppendMessage(ctx context.Context, storyID string, msg domain.Message) (domain.Story, error) {
	story, err := s.Story(ctx, storyID)
	if err != nil {
		return story, err
	}
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.SentAt.IsZero() {
		msg.SentAt = time.Now()
	}
	story.Append(msg)
	if err := s.SaveStory(ctx, story); err != nil {
		return story, err
	}
	return story, nil
}

// ToggleStoryFavorite flips a story's favorite flag and returns the new value
func (s *Store) ToggleStoryFavorite(ctx context.Context, id string) (bool, error) {
	story, err := s.Story(ctx, id)
	if err != nil {
		return false, err
	}
	story.IsFavorite = !story.IsFavorite
	return story.IsFavorite, s.SaveStory(ctx, story)
}

// === Characters ===

// Characters returns every character ordered by ID
func (s *Store) Characters(ctx context.Context) ([]domain.Character, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return list[domain.Character](s, bucketCharacters)
}

// SaveCharacter inserts or replaces a character
func (s *Store) SaveCharacter(ctx context.Context, c domain.Character) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.ID == "" {
		return &domain.StorageError{Op: "put", Bucket: string(bucketCharacters), Err: ErrEmptyID}
	}
	return s.set(bucketCharacters, c.ID, c)
}

// ToggleCharacterFavorite flips a character's favorite flag and returns the new value
func (s *Store) ToggleCharacterFavorite(ctx context.Context, id string) (bool, error) {
	var c domain.Character
	if err := s.get(bucketCharacters, id, &c); err != nil {
		return false, err
	}
	c.IsFavorite = !c.IsFavorite
	return c.IsFavorite, s.SaveCharacter(ctx, c)
}

// === Scenarios ===

// Scenarios returns every scenario ordered by ID
func (s *Store) Scenarios(ctx context.Context) ([]domain.Scenario, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return list[domain.Scenario](s, bucketScenarios)
}

// SaveScenario inserts or replaces a scenario
func (s *Store) SaveScenario(ctx context.Context, sc domain.Scenario) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if sc.ID == "" {
		return &domain.StorageError{Op: "put", Bucket: string(bucketScenarios), Err: ErrEmptyID}
	}
	return s.set(bucketScenarios, sc.ID, sc)
}

// ToggleScenarioFavorite flips a scenario's favorite flag and returns the new value
func (s *Store) ToggleScenarioFavorite(ctx context.Context, id string) (bool, error) {
	var sc domain.Scenario
	if err := s.get(bucketScenarios, id, &sc); err != nil {
		return false, err
	}
	sc.IsFavorite = !sc.IsFavorite
	return sc.IsFavorite, s.SaveScenario(ctx, sc)
}

// === Library ===

// Library loads the stories, characters and scenarios together
func (s *Store) Library(ctx context.Context) (domain.Library, error) {
	var lib domain.Library
	var err error
	if lib.Stories, err = s.Stories(ctx); err != nil {
		return lib, err
	}
	if lib.Characters, err = s.Characters(ctx); err != nil {
		return lib, err
	}
	if lib.Scenarios, err = s.Scenarios(ctx); err != nil {
		return lib, err
	}
	return lib, nil
}

// Seeded reports whether sample data was written before
func (s *Store) Seeded() bool {
	var at time.Time
	return s.get(bucketMeta, keySeededAt, &at) == nil
}

// Seed writes lib on first run only. It reports whether anything was written.
func (s *Store) Seed(ctx context.Context, lib domain.Library) (bool, error) {
	if s.Seeded() {
		return false, nil
	}
	for _, story := range lib.Stories {
		if err := s.SaveStory(ctx, story); err != nil {
			return false, err
		}
	}
	for _, c := range lib.Characters {
		if err := s.SaveCharacter(ctx, c); err != nil {
			return false, err
		}
	}
	for _, sc := range lib.Scenarios {
		if err := s.SaveScenario(ctx, sc); err != nil {
			return false, err
		}
	}
	if err := s.set(bucketMeta, keySeededAt, time.Now()); err != nil {
		return false, err
	}

	s.logger.Info("seeded sample library",
		"stories", len(lib.Stories),
		"characters", len(lib.Characters),
		"scenarios", len(lib.Scenarios))
	return true, nil
}

package domain

import (
	"strconv"
	"time"
)

// Library is the full set of items seeded on first run
type Library struct {
	Stories    []Story
	Characters []Character
	Scenarios  []Scenario
}

// SampleLibrary returns demo content with times relative to now
func SampleLibrary(now time.Time) Library {
	return Library{
		Stories:    SampleStories(now),
		Characters: SampleCharacters(now),
		Scenarios:  SampleScenarios(now),
	}
}

func ago(now time.Time, d time.Duration) *time.Time {
	t := now.Add(-d)
	return &t
}

const (
	day  = 24 * time.Hour
	week = 7 * day
)

type sampleCard struct {
	name, desc string
	tags       []string
	favorite   bool
	lastUsed   time.Duration // 0 = never used
	stories    int
}

func (s sampleCard) card(id string, created, now time.Time) Card {
	c := Card{
		ID:          id,
		Name:        s.name,
		Description: s.desc,
		Tags:        s.tags,
		IsFavorite:  s.favorite,
		StoryCount:  s.stories,
		CreatedAt:   created,
	}
	if s.lastUsed > 0 {
		c.LastUsed = ago(now, s.lastUsed)
	}
	return c
}

var sampleCharacters = []sampleCard{
	{"Alice", "A cheerful tavern keeper with a mysterious past",
		[]string{"Fantasy", "Friendly", "Tavern Keeper", "Mysterious", "Cheerful", "Storyteller", "Secret Keeper", "Information Broker"},
		true, 3 * time.Hour, 3},
	{"Dr. Watson", "Loyal companion and medical expert with keen observation skills",
		[]string{"Victorian", "Detective", "Medical", "Loyal", "Observant", "Companion"},
		false, day + time.Hour, 1},
	{"Captain Maya", "Experienced starship captain leading dangerous missions across the galaxy",
		[]string{"Sci-Fi", "Leader", "Space", "Captain", "Experienced", "Starship", "Dangerous"},
		true, week + day, 2},
	{"Luna Blackwood", "Enigmatic sorceress studying forbidden magic at the academy",
		[]string{"Fantasy", "Magic", "Student", "Sorceress", "Enigmatic", "Forbidden", "Academy", "Dark Arts"},
		true, 2 * time.Hour, 5},
	{"Detective Morgan", "Hard-boiled detective solving crimes in the gritty city streets",
		[]string{"Modern", "Crime", "Investigator", "Hard-boiled", "Gritty"},
		false, day, 4},
	{"Kai Nakamura", "Cybernetic engineer navigating the neon-lit streets of Neo Tokyo",
		[]string{"Cyberpunk", "Tech", "Hacker", "Engineer", "Neo Tokyo", "Neon"},
		true, 4 * time.Hour, 6},
	{"Princess Elara", "Noble princess fighting to save her kingdom from ancient evil",
		[]string{"Fantasy", "Royal", "Brave", "Princess", "Noble", "Kingdom", "Ancient Evil"},
		false, 3 * day, 2},
	{"Commander Vex", "Battle-hardened military commander leading the resistance against alien invaders",
		[]string{"Sci-Fi", "Military", "Leader", "Commander", "Resistance", "Alien Invaders"},
		false, 5 * day, 3},
	{"Isabella Romano", "Passionate artist seeking love and inspiration in the modern world",
		[]string{"Romance", "Artist", "Creative", "Passionate", "Inspiration"},
		false, 6 * time.Hour, 2},
	{"Zara Al-Rashid", "Desert nomad and scholar of ancient mysteries",
		[]string{"Historical", "Scholar", "Adventurer", "Desert", "Nomad", "Ancient Mysteries"},
		true, week, 4},
	{"Dr. Elizabeth Chen", "Brilliant surgeon balancing life and death decisions in the ER",
		[]string{"Medical", "Drama", "Professional", "Surgeon", "Brilliant", "Life and Death", "ER"},
		false, 0, 0},
	{"Viktor Steele", "Mysterious vampire lord with centuries of dark secrets",
		[]string{"Supernatural", "Dark", "Ancient", "Vampire", "Mysterious", "Centuries Old", "Secrets", "Lord"},
		true, 2 * day, 7},
}

var sampleScenarios = []sampleCard{
	{"Tavern Adventure", "A cozy tavern where travelers gather to share tales and begin new adventures",
		[]string{"Medieval", "Social", "Mystery", "Cozy", "Travelers"},
		true, 3 * time.Hour, 5},
	{"Victorian Mystery", "Dark streets of London hide secrets waiting to be uncovered by keen detectives",
		[]string{"Victorian", "Investigation", "Crime", "London", "Dark Streets", "Secrets"},
		false, 2 * day, 2},
	{"Space Station Alpha", "Life aboard a remote space station where every decision could mean survival or disaster",
		[]string{"Space", "Survival", "Command", "Remote", "Life or Death", "Decisions", "Disaster"},
		true, day, 3},
	{"Magical Academy", "Study arcane arts and uncover ancient secrets in a prestigious magical institution",
		[]string{"Magic", "School", "Learning", "Arcane Arts", "Ancient Secrets", "Prestigious"},
		true, 30 * time.Minute, 8},
	{"Urban Crime Scene", "Navigate the dangerous underworld of crime in a modern metropolitan setting",
		[]string{"Police", "Investigation", "Urban", "Dangerous", "Underworld"},
		false, week, 4},
	{"Cyberpunk 2087", "High-tech low-life in a neon-soaked future where corporations rule everything",
		[]string{"Cyberpunk", "Hacking", "Dystopia", "High-tech", "Low-life", "Neon", "Corporations", "Future"},
		true, 8 * time.Hour, 6},
	{"Medieval Kingdom", "Rule a kingdom through political intrigue, war, and diplomacy in medieval times",
		[]string{"Politics", "War", "Diplomacy", "Kingdom", "Intrigue", "Medieval"},
		false, 3 * day, 3},
	{"Galactic War", "Command fleets across the galaxy in an epic struggle for cosmic dominance",
		[]string{"Space Battle", "Strategy", "Military", "Fleets", "Galaxy", "Epic", "Cosmic Dominance"},
		true, 2 * time.Hour, 7},
	{"Modern Romance", "Navigate the complexities of love and relationships in contemporary society",
		[]string{"Dating", "Emotions", "City Life", "Love", "Relationships", "Contemporary"},
		false, 0, 12},
	{"Arabian Nights", "Experience tales of magic, adventure, and wonder in the mystical Middle East",
		[]string{"Desert", "Magic", "Exploration", "Arabian", "Tales", "Wonder", "Mystical", "Middle East"},
		true, 5 * day, 5},
	{"Medical Emergency", "High-stakes medical drama where every decision saves or costs lives",
		[]string{"Hospital", "Emergency", "Medical", "High-stakes", "Drama"},
		false, 2 * week, 2},
	{"Vampire Court", "Navigate deadly politics and ancient grudges in the shadowy world of vampires",
		[]string{"Supernatural", "Politics", "Dark", "Vampire", "Court", "Deadly", "Ancient Grudges", "Shadowy"},
		true, 6 * time.Hour, 9},
}

// SampleCharacters returns the demo characters
func SampleCharacters(now time.Time) []Character {
	out := make([]Character, len(sampleCharacters))
	for i, s := range sampleCharacters {
		created := now.Add(-time.Duration(len(sampleCharacters)-i) * week)
		out[i] = Character{Card: s.card(strconv.Itoa(i+1), created, now)}
	}
	return out
}

// SampleScenarios returns the demo scenarios
func SampleScenarios(now time.Time) []Scenario {
	out := make([]Scenario, len(sampleScenarios))
	for i, s := range sampleScenarios {
		created := now.Add(-time.Duration(len(sampleScenarios)-i) * week)
		out[i] = Scenario{Card: s.card(strconv.Itoa(i+1), created, now)}
	}
	return out
}

func p(id, name string) Participant {
	return Participant{ID: id, Name: name}
}

// SampleStories returns demo stories, a mix of one-on-one and group chats
func SampleStories(now time.Time) []Story {
	stories := []Story{
		{
			ID:            "1",
			Title:         "Tavern Tales with Alice",
			Characters:    []Participant{p("1", "Alice")},
			UserCharacter: &Participant{ID: "user_1", Name: "Theron the Traveler"},
			LastMessage:   "The evening crowd is gathering, and I have some interesting stories to share...",
			LastSpeaker:   "Alice",
			UpdatedAt:     now.Add(-2 * time.Minute),
			ScenarioName:  "Medieval Tavern",
			MessageCount:  47,
			IsFavorite:    true,
		},
		{
			ID:    "2",
			Title: "Academy Investigation Squad",
			Characters: []Participant{
				p("4", "Luna"),
				p("2", "Detective Marcus"),
				p("8", "Professor Eliza"),
			},
			UserCharacter: &Participant{ID: "user_2", Name: "Detective Sage"},
			LastMessage:   "The ancient library holds more secrets than we initially thought. We need to investigate the restricted section tonight.",
			LastSpeaker:   "Professor Eliza",
			UpdatedAt:     now.Add(-15 * time.Minute),
			ScenarioName:  "Magical Academy",
			MessageCount:  124,
		},
		{
			ID:    "3",
			Title: "Space Station Crisis Command",
			Characters: []Participant{
				p("3", "Captain Nova"),
				p("7", "Engineer Knox"),
				p("6", "Dr. Sarah Chen"),
			},
			UserCharacter: &Participant{ID: "user_3", Name: "Commander Riley"},
			LastMessage:   "Hull breach in sector 7! All personnel to emergency stations immediately!",
			LastSpeaker:   "Captain Nova",
			UpdatedAt:     now.Add(-time.Hour),
			ScenarioName:  "Space Station Alpha",
			MessageCount:  89,
			IsFavorite:    true,
		},
		{
			ID:    "4",
			Title: "Cyberpunk Heist Crew",
			Characters: []Participant{
				p("5", "Zara"),
				p("9", "Ghost"),
				p("10", "Neon"),
				p("11", "Cipher"),
			},
			UserCharacter: &Participant{ID: "user_4", Name: "Phoenix"},
			LastMessage:   "The security feeds are looped. We have a 10-minute window to get in and out. Ghost, you're up.",
			LastSpeaker:   "Zara",
			UpdatedAt:     now.Add(-3 * time.Hour),
			ScenarioName:  "Cyberpunk 2087",
			MessageCount:  203,
		},
		{
			ID:            "5",
			Title:         "Coffee Date with Emma",
			Characters:    []Participant{p("12", "Emma")},
			UserCharacter: &Participant{ID: "user_5", Name: "Alex"},
			LastMessage:   "I had such a wonderful time today. Same place tomorrow?",
			LastSpeaker:   "Emma",
			UpdatedAt:     now.Add(-day - time.Hour),
			ScenarioName:  "Modern Romance",
			MessageCount:  32,
		},
		{
			ID:    "6",
			Title: "Royal Court Intrigue",
			Characters: []Participant{
				p("13", "King Aldric"),
				p("14", "Lady Morgana"),
				p("15", "Sir Gareth"),
			},
			UserCharacter: &Participant{ID: "user_6", Name: "Lord Castellan"},
			LastMessage:   "The nobles grow restless. We must act swiftly before they rally against the crown.",
			LastSpeaker:   "Lady Morgana",
			UpdatedAt:     now.Add(-2 * day),
			ScenarioName:  "Medieval Kingdom",
			MessageCount:  156,
		},
	}

	for i := range stories {
		stories[i].CreatedAt = stories[i].UpdatedAt.Add(-time.Duration(i+1) * week)
		user := "Traveler"
		if stories[i].UserCharacter != nil {
			user = stories[i].UserCharacter.Name
		}
		stories[i].Messages = SampleMessages(user, stories[i].UpdatedAt)
	}
	return stories
}

// SampleMessages returns the opening transcript used for demo stories
func SampleMessages(user string, last time.Time) []Message {
	msgs := []Message{
		{Role: RoleNarrator, Content: "You find yourself standing at the edge of an ancient forest. The towering trees whisper secrets in the wind, and a narrow path winds deeper into the shadows."},
		{Role: RoleUser, Speaker: user, Content: "*I step carefully onto the forest path, scanning the ground for tracks while keeping my hand near my weapon* This place feels alive... I need to stay alert."},
		{Role: RoleCharacter, Speaker: "Forest Guide", Content: "*An elderly woman emerges from the bushes, her walking stick tapping against the ground as she approaches* Wait, traveler! That path leads to the **Heart of the Wilds**. Are you certain you're prepared for such a journey?"},
		{Role: RoleUser, Speaker: user, Content: "*I think to myself \"Should I trust this stranger?\" before responding carefully* What dangers should I be aware of? Do you have any advice for a traveler like myself?"},
		{Role: RoleCharacter, Speaker: "Forest Guide", Content: "*She leans heavily on her gnarled staff and points toward the dark path ahead* Many have ventured into those depths, young one. The forest itself is alive, and it does not welcome intruders. Trust the silver moonlight, and beware the whispering stones."},
		{Role: RoleNarrator, Content: "As the old woman's words fade into the forest air, a sudden chill runs down your spine. The wind picks up, rustling the leaves overhead, and somewhere in the distance you hear the haunting call of an unknown creature."},
		{Role: RoleUser, Speaker: user, Content: "*I remember what my mentor always said \"Knowledge is the best weapon\" and decide to heed her advice* Thank you for the warning. I'll be careful and watch for the silver moonlight."},
	}
	for i := range msgs {
		msgs[i].ID = strconv.Itoa(i + 1)
		msgs[i].SentAt = last.Add(-time.Duration(len(msgs)-1-i) * time.Minute)
	}
	return msgs
}

// NarratorReply is the placeholder continuation appended after a user message
const NarratorReply = "The story continues with your choice, weaving new possibilities into the narrative thread..."

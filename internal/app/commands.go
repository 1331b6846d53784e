package app

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/riordanpawley/hearth/internal/config"
	"github.com/riordanpawley/hearth/internal/domain"
	"github.com/riordanpawley/hearth/internal/types"
	"github.com/riordanpawley/hearth/internal/ui/views"
)

// storyUpdatedMsg carries a story after messages were appended
type storyUpdatedMsg struct {
	story domain.Story
}

// favoriteToggledMsg reports the new favorite flag of a library item.
// kind is the list route the item belongs to.
type favoriteToggledMsg struct {
	kind     types.RouteKind
	id       string
	favorite bool
}

type logsExportedMsg struct {
	path  string
	count int
}

type logsClearedMsg struct{}

// errMsg reports a failed background operation; op reads as "Failed to <op>"
type errMsg struct {
	op  string
	err error
}

// sendMessageCmd stores the user's message followed by the narrator's
// continuation
func (m Model) sendMessageCmd(msg views.SendMessageMsg) tea.Cmd {
	ctx, st, now := m.ctx, m.store, m.now
	speaker := ""
	if s := m.story.Story(); s.ID == msg.StoryID && s.UserCharacter != nil {
		speaker = s.UserCharacter.Name
	}
	return func() tea.Msg {
		if _, err := st.AppendMessage(ctx, msg.StoryID, domain.Message{
			Role:    domain.RoleUser,
			Speaker: speaker,
			Content: msg.Content,
			SentAt:  now(),
		}); err != nil {
			return errMsg{op: "send message", err: err}
		}
		story, err := st.AppendMessage(ctx, msg.StoryID, domain.Message{
			Role:    domain.RoleNarrator,
			Content: domain.NarratorReply,
			SentAt:  now(),
		})
		if err != nil {
			return errMsg{op: "continue story", err: err}
		}
		return storyUpdatedMsg{story: story}
	}
}

// toggleFavoriteCmd flips the favorite flag of the selected item
func (m Model) toggleFavoriteCmd() tea.Cmd {
	var (
		id     string
		kind   = m.route.Kind
		toggle func(string) (bool, error)
	)
	ctx, st := m.ctx, m.store

	switch kind {
	case types.RouteStories:
		s, ok := m.stories.Current()
		if !ok {
			return nil
		}
		id = s.ID
	case types.RouteStory:
		id, kind = m.route.StoryID, types.RouteStories
	case types.RouteCharacters:
		c, ok := m.characters.Current()
		if !ok {
			return nil
		}
		id = c.ID
		toggle = func(id string) (bool, error) { return st.ToggleCharacterFavorite(ctx, id) }
	case types.RouteScenarios:
		sc, ok := m.scenarios.Current()
		if !ok {
			return nil
		}
		id = sc.ID
		toggle = func(id string) (bool, error) { return st.ToggleScenarioFavorite(ctx, id) }
	default:
		return nil
	}
	if toggle == nil {
		toggle = func(id string) (bool, error) { return st.ToggleStoryFavorite(ctx, id) }
	}

	return func() tea.Msg {
		fav, err := toggle(id)
		if err != nil {
			return errMsg{op: "update favorite", err: err}
		}
		return favoriteToggledMsg{kind: kind, id: id, favorite: fav}
	}
}

// exportLogsCmd writes the log buffer to a timestamped file in the data
// directory
func (m Model) exportLogsCmd() tea.Cmd {
	buf, now := m.logs, m.now()
	dir := config.ExpandPath(m.cfg.Storage.DataDir)
	if dir == "" {
		dir = os.TempDir()
	}
	path := filepath.Join(dir, fmt.Sprintf("hearth-logs-%s.txt", now.Format("20060102-150405")))

	return func() tea.Msg {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errMsg{op: "export logs", err: err}
		}
		f, err := os.Create(path)
		if err != nil {
			return errMsg{op: "export logs", err: err}
		}
		defer f.Close()

		count := buf.Len()
		if err := buf.Export(f, now); err != nil {
			return errMsg{op: "export logs", err: err}
		}
		return logsExportedMsg{path: path, count: count}
	}
}

func (m Model) clearLogsCmd() tea.Cmd {
	ctx, buf := m.ctx, m.logs
	return func() tea.Msg {
		if err := buf.Clear(ctx); err != nil {
			return errMsg{op: "clear logs", err: err}
		}
		return logsClearedMsg{}
	}
}

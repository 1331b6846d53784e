package statusbar

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/riordanpawley/hearth/internal/types"
	"github.com/riordanpawley/hearth/internal/ui/styles"
)

func TestStatusBar_RenderRoutes(t *testing.T) {
	tests := []struct {
		route types.Route
		badge string
		hint  string
	}{
		{types.Route{Kind: types.RouteStories}, "STORIES", "Enter: open"},
		{types.Route{Kind: types.RouteCharacters}, "CHARACTERS", "v: grid/list"},
		{types.Route{Kind: types.RouteScenarios}, "SCENARIOS", "f: filter"},
		{types.StoryRoute("s1"), "STORY", "i: write"},
		{types.Route{Kind: types.RouteSettings}, "SETTINGS", "a: add backend"},
		{types.Route{Kind: types.RouteLogs}, "LOGS", "e: export"},
	}

	for _, tt := range tests {
		t.Run(tt.badge, func(t *testing.T) {
			result := New(tt.route, 120, styles.New()).Render()
			if !strings.Contains(result, tt.badge) {
				t.Errorf("expected badge %q, got: %s", tt.badge, result)
			}
			if !strings.Contains(result, tt.hint) {
				t.Errorf("expected hint %q, got: %s", tt.hint, result)
			}
		})
	}
}

func TestStatusBar_Info(t *testing.T) {
	sb := New(types.DefaultRoute(), 100, styles.New()).WithInfo("2 filters · A-Z ↑")
	result := sb.Render()

	if !strings.Contains(result, "2 filters · A-Z ↑") {
		t.Errorf("expected info text, got: %s", result)
	}
	if w := lipgloss.Width(result); w != 100 {
		t.Errorf("expected width 100, got %d", w)
	}
	if !strings.HasSuffix(strings.TrimRight(ansi.Strip(result), " "), "A-Z ↑") {
		t.Errorf("info should be right-aligned, got: %q", ansi.Strip(result))
	}
}

func TestStatusBar_HintsDropWhenNarrow(t *testing.T) {
	sb := New(types.DefaultRoute(), 30, styles.New()).WithInfo("Recent ↓")
	result := sb.Render()

	if strings.Contains(result, "Enter: open") {
		t.Errorf("hints should be dropped when they do not fit, got: %s", result)
	}
	if !strings.Contains(result, "STORIES") || !strings.Contains(result, "Recent ↓") {
		t.Errorf("badge and info should survive, got: %s", result)
	}
}

func TestStatusBar_WithHints(t *testing.T) {
	result := New(types.DefaultRoute(), 100, styles.New()).WithHints("Esc: close").Render()
	if !strings.Contains(result, "Esc: close") || strings.Contains(result, "Enter: open") {
		t.Errorf("hints should be replaced, got: %s", result)
	}
}

func TestGetHints_Unknown(t *testing.T) {
	if got := GetHints(types.Route{Kind: types.RouteKind(99)}); got != "" {
		t.Errorf("unknown route should have no hints, got %q", got)
	}
}

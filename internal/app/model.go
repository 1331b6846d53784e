// Package app contains the main application model and TEA implementation.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/riordanpawley/hearth/internal/config"
	"github.com/riordanpawley/hearth/internal/domain"
	"github.com/riordanpawley/hearth/internal/loading"
	"github.com/riordanpawley/hearth/internal/logging"
	"github.com/riordanpawley/hearth/internal/notify"
	"github.com/riordanpawley/hearth/internal/search"
	"github.com/riordanpawley/hearth/internal/store"
	"github.com/riordanpawley/hearth/internal/types"
	"github.com/riordanpawley/hearth/internal/ui/overlay"
	"github.com/riordanpawley/hearth/internal/ui/splash"
	"github.com/riordanpawley/hearth/internal/ui/styles"
	"github.com/riordanpawley/hearth/internal/ui/toast"
	"github.com/riordanpawley/hearth/internal/ui/views"
)

// removeBackendAction prefixes the confirm action for backend removal
const removeBackendAction = "remove-backend:"

// clearLogsAction is the confirm action for clearing the log buffer
const clearLogsAction = "clear-logs"

// Options wires the model to its services
type Options struct {
	Config    *config.Config
	Store     *store.Store
	Settings  *config.SettingsManager
	Logs      *logging.Buffer
	Logger    *slog.Logger
	Sequencer *loading.Sequencer
	Queue     *notify.Queue
	Version   string

	// DarkBackground resolves the "auto" theme
	DarkBackground bool
	// MarkdownStyle overrides the glamour style derived from the theme
	MarkdownStyle string
	// Now defaults to time.Now
	Now func() time.Time
	// Context bounds startup work; defaults to context.Background
	Context context.Context
}

// Model is the main application state
type Model struct {
	// Services
	cfg      *config.Config
	store    *store.Store
	settings *config.SettingsManager
	logs     *logging.Buffer
	logger   *slog.Logger
	seq      *loading.Sequencer
	queue    *notify.Queue
	ctx      context.Context
	now      func() time.Time
	version  string

	// Theme
	styles         *styles.Styles
	overlayStyles  *overlay.Styles
	darkBackground bool
	markdownStyle  string

	// Library state
	lib        domain.Library
	query      *search.Query
	charFilter domain.CharacterFilter
	prefs      config.AppSettings
	sending    bool

	// Screens
	route      types.Route
	booted     bool // library and settings are in
	ready      bool
	splash     splash.Model
	stories    *views.StoriesView
	characters *views.CardsView[domain.Character]
	scenarios  *views.CardsView[domain.Scenario]
	story      *views.StoryView
	settingsUI *views.SettingsView
	logView    *views.LogsView
	overlays   *overlay.Stack
	toaster    *toast.ToastRenderer
	keys       keyMap

	// Terminal size
	width  int
	height int
}

// New creates the application model. Startup work begins in Init.
func New(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	prefs := opts.Settings.Get()
	st := styles.NewWithPalette(styles.PaletteFor(string(prefs.Theme), opts.DarkBackground))
	mdStyle := opts.MarkdownStyle
	if mdStyle == "" {
		mdStyle = views.GlamourStyle(st.Palette)
	}

	m := Model{
		cfg:            cfg,
		store:          opts.Store,
		settings:       opts.Settings,
		logs:           opts.Logs,
		logger:         logger.With("component", "app"),
		seq:            opts.Sequencer,
		queue:          opts.Queue,
		ctx:            ctx,
		now:            now,
		version:        opts.Version,
		styles:         st,
		overlayStyles:  overlay.NewWithPalette(st.Palette),
		darkBackground: opts.DarkBackground,
		markdownStyle:  opts.MarkdownStyle,
		query:          search.NewQuery(),
		route:          types.DefaultRoute(),
		splash:         splash.New(st, opts.Sequencer.State(), opts.Version),
		stories:        views.NewStoriesView(st),
		characters:     views.NewCardsView[domain.Character]("characters", st),
		scenarios:      views.NewCardsView[domain.Scenario]("scenarios", st),
		story:          views.NewStoryView(st, mdStyle),
		settingsUI:     views.NewSettingsView(st),
		logView:        views.NewLogsView(opts.Logs, st),
		overlays:       overlay.NewStack(),
		toaster:        toast.New(st, types.ParseToastPosition(cfg.UI.ToastPosition)),
		keys:           defaultKeyMap(),
	}
	m.applySettings(prefs)
	return m
}

// Init starts the splash spinner and the bootstrap sequence
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.splash.Init(),
		m.bootstrapCmd(),
	)
}

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.splash, _ = m.splash.Update(msg)
		m.resize()
		return m, nil

	case spinner.TickMsg:
		if m.ready {
			return m, nil
		}
		var cmd tea.Cmd
		m.splash, cmd = m.splash.Update(msg)
		return m, cmd

	case loading.StateMsg:
		return m.handleLoadingState()

	case bootstrapDoneMsg:
		return m.handleBootstrap(msg)

	case notify.ChangedMsg:
		// the toast feed is read from the queue at render time
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if !m.ready {
			return m, nil
		}
		// If overlay is open, route to overlay stack
		if !m.overlays.IsEmpty() {
			return m.handleOverlayKey(msg)
		}
		return m.handleKey(msg)

	// Overlay messages
	case overlay.CloseOverlayMsg:
		m.popOverlay()
		return m, nil

	case overlay.SelectionMsg:
		return m.handleSelection(msg)

	case overlay.SearchMsg:
		m.query.SetText(msg.Query)
		m.refreshResults()
		if bar, ok := m.overlays.Current().(*overlay.SearchOverlay); ok {
			bar.SetMatchCount(m.resultCount())
		}
		return m, nil

	case overlay.FilterChangedMsg:
		m.refreshResults()
		return m, nil

	case overlay.JumpSelectedMsg:
		m.popOverlay()
		m.selectVisible(msg.Index)
		return m, nil

	case overlay.BackendSubmittedMsg:
		return m.addBackend(msg.Backend)

	case overlay.SettingsChangedMsg:
		m.applySettings(m.settings.Get())
		return m, nil

	case config.SettingsReloadedMsg:
		if msg.Err != nil {
			m.queue.Error("settings.toml could not be read: " + msg.Err.Error())
			return m, nil
		}
		m.applySettings(msg.Settings)
		m.queue.Info("Settings reloaded")
		return m, nil

	// View messages
	case views.SendMessageMsg:
		m.sending = true
		return m, m.sendMessageCmd(msg)

	case views.BackendSelectedMsg:
		return m.selectBackend(msg.ID)

	case views.RemoveBackendMsg:
		return m, m.overlays.Push(overlay.NewConfirmDialog(
			"Remove Backend",
			fmt.Sprintf("Remove %q from your backends?", msg.Name),
			removeBackendAction+msg.ID,
			m.overlayStyles,
		))

	// Async results
	case storyUpdatedMsg:
		m.sending = false
		m.replaceStory(msg.story)
		return m, nil

	case favoriteToggledMsg:
		m.applyFavorite(msg)
		return m, nil

	case logsExportedMsg:
		m.queue.Success(fmt.Sprintf("Exported %d log entries to %s", msg.count, msg.path))
		return m, nil

	case logsClearedMsg:
		m.logView.Reload()
		m.queue.Success("Logs cleared")
		return m, nil

	case errMsg:
		m.sending = false
		m.logger.Error(msg.op+" failed", "error", msg.err)
		m.queue.Error(fmt.Sprintf("Failed to %s: %v", msg.op, msg.err))
		return m, nil
	}

	return m.forward(msg)
}

// forward passes messages the shell does not handle, such as cursor
// blinks, to whatever has focus
func (m Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !m.overlays.IsEmpty() {
		return m, m.overlays.Update(msg)
	}
	switch m.route.Kind {
	case types.RouteStory:
		return m, m.story.Update(msg)
	case types.RouteLogs:
		return m, m.logView.Update(msg)
	}
	return m, nil
}

// handleLoadingState mirrors the sequencer, read directly rather than from
// the message payload. The app is shown once the stage allows it and the
// bootstrap result has arrived, in either order.
func (m Model) handleLoadingState() (tea.Model, tea.Cmd) {
	st := m.seq.State()
	m.splash, _ = m.splash.Update(loading.StateMsg{State: st})
	if st.Stage.ShouldShowApp() && m.booted && !m.ready {
		m.ready = true
		m.logger.Info("startup complete", "elapsed", st.TotalElapsed())
		if msg, failed := m.seq.ErrorMessage(); failed {
			m.queue.Add(notify.Config{
				Message:     "Startup problem: " + msg,
				Type:        types.ToastError,
				Dismissible: true,
			})
		}
	}
	return m, nil
}

func (m Model) handleBootstrap(msg bootstrapDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Warn("startup cancelled", "error", msg.err)
		return m, tea.Quit
	}
	m.booted = true
	m.lib = msg.library
	m.applySettings(msg.settings)
	m.refreshResults()
	m.logView.Reload()
	return m.handleLoadingState()
}

// handleOverlayKey routes keyboard messages to the overlay stack
func (m Model) handleOverlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cmd := m.overlays.Update(msg)
	if m.overlays.IsEmpty() {
		m.clearJumpLabels()
	}
	return m, cmd
}

// handleKey processes keyboard input when no overlay is open
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Text entry owns every key
	switch {
	case m.route.Kind == types.RouteStory && m.story.Composing():
		return m, m.story.Update(msg)
	case m.route.Kind == types.RouteLogs && m.logView.Filtering():
		return m, m.logView.Update(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Redraw):
		return m, tea.ClearScreen
	case key.Matches(msg, m.keys.Help):
		return m, m.overlays.Push(overlay.NewHelpOverlay(m.keys.HelpCategories(), m.overlayStyles))
	case key.Matches(msg, m.keys.NextTab):
		m.navigate(m.adjacentRoute(1))
		return m, nil
	case key.Matches(msg, m.keys.PrevTab):
		m.navigate(m.adjacentRoute(-1))
		return m, nil
	case key.Matches(msg, m.keys.Dismiss):
		m.dismissNewest()
		return m, nil
	}
	for i, b := range m.keys.Routes {
		if key.Matches(msg, b) {
			m.navigate(types.NavRoutes[i])
			return m, nil
		}
	}

	switch m.route.Kind {
	case types.RouteStories, types.RouteCharacters, types.RouteScenarios:
		return m.handleLibraryKey(msg)
	case types.RouteStory:
		return m.handleStoryKey(msg)
	case types.RouteSettings:
		return m.handleSettingsKey(msg)
	case types.RouteLogs:
		return m.handleLogsKey(msg)
	}
	return m, nil
}

// handleLibraryKey handles the stories, characters and scenarios screens
func (m Model) handleLibraryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	kind := m.route.Kind
	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveVertical(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveVertical(1)
	case key.Matches(msg, m.keys.Left):
		m.moveHorizontal(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveHorizontal(1)
	case key.Matches(msg, m.keys.Top):
		m.moveToEdge(false)
	case key.Matches(msg, m.keys.Bottom):
		m.moveToEdge(true)

	case key.Matches(msg, m.keys.Open):
		return m.openCurrent()

	case key.Matches(msg, m.keys.Search):
		bar := overlay.NewSearchOverlay(m.query.Text(), m.overlayStyles)
		bar.SetMatchCount(m.resultCount())
		return m, m.overlays.Push(bar)

	case key.Matches(msg, m.keys.Filter):
		scope, tags := overlay.FilterStories, []domain.Tag(nil)
		switch kind {
		case types.RouteCharacters:
			scope, tags = overlay.FilterCards, domain.CountTags(m.lib.Characters)
		case types.RouteScenarios:
			scope, tags = overlay.FilterCards, domain.CountTags(m.lib.Scenarios)
		}
		return m, m.overlays.Push(overlay.NewFilterMenu(m.query.Filter, scope, tags, m.overlayStyles))

	case key.Matches(msg, m.keys.Sort):
		return m, m.overlays.Push(overlay.NewSortMenu(m.query.Sort, m.overlayStyles))

	case key.Matches(msg, m.keys.Clear):
		if m.query.IsActive() || m.charFilter != domain.FilterAll {
			m.query.Clear()
			m.charFilter = domain.FilterAll
			m.refreshResults()
			m.queue.Info("Search and filters cleared")
		}

	case key.Matches(msg, m.keys.Jump):
		n := m.visibleCount()
		if n == 0 {
			return m, nil
		}
		jump := overlay.NewJumpMode(n, m.overlayStyles)
		m.setJumpLabels(jump.Labels())
		return m, m.overlays.Push(jump)

	case key.Matches(msg, m.keys.Favorite):
		return m, m.toggleFavoriteCmd()

	case key.Matches(msg, m.keys.ViewMode):
		switch kind {
		case types.RouteCharacters:
			m.characters.ToggleMode()
		case types.RouteScenarios:
			m.scenarios.ToggleMode()
		}

	case key.Matches(msg, m.keys.Show):
		if kind == types.RouteCharacters {
			m.charFilter = m.charFilter.Next()
			m.refreshResults()
			m.queue.Info("Characters: " + m.charFilter.String())
		}
	}
	return m, nil
}

func (m Model) handleStoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.navigate(types.DefaultRoute())
		return m, nil
	case key.Matches(msg, m.keys.Favorite):
		return m, m.toggleFavoriteCmd()
	}
	return m, m.story.Update(msg)
}

func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.EditPrefs):
		return m, m.overlays.Push(overlay.NewAppSettingsOverlay(m.settings, m.overlayStyles))
	case key.Matches(msg, m.keys.AddBackend):
		return m, m.overlays.Push(overlay.NewBackendForm(m.overlayStyles))
	}
	return m, m.settingsUI.Update(msg)
}

func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Export):
		return m, m.exportLogsCmd()
	case key.Matches(msg, m.keys.ClearLogs):
		return m, m.overlays.Push(overlay.NewConfirmDialog(
			"Clear Logs",
			fmt.Sprintf("Delete all %d log entries?", m.logs.Len()),
			clearLogsAction,
			m.overlayStyles,
		))
	}
	return m, m.logView.Update(msg)
}

// handleSelection handles overlay selection messages
func (m Model) handleSelection(msg overlay.SelectionMsg) (tea.Model, tea.Cmd) {
	// Errors leave the settings menu open so the user can retry
	if msg.Key == overlay.SettingsErrorKey {
		if err, ok := msg.Value.(error); ok {
			m.logger.Warn("failed to save setting", "error", err)
			m.queue.Error(err.Error())
		}
		return m, nil
	}

	m.popOverlay()

	switch msg.Key {
	case overlay.SortKey:
		if s, ok := msg.Value.(domain.Sort); ok {
			m.query.Sort = s
			m.refreshResults()
			// a new order starts from the top
			m.stories.Cursor().Top()
			m.characters.Top()
			m.scenarios.Top()
		}

	case overlay.ConfirmKey:
		res, ok := msg.Value.(overlay.ConfirmResult)
		if !ok || !res.Confirmed {
			return m, nil
		}
		if id, found := strings.CutPrefix(res.Action, removeBackendAction); found {
			return m.removeBackend(id)
		}
		if res.Action == clearLogsAction {
			return m, m.clearLogsCmd()
		}

	case overlay.AddBackendKey:
		return m, m.overlays.Push(overlay.NewBackendForm(m.overlayStyles))

	case overlay.EditorClosedKey:
		if err := m.settings.Load(); err != nil {
			m.queue.Error("settings.toml could not be read: " + err.Error())
			return m, nil
		}
		m.applySettings(m.settings.Get())

	case overlay.EditorErrorKey:
		if err, ok := msg.Value.(error); ok {
			m.queue.Error(fmt.Sprintf("Editor error: %v", err))
		}
	}
	return m, nil
}

// popOverlay closes the top overlay and hides any jump labels
func (m *Model) popOverlay() {
	m.overlays.Pop()
	m.clearJumpLabels()
}

// navigate switches screens. Leaving a screen clears the toast feed.
func (m *Model) navigate(r types.Route) {
	if r == m.route {
		return
	}
	m.logger.Debug("navigate", "from", m.route, "to", r)
	m.queue.ClearAll()
	m.route = r

	switch r.Kind {
	case types.RouteLogs:
		m.logView.Reload()
	case types.RouteSettings:
		m.settingsUI.SetSettings(m.settings.Get(), m.settings.Path())
	}
}

// adjacentRoute returns the nav route delta steps from the current one.
// A story counts as the stories tab.
func (m Model) adjacentRoute(delta int) types.Route {
	cur := m.route
	if cur.Kind == types.RouteStory {
		cur = types.DefaultRoute()
	}
	n := len(types.NavRoutes)
	for i, r := range types.NavRoutes {
		if r == cur {
			return types.NavRoutes[((i+delta)%n+n)%n]
		}
	}
	return types.DefaultRoute()
}

// dismissNewest starts the exit of the newest dismissible toast
func (m *Model) dismissNewest() {
	for _, t := range m.queue.Visible(m.cfg.UI.MaxToasts) {
		if t.Dismissible && !t.Exiting {
			m.queue.Dismiss(t.ID)
			return
		}
	}
}

// openCurrent opens the selected story, or lists the stories that feature
// the selected character or scenario
func (m Model) openCurrent() (tea.Model, tea.Cmd) {
	switch m.route.Kind {
	case types.RouteStories:
		s, ok := m.stories.Current()
		if !ok {
			return m, nil
		}
		m.story.SetStory(s)
		m.navigate(types.StoryRoute(s.ID))
	case types.RouteCharacters:
		if c, ok := m.characters.Current(); ok {
			m.showStoriesWith(c.Name)
		}
	case types.RouteScenarios:
		if sc, ok := m.scenarios.Current(); ok {
			m.showStoriesWith(sc.Name)
		}
	}
	return m, nil
}

func (m *Model) showStoriesWith(name string) {
	m.query.Clear()
	m.query.SetText(name)
	m.navigate(types.DefaultRoute())
	m.refreshResults()
	m.queue.Info(fmt.Sprintf("Stories with %s", name))
}

// refreshResults re-runs the query over the library for every list
func (m *Model) refreshResults() {
	m.stories.SetResults(search.Stories(m.query, m.lib.Stories))
	chars := domain.FilterCharacters(m.charFilter, m.lib.Characters, m.now())
	m.characters.SetResults(search.Cards(m.query, chars))
	m.scenarios.SetResults(search.Cards(m.query, m.lib.Scenarios))
}

// resultCount returns the number of results on the current screen
func (m Model) resultCount() int {
	switch m.route.Kind {
	case types.RouteCharacters:
		return m.characters.Len()
	case types.RouteScenarios:
		return m.scenarios.Len()
	default:
		return m.stories.Len()
	}
}

func (m *Model) moveVertical(delta int) {
	switch m.route.Kind {
	case types.RouteStories:
		m.stories.Cursor().Move(delta)
	case types.RouteCharacters:
		m.characters.MoveVertical(delta)
	case types.RouteScenarios:
		m.scenarios.MoveVertical(delta)
	}
}

func (m *Model) moveHorizontal(delta int) {
	switch m.route.Kind {
	case types.RouteCharacters:
		m.characters.MoveHorizontal(delta)
	case types.RouteScenarios:
		m.scenarios.MoveHorizontal(delta)
	}
}

func (m *Model) moveToEdge(bottom bool) {
	switch m.route.Kind {
	case types.RouteStories:
		if bottom {
			m.stories.Cursor().Bottom()
		} else {
			m.stories.Cursor().Top()
		}
	case types.RouteCharacters:
		if bottom {
			m.characters.Bottom()
		} else {
			m.characters.Top()
		}
	case types.RouteScenarios:
		if bottom {
			m.scenarios.Bottom()
		} else {
			m.scenarios.Top()
		}
	}
}

func (m Model) visibleCount() int {
	switch m.route.Kind {
	case types.RouteStories:
		return m.stories.Visible()
	case types.RouteCharacters:
		return m.characters.Visible(m.bodyHeight())
	case types.RouteScenarios:
		return m.scenarios.Visible(m.bodyHeight())
	}
	return 0
}

func (m *Model) selectVisible(i int) {
	switch m.route.Kind {
	case types.RouteStories:
		m.stories.SelectVisible(i)
	case types.RouteCharacters:
		m.characters.SelectVisible(i, m.bodyHeight())
	case types.RouteScenarios:
		m.scenarios.SelectVisible(i, m.bodyHeight())
	}
}

func (m *Model) setJumpLabels(labels []string) {
	switch m.route.Kind {
	case types.RouteStories:
		m.stories.SetJumpLabels(labels)
	case types.RouteCharacters:
		m.characters.SetJumpLabels(labels)
	case types.RouteScenarios:
		m.scenarios.SetJumpLabels(labels)
	}
}

func (m *Model) clearJumpLabels() {
	m.stories.SetJumpLabels(nil)
	m.characters.SetJumpLabels(nil)
	m.scenarios.SetJumpLabels(nil)
}

// applySettings adopts a settings snapshot: theme, story options and the
// settings screen
func (m *Model) applySettings(s config.AppSettings) {
	m.prefs = s

	palette := styles.PaletteFor(string(s.Theme), m.darkBackground)
	if palette.Name != m.styles.Palette.Name {
		m.applyPalette(palette)
	}

	m.story.SetOptions(views.StoryOptions{
		Timestamps: s.UI.MessageTimestamps,
		WordCount:  s.Chat.ShowWordCount,
		AutoScroll: s.Chat.AutoScroll,
		Grouping:   s.Chat.MessageGrouping,
	})
	m.settingsUI.SetSettings(s, m.settings.Path())
}

func (m *Model) applyPalette(p styles.Palette) {
	m.logger.Debug("switching palette", "palette", p.Name)
	st := styles.NewWithPalette(p)
	m.styles = st
	m.overlayStyles = overlay.NewWithPalette(p)
	m.toaster = toast.New(st, m.toaster.Position())

	mdStyle := m.markdownStyle
	if mdStyle == "" {
		mdStyle = views.GlamourStyle(p)
	}
	m.stories.SetStyles(st)
	m.characters.SetStyles(st)
	m.scenarios.SetStyles(st)
	m.story.SetStyles(st, mdStyle)
	m.settingsUI.SetStyles(st)
	m.logView.SetStyles(st)
}

// replaceStory swaps an updated story into the library and the open view
func (m *Model) replaceStory(s domain.Story) {
	for i := range m.lib.Stories {
		if m.lib.Stories[i].ID == s.ID {
			m.lib.Stories[i] = s
		}
	}
	if m.route.Kind == types.RouteStory && m.route.StoryID == s.ID {
		m.story.SetStory(s)
	}
	m.refreshResults()
}

func (m *Model) applyFavorite(msg favoriteToggledMsg) {
	var name string
	switch msg.kind {
	case types.RouteStories:
		for i := range m.lib.Stories {
			if s := &m.lib.Stories[i]; s.ID == msg.id {
				s.IsFavorite = msg.favorite
				name = s.Title
				if m.route.Kind == types.RouteStory && m.route.StoryID == s.ID {
					m.story.SetStory(*s)
				}
			}
		}
	case types.RouteCharacters:
		for i := range m.lib.Characters {
			if c := &m.lib.Characters[i]; c.ID == msg.id {
				c.IsFavorite = msg.favorite
				name = c.Name
			}
		}
	case types.RouteScenarios:
		for i := range m.lib.Scenarios {
			if sc := &m.lib.Scenarios[i]; sc.ID == msg.id {
				sc.IsFavorite = msg.favorite
				name = sc.Name
			}
		}
	}
	m.refreshResults()

	if msg.favorite {
		m.queue.Success(fmt.Sprintf("Added %s to favorites", name))
	} else {
		m.queue.Info(fmt.Sprintf("Removed %s from favorites", name))
	}
}

func (m Model) selectBackend(id string) (tea.Model, tea.Cmd) {
	if id == m.prefs.SelectedBackend {
		return m, nil
	}
	if err := m.settings.SetSelectedBackend(id); err != nil {
		m.queue.Error(fmt.Sprintf("Failed to switch backend: %v", err))
		return m, nil
	}
	m.applySettings(m.settings.Get())
	m.queue.Success("Using backend: " + m.prefs.ActiveBackendName())
	return m, nil
}

func (m Model) addBackend(b config.RemoteBackendConfig) (tea.Model, tea.Cmd) {
	if err := m.settings.AddRemoteBackend(b); err != nil {
		m.queue.Error(fmt.Sprintf("Failed to add backend: %v", err))
		return m, nil
	}
	m.applySettings(m.settings.Get())
	m.queue.Success(fmt.Sprintf("Added backend %s", b.Name))
	return m, nil
}

func (m Model) removeBackend(id string) (tea.Model, tea.Cmd) {
	name := id
	if b, ok := m.settings.RemoteBackend(id); ok {
		name = b.Name
	}
	if err := m.settings.RemoveRemoteBackend(id); err != nil {
		m.queue.Error(fmt.Sprintf("Failed to remove backend: %v", err))
		return m, nil
	}
	m.applySettings(m.settings.Get())
	m.queue.Success(fmt.Sprintf("Removed backend %s", name))
	return m, nil
}

// Route returns the current screen
func (m Model) Route() types.Route {
	return m.route
}

// Ready reports whether loading finished and the shell is showing
func (m Model) Ready() bool {
	return m.ready
}

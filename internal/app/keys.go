package app

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/riordanpawley/hearth/internal/types"
	"github.com/riordanpawley/hearth/internal/ui/overlay"
)

// keyMap holds every binding the shell handles itself. Screen-local keys
// such as log level toggles live in the views and are listed in help only.
type keyMap struct {
	Quit    key.Binding
	Help    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Routes  []key.Binding
	Dismiss key.Binding
	Redraw  key.Binding

	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Open     key.Binding
	Search   key.Binding
	Filter   key.Binding
	Sort     key.Binding
	Clear    key.Binding
	Jump     key.Binding
	Favorite key.Binding
	ViewMode key.Binding
	Show     key.Binding

	Compose key.Binding
	Back    key.Binding

	EditPrefs  key.Binding
	AddBackend key.Binding

	Export    key.Binding
	ClearLogs key.Binding
}

func defaultKeyMap() keyMap {
	routes := make([]key.Binding, len(types.NavRoutes))
	for i, r := range types.NavRoutes {
		k := string(rune('1' + i))
		routes[i] = key.NewBinding(key.WithKeys("alt+"+k), key.WithHelp("alt+"+k, r.Label()))
	}

	return keyMap{
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		NextTab: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next screen")),
		PrevTab: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous screen")),
		Routes:  routes,
		Dismiss: key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "dismiss newest toast")),
		Redraw:  key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "redraw")),

		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("j/k", "move")),
		Down:     key.NewBinding(key.WithKeys("j", "down")),
		Left:     key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/l", "move in grid")),
		Right:    key.NewBinding(key.WithKeys("l", "right")),
		Top:      key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g/G", "first / last")),
		Bottom:   key.NewBinding(key.WithKeys("G", "end")),
		Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open / show stories")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Filter:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filters")),
		Sort:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		Clear:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear search and filters")),
		Jump:     key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "jump to item")),
		Favorite: key.NewBinding(key.WithKeys("*"), key.WithHelp("*", "toggle favorite")),
		ViewMode: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "grid / list")),
		Show:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "all / favorites / recent characters")),

		Compose: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "write a message")),
		Back:    key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back to stories")),

		EditPrefs:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit preferences")),
		AddBackend: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add remote backend")),

		Export:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export to file")),
		ClearLogs: key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear logs")),
	}
}

// HelpCategories lists the bindings for the help overlay
func (k keyMap) HelpCategories() []overlay.KeyCategory {
	global := []key.Binding{k.NextTab, k.PrevTab}
	global = append(global, k.Routes...)
	global = append(global, k.Dismiss, k.Redraw, k.Help, k.Quit)

	return []overlay.KeyCategory{
		category("Global", global...),
		category("Library",
			k.Up, k.Left, k.Top, k.Open, k.Search, k.Filter, k.Sort, k.Clear,
			k.Jump, k.Favorite, k.ViewMode, k.Show),
		{Name: "Story", Bindings: append(bindings(k.Compose, k.Favorite, k.Back),
			overlay.KeyBinding{Key: "enter", Description: "send (while writing)"},
			overlay.KeyBinding{Key: "j/k pgup/pgdn", Description: "scroll"},
		)},
		{Name: "Settings", Bindings: append(bindings(k.EditPrefs, k.AddBackend),
			overlay.KeyBinding{Key: "enter", Description: "use backend"},
			overlay.KeyBinding{Key: "d", Description: "remove backend"},
		)},
		{Name: "Logs", Bindings: append(bindings(k.Export, k.ClearLogs),
			overlay.KeyBinding{Key: "1-4", Description: "toggle debug / info / warn / error"},
			overlay.KeyBinding{Key: "/", Description: "filter messages"},
			overlay.KeyBinding{Key: "n", Description: "load more"},
			overlay.KeyBinding{Key: "p", Description: "back to first page"},
			overlay.KeyBinding{Key: "r", Description: "reload"},
		)},
	}
}

func category(name string, keys ...key.Binding) overlay.KeyCategory {
	return overlay.KeyCategory{Name: name, Bindings: bindings(keys...)}
}

// bindings converts bindings with help text; helpless ones are skipped
func bindings(keys ...key.Binding) []overlay.KeyBinding {
	out := make([]overlay.KeyBinding, 0, len(keys))
	for _, b := range keys {
		h := b.Help()
		if h.Key == "" {
			continue
		}
		out = append(out, overlay.KeyBinding{Key: h.Key, Description: h.Desc})
	}
	return out
}

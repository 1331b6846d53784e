package statusbar

import "github.com/riordanpawley/hearth/internal/types"

// GetHints returns the keybinding hints for the given route
func GetHints(route types.Route) string {
	switch route.Kind {
	case types.RouteStories:
		return "j/k: move  Enter: open  /: search  f: filter  s: sort  ?: help"
	case types.RouteCharacters:
		return "j/k: move  v: grid/list  c: show  /: search  f: filter  ?: help"
	case types.RouteScenarios:
		return "j/k: move  v: grid/list  /: search  f: filter  ?: help"
	case types.RouteStory:
		return "i: write  j/k: scroll  *: favorite  Esc: back"
	case types.RouteSettings:
		return "j/k: backend  Enter: select  a: add backend  d: remove  e: preferences"
	case types.RouteLogs:
		return "n: more  1-4: levels  /: filter  e: export  C: clear"
	default:
		return ""
	}
}

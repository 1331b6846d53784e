// Package types contains shared types used across the application.
package types

// RouteKind identifies a top-level screen
type RouteKind int

const (
	RouteStories RouteKind = iota
	RouteCharacters
	RouteScenarios
	RouteStory
	RouteSettings
	RouteLogs
)

// Route is a navigable screen. StoryID is only set for RouteStory.
type Route struct {
	Kind    RouteKind
	StoryID string
}

// DefaultRoute is the screen shown after loading completes
func DefaultRoute() Route {
	return Route{Kind: RouteStories}
}

// StoryRoute returns the route for a single story
func StoryRoute(id string) Route {
	return Route{Kind: RouteStory, StoryID: id}
}

// NavRoutes are the routes listed in the navigation bar, in order
var NavRoutes = []Route{
	{Kind: RouteStories},
	{Kind: RouteCharacters},
	{Kind: RouteScenarios},
	{Kind: RouteSettings},
	{Kind: RouteLogs},
}

// Label returns the navigation label for the route
func (r Route) Label() string {
	switch r.Kind {
	case RouteStories:
		return "Stories"
	case RouteCharacters:
		return "Characters"
	case RouteScenarios:
		return "Scenarios"
	case RouteStory:
		return "Story"
	case RouteSettings:
		return "Settings"
	case RouteLogs:
		return "Logs"
	default:
		return "Unknown"
	}
}

// Icon returns the navigation glyph for the route
func (r Route) Icon() string {
	switch r.Kind {
	case RouteStories:
		return "📖"
	case RouteCharacters:
		return "👤"
	case RouteScenarios:
		return "🗺"
	case RouteStory:
		return "🪶"
	case RouteSettings:
		return "⚙"
	case RouteLogs:
		return "📜"
	default:
		return "?"
	}
}

// String implements fmt.Stringer for log output
func (r Route) String() string {
	if r.Kind == RouteStory {
		return "story:" + r.StoryID
	}
	return r.Label()
}

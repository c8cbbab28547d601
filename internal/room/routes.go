package room

import (
	"strings"

	"github.com/Faultbox/portfolio-room/internal/config"
)

// RouteKind is how a resolved route is followed.
type RouteKind int

const (
	// RouteInternal is an in-app path handed to the Navigator.
	RouteInternal RouteKind = iota
	// RouteExternal opens a URL in a new browsing context.
	RouteExternal
	// RouteDirect replaces the current location, used for mailto: links.
	RouteDirect
)

func (k RouteKind) String() string {
	switch k {
	case RouteExternal:
		return "external"
	case RouteDirect:
		return "direct"
	default:
		return "internal"
	}
}

// Route maps a name tag to a navigation target.
type Route struct {
	Tag      string
	Target   string
	External bool
}

// Kind classifies the route.
func (r Route) Kind() RouteKind {
	if !r.External {
		return RouteInternal
	}
	if strings.HasPrefix(r.Target, "mailto:") {
		return RouteDirect
	}
	return RouteExternal
}

// RouteTable is an ordered list of routes. Lookup is first match by substring.
type RouteTable []Route

// RoutesFromConfig builds a table from configuration entries, keeping their order.
func RoutesFromConfig(entries []config.RouteConfig) RouteTable {
	t := make(RouteTable, 0, len(entries))
	for _, e := range entries {
		if e.Tag == "" {
			continue
		}
		t = append(t, Route{Tag: e.Tag, Target: e.Route, External: e.External})
	}
	return t
}

// Resolve returns the first route whose tag occurs in name.
func (t RouteTable) Resolve(name string) (Route, bool) {
	for _, r := range t {
		if strings.Contains(name, r.Tag) {
			return r, true
		}
	}
	return Route{}, false
}

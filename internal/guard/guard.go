// Package guard decides whether a navigation may proceed.
//
// The decision only looks at the destination's static requirement and a session
// snapshot. It never blocks and has no side effects, so it can run before every
// navigation.
package guard

import (
	"path"
	"strings"

	"github.com/rocketpop/rocketpop-sso/internal/config"
	"github.com/rocketpop/rocketpop-sso/internal/models"
)

// Default destinations.
const (
	DefaultLoginPath   = "/login"
	DefaultLandingPath = "/dashboard"
)

// Requirement is the static access requirement of a destination.
type Requirement struct {
	RequiresAuth  bool
	RequiresAdmin bool
}

// Destination is a navigation target.
type Destination struct {
	Path        string
	Requirement Requirement
}

// Decision is the outcome of a guard check. RedirectTo is set when Allow is false.
type Decision struct {
	Allow      bool
	RedirectTo string
}

// String returns "allow" or "redirect <path>".
func (d Decision) String() string {
	if d.Allow {
		return "allow"
	}

	return "redirect " + d.RedirectTo
}

// Guard evaluates navigations against a route table.
type Guard struct {
	loginPath   string
	landingPath string
	routes      []Route
	byPath      map[string]Route
}

// New creates a guard. Without routes the default route table is used.
func New(cfg config.Guard, routes ...Route) *Guard {
	g := &Guard{
		loginPath:   Normalize(cfg.LoginPath),
		landingPath: Normalize(cfg.LandingPath),
		byPath:      make(map[string]Route),
	}

	if cfg.LoginPath == "" {
		g.loginPath = DefaultLoginPath
	}

	if cfg.LandingPath == "" {
		g.landingPath = DefaultLandingPath
	}

	if len(routes) == 0 {
		routes = DefaultRoutes(g.loginPath, g.landingPath)
	}

	for _, r := range routes {
		r.Path = Normalize(r.Path)
		g.routes = append(g.routes, r)
		g.byPath[r.Path] = r
	}

	return g
}

// LoginPath returns the login destination.
func (g *Guard) LoginPath() string { return g.loginPath }

// LandingPath returns the destination authenticated users land on.
func (g *Guard) LandingPath() string { return g.landingPath }

// Routes returns a copy of the route table.
func (g *Guard) Routes() []Route {
	return append([]Route(nil), g.routes...)
}

// Decide evaluates a destination against a session. First match wins:
//  1. auth required but not authenticated: redirect to login.
//  2. admin required but not admin: redirect to landing.
//  3. login destination while authenticated: redirect to landing.
//  4. allow.
func (g *Guard) Decide(dest Destination, current models.Session) Decision {
	switch {
	case dest.Requirement.RequiresAuth && !current.IsAuthenticated:
		return Decision{RedirectTo: g.loginPath}
	case dest.Requirement.RequiresAdmin && !current.IsAdmin:
		return Decision{RedirectTo: g.landingPath}
	case Normalize(dest.Path) == g.loginPath && current.IsAuthenticated:
		return Decision{RedirectTo: g.landingPath}
	default:
		return Decision{Allow: true}
	}
}

// Resolve maps a path to its destination. Alias routes are followed, unknown paths are public.
func (g *Guard) Resolve(p string) Destination {
	p = Normalize(p)

	// aliases may chain, but never more often than there are routes
	for range len(g.routes) + 1 {
		r, ok := g.byPath[p]
		if !ok {
			return Destination{Path: p}
		}

		if r.RedirectTo == "" {
			return Destination{Path: r.Path, Requirement: r.Requirement}
		}

		p = Normalize(r.RedirectTo)
	}

	return Destination{Path: p}
}

// Navigate resolves p and decides about it. Navigating to an alias redirects to its target
// unless the guard redirects elsewhere.
func (g *Guard) Navigate(p string, current models.Session) Decision {
	dest := g.Resolve(p)

	d := g.Decide(dest, current)
	if d.Allow && dest.Path != Normalize(p) {
		return Decision{RedirectTo: dest.Path}
	}

	return d
}

// Normalize cleans a request path: leading slash, no trailing slash, no dot segments.
func Normalize(p string) string {
	if p == "" {
		return "/"
	}

	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}

	return path.Clean(p)
}

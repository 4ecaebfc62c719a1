// Package navigation builds the navigation state of a console page: the menu a session
// may follow and the breadcrumbs leading to the current page.
package navigation

import (
	"github.com/rocketpop/rocketpop-sso/internal/guard"
	"github.com/rocketpop/rocketpop-sso/internal/models"
)

// Link represents a single menu or breadcrumb link.
type Link struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Active bool   `json:"active"`
}

// Context represents the navigation context for a page.
type Context struct {
	PageTitle   string `json:"pageTitle"`
	ActivePage  string `json:"activePage"`
	Menu        []Link `json:"menu"`
	Breadcrumbs []Link `json:"breadcrumbs"`
}

// NewContext creates a new navigation context.
func NewContext(pageTitle, activePage string) *Context {
	return &Context{
		PageTitle:   pageTitle,
		ActivePage:  activePage,
		Menu:        make([]Link, 0),
		Breadcrumbs: make([]Link, 0),
	}
}

// AddBreadcrumb adds a breadcrumb item to the context.
func (c *Context) AddBreadcrumb(title, url string, active bool) *Context {
	c.Breadcrumbs = append(c.Breadcrumbs, Link{
		Title:  title,
		URL:    url,
		Active: active,
	})

	return c
}

// IsActive checks if the given page path is the current one.
func (c *Context) IsActive(page string) bool {
	return c.ActivePage == guard.Normalize(page)
}

// ForSession creates the context of the page at activePath.
// The menu holds every named route the guard lets current navigate to,
// so a signed in user sees no login link and only admins see the admin page.
func ForSession(g *guard.Guard, current models.Session, pageTitle, activePath string) *Context {
	activePath = guard.Normalize(activePath)
	c := NewContext(pageTitle, activePath)

	for _, r := range g.Routes() {
		if r.Name == "" || r.RedirectTo != "" {
			continue
		}

		if !g.Decide(guard.Destination{Path: r.Path, Requirement: r.Requirement}, current).Allow {
			continue
		}

		c.Menu = append(c.Menu, Link{Title: r.Name, URL: r.Path, Active: r.Path == activePath})
	}

	home := g.LoginPath()
	if current.IsAuthenticated {
		home = g.LandingPath()
	}

	c.AddBreadcrumb("Home", home, home == activePath)

	if home != activePath {
		c.AddBreadcrumb(pageTitle, activePath, true)
	}

	return c
}

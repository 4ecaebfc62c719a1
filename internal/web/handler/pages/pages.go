// Package pages serves the public information pages of the console.
package pages

import (
	"github.com/gofiber/fiber/v3"

	"github.com/rocketpop/rocketpop-sso/internal/guard"
	"github.com/rocketpop/rocketpop-sso/internal/web/handler"
)

// Content of a public page.
type Content struct {
	Summary string `json:"summary"`
}

// Pages are the public pages by route name.
var Pages = map[string]Content{ //nolint:gochecknoglobals
	guard.RoutePrivacy:       {Summary: "Only the session token is stored on this machine. Credentials are encrypted before they are sent."},
	guard.RouteTerms:         {Summary: "Accounts are managed by the SSO backend administrators."},
	guard.RouteDocumentation: {Summary: "Sign in on the login page, then use the dashboard or the admin area."},
	guard.RouteSupport:       {Summary: "Contact your SSO administrator for account and password problems."},
}

// Service serves the public pages.
type Service struct {
	handler.Service
	deps handler.Deps
}

// New returns a public pages handler. Every web service gets its own.
func New() *Service {
	return &Service{}
}

// Init registers a route for every public page of the route table.
func (s *Service) Init(app *fiber.App, deps handler.Deps) error {
	if app == nil || !deps.Valid() {
		return handler.ErrNilDeps
	}

	s.deps = deps

	for _, r := range deps.Guard.Routes() {
		content, ok := Pages[r.Name]
		if !ok || r.RedirectTo != "" {
			continue
		}

		app.Get(r.Path, s.page(r.Name, content))
	}

	return nil
}

func (s *Service) page(title string, content Content) fiber.Handler {
	return func(c fiber.Ctx) error {
		return handler.Render(c, s.deps, fiber.StatusOK, title, content, "")
	}
}

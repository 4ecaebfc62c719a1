// Package logout provides the logout endpoint of the local console.
package logout

import (
	"github.com/gofiber/fiber/v3"

	"github.com/rocketpop/rocketpop-sso/internal/web/handler"
)

// Path of the logout endpoint.
const Path = handler.RootPath + "logout"

// Service is the logout handler service.
type Service struct {
	handler.Service
	deps handler.Deps
}

// New returns a logout handler. Every web service gets its own.
func New() *Service {
	return &Service{}
}

// Init initializes the logout handler.
func (s *Service) Init(app *fiber.App, deps handler.Deps) error {
	if app == nil || !deps.Valid() {
		return handler.ErrNilDeps
	}

	s.deps = deps

	// logout route (outside guard protection)
	app.Get(Path, s.Logout)
	app.Post(Path, s.Logout)

	return nil
}

// Logout clears the session and sends the client to the login page.
func (s *Service) Logout(c fiber.Ctx) error {
	s.deps.Sessions.Logout()

	return c.Redirect().Status(fiber.StatusFound).To(s.deps.Guard.LoginPath())
}

// Package dashboard provides the landing page of authenticated sessions.
package dashboard

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/rocketpop/rocketpop-sso/internal/models"
	"github.com/rocketpop/rocketpop-sso/internal/web/handler"
)

const (
	// Title of the dashboard page.
	Title = "Dashboard"

	defaultTimeout = 30 * time.Second
)

// Data represents the dashboard data.
type Data struct {
	User    *models.User `json:"user"`
	IsAdmin bool         `json:"isAdmin"`
	// Stale is set when the profile could not be refreshed and the session copy is shown.
	Stale bool `json:"stale,omitempty"`
}

// Service is the dashboard handler service.
type Service struct {
	handler.Service
	deps handler.Deps
}

// New returns a dashboard handler. Every web service gets its own.
func New() *Service {
	return &Service{}
}

// Init initializes the dashboard handler.
func (s *Service) Init(app *fiber.App, deps handler.Deps) error {
	if app == nil || !deps.Valid() {
		return handler.ErrNilDeps
	}

	s.deps = deps

	app.Get(deps.Guard.LandingPath(), s.Get)

	return nil
}

// Get refreshes the profile of the session user and renders it.
func (s *Service) Get(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), defaultTimeout)
	defer cancel()

	data := Data{}

	user, err := s.deps.Sessions.FetchSelf(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("failed to refresh profile, using session copy")

		current := s.deps.Sessions.Snapshot()
		if !current.IsAuthenticated {
			return c.Redirect().Status(fiber.StatusFound).To(s.deps.Guard.LoginPath())
		}

		user = current.User.Clone()
		data.Stale = true
	}

	data.User = user
	data.IsAdmin = user.IsAdmin()

	return handler.Render(c, s.deps, fiber.StatusOK, Title, data, "")
}

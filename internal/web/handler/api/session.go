// Package api provides the json session endpoints of the console.
package api

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/rocketpop/rocketpop-sso/internal/web/handler"
)

const (
	// SessionPath answers with the current session.
	SessionPath = handler.APIPath + "/session"

	// ValidatePath validates the persisted token against the backend.
	ValidatePath = SessionPath + "/validate"

	defaultTimeout = 30 * time.Second
)

// ValidateResponse is the answer of a token validation.
type ValidateResponse struct {
	Valid   bool                `json:"valid"`
	Session handler.SessionView `json:"session"`
}

// Service serves the session api.
type Service struct {
	handler.Service
	deps handler.Deps
}

// New returns a session api handler. Every web service gets its own.
func New() *Service {
	return &Service{}
}

// Init registers the routes.
func (s *Service) Init(app *fiber.App, deps handler.Deps) error {
	if app == nil || !deps.Valid() {
		return handler.ErrNilDeps
	}

	s.deps = deps

	app.Get(SessionPath, s.Get)
	app.Post(ValidatePath, s.Validate)

	return nil
}

// Get answers with the public part of the current session.
func (s *Service) Get(c fiber.Ctx) error {
	return c.JSON(handler.NewSessionView(s.deps.Sessions.Snapshot()))
}

// Validate checks the persisted token. An invalid token ends the session.
func (s *Service) Validate(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), defaultTimeout)
	defer cancel()

	valid := s.deps.Sessions.ValidateToken(ctx)

	status := fiber.StatusOK
	if !valid {
		status = fiber.StatusUnauthorized
	}

	return c.Status(status).JSON(ValidateResponse{
		Valid:   valid,
		Session: handler.NewSessionView(s.deps.Sessions.Snapshot()),
	})
}

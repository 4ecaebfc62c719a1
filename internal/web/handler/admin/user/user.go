// Package user provides the account administration pages of admin sessions.
package user

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/rocketpop/rocketpop-sso/internal/guard"
	"github.com/rocketpop/rocketpop-sso/internal/models"
	"github.com/rocketpop/rocketpop-sso/internal/web/handler"
	"github.com/rocketpop/rocketpop-sso/internal/web/middleware/auth"
)

const (
	// Path is the base path of the account administration.
	Path = handler.RootPath + "admin"

	// UsersPath receives account changes.
	UsersPath = Path + "/users"

	// Title of the administration page.
	Title = "Admin"

	defaultTimeout = 30 * time.Second
)

// Form is a submitted account.
type Form struct {
	Username string      `form:"username" json:"username" validate:"required,max=100"`
	Password string      `form:"password" json:"password,omitempty" validate:"required,max=245"` //nolint:gosec // form field
	Email    string      `form:"email" json:"email" validate:"omitempty,email"`
	Role     models.Role `form:"role" json:"role" validate:"omitempty,oneof=user manager admin"`
}

// ListData is rendered by the administration page.
type ListData struct {
	Filter  string               `json:"filter,omitempty"`
	Users   []models.AccountUser `json:"users"`
	Message string               `json:"message,omitempty"`
}

// Service provides account administration.
type Service struct {
	handler.Service
	deps      handler.Deps
	validator *validator.Validate
}

// New returns a admin user handler. Every web service gets its own.
func New() *Service {
	return &Service{}
}

// Init registers routes.
func (s *Service) Init(app *fiber.App, deps handler.Deps) error {
	if app == nil || !deps.Valid() {
		return handler.ErrNilDeps
	}

	s.deps = deps
	s.validator = validator.New()

	admin := auth.Require(deps.Guard, deps.Sessions, guard.Requirement{RequiresAuth: true, RequiresAdmin: true})

	// Routes
	app.Get(Path, admin, s.List)
	app.Post(UsersPath, admin, s.Create)
	app.Post(UsersPath+"/:username/delete", admin, s.Delete)

	return nil
}

// List renders the accounts, filtered by the username query.
func (s *Service) List(c fiber.Ctx) error {
	return s.render(c, fiber.StatusOK, c.Query("username"), "")
}

// Create creates a regular or an admin account.
func (s *Service) Create(c fiber.Ctx) error {
	form := new(Form)

	if err := c.Bind().Body(form); err != nil {
		return s.fail(c, fiber.StatusBadRequest, "invalid form data")
	}

	if err := s.validator.Struct(form); err != nil {
		log.Debug().Err(err).Msg("account form rejected")

		return s.fail(c, fiber.StatusBadRequest, "invalid form data")
	}

	ctx, cancel := context.WithTimeout(c.Context(), defaultTimeout)
	defer cancel()

	create := s.deps.Accounts.CreateUser
	if form.Role.IsAdmin() {
		create = s.deps.Accounts.CreateAdmin
	}

	result, err := create(ctx, models.AccountUser{
		Username: form.Username,
		Password: form.Password,
		Email:    form.Email,
		Role:     form.Role,
	})
	if err != nil {
		log.Error().Err(err).Str("username", form.Username).Msg("failed to create account")

		return s.fail(c, handler.StatusFor(err), handler.ErrorMessage(err))
	}

	log.Info().Str("username", form.Username).Str("role", string(form.Role)).Msg("account created")

	return s.render(c, fiber.StatusCreated, "", result.Message)
}

// Delete deletes the account named in the path.
func (s *Service) Delete(c fiber.Ctx) error {
	username := c.Params("username")

	ctx, cancel := context.WithTimeout(c.Context(), defaultTimeout)
	defer cancel()

	msg, err := s.deps.Accounts.DeleteUser(ctx, username)
	if err != nil {
		log.Error().Err(err).Str("username", username).Msg("failed to delete account")

		return s.fail(c, handler.StatusFor(err), handler.ErrorMessage(err))
	}

	log.Info().Str("username", username).Msg("account deleted")

	return s.render(c, fiber.StatusOK, "", msg)
}

func (s *Service) render(c fiber.Ctx, status int, filter, msg string) error {
	ctx, cancel := context.WithTimeout(c.Context(), defaultTimeout)
	defer cancel()

	users, err := s.deps.Accounts.ListUsers(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to list accounts")

		return s.fail(c, handler.StatusFor(err), handler.ErrorMessage(err))
	}

	if users == nil {
		users = []models.AccountUser{}
	}

	return handler.Render(c, s.deps, status, Title, ListData{Filter: filter, Users: users, Message: msg}, "")
}

func (s *Service) fail(c fiber.Ctx, status int, msg string) error {
	return handler.Render(c, s.deps, status, Title, ListData{Users: []models.AccountUser{}}, msg)
}

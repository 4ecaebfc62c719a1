package login

import (

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/rocketpop/rocketpop-sso/internal/web/handler"
)

// Title of the login page.
const Title = "Login"

// Form is the submitted login form. The password never leaves the handler.
type Form struct {
	Username string `form:"username" json:"username" validate:"required,max=100"`
	Password string `form:"password" json:"password,omitempty" validate:"required"` //nolint:gosec // form field
}

// Service is the login handler service.
type Service struct {
	handler.Service
	deps      handler.Deps
	validator *validator.Validate
}

// New returns a login handler. Every web service gets its own.
func New() *Service {
	return &Service{}
}

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, deps handler.Deps) error {
	if app == nil || !deps.Valid() {
		return handler.ErrNilDeps
	}

	s.deps = deps
	s.validator = validator.New()

	// register routes
	app.Get(deps.Guard.LoginPath(), s.Get)
	app.Post(deps.Guard.LoginPath(), s.Post)

	return nil
}

// Get handles the login page rendering.
func (s *Service) Get(c fiber.Ctx) error {
	return handler.Render(c, s.deps, fiber.StatusOK, Title, Form{}, "")
}

// Post handles the login form submission.
func (s *Service) Post(c fiber.Ctx) error {
	form := new(Form)

	if err := c.Bind().Body(form); err != nil {
		return handler.Render(c, s.deps, fiber.StatusBadRequest, Title, Form{}, ErrInvalidFormData.Error())
	}

	if err := s.validator.Struct(form); err != nil {
		log.Debug().Err(err).Msg("login form rejected")

		return handler.Render(c, s.deps, fiber.StatusBadRequest, Title, Form{Username: form.Username},
			ErrInvalidFormData.Error())
	}

	result := s.deps.Sessions.Login(c.Context(), form.Username, form.Password)
	if result.Success {
		return c.Redirect().Status(fiber.StatusFound).To(s.deps.Guard.LandingPath())
	}

	msg := result.Message
	if msg == "" {
		msg = ErrLoginFailed.Error()
	}

	status := handler.StatusFor(result.Err)
	if status == fiber.StatusOK {
		status = fiber.StatusUnauthorized
	}

	return handler.Render(c, s.deps, status, Title, Form{Username: form.Username}, msg)
}

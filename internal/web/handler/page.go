package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/rocketpop/rocketpop-sso/internal/client"
	"github.com/rocketpop/rocketpop-sso/internal/credential"
	"github.com/rocketpop/rocketpop-sso/internal/models"
	"github.com/rocketpop/rocketpop-sso/internal/session"
	"github.com/rocketpop/rocketpop-sso/internal/web/navigation"
)

// SessionView is the public part of a session. It never carries the token.
type SessionView struct {
	State           string       `json:"state"`
	IsAuthenticated bool         `json:"isAuthenticated"`
	IsAdmin         bool         `json:"isAdmin"`
	User            *models.User `json:"user,omitempty"`
}

// NewSessionView creates the view of s.
func NewSessionView(s models.Session) SessionView {
	return SessionView{
		State:           s.State().String(),
		IsAuthenticated: s.IsAuthenticated,
		IsAdmin:         s.IsAdmin,
		User:            s.User.Clone(),
	}
}

// Page is the json document every console page answers with.
type Page struct {
	Title      string              `json:"title"`
	Navigation *navigation.Context `json:"navigation"`
	Session    SessionView         `json:"session"`
	Data       any                 `json:"data,omitempty"`
	Error      string              `json:"error,omitempty"`
}

// Render sends the page of the current request.
func Render(c fiber.Ctx, deps Deps, status int, title string, data any, errMsg string) error {
	current := deps.Sessions.Snapshot()

	return c.Status(status).JSON(Page{
		Title:      title,
		Navigation: navigation.ForSession(deps.Guard, current, title, c.Path()),
		Session:    NewSessionView(current),
		Data:       data,
		Error:      errMsg,
	})
}

// StatusFor maps an error of the session or client packages to a http status.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.Is(err, session.ErrSuperseded):
		return fiber.StatusConflict
	case errors.Is(err, client.ErrAuthentication):
		return fiber.StatusUnauthorized
	case errors.Is(err, client.ErrAuthorization):
		return fiber.StatusForbidden
	case errors.Is(err, client.ErrNetwork):
		return fiber.StatusBadGateway
	case errors.Is(err, client.ErrInvalidRequest), errors.Is(err, credential.ErrEncryption):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorMessage is the message shown for err. Backend messages win.
func ErrorMessage(err error) string {
	if msg := client.Message(err); msg != "" {
		return msg
	}

	return err.Error()
}

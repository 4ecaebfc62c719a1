package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/rocketpop/rocketpop-sso/internal/client"
	"github.com/rocketpop/rocketpop-sso/internal/config"
	"github.com/rocketpop/rocketpop-sso/internal/guard"
	"github.com/rocketpop/rocketpop-sso/internal/models"
	"github.com/rocketpop/rocketpop-sso/internal/session"
)

// Sessions is the part of the session store the console uses.
type Sessions interface {
	Snapshot() models.Session
	Login(ctx context.Context, username, password string) session.LoginResult
	Logout()
	ValidateToken(ctx context.Context) bool
	FetchSelf(ctx context.Context) (*models.User, error)
}

// Accounts is the part of the backend client the admin pages use.
type Accounts interface {
	ListUsers(ctx context.Context, filter string) ([]models.AccountUser, error)
	CreateUser(ctx context.Context, u models.AccountUser) (*client.AccountResult, error)
	CreateAdmin(ctx context.Context, u models.AccountUser) (*client.AccountResult, error)
	DeleteUser(ctx context.Context, username string) (string, error)
}

// ErrNilDeps is returned by Init when the app or a dependency is missing.
var ErrNilDeps = errors.New(ErrNilDepsFatalLogMsg)

// Deps are the dependencies shared by all handlers.
type Deps struct {
	Config   *config.Config
	Sessions Sessions
	Guard    *guard.Guard
	Accounts Accounts
}

// Valid reports whether all dependencies are set.
func (d Deps) Valid() bool {
	return d.Config != nil && d.Sessions != nil && d.Guard != nil && d.Accounts != nil
}

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, deps Deps) error
}

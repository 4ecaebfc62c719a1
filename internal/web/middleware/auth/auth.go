package auth

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/rocketpop/rocketpop-sso/internal/guard"
	"github.com/rocketpop/rocketpop-sso/internal/models"
)

// Snapshotter hands out the current session.
type Snapshotter interface {
	Snapshot() models.Session
}

// Config of the guard middleware.
type Config struct {
	// Guard decides about every navigation.
	Guard *guard.Guard

	// Sessions provides the session the guard decides on.
	Sessions Snapshotter

	// Skip lists path prefixes the guard never sees.
	//
	// Optional. Default: /checkalive, /metrics, /api, /logout
	Skip []string
}

// DefaultSkip are the prefixes not subject to navigation decisions.
var DefaultSkip = []string{"/checkalive", "/metrics", "/api", "/logout"} //nolint:gochecknoglobals

// Middleware routes every page request through the route guard. A redirect
// decision answers with 302, an allowed request continues the chain.
func Middleware(cfg Config) fiber.Handler {
	if cfg.Guard == nil || cfg.Sessions == nil {
		log.Fatal().Msg("guard middleware needs a guard and a session source")
	}

	skip := cfg.Skip
	if skip == nil {
		skip = DefaultSkip
	}

	return func(c fiber.Ctx) error {
		p := guard.Normalize(c.Path())

		if IsSkipped(p, skip) || IsLoginSubmit(c, cfg.Guard) {
			return c.Next()
		}

		d := cfg.Guard.Navigate(p, cfg.Sessions.Snapshot())
		if !d.Allow {
			log.Debug().Str("path", p).Str("decision", d.String()).Msg("navigation redirected")

			return c.Redirect().Status(fiber.StatusFound).To(d.RedirectTo)
		}

		return c.Next()
	}
}

// Require guards a single handler with req, in addition to the route table.
func Require(g *guard.Guard, sessions Snapshotter, req guard.Requirement) fiber.Handler {
	return func(c fiber.Ctx) error {
		d := g.Decide(guard.Destination{Path: guard.Normalize(c.Path()), Requirement: req}, sessions.Snapshot())
		if !d.Allow {
			return c.Redirect().Status(fiber.StatusFound).To(d.RedirectTo)
		}

		return c.Next()
	}
}

// IsSkipped reports whether p equals or lies below one of the prefixes.
func IsSkipped(p string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if p == prefix || strings.HasPrefix(p, prefix+"/") {
			return true
		}
	}

	return false
}

// IsLoginSubmit checks if the request submits the login form. A submit is
// never redirected, a new login supersedes the current session.
func IsLoginSubmit(c fiber.Ctx, g *guard.Guard) bool {
	return c.Method() == fiber.MethodPost && guard.Normalize(c.Path()) == g.LoginPath()
}

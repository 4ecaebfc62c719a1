package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketpop/rocketpop-sso/internal/config"
	"github.com/rocketpop/rocketpop-sso/internal/guard"
	"github.com/rocketpop/rocketpop-sso/internal/models"
)

type staticSession models.Session

func (s staticSession) Snapshot() models.Session { return models.Session(s) }

func TestIsSkipped(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/api", true},
		{"/api/session", true},
		{"/apiary", false},
		{"/checkalive", true},
		{"/logout", true},
		{"/dashboard", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsSkipped(tt.path, DefaultSkip), tt.path)
	}
}

func newApp(current models.Session) *fiber.App {
	g := guard.New(config.Guard{})
	app := fiber.New()

	app.Use(Middleware(Config{Guard: g, Sessions: staticSession(current)}))

	ok := func(c fiber.Ctx) error { return c.SendString("ok") }
	app.Get("/dashboard", ok)
	app.Get("/login", ok)
	app.Post("/login", ok)
	app.Get("/api/session", ok)
	app.Get("/secret", Require(g, staticSession(current), guard.Requirement{RequiresAuth: true}), ok)

	return app
}

func TestMiddleware(t *testing.T) {
	user := models.Session{Token: "t", User: &models.User{Username: "alice"}, IsAuthenticated: true}

	tests := []struct {
		name     string
		current  models.Session
		method   string
		path     string
		status   int
		location string
	}{
		{"protected anonymous", models.Session{}, http.MethodGet, "/dashboard", http.StatusFound, "/login"},
		{"protected trailing slash", models.Session{}, http.MethodGet, "/dashboard/", http.StatusFound, "/login"},
		{"protected user", user, http.MethodGet, "/dashboard", http.StatusOK, ""},
		{"login authenticated", user, http.MethodGet, "/login", http.StatusFound, "/dashboard"},
		{"login submit authenticated", user, http.MethodPost, "/login", http.StatusOK, ""},
		{"api anonymous", models.Session{}, http.MethodGet, "/api/session", http.StatusOK, ""},
		{"required anonymous", models.Session{}, http.MethodGet, "/secret", http.StatusFound, "/login"},
		{"required user", user, http.MethodGet, "/secret", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := newApp(tt.current).Test(httptest.NewRequest(tt.method, tt.path, nil))
			require.NoError(t, err)

			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.location, resp.Header.Get("Location"))
		})
	}
}

package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketpop/rocketpop-sso/internal/config"
	"github.com/rocketpop/rocketpop-sso/internal/models"
)

var (
	anonymous = models.Session{}
	pending   = models.Session{Token: "t"}
	user      = models.Session{
		Token:           "t",
		User:            &models.User{Username: "alice", Role: models.RoleUser},
		IsAuthenticated: true,
	}
	admin = models.Session{
		Token:           "t",
		User:            &models.User{Username: "admin1", Role: models.RoleAdmin},
		IsAuthenticated: true,
		IsAdmin:         true,
	}
)

func newGuard() *Guard {
	return New(config.Guard{})
}

func TestDecideRequiresAuth(t *testing.T) {
	g := newGuard()

	for _, r := range g.Routes() {
		if !r.Requirement.RequiresAuth {
			continue
		}

		for name, s := range map[string]models.Session{"anonymous": anonymous, "pending": pending} {
			t.Run(r.Path+" "+name, func(t *testing.T) {
				d := g.Decide(Destination{Path: r.Path, Requirement: r.Requirement}, s)
				assert.False(t, d.Allow)
				assert.Equal(t, DefaultLoginPath, d.RedirectTo)
			})
		}
	}
}

func TestDecideTable(t *testing.T) {
	g := newGuard()

	tests := []struct {
		name    string
		path    string
		session models.Session
		want    Decision
	}{
		{"anonymous on login", "/login", anonymous, Decision{Allow: true}},
		{"anonymous on dashboard", "/dashboard", anonymous, Decision{RedirectTo: "/login"}},
		{"anonymous on admin", "/admin", anonymous, Decision{RedirectTo: "/login"}},
		{"anonymous on privacy", "/privacy", anonymous, Decision{Allow: true}},
		{"user on dashboard", "/dashboard", user, Decision{Allow: true}},
		{"user on admin", "/admin", user, Decision{RedirectTo: "/dashboard"}},
		{"user on login", "/login", user, Decision{RedirectTo: "/dashboard"}},
		{"user on support", "/support", user, Decision{Allow: true}},
		{"admin on admin", "/admin", admin, Decision{Allow: true}},
		{"admin on login", "/login/", admin, Decision{RedirectTo: "/dashboard"}},
		{"admin on terms", "/terms", admin, Decision{Allow: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.Decide(g.Resolve(tt.path), tt.session))
		})
	}
}

func TestDecideRuleOrder(t *testing.T) {
	g := newGuard()

	// auth is checked before admin: anonymous never lands on the landing page first
	d := g.Decide(Destination{Path: "/x", Requirement: Requirement{RequiresAuth: true, RequiresAdmin: true}}, anonymous)
	assert.Equal(t, Decision{RedirectTo: "/login"}, d)

	// admin without auth requirement still needs the admin flag
	d = g.Decide(Destination{Path: "/x", Requirement: Requirement{RequiresAdmin: true}}, anonymous)
	assert.Equal(t, Decision{RedirectTo: "/dashboard"}, d)
}

func TestResolve(t *testing.T) {
	g := newGuard()

	tests := []struct {
		path string
		want Destination
	}{
		{"/", Destination{Path: "/login"}},
		{"", Destination{Path: "/login"}},
		{"/admin/", Destination{Path: "/admin", Requirement: Requirement{RequiresAuth: true, RequiresAdmin: true}}},
		{"dashboard", Destination{Path: "/dashboard", Requirement: Requirement{RequiresAuth: true}}},
		{"/nowhere", Destination{Path: "/nowhere"}},
		{"/admin/../privacy", Destination{Path: "/privacy"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, g.Resolve(tt.path))
		})
	}
}

func TestResolveAliasLoop(t *testing.T) {
	g := New(config.Guard{}, Route{Path: "/a", RedirectTo: "/b"}, Route{Path: "/b", RedirectTo: "/a"})

	// must terminate
	_ = g.Resolve("/a")
}

func TestNavigate(t *testing.T) {
	g := newGuard()

	assert.Equal(t, Decision{RedirectTo: "/login"}, g.Navigate("/", anonymous))
	assert.Equal(t, Decision{RedirectTo: "/dashboard"}, g.Navigate("/", user))
	assert.Equal(t, Decision{Allow: true}, g.Navigate("/login", anonymous))
	assert.Equal(t, Decision{RedirectTo: "/dashboard"}, g.Navigate("/admin", user))
	assert.Equal(t, Decision{Allow: true}, g.Navigate("/unknown/page", anonymous))
}

func TestCustomPaths(t *testing.T) {
	g := New(config.Guard{LoginPath: "/signin/", LandingPath: "home"})

	require.Equal(t, "/signin", g.LoginPath())
	require.Equal(t, "/home", g.LandingPath())

	assert.Equal(t, Decision{RedirectTo: "/signin"}, g.Navigate("/home", anonymous))
	assert.Equal(t, Decision{RedirectTo: "/home"}, g.Navigate("/signin", user))
	assert.Equal(t, Decision{RedirectTo: "/signin"}, g.Navigate("/", anonymous))
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "allow", Decision{Allow: true}.String())
	assert.Equal(t, "redirect /login", Decision{RedirectTo: "/login"}.String())
}

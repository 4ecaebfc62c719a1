package guard

// Route is an entry of the route table. A route with RedirectTo is an alias.
type Route struct {
	Path        string
	Name        string
	RedirectTo  string
	Requirement Requirement
}

// Route names of the default table.
const (
	RouteLogin         = "Login"
	RouteDashboard     = "Dashboard"
	RouteAdmin         = "Admin"
	RoutePrivacy       = "PrivacyPolicy"
	RouteTerms         = "TermsOfService"
	RouteDocumentation = "Documentation"
	RouteSupport       = "Support"
)

// DefaultRoutes returns the route table of the SSO front end.
func DefaultRoutes(loginPath, landingPath string) []Route {
	return []Route{
		{Path: "/", RedirectTo: loginPath},
		{Path: loginPath, Name: RouteLogin},
		{Path: landingPath, Name: RouteDashboard, Requirement: Requirement{RequiresAuth: true}},
		{Path: "/admin", Name: RouteAdmin, Requirement: Requirement{RequiresAuth: true, RequiresAdmin: true}},
		{Path: "/privacy", Name: RoutePrivacy},
		{Path: "/terms", Name: RouteTerms},
		{Path: "/documentation", Name: RouteDocumentation},
		{Path: "/support", Name: RouteSupport},
	}
}

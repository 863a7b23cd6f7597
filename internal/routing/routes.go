// Package routing defines the navigable surface of the LawDesk client:
// the route table, per-route allowed roles, and path matching for
// parameterized routes such as /clients/:id.
package routing

// Route describes a single navigable screen.
type Route struct {
	// Path is the route pattern, possibly containing :param segments.
	Path string
	// URL is the canonical link target for the route.
	URL string
	// Title is the human-readable screen title.
	Title string
	// Roles lists the roles allowed to visit the route. Empty means
	// the route is not role-gated (auth screens, not-found).
	Roles []string
}

// Role names understood by the backend tokens.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Canonical route URLs.
const (
	RootURL           = "/"
	LoginURL          = "/login"
	RegisterURL       = "/register"
	ForgotPasswordURL = "/forgot-password"
	ResetPasswordURL  = "/reset-password"
	DashboardURL      = "/dashboard"
	ClientsURL        = "/clients"
	ClientURL         = "/clients/:id"
	ClientEditURL     = "/clients/edit/:id"
	ProfileURL        = "/profile"
	NotFoundURL       = "/404"
)

// AppTitle is the product name shown on the root route.
const AppTitle = "Lawyer Dashboard"

// AuthRoutes are the screens reachable while unauthenticated.
var AuthRoutes = []Route{
	{Path: RootURL, URL: RootURL, Title: AppTitle},
	{Path: LoginURL, URL: LoginURL, Title: "Login"},
	{Path: RegisterURL, URL: RegisterURL, Title: "Registration"},
	{Path: ForgotPasswordURL, URL: ForgotPasswordURL, Title: "Forgot Password"},
	{Path: ResetPasswordURL, URL: ResetPasswordURL, Title: "Reset Password"},
}

// DashboardRoutes are the role-gated screens behind the dashboard layout.
var DashboardRoutes = []Route{
	{Path: DashboardURL, URL: DashboardURL, Title: "Dashboard", Roles: []string{RoleAdmin, RoleUser}},
	{Path: ClientsURL, URL: ClientsURL, Title: "Clients", Roles: []string{RoleAdmin, RoleUser}},
	{Path: ClientURL, URL: ClientURL, Title: "Client", Roles: []string{RoleAdmin, RoleUser}},
	{Path: ClientEditURL, URL: ClientEditURL, Title: "Edit Client", Roles: []string{RoleAdmin, RoleUser}},
	{Path: ProfileURL, URL: ProfileURL, Title: "Profile", Roles: []string{RoleAdmin, RoleUser}},
}

// Package guard implements the route guards evaluated before a screen
// is shown. Guards are synchronous: they rely entirely on the locally
// computed auth snapshot and never touch the network.
package guard

import (
	"slices"

	"github.com/lawdesk/lawdesk/internal/auth"
	"github.com/lawdesk/lawdesk/internal/routing"
)

// Result is a guard decision: either allow rendering, or redirect.
type Result struct {
	Allow      bool
	RedirectTo string
}

func allow() Result {
	return Result{Allow: true}
}

func redirect(url string) Result {
	return Result{RedirectTo: url}
}

// AuthLayout guards the login/forgot/reset screens: an already
// authenticated user is sent to their landing page instead.
func AuthLayout(r *auth.Resolver) Result {
	snapshot := r.GetAuth(auth.Options{})
	if snapshot.IsAuthenticated {
		return redirect(snapshot.RedirectURL)
	}
	return allow()
}

// DashboardLayout guards every dashboard screen: an unauthenticated
// visitor is sent to login, with the attempted URL cached for
// post-login return.
func DashboardLayout(r *auth.Resolver) Result {
	snapshot := r.GetAuth(auth.Options{CacheRedirection: true})
	if !snapshot.IsAuthenticated {
		return redirect(snapshot.RedirectURL)
	}
	return allow()
}

// Page guards a single role-gated screen. An authenticated user whose
// role is not in the allowed list is sent to not-found, not to login:
// they are authenticated, just unauthorized for this resource.
func Page(r *auth.Resolver, allowedRoles []string) Result {
	snapshot := r.GetAuth(auth.Options{})
	if snapshot.IsAuthenticated && !slices.Contains(allowedRoles, snapshot.Role) {
		return redirect(routing.NotFoundURL)
	}
	return allow()
}

// Package auth computes the authentication snapshot every navigation
// decision is based on: whether a valid session token is persisted, the
// role it carries, and where the user should land next.
package auth

import (
	"time"

	"github.com/lawdesk/lawdesk/internal/routing"
	"github.com/lawdesk/lawdesk/internal/session"
	"github.com/lawdesk/lawdesk/internal/token"
)

// Landing maps a role to the default route a user of that role sees
// after login.
var Landing = map[string]string{
	routing.RoleAdmin: routing.DashboardURL,
	routing.RoleUser:  routing.ClientsURL,
}

// Snapshot is the synchronously computed authentication state.
type Snapshot struct {
	// IsAuthenticated is true iff a token is persisted and not expired.
	IsAuthenticated bool
	// Role is the role decoded from the token, empty when unauthenticated.
	Role string
	// RedirectURL is where the user should be sent next: the cached
	// pre-login URL if one exists, otherwise the role's landing page,
	// otherwise the login route.
	RedirectURL string
}

// Options controls a single GetAuth evaluation.
type Options struct {
	// CacheRedirection, when the visitor turns out to be unauthenticated,
	// persists the current location so login can return them there.
	CacheRedirection bool
}

// Location reports the current path plus query string, the value cached
// for post-login redirection.
type Location interface {
	Current() string
}

// Resolver evaluates authentication state from the persisted session
// store. It performs no network calls and is safe to call on every
// route transition.
type Resolver struct {
	store session.Store
	loc   Location
	now   func() time.Time
}

// NewResolver constructs a Resolver over the given store and location
// source. now may be nil, in which case time.Now is used.
func NewResolver(store session.Store, loc Location, now func() time.Time) *Resolver {
	if now == nil {
		now = time.Now
	}
	return &Resolver{store: store, loc: loc, now: now}
}

// GetAuth computes the current Snapshot. When opts.CacheRedirection is
// set and the visitor is unauthenticated, the current location is
// persisted as the cached redirect URL before returning.
func (r *Resolver) GetAuth(opts Options) Snapshot {
	tok, _ := r.store.Get(session.TokenKey)
	cachedRedirect, _ := r.store.Get(session.CachedRedirectKey)
	isAuthenticated := token.IsActive(tok, r.now())

	redirectURL := routing.LoginURL
	role := ""

	if isAuthenticated {
		claims, err := token.Decode(tok)
		if err == nil && claims != nil {
			role = claims.Role
		}
		if role != "" {
			if cachedRedirect != "" {
				redirectURL = cachedRedirect
			} else if landing, ok := Landing[role]; ok {
				redirectURL = landing
			}
		}
	}

	if opts.CacheRedirection && !isAuthenticated {
		r.store.Set(session.CachedRedirectKey, r.loc.Current())
	}

	return Snapshot{
		IsAuthenticated: isAuthenticated,
		Role:            role,
		RedirectURL:     redirectURL,
	}
}

// CompleteLogin persists the freshly issued token, consumes the cached
// redirect URL, and returns the route to land on. The cached URL is
// removed from storage so it is used exactly once.
func (r *Resolver) CompleteLogin(tok string) string {
	r.store.Set(session.TokenKey, tok)
	snapshot := r.GetAuth(Options{})
	r.store.Remove(session.CachedRedirectKey)
	return snapshot.RedirectURL
}

// Logout removes the persisted token.
func (r *Resolver) Logout() {
	r.store.Remove(session.TokenKey)
}

// ClearCachedRedirect removes the cached redirect URL, used after a
// password reset consumes it.
func (r *Resolver) ClearCachedRedirect() {
	r.store.Remove(session.CachedRedirectKey)
}

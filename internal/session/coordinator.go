package session

import (
	"go.uber.org/zap"

	"github.com/lawdesk/lawdesk/internal/routing"
)

// Navigator abstracts forced whole-application navigation. The client
// shell implements it by switching the current screen; tests record the
// target.
type Navigator interface {
	Navigate(url string)
}

// Coordinator is the single subscriber of the HTTP client's
// session-expired event. A 401 from any endpoint clears all persisted
// client state and forces navigation to the login route.
type Coordinator struct {
	store  Store
	nav    Navigator
	logger *zap.Logger
}

// NewCoordinator wires the coordinator to the store it clears and the
// navigator it redirects through.
func NewCoordinator(store Store, nav Navigator, logger *zap.Logger) *Coordinator {
	return &Coordinator{store: store, nav: nav, logger: logger}
}

// SessionExpired handles an authentication-rejected response. It clears
// every persisted key, not just the token, then navigates to the login
// route.
func (c *Coordinator) SessionExpired() {
	c.logger.Info("session expired, signing out", zap.String("redirect", routing.LoginURL))
	c.store.Clear()
	c.nav.Navigate(routing.LoginURL)
}

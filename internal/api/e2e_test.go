package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lawdesk/lawdesk/internal/api"
	"github.com/lawdesk/lawdesk/internal/api/apitest"
	"github.com/lawdesk/lawdesk/internal/auth"
	"github.com/lawdesk/lawdesk/internal/guard"
	"github.com/lawdesk/lawdesk/internal/listing"
	"github.com/lawdesk/lawdesk/internal/models"
	"github.com/lawdesk/lawdesk/internal/routing"
	"github.com/lawdesk/lawdesk/internal/session"
)

// browser stands in for the host environment: it tracks the current
// location and receives forced navigation.
type browser struct {
	location string
}

func (b *browser) Current() string     { return b.location }
func (b *browser) Navigate(url string) { b.location = url }
func (b *browser) visit(path string)   { b.location = path }

// app wires the full client stack against a fake backend.
type app struct {
	browser  *browser
	store    session.Store
	resolver *auth.Resolver
	surface  *api.API
}

func newApp(t *testing.T, backend *apitest.Server) *app {
	t.Helper()
	srv := httptest.NewServer(backend.Handler())
	t.Cleanup(srv.Close)

	b := &browser{location: routing.RootURL}
	store := session.NewMemStore()
	resolver := auth.NewResolver(store, b, nil)
	coordinator := session.NewCoordinator(store, b, zap.NewNop())
	client := api.NewClient(srv.URL, store, zap.NewNop(),
		api.WithSessionExpiredHandler(coordinator.SessionExpired))

	return &app{browser: b, store: store, resolver: resolver, surface: api.New(client)}
}

func TestE2E_LoginLandsOnClients(t *testing.T) {
	a := newApp(t, apitest.NewServer())

	resp, err := a.surface.Auth.Login(context.Background(), models.LoginRequest{
		Email:    apitest.Email,
		Password: apitest.Password,
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Data.Token)

	redirect := a.resolver.CompleteLogin(resp.Data.Token)
	a.browser.Navigate(redirect)

	snapshot := a.resolver.GetAuth(auth.Options{})
	assert.True(t, snapshot.IsAuthenticated)
	assert.Equal(t, "user", snapshot.Role)
	assert.Equal(t, routing.ClientsURL, a.browser.location)
}

func TestE2E_GuardedVisitCachesRedirectAndReturnsAfterLogin(t *testing.T) {
	a := newApp(t, apitest.NewServer())

	// Unauthenticated visit to a guarded detail page.
	a.browser.visit("/clients/42")
	res := guard.DashboardLayout(a.resolver)
	require.False(t, res.Allow)
	assert.Equal(t, routing.LoginURL, res.RedirectTo)
	a.browser.Navigate(res.RedirectTo)

	cached, ok := a.store.Get(session.CachedRedirectKey)
	require.True(t, ok)
	assert.Equal(t, "/clients/42", cached)

	// Login returns the visitor to the page they wanted, not the
	// default landing page.
	resp, err := a.surface.Auth.Login(context.Background(), models.LoginRequest{
		Email:    apitest.Email,
		Password: apitest.Password,
	})
	require.NoError(t, err)

	redirect := a.resolver.CompleteLogin(resp.Data.Token)
	a.browser.Navigate(redirect)

	assert.Equal(t, "/clients/42", a.browser.location)
	_, ok = a.store.Get(session.CachedRedirectKey)
	assert.False(t, ok, "cached redirect is consumed by login")
}

func TestE2E_401ClearsSessionAndRedirects(t *testing.T) {
	backend := apitest.NewServer()
	a := newApp(t, backend)

	// A stale token passes the local expiry check but the server
	// rejects it.
	a.store.Set(session.TokenKey, "stale-token")
	a.browser.visit(routing.ClientsURL)

	_, err := a.surface.Clients.List(context.Background(), listing.DefaultParams())

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

	_, ok := a.store.Get(session.TokenKey)
	assert.False(t, ok, "all persisted session keys are cleared")
	assert.Equal(t, routing.LoginURL, a.browser.location)
}

func TestE2E_BulkDeleteReportsPerItemOutcomes(t *testing.T) {
	backend := apitest.NewServer()
	backend.FailDeletes["2"] = true
	a := newApp(t, backend)

	tok := backend.IssueToken("user", time.Now().Add(time.Hour))
	a.store.Set(session.TokenKey, tok)

	result := listing.BulkDelete(context.Background(), []string{"1", "2", "3"},
		func(ctx context.Context, id string) error {
			return a.surface.Clients.Delete(ctx, id)
		})

	assert.ElementsMatch(t, []string{"1", "3"}, result.Deleted)
	require.Contains(t, result.Failed, "2")
	assert.Error(t, result.Err())
}

func TestE2E_SupersededListFetch(t *testing.T) {
	backend := apitest.NewServer()
	backend.Delay = 30 * time.Millisecond
	a := newApp(t, backend)

	tok := backend.IssueToken("user", time.Now().Add(time.Hour))
	a.store.Set(session.TokenKey, tok)

	ctxA, cancelA := context.WithCancel(context.Background())
	defer cancelA()

	errCh := make(chan error, 1)
	go func() {
		_, err := a.surface.Clients.List(ctxA, listing.DefaultParams())
		errCh <- err
	}()

	// Supersede A while it is still in flight.
	time.Sleep(5 * time.Millisecond)
	cancelA()

	resp, err := a.surface.Clients.List(context.Background(), listing.DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, 25, resp.Data.Pagination.TotalCount)

	assert.ErrorIs(t, <-errCh, context.Canceled)
}

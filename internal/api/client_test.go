package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lawdesk/lawdesk/internal/api/apitest"
	"github.com/lawdesk/lawdesk/internal/listing"
	"github.com/lawdesk/lawdesk/internal/models"
	"github.com/lawdesk/lawdesk/internal/session"
)

// newTestClient wires a pipeline against the fake backend with an
// optional pre-set token.
func newTestClient(t *testing.T, backend *apitest.Server, token string) (*Client, session.Store) {
	t.Helper()
	srv := httptest.NewServer(backend.Handler())
	t.Cleanup(srv.Close)

	store := session.NewMemStore()
	if token != "" {
		store.Set(session.TokenKey, token)
	}
	return NewClient(srv.URL, store, zap.NewNop()), store
}

func TestClient_AttachesBearerAndRequestID(t *testing.T) {
	var gotAuth, gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store := session.NewMemStore()
	store.Set(session.TokenKey, "tok-123")
	c := NewClient(srv.URL, store, zap.NewNop())

	err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/auth/profile"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestClient_NoBearerWithoutToken(t *testing.T) {
	var gotAuth string
	hit := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = true
		gotAuth = r.Header.Get("Authorization")
	}))
	defer srv.Close()

	c := NewClient(srv.URL, session.NewMemStore(), zap.NewNop())
	err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/x"})
	require.NoError(t, err)
	require.True(t, hit)
	assert.Empty(t, gotAuth)
}

func TestClient_PrefixesAPIPath(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", session.NewMemStore(), zap.NewNop())
	err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/clients"})
	require.NoError(t, err)
	assert.Equal(t, "/api/clients", gotPath)
}

func TestClient_ServerMessageWinsOverStatusTable(t *testing.T) {
	backend := apitest.NewServer()
	c, _ := newTestClient(t, backend, "")

	var out models.LoginResponse
	err := c.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body:   models.LoginRequest{Email: "wrong@example.com", Password: "bad"},
		Out:    &out,
	})

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Invalid credentials.", apiErr.Message)
}

func TestClient_StatusTableMessage(t *testing.T) {
	backend := apitest.NewServer()
	c, _ := newTestClient(t, backend, "")

	// No token: the backend answers a bare 401 with no message field.
	err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/auth/profile"})

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Please log in to continue.", apiErr.Message)
}

func TestClient_GenericFallbackMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, session.NewMemStore(), zap.NewNop())
	err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/x"})

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, CommonErrorMessage, apiErr.Message)
}

func TestClient_TransportErrorPropagatesUnwrapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewClient(srv.URL, session.NewMemStore(), zap.NewNop())
	err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/x"})

	require.Error(t, err)
	var apiErr *Error
	assert.False(t, errors.As(err, &apiErr), "no response means no normalization")
}

func TestClient_CancellationPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	c := NewClient(srv.URL, session.NewMemStore(), zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := c.Do(ctx, Request{Method: http.MethodGet, Path: "/slow"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_SessionExpiredFiresOnceOn401(t *testing.T) {
	backend := apitest.NewServer()
	srv := httptest.NewServer(backend.Handler())
	defer srv.Close()

	store := session.NewMemStore()
	store.Set(session.TokenKey, "expired-or-garbage")

	fired := 0
	c := NewClient(srv.URL, store, zap.NewNop(), WithSessionExpiredHandler(func() { fired++ }))

	err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/auth/profile"})

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, 1, fired)
}

func TestClient_No401HandlerOnOtherStatuses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	fired := 0
	c := NewClient(srv.URL, session.NewMemStore(), zap.NewNop(), WithSessionExpiredHandler(func() { fired++ }))

	err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/x"})
	require.Error(t, err)
	assert.Zero(t, fired)
}

func TestAPI_ListClientsPagination(t *testing.T) {
	backend := apitest.NewServer()
	token := backend.IssueToken("user", time.Now().Add(time.Hour))
	c, _ := newTestClient(t, backend, token)
	surface := New(c)

	params := listing.Params{Page: 3, Limit: 10}
	resp, err := surface.Clients.List(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, 25, resp.Data.Pagination.TotalCount)
	assert.Len(t, resp.Data.Result, 5, "third page holds the remainder")
}

func TestAPI_ListClientsSearchAndSort(t *testing.T) {
	backend := apitest.NewServer()
	token := backend.IssueToken("user", time.Now().Add(time.Hour))
	c, _ := newTestClient(t, backend, token)
	surface := New(c)

	params := listing.Params{Page: 1, Limit: 10, Search: "client 1", SortBy: "name", SortOrder: listing.Descending}
	resp, err := surface.Clients.List(context.Background(), params)
	require.NoError(t, err)

	require.NotEmpty(t, resp.Data.Result)
	// Descending by name: "Client 19" sorts first among the matches.
	assert.Equal(t, "Client 19", resp.Data.Result[0].Name)
	for _, row := range resp.Data.Result {
		assert.Contains(t, strings.ToLower(row.Name), "client 1")
	}
}

func TestAPI_VisaExportBlob(t *testing.T) {
	backend := apitest.NewServer()
	backend.ExportPayload = []byte("binary-spreadsheet-bytes")
	token := backend.IssueToken("user", time.Now().Add(time.Hour))
	c, _ := newTestClient(t, backend, token)
	surface := New(c)

	var buf bytes.Buffer
	err := surface.Visas.Export(context.Background(), &buf)
	require.NoError(t, err)
	assert.Equal(t, "binary-spreadsheet-bytes", buf.String())
}

func TestAPI_ResetPasswordTokenTravelsInBody(t *testing.T) {
	var gotQuery string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
	}))
	defer srv.Close()

	surface := New(NewClient(srv.URL, session.NewMemStore(), zap.NewNop()))
	err := surface.Auth.ResetPassword(context.Background(), models.ResetPasswordRequest{
		RefreshToken:    "tok-abc",
		NewPassword:     "Abcdef1!",
		ConfirmPassword: "Abcdef1!",
	})
	require.NoError(t, err)

	assert.Empty(t, gotQuery)
	assert.Equal(t, map[string]string{
		"refresh_token":   "tok-abc",
		"newPassword":     "Abcdef1!",
		"confirmPassword": "Abcdef1!",
	}, gotBody)
}

func TestAPI_ResetPasswordRejectedWithoutToken(t *testing.T) {
	c, _ := newTestClient(t, apitest.NewServer(), "")
	surface := New(c)

	err := surface.Auth.ResetPassword(context.Background(), models.ResetPasswordRequest{
		NewPassword:     "Abcdef1!",
		ConfirmPassword: "Abcdef1!",
	})

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Missing refresh token.", apiErr.DisplayMessage())
}

func TestClient_MultipartBody(t *testing.T) {
	var gotContentType, gotField, gotFile string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotField = r.FormValue("name")
		file, header, err := r.FormFile("avatar")
		require.NoError(t, err)
		defer file.Close()
		gotFile = header.Filename
	}))
	defer srv.Close()

	c := NewClient(srv.URL, session.NewMemStore(), zap.NewNop())
	err := c.Do(context.Background(), Request{
		Method: http.MethodPut,
		Path:   "/auth/profile",
		Multipart: &MultipartPayload{
			Fields: map[string]string{"name": "Somsak"},
			Files: []MultipartFile{
				{Field: "avatar", Name: "avatar.png", Content: strings.NewReader("png-bytes")},
			},
		},
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(gotContentType, "multipart/form-data"))
	assert.Equal(t, "Somsak", gotField)
	assert.Equal(t, "avatar.png", gotFile)
}

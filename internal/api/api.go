package api

import (
	"context"
	"io"
	"net/http"

	"github.com/lawdesk/lawdesk/internal/listing"
	"github.com/lawdesk/lawdesk/internal/models"
)

// API is the typed endpoint surface of the backend, grouped by resource
// the way screens consume it.
type API struct {
	Auth       AuthAPI
	Clients    ClientsAPI
	Members    MembersAPI
	Visas      VisasAPI
	Properties PropertiesAPI
}

// New groups the endpoint surface over one shared pipeline.
func New(c *Client) *API {
	return &API{
		Auth:       AuthAPI{c: c},
		Clients:    ClientsAPI{c: c},
		Members:    MembersAPI{c: c},
		Visas:      VisasAPI{c: c},
		Properties: PropertiesAPI{c: c},
	}
}

// AuthAPI covers the /auth endpoints.
type AuthAPI struct {
	c *Client
}

// Login exchanges credentials for a session token.
func (a AuthAPI) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	var out models.LoginResponse
	err := a.c.Do(ctx, Request{Method: http.MethodPost, Path: "/auth/login", Body: req, Out: &out})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ForgotPassword requests a password reset email.
func (a AuthAPI) ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest) error {
	return a.c.Do(ctx, Request{Method: http.MethodPost, Path: "/auth/forgot-password", Body: req})
}

// ResetPassword sets a new password using the refresh token from the
// reset link. The token is part of the JSON body.
func (a AuthAPI) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	return a.c.Do(ctx, Request{Method: http.MethodPost, Path: "/auth/reset-password", Body: req})
}

// ChangePassword changes the password of the authenticated user.
func (a AuthAPI) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error {
	return a.c.Do(ctx, Request{Method: http.MethodPost, Path: "/auth/change-password", Body: req})
}

// Profile fetches the authenticated user's profile.
func (a AuthAPI) Profile(ctx context.Context) (*models.User, error) {
	var out models.ItemResponse[models.User]
	err := a.c.Do(ctx, Request{Method: http.MethodGet, Path: "/auth/profile", Out: &out})
	if err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// UpdateProfile updates profile fields without touching the avatar.
func (a AuthAPI) UpdateProfile(ctx context.Context, user models.User) error {
	return a.c.Do(ctx, Request{Method: http.MethodPut, Path: "/auth/profile", Body: user})
}

// UpdateProfileWithAvatar updates the profile via multipart form data,
// attaching a new avatar image.
func (a AuthAPI) UpdateProfileWithAvatar(ctx context.Context, fields map[string]string, avatarName string, avatar io.Reader) error {
	return a.c.Do(ctx, Request{
		Method: http.MethodPut,
		Path:   "/auth/profile",
		Multipart: &MultipartPayload{
			Fields: fields,
			Files:  []MultipartFile{{Field: "avatar", Name: avatarName, Content: avatar}},
		},
	})
}

// ClientsAPI covers the /clients endpoints.
type ClientsAPI struct {
	c *Client
}

// List fetches a page of clients for the given list parameters.
func (a ClientsAPI) List(ctx context.Context, params listing.Params) (*models.ListResponse[models.Client], error) {
	var out models.ListResponse[models.Client]
	err := a.c.Do(ctx, Request{Method: http.MethodGet, Path: "/clients", Query: params.Values(), Out: &out})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Get fetches a single client by ID.
func (a ClientsAPI) Get(ctx context.Context, id string) (*models.Client, error) {
	var out models.ItemResponse[models.Client]
	err := a.c.Do(ctx, Request{Method: http.MethodGet, Path: "/clients/" + id, Out: &out})
	if err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// Create adds a new client record.
func (a ClientsAPI) Create(ctx context.Context, client models.Client) error {
	return a.c.Do(ctx, Request{Method: http.MethodPost, Path: "/clients/create", Body: client})
}

// Update patches an existing client record.
func (a ClientsAPI) Update(ctx context.Context, id string, client models.Client) error {
	return a.c.Do(ctx, Request{Method: http.MethodPatch, Path: "/clients/" + id, Body: client})
}

// Delete removes a client record.
func (a ClientsAPI) Delete(ctx context.Context, id string) error {
	return a.c.Do(ctx, Request{Method: http.MethodDelete, Path: "/clients/" + id})
}

// MembersAPI covers the client family-member endpoints.
type MembersAPI struct {
	c *Client
}

// Delete removes a family member from a client file.
func (a MembersAPI) Delete(ctx context.Context, id string) error {
	return a.c.Do(ctx, Request{Method: http.MethodDelete, Path: "/clients/members/" + id})
}

// VisasAPI covers the /visas endpoints.
type VisasAPI struct {
	c *Client
}

// ListByClient fetches a page of a client's visa records.
func (a VisasAPI) ListByClient(ctx context.Context, clientID string, params listing.Params) (*models.ListResponse[models.Visa], error) {
	var out models.ListResponse[models.Visa]
	err := a.c.Do(ctx, Request{Method: http.MethodGet, Path: "/visas/client/" + clientID, Query: params.Values(), Out: &out})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Create adds a visa record.
func (a VisasAPI) Create(ctx context.Context, visa models.Visa) error {
	return a.c.Do(ctx, Request{Method: http.MethodPost, Path: "/visas/create", Body: visa})
}

// Update patches a visa record.
func (a VisasAPI) Update(ctx context.Context, id string, visa models.Visa) error {
	return a.c.Do(ctx, Request{Method: http.MethodPatch, Path: "/visas/" + id, Body: visa})
}

// Delete removes a visa record.
func (a VisasAPI) Delete(ctx context.Context, id string) error {
	return a.c.Do(ctx, Request{Method: http.MethodDelete, Path: "/visas/" + id})
}

// Export downloads the visa spreadsheet into w.
func (a VisasAPI) Export(ctx context.Context, w io.Writer) error {
	return a.c.Do(ctx, Request{Method: http.MethodGet, Path: "/visas/export", RawOut: w})
}

// PropertiesAPI covers the /properties endpoints.
type PropertiesAPI struct {
	c *Client
}

// ListByClient fetches a page of a client's property records.
func (a PropertiesAPI) ListByClient(ctx context.Context, clientID string, params listing.Params) (*models.ListResponse[models.Property], error) {
	var out models.ListResponse[models.Property]
	err := a.c.Do(ctx, Request{Method: http.MethodGet, Path: "/properties/client/" + clientID, Query: params.Values(), Out: &out})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Create adds a property record.
func (a PropertiesAPI) Create(ctx context.Context, property models.Property) error {
	return a.c.Do(ctx, Request{Method: http.MethodPost, Path: "/properties/create", Body: property})
}

// CreateWithDocuments adds a property record via multipart form data,
// attaching document files.
func (a PropertiesAPI) CreateWithDocuments(ctx context.Context, fields map[string]string, documents []MultipartFile) error {
	return a.c.Do(ctx, Request{
		Method:    http.MethodPost,
		Path:      "/properties/create",
		Multipart: &MultipartPayload{Fields: fields, Files: documents},
	})
}

// Update patches a property record.
func (a PropertiesAPI) Update(ctx context.Context, id string, property models.Property) error {
	return a.c.Do(ctx, Request{Method: http.MethodPatch, Path: "/properties/" + id, Body: property})
}

// Delete removes a property record.
func (a PropertiesAPI) Delete(ctx context.Context, id string) error {
	return a.c.Do(ctx, Request{Method: http.MethodDelete, Path: "/properties/" + id})
}

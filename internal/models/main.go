// Package models defines the wire shapes exchanged with the LawDesk
// backend: users, clients, visa and property records, and the pagination
// envelope wrapping every list endpoint.
package models

// User represents the authenticated account behind the session token.
type User struct {
	// ID is the unique identifier for the user.
	ID string `json:"id"`
	// Name is the display name of the user.
	Name string `json:"name"`
	// Email is the login email address.
	Email string `json:"email"`
	// Role is the access role encoded in the session token ("admin", "user").
	Role string `json:"role"`
	// Avatar is the relative or absolute URL of the profile image.
	Avatar string `json:"avatar,omitempty"`
}

// Client is a legal-services client record.
type Client struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	FamilyName  string `json:"family_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Nationality string `json:"nationality"`
	// DateOfBirth is formatted YYYY-MM-DD by the backend.
	DateOfBirth string `json:"date_of_birth"`
	// Members are family members attached to the client file.
	Members []Member `json:"members,omitempty"`
}

// Member is a family member attached to a client file.
type Member struct {
	ID           string `json:"id"`
	ClientID     string `json:"client_id"`
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
}

// Visa is a visa record belonging to a client.
type Visa struct {
	ID       string `json:"id"`
	ClientID string `json:"client_id"`
	// ExistingVisa is a catalog value from ExistingVisaOptions.
	ExistingVisa string `json:"existing_visa"`
	// WishedVisa is a catalog value from WishedVisaOptions.
	WishedVisa string `json:"wished_visa"`
	EntryDate  string `json:"entry_date,omitempty"`
	ExpiryDate string `json:"expiry_date,omitempty"`
	Status     string `json:"status,omitempty"`
}

// Property is a property transaction record belonging to a client.
type Property struct {
	ID       string `json:"id"`
	ClientID string `json:"client_id"`
	Address  string `json:"address"`
	// Type is the transaction type ("purchase", "sale", "lease").
	Type  string  `json:"type"`
	Price float64 `json:"price,omitempty"`
	// Documents are backend-relative URLs of attached files.
	Documents []string `json:"documents,omitempty"`
}

// Pagination carries the total record count for a list endpoint.
type Pagination struct {
	TotalCount int `json:"totalCount"`
}

// ListData is the inner payload of a paginated list response.
type ListData[T any] struct {
	Result     []T        `json:"result"`
	Pagination Pagination `json:"pagination"`
}

// ListResponse is the envelope every list endpoint returns.
type ListResponse[T any] struct {
	Data    ListData[T] `json:"data"`
	Message string      `json:"message,omitempty"`
}

// ItemResponse is the envelope single-record endpoints return.
type ItemResponse[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

// LoginRequest is the POST /auth/login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginData is the inner payload of a successful login response.
type LoginData struct {
	// Token is the bearer token to persist for the session.
	Token string `json:"token"`
	// User is the authenticated account profile.
	User User `json:"user"`
}

// LoginResponse is the POST /auth/login response envelope.
type LoginResponse struct {
	Data    LoginData `json:"data"`
	Message string    `json:"message,omitempty"`
}

// ForgotPasswordRequest is the POST /auth/forgot-password payload.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest is the POST /auth/reset-password payload. The
// refresh token from the emailed link travels in the body with the
// new credentials.
type ResetPasswordRequest struct {
	RefreshToken    string `json:"refresh_token"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// ChangePasswordRequest is the POST /auth/change-password payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

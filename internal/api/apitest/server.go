// Package apitest provides an in-memory fake of the LawDesk backend for
// tests: a chi router over fixture data implementing the documented
// endpoints, bearer-token authentication, and pagination/search/sort
// query handling.
package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/lawdesk/lawdesk/internal/models"
)

// Credentials accepted by the fake login endpoint.
const (
	Email    = "a@b.com"
	Password = "secret"
)

// Server holds the fixture state served by Handler. Fields may be
// mutated between requests to stage scenarios.
type Server struct {
	mu sync.Mutex

	Clients    []models.Client
	Visas      []models.Visa
	Properties []models.Property

	// FailDeletes contains IDs whose DELETE calls respond 500, for
	// exercising partial bulk-delete failures.
	FailDeletes map[string]bool

	// ExportPayload is what GET /visas/export streams back.
	ExportPayload []byte

	// Delay, when set, is slept before answering list requests so tests
	// can stage in-flight cancellations.
	Delay time.Duration

	secret []byte
}

// NewServer returns a fake backend seeded with a handful of clients and
// related records.
func NewServer() *Server {
	s := &Server{
		FailDeletes:   make(map[string]bool),
		ExportPayload: []byte("id,client,visa\n"),
		secret:        []byte("apitest-secret"),
	}
	for i := 1; i <= 25; i++ {
		s.Clients = append(s.Clients, models.Client{
			ID:          strconv.Itoa(i),
			Name:        fmt.Sprintf("Client %02d", i),
			FamilyName:  fmt.Sprintf("Family %02d", i),
			Email:       fmt.Sprintf("client%02d@example.com", i),
			PhoneNumber: fmt.Sprintf("+66 0000 %04d", i),
			Nationality: "thai",
			DateOfBirth: "1990-01-01",
		})
	}
	s.Visas = append(s.Visas,
		models.Visa{ID: "v1", ClientID: "1", ExistingVisa: "tourist_visa_60_day", WishedVisa: "retirement_visa"},
		models.Visa{ID: "v2", ClientID: "1", ExistingVisa: "entry_stamp_30_day", WishedVisa: "dtv"},
	)
	s.Properties = append(s.Properties,
		models.Property{ID: "p1", ClientID: "1", Address: "99 Beach Rd", Type: "purchase", Price: 4200000},
	)
	return s
}

// IssueToken signs a token with the given role and expiry, in the shape
// the real backend issues.
func (s *Server) IssueToken(role string, expiresAt time.Time) string {
	claims := jwt.MapClaims{
		"sub":  "u1",
		"role": role,
		"exp":  expiresAt.Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		panic(err)
	}
	return tok
}

// Handler builds the router serving the fake API under /api.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", s.login)
		r.Post("/auth/forgot-password", s.ok)
		r.Post("/auth/reset-password", s.resetPassword)

		// Protected group: requires an active bearer token.
		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Post("/auth/change-password", s.ok)
			r.Get("/auth/profile", s.profile)
			r.Put("/auth/profile", s.ok)

			r.Get("/clients", s.listClients)
			r.Post("/clients/create", s.ok)
			r.Get("/clients/{id}", s.getClient)
			r.Patch("/clients/{id}", s.ok)
			r.Delete("/clients/{id}", s.deleteClient)
			r.Delete("/clients/members/{id}", s.ok)

			r.Get("/visas/client/{id}", s.listVisas)
			r.Post("/visas/create", s.ok)
			r.Patch("/visas/{id}", s.ok)
			r.Delete("/visas/{id}", s.ok)
			r.Get("/visas/export", s.export)

			r.Get("/properties/client/{id}", s.listProperties)
			r.Post("/properties/create", s.ok)
			r.Patch("/properties/{id}", s.ok)
			r.Delete("/properties/{id}", s.ok)
		})
	})

	return r
}

// requireAuth rejects requests without an active bearer token.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			writeError(w, http.StatusUnauthorized, "")
			return
		}
		tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			return s.secret, nil
		})
		if err != nil || !tok.Valid {
			writeError(w, http.StatusUnauthorized, "")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "")
		return
	}
	if req.Email != Email || req.Password != Password {
		writeError(w, http.StatusBadRequest, "Invalid credentials.")
		return
	}

	resp := models.LoginResponse{
		Data: models.LoginData{
			Token: s.IssueToken("user", time.Now().Add(time.Hour)),
			User:  models.User{ID: "u1", Name: "A B", Email: Email, Role: "user"},
		},
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "")
		return
	}
	if req.RefreshToken == "" {
		writeError(w, http.StatusBadRequest, "Missing refresh token.")
		return
	}
	if req.NewPassword == "" || req.NewPassword != req.ConfirmPassword {
		writeError(w, http.StatusUnprocessableEntity, "Passwords do not match.")
		return
	}
	s.ok(w, r)
}

func (s *Server) profile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.ItemResponse[models.User]{
		Data: models.User{ID: "u1", Name: "A B", Email: Email, Role: "user"},
	})
}

func (s *Server) listClients(w http.ResponseWriter, r *http.Request) {
	if s.Delay > 0 {
		select {
		case <-time.After(s.Delay):
		case <-r.Context().Done():
			return
		}
	}

	s.mu.Lock()
	rows := make([]models.Client, len(s.Clients))
	copy(rows, s.Clients)
	s.mu.Unlock()

	q := r.URL.Query()
	if search := strings.ToLower(q.Get("search")); search != "" {
		filtered := rows[:0]
		for _, c := range rows {
			if strings.Contains(strings.ToLower(c.Name), search) ||
				strings.Contains(strings.ToLower(c.Email), search) {
				filtered = append(filtered, c)
			}
		}
		rows = filtered
	}

	if sortBy := q.Get("sortBy"); sortBy != "" {
		desc := q.Get("sortOrder") == "DESC"
		sort.SliceStable(rows, func(i, j int) bool {
			var a, b string
			switch sortBy {
			case "email":
				a, b = rows[i].Email, rows[j].Email
			default:
				a, b = rows[i].Name, rows[j].Name
			}
			if desc {
				return a > b
			}
			return a < b
		})
	}

	total := len(rows)
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	resp := models.ListResponse[models.Client]{}
	resp.Data.Result = rows[start:end]
	resp.Data.Pagination.TotalCount = total
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getClient(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.Clients {
		if c.ID == id {
			writeJSON(w, http.StatusOK, models.ItemResponse[models.Client]{Data: c})
			return
		}
	}
	writeError(w, http.StatusNotFound, "")
}

func (s *Server) deleteClient(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailDeletes[id] {
		writeError(w, http.StatusInternalServerError, "")
		return
	}
	for i, c := range s.Clients {
		if c.ID == id {
			s.Clients = append(s.Clients[:i], s.Clients[i+1:]...)
			break
		}
	}
	s.ok(w, r)
}

func (s *Server) listVisas(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	resp := models.ListResponse[models.Visa]{}
	for _, v := range s.Visas {
		if v.ClientID == clientID {
			resp.Data.Result = append(resp.Data.Result, v)
		}
	}
	resp.Data.Pagination.TotalCount = len(resp.Data.Result)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) listProperties(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	resp := models.ListResponse[models.Property]{}
	for _, p := range s.Properties {
		if p.ClientID == clientID {
			resp.Data.Result = append(resp.Data.Result, p)
		}
	}
	resp.Data.Pagination.TotalCount = len(resp.Data.Result)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) export(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	_, _ = w.Write(s.ExportPayload)
}

func (s *Server) ok(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	if message == "" {
		w.WriteHeader(status)
		return
	}
	writeJSON(w, status, map[string]string{"message": message})
}

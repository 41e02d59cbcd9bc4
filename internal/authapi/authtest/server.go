// Package authtest runs an in-memory auth service for tests.
package authtest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/tgienger/taskflow/internal/models"
)

type account struct {
	user     models.AuthUser
	password string
}

// Server mimics the auth service endpoints
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	accounts map[string]*account // by email
	tokens   map[string]string   // token -> email
	nextID   int
	issued   int
	requests []string
}

// NewServer starts a fake auth service. It is closed when the test ends.
func NewServer(t interface{ Cleanup(func()) }) *Server {
	s := &Server{
		accounts: make(map[string]*account),
		tokens:   make(map[string]string),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/register", s.register)
	mux.HandleFunc("POST /api/auth/login", s.login)
	mux.HandleFunc("GET /api/auth/me", s.me)
	mux.HandleFunc("PUT /api/auth/profile", s.profile)
	s.Server = httptest.NewServer(s.record(mux))
	t.Cleanup(s.Close)
	return s
}

// AddUser registers an account directly and returns a valid token for it
func (s *Server) AddUser(name, email, password string) (string, models.AuthUser) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.create(name, email, password)
	return s.issue(email), a.user
}

// Revoke invalidates a token, as if it had expired
func (s *Server) Revoke(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
}

// RevokeAll invalidates every issued token
func (s *Server) RevokeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = make(map[string]string)
}

// DeleteUser removes an account but keeps its tokens
func (s *Server) DeleteUser(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.accounts, email)
}

// Requests lists "METHOD /path" for every request served
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, r.Method+" "+r.URL.Path)
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) create(name, email, password string) *account {
	s.nextID++
	a := &account{
		user:     models.AuthUser{ID: fmt.Sprint(s.nextID), Name: name, Email: email},
		password: password,
	}
	s.accounts[email] = a
	return a
}

func (s *Server) issue(email string) string {
	s.issued++
	token := fmt.Sprintf("token-%d", s.issued)
	s.tokens[token] = email
	return token
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name, Email, Password string
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" || req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "All fields are required"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	email := strings.ToLower(req.Email)
	if _, ok := s.accounts[email]; ok {
		writeJSON(w, http.StatusConflict, map[string]any{"message": "An account with that email already exists"})
		return
	}
	a := s.create(req.Name, email, req.Password)
	writeJSON(w, http.StatusCreated, map[string]any{"token": s.issue(email), "user": a.user})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email, Password string
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "Email and password are required"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	email := strings.ToLower(req.Email)
	a, ok := s.accounts[email]
	if !ok || a.password != req.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Incorrect email or password"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": s.issue(email), "user": a.user})
}

func (s *Server) authorize(w http.ResponseWriter, r *http.Request) (string, bool) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Not authorized"})
		return "", false
	}
	email, ok := s.tokens[token]
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Invalid or expired token"})
		return "", false
	}
	return email, true
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email, ok := s.authorize(w, r)
	if !ok {
		return
	}
	a, ok := s.accounts[email]
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "User not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": a.user})
}

func (s *Server) profile(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email, ok := s.authorize(w, r)
	if !ok {
		return
	}
	a, ok := s.accounts[email]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "User not found"})
		return
	}
	var req struct {
		Name      *string `json:"name"`
		LastName  *string `json:"lastName"`
		AvatarURL *string `json:"avatarUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "Invalid body"})
		return
	}
	if req.Name != nil {
		a.user.Name = *req.Name
	}
	if req.LastName != nil {
		a.user.LastName = *req.LastName
	}
	if req.AvatarURL != nil {
		a.user.AvatarURL = *req.AvatarURL
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Profile updated", "user": a.user})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Package session owns the authenticated identity and its bearer token.
//
// The token and identity are persisted together as one record so they can
// never be half present. A record missing either half is treated as no
// session at all.
package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/tgienger/taskflow/internal/authapi"
	"github.com/tgienger/taskflow/internal/logging"
	"github.com/tgienger/taskflow/internal/models"
	"github.com/tgienger/taskflow/internal/persist"
	"github.com/tgienger/taskflow/internal/storage"
)

// Storage keys
const (
	Key = "taskflow-session"

	// written by older clients as two independent slots
	LegacyTokenKey = "taskflow-token"
	LegacyUserKey  = "taskflow-auth-user"
)

// State is the authentication state
type State int

const (
	Anonymous State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "anonymous"
}

// Authenticator verifies credentials. *authapi.Client implements it.
type Authenticator interface {
	Register(ctx context.Context, req authapi.RegisterRequest) (*authapi.AuthResponse, error)
	Login(ctx context.Context, req authapi.LoginRequest) (*authapi.AuthResponse, error)
	Me(ctx context.Context, token string) (*models.AuthUser, error)
	UpdateProfile(ctx context.Context, token string, update authapi.ProfileUpdate) (*models.AuthUser, error)
}

// Manager drives the session lifecycle
type Manager struct {
	auth    Authenticator
	store   *persist.Store[models.Session]
	backend storage.Backend
	logger  *slog.Logger
}

// NewManager rehydrates the session from backend. A record that is not
// valid starts the manager anonymous and is removed.
func NewManager(auth Authenticator, backend storage.Backend, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = logging.Discard()
	}
	m := &Manager{
		auth:    auth,
		backend: backend,
		logger:  logger,
	}
	m.store = persist.Open(backend, Key, models.Session{}, logger)
	if !m.store.Restored() {
		m.migrateLegacy()
	}
	if s := m.store.Get(); !s.Valid() && (s.Token != "" || s.User != nil) {
		m.logger.Warn("discarding incomplete session")
		m.store.Reset()
	}
	m.logger.Info("session loaded", "state", m.State())
	return m
}

// migrateLegacy folds the old token and identity slots into the composite
// record. Both slots are removed whether or not they formed a session.
func (m *Manager) migrateLegacy() {
	token, tokenErr := m.backend.Read(LegacyTokenKey)
	user, userErr := persist.Load[*models.AuthUser](m.backend, LegacyUserKey)
	if errors.Is(tokenErr, storage.ErrNotFound) && errors.Is(userErr, storage.ErrNotFound) {
		return
	}
	legacy := models.Session{Token: strings.Trim(strings.TrimSpace(string(token)), `"`), User: user}
	if tokenErr == nil && userErr == nil && legacy.Valid() {
		m.store.Set(legacy)
		m.logger.Info("migrated legacy session")
	} else {
		m.logger.Warn("legacy session incomplete, ignoring")
	}
	for _, key := range []string{LegacyTokenKey, LegacyUserKey} {
		if err := m.backend.Delete(key); err != nil {
			m.logger.Warn("delete legacy key failed", "key", key, "error", err)
		}
	}
}

// State reports whether a valid session is held
func (m *Manager) State() State {
	if m.store.Get().Valid() {
		return Authenticated
	}
	return Anonymous
}

// Authenticated is shorthand for State() == Authenticated
func (m *Manager) Authenticated() bool { return m.State() == Authenticated }

// User returns the signed-in identity
func (m *Manager) User() (models.AuthUser, bool) {
	s := m.store.Get()
	if !s.Valid() {
		return models.AuthUser{}, false
	}
	return *s.User, true
}

// Token returns the bearer token of the session
func (m *Manager) Token() (string, bool) {
	s := m.store.Get()
	if !s.Valid() {
		return "", false
	}
	return s.Token, true
}

// SignIn checks credentials with the service without touching the session.
// Errors are *Error values carrying a message for the user.
func (m *Manager) SignIn(ctx context.Context, email, password string) (*authapi.AuthResponse, error) {
	email = strings.TrimSpace(email)
	if err := ValidateLogin(email, password); err != nil {
		return nil, err
	}
	resp, err := m.auth.Login(ctx, authapi.LoginRequest{Email: email, Password: password})
	if err != nil {
		m.logger.Info("login failed", "error", err)
		return nil, classify(err)
	}
	return resp, nil
}

// SignUp creates an account without touching the session
func (m *Manager) SignUp(ctx context.Context, name, email, password string) (*authapi.AuthResponse, error) {
	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	if err := ValidateRegister(name, email, password); err != nil {
		return nil, err
	}
	resp, err := m.auth.Register(ctx, authapi.RegisterRequest{Name: name, Email: email, Password: password})
	if err != nil {
		m.logger.Info("registration failed", "error", err)
		return nil, classify(err)
	}
	return resp, nil
}

// Login signs in with email and password. On failure the manager stays
// anonymous.
func (m *Manager) Login(ctx context.Context, email, password string) (models.AuthUser, error) {
	resp, err := m.SignIn(ctx, email, password)
	if err != nil {
		return models.AuthUser{}, err
	}
	return m.Establish(resp)
}

// Register creates an account and signs in with it
func (m *Manager) Register(ctx context.Context, name, email, password string) (models.AuthUser, error) {
	resp, err := m.SignUp(ctx, name, email, password)
	if err != nil {
		return models.AuthUser{}, err
	}
	return m.Establish(resp)
}

// Establish stores the token and identity of a successful sign-in
func (m *Manager) Establish(resp *authapi.AuthResponse) (models.AuthUser, error) {
	if resp == nil {
		return models.AuthUser{}, &Error{Kind: KindServer, Message: MsgUnknown, Err: errors.New("empty auth response")}
	}
	user := resp.User
	s := models.Session{Token: resp.Token, User: &user}
	if !s.Valid() {
		return models.AuthUser{}, &Error{Kind: KindServer, Message: MsgUnknown, Err: errors.New("incomplete auth response")}
	}
	m.store.Set(s)
	m.logger.Info("signed in", "user_id", user.ID)
	return user, nil
}

// Logout forgets the session in memory and in storage
func (m *Manager) Logout() {
	m.store.Reset()
	m.logger.Info("signed out")
}

// Verify asks the service whether the token is still accepted. A rejected
// token logs out and returns ErrSessionExpired. Other failures leave the
// session alone.
func (m *Manager) Verify(ctx context.Context) error {
	token, ok := m.Token()
	if !ok {
		return ErrSessionExpired
	}
	user, err := m.auth.Me(ctx, token)
	if err != nil {
		if authapi.StatusCode(err) == http.StatusUnauthorized {
			m.Logout()
			return ErrSessionExpired
		}
		return classify(err)
	}
	m.refreshUser(*user)
	return nil
}

// UpdateProfile sends the profile to the service. An expired token or a
// missing account ends the session.
func (m *Manager) UpdateProfile(ctx context.Context, profile models.UserProfile) (models.AuthUser, error) {
	token, ok := m.Token()
	if !ok {
		return models.AuthUser{}, ErrSessionExpired
	}
	user, err := m.PushProfile(ctx, token, profile)
	return m.SettleProfile(token, user, err)
}

// PushProfile sends profile under token and leaves the session alone. Hand
// the outcome to SettleProfile.
func (m *Manager) PushProfile(ctx context.Context, token string, profile models.UserProfile) (*models.AuthUser, error) {
	return m.auth.UpdateProfile(ctx, token, authapi.ProfileUpdate{
		Name:      profile.Name,
		LastName:  profile.LastName,
		AvatarURL: profile.AvatarURL,
	})
}

// SettleProfile applies the outcome of a PushProfile made with token. The
// session only ends if it still holds that token.
func (m *Manager) SettleProfile(token string, user *models.AuthUser, err error) (models.AuthUser, error) {
	current, _ := m.Token()
	if err == nil && user == nil {
		err = errors.New("empty profile response")
	}
	if err != nil {
		switch authapi.StatusCode(err) {
		case http.StatusUnauthorized:
			if current == token {
				m.Logout()
			}
			return models.AuthUser{}, ErrSessionExpired
		case http.StatusNotFound:
			if current == token {
				m.Logout()
			}
		}
		return models.AuthUser{}, classify(err)
	}
	if current == token {
		m.refreshUser(*user)
	}
	return *user, nil
}

func (m *Manager) refreshUser(user models.AuthUser) {
	if user.ID == "" {
		return
	}
	m.store.Update(func(s models.Session) models.Session {
		s.User = &user
		return s
	})
}

// Package session owns the client-side authentication state: the current
// bearer token, the derived identity, and their persistence across restarts.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/avaskin/contentforge/internal/apiclient"
	"github.com/avaskin/contentforge/internal/errs"
	"github.com/avaskin/contentforge/internal/model"
)

// AuthAPI is the slice of the API client the manager needs.
// Satisfied by *apiclient.Client.
type AuthAPI interface {
	Register(ctx context.Context, creds apiclient.Credentials) (model.User, error)
	Login(ctx context.Context, creds apiclient.Credentials) (apiclient.LoginResult, error)
}

// TokenStore persists the bearer token across process restarts.
type TokenStore interface {
	// Save replaces the stored token.
	Save(token string) error
	// Load returns the stored token, or "" when none is stored.
	Load() (string, error)
	// Clear removes the stored token. Clearing an empty store is not an error.
	Clear() error
}

// Manager is the single source of truth for "is the user logged in" and the
// credential used to authorize API calls. It is an explicit, injectable object
// owned by the application context, not an ambient global. Reads and writes
// happen from one goroutine; the manager does no locking of its own.
type Manager struct {
	api   AuthAPI
	store TokenStore

	token string
	user  *model.User
}

// NewManager constructs a manager and rehydrates the token from the store.
// Only the token survives restarts; identity is not persisted, so a restored
// session has a token and no user. A store read failure is treated as "no
// token": startup never blocks on it and no network call is made.
func NewManager(api AuthAPI, store TokenStore) *Manager {
	m := &Manager{api: api, store: store}
	if tok, err := store.Load(); err == nil {
		m.token = tok
	}
	return m
}

// Token returns the current bearer token, or "" when unauthenticated.
// Implements apiclient.TokenSource.
func (m *Manager) Token() string { return m.token }

// Current returns a read-only snapshot of the session. No side effects.
func (m *Manager) Current() model.Session {
	return model.Session{Token: m.token, User: m.user}
}

// Login authenticates with the backend and transitions to Authenticated.
// The transition is atomic: the token is persisted first, and any failure
// (validation, API, persistence) leaves the session unchanged. API failures
// propagate verbatim as the client's *APIError.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return fmt.Errorf("email and password are required: %w", errs.ErrValidation)
	}
	res, err := m.api.Login(ctx, apiclient.Credentials{Email: email, Password: password})
	if err != nil {
		return err
	}
	if err := m.store.Save(res.AccessToken); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	m.token = res.AccessToken
	// The backend returns no identity on login, so one is synthesized from the
	// email. Known limitation: it is never validated or refreshed.
	m.user = &model.User{ID: 1, Email: email, CreatedAt: time.Now()}
	return nil
}

// Register creates an account and immediately logs in with the same
// credentials; registration does not by itself produce a usable session.
// If registration succeeds but the login fails, the session stays
// Unauthenticated and the login error is surfaced.
func (m *Manager) Register(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return fmt.Errorf("email and password are required: %w", errs.ErrValidation)
	}
	if _, err := m.api.Register(ctx, apiclient.Credentials{Email: email, Password: password}); err != nil {
		return err
	}
	return m.Login(ctx, email, password)
}

// Logout clears the in-memory and persisted token. It always succeeds,
// makes no backend call, and is idempotent.
func (m *Manager) Logout() {
	m.token = ""
	m.user = nil
	_ = m.store.Clear()
}

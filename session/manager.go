// Package session keeps the driver's login state between dashboard runs.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
)

// Storage keys shared with any other dashboard front end
const (
	TokenKey    = "auth_token"
	UserDataKey = "user_data"
)

// DemoToken is persisted after a successful login. The API issues no real
// tokens; this value is only echoed back as a bearer token.
const DemoToken = "demo_token"

// ErrNotAuthenticated is returned by operations that need a restored session
var ErrNotAuthenticated = errors.New("not logged in")

// User is the persisted identity of the logged-in driver
type User struct {
	Username string `json:"username"`
}

// Authenticator verifies credentials against the API.
// *client.Client satisfies it.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (bool, error)
}

// Manager tracks whether a driver is logged in. State only changes through
// Restore, Login and Logout.
type Manager struct {
	storage Storage
	auth    Authenticator

	mu            sync.RWMutex
	authenticated bool
	user          *User
	token         string
}

// NewManager creates an unauthenticated manager. Call Restore to pick up a
// previously persisted session.
func NewManager(storage Storage, auth Authenticator) *Manager {
	return &Manager{storage: storage, auth: auth}
}

// SetAuthenticator sets the authenticator used by Login. The API client
// usually takes the manager as its token source, so the two are wired after
// both exist.
func (m *Manager) SetAuthenticator(auth Authenticator) {
	m.mu.Lock()
	m.auth = auth
	m.mu.Unlock()
}

// Restore loads the persisted session. The manager becomes authenticated
// only when both the token and decodable user data are present.
func (m *Manager) Restore() error {
	token, hasToken, err := m.storage.GetItem(TokenKey)
	if err != nil {
		return fmt.Errorf("failed to read session token: %w", err)
	}
	userData, hasUser, err := m.storage.GetItem(UserDataKey)
	if err != nil {
		return fmt.Errorf("failed to read session user: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.authenticated = false
	m.user = nil
	m.token = ""

	if !hasToken || token == "" || !hasUser || userData == "" {
		return nil
	}

	var user User
	if err := json.Unmarshal([]byte(userData), &user); err != nil {
		log.Printf("Ignoring unreadable session user data: %v", err)
		return nil
	}

	m.authenticated = true
	m.user = &user
	m.token = token
	return nil
}

// Login verifies credentials with the API and persists the session on
// success. Any failure returns false and leaves the current state as it was.
func (m *Manager) Login(ctx context.Context, username, password string) bool {
	m.mu.RLock()
	auth := m.auth
	m.mu.RUnlock()

	if auth == nil {
		log.Printf("Login error: no authenticator configured")
		return false
	}

	ok, err := auth.Login(ctx, username, password)
	if err != nil {
		log.Printf("Login error: %v", err)
		return false
	}
	if !ok {
		return false
	}

	userData, err := json.Marshal(User{Username: username})
	if err != nil {
		log.Printf("Login error: %v", err)
		return false
	}
	if err := m.storage.SetItem(TokenKey, DemoToken); err != nil {
		log.Printf("Login error: %v", err)
		return false
	}
	if err := m.storage.SetItem(UserDataKey, string(userData)); err != nil {
		log.Printf("Login error: %v", err)
		_ = m.storage.RemoveItem(TokenKey)
		return false
	}

	m.mu.Lock()
	m.authenticated = true
	m.user = &User{Username: username}
	m.token = DemoToken
	m.mu.Unlock()
	return true
}

// Logout removes the persisted session and resets the in-memory state
func (m *Manager) Logout() error {
	m.mu.Lock()
	m.authenticated = false
	m.user = nil
	m.token = ""
	m.mu.Unlock()

	return errors.Join(
		m.storage.RemoveItem(TokenKey),
		m.storage.RemoveItem(UserDataKey),
	)
}

// IsAuthenticated reports whether a driver is logged in
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.authenticated
}

// User returns the logged-in driver or nil
func (m *Manager) User() *User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	user := *m.user
	return &user
}

// Token returns the bearer token for API requests, or "" when logged out
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// RequireAuthenticated returns ErrNotAuthenticated unless a driver is logged in
func (m *Manager) RequireAuthenticated() error {
	if !m.IsAuthenticated() {
		return ErrNotAuthenticated
	}
	return nil
}

package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAuthenticator accepts a single username/password pair
type fakeAuthenticator struct {
	username string
	password string
	err      error
	calls    int
}

func (f *fakeAuthenticator) Login(ctx context.Context, username, password string) (bool, error) {
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	return username == f.username && password == f.password, nil
}

// failingStorage fails every write
type failingStorage struct {
	*MemoryStorage
}

func (f failingStorage) SetItem(key, value string) error {
	return errors.New("disk full")
}

func newTestManager() (*Manager, *MemoryStorage, *fakeAuthenticator) {
	storage := NewMemoryStorage()
	auth := &fakeAuthenticator{username: "admin", password: "admin123"}
	return NewManager(storage, auth), storage, auth
}

func TestRestore(t *testing.T) {
	t.Run("EmptyStorage", func(t *testing.T) {
		m, _, _ := newTestManager()

		require.NoError(t, m.Restore())
		assert.False(t, m.IsAuthenticated())
		assert.Nil(t, m.User())
		assert.Empty(t, m.Token())
	})

	t.Run("TokenAndUser", func(t *testing.T) {
		m, storage, _ := newTestManager()
		require.NoError(t, storage.SetItem(TokenKey, "demo_token"))
		require.NoError(t, storage.SetItem(UserDataKey, `{"username":"admin"}`))

		require.NoError(t, m.Restore())
		assert.True(t, m.IsAuthenticated())
		assert.Equal(t, &User{Username: "admin"}, m.User())
		assert.Equal(t, "demo_token", m.Token())
	})

	t.Run("TokenWithoutUser", func(t *testing.T) {
		m, storage, _ := newTestManager()
		require.NoError(t, storage.SetItem(TokenKey, "demo_token"))

		require.NoError(t, m.Restore())
		assert.False(t, m.IsAuthenticated())
	})

	t.Run("UndecodableUser", func(t *testing.T) {
		m, storage, _ := newTestManager()
		require.NoError(t, storage.SetItem(TokenKey, "demo_token"))
		require.NoError(t, storage.SetItem(UserDataKey, "not json"))

		require.NoError(t, m.Restore())
		assert.False(t, m.IsAuthenticated())
		assert.Nil(t, m.User())
	})
}

func TestLogin(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		m, storage, _ := newTestManager()

		assert.True(t, m.Login(context.Background(), "admin", "admin123"))
		assert.True(t, m.IsAuthenticated())
		assert.Equal(t, "admin", m.User().Username)
		assert.Equal(t, DemoToken, m.Token())

		token, _, _ := storage.GetItem(TokenKey)
		assert.Equal(t, "demo_token", token)
		userData, _, _ := storage.GetItem(UserDataKey)
		assert.JSONEq(t, `{"username":"admin"}`, userData)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		m, storage, auth := newTestManager()

		assert.False(t, m.Login(context.Background(), "admin", "wrong"))
		assert.False(t, m.IsAuthenticated())
		assert.Equal(t, 1, auth.calls)

		_, ok, _ := storage.GetItem(TokenKey)
		assert.False(t, ok)
	})

	t.Run("TransportFailure", func(t *testing.T) {
		m, _, auth := newTestManager()
		auth.err = errors.New("connection refused")

		assert.False(t, m.Login(context.Background(), "admin", "admin123"))
		assert.False(t, m.IsAuthenticated())
	})

	t.Run("FailureKeepsExistingSession", func(t *testing.T) {
		m, _, _ := newTestManager()
		require.True(t, m.Login(context.Background(), "admin", "admin123"))

		assert.False(t, m.Login(context.Background(), "admin", "wrong"))
		assert.True(t, m.IsAuthenticated())
		assert.Equal(t, "admin", m.User().Username)
	})

	t.Run("StorageFailure", func(t *testing.T) {
		auth := &fakeAuthenticator{username: "admin", password: "admin123"}
		m := NewManager(failingStorage{NewMemoryStorage()}, auth)

		assert.False(t, m.Login(context.Background(), "admin", "admin123"))
		assert.False(t, m.IsAuthenticated())
	})

	t.Run("NoAuthenticator", func(t *testing.T) {
		m := NewManager(NewMemoryStorage(), nil)
		assert.False(t, m.Login(context.Background(), "admin", "admin123"))

		m.SetAuthenticator(&fakeAuthenticator{username: "admin", password: "admin123"})
		assert.True(t, m.Login(context.Background(), "admin", "admin123"))
	})
}

func TestLogout(t *testing.T) {
	m, storage, _ := newTestManager()
	require.True(t, m.Login(context.Background(), "admin", "admin123"))

	require.NoError(t, m.Logout())

	assert.False(t, m.IsAuthenticated())
	assert.Nil(t, m.User())
	assert.Empty(t, m.Token())
	assert.ErrorIs(t, m.RequireAuthenticated(), ErrNotAuthenticated)

	_, ok, _ := storage.GetItem(TokenKey)
	assert.False(t, ok)
	_, ok, _ = storage.GetItem(UserDataKey)
	assert.False(t, ok)

	// A fresh manager over the same storage sees no session either
	fresh := NewManager(storage, nil)
	require.NoError(t, fresh.Restore())
	assert.False(t, fresh.IsAuthenticated())
}

func TestSessionSurvivesRestart(t *testing.T) {
	storage := NewFileStorage(t.TempDir() + "/session.json")
	auth := &fakeAuthenticator{username: "admin", password: "admin123"}

	require.True(t, NewManager(storage, auth).Login(context.Background(), "admin", "admin123"))

	restored := NewManager(storage, nil)
	require.NoError(t, restored.Restore())
	assert.True(t, restored.IsAuthenticated())
	assert.NoError(t, restored.RequireAuthenticated())
	assert.Equal(t, "demo_token", restored.Token())
}

package services

import (
	"context"
	"sync"

	"github.com/kendall-kelly/driver-dashboard-api/models"
)

// MockNotifier records notifications for testing. It satisfies both
// Notifier and Dispatcher so it can stand in for either.
type MockNotifier struct {
	notifications []models.Notification
	err           error
	mu            sync.RWMutex
}

// NewMockNotifier creates a new mock notifier
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

// SetAsMockForTesting sets this mock as the global dispatcher instance for testing
func (m *MockNotifier) SetAsMockForTesting() {
	SetDispatcher(m)
}

// FailWith makes Notify record the notification and then return err
func (m *MockNotifier) FailWith(err error) {
	m.mu.Lock()
	m.err = err
	m.mu.Unlock()
}

// Notify records the notification
func (m *MockNotifier) Notify(ctx context.Context, n models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifications = append(m.notifications, n)
	return m.err
}

// Dispatch records the notification synchronously
func (m *MockNotifier) Dispatch(n models.Notification) {
	_ = m.Notify(context.Background(), n)
}

// GetNotifications returns all recorded notifications (for testing assertions)
func (m *MockNotifier) GetNotifications() []models.Notification {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Notification(nil), m.notifications...)
}

// Clear removes all recorded notifications
func (m *MockNotifier) Clear() {
	m.mu.Lock()
	m.notifications = nil
	m.mu.Unlock()
}

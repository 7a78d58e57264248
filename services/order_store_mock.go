package services

import (
	"context"
	"sync"

	"github.com/kendall-kelly/driver-dashboard-api/models"
)

// MockOrderStore is an in-process implementation of OrderStore for testing
type MockOrderStore struct {
	orders []models.Order // insertion order
	mu     sync.RWMutex
}

// NewMockOrderStore creates a mock order store holding copies of orders
func NewMockOrderStore(orders ...models.Order) *MockOrderStore {
	m := &MockOrderStore{}
	for _, order := range orders {
		m.orders = append(m.orders, copyOrder(order))
	}
	return m
}

// SetAsMockForTesting sets this mock as the global order store instance for testing
func (m *MockOrderStore) SetAsMockForTesting() {
	SetOrderStore(m)
}

// ListAll returns copies of all orders in insertion order
func (m *MockOrderStore) ListAll(ctx context.Context) ([]models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	orders := make([]models.Order, 0, len(m.orders))
	for _, order := range m.orders {
		orders = append(orders, copyOrder(order))
	}
	return orders, nil
}

// FindByID returns a copy of the matching order
func (m *MockOrderStore) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, order := range m.orders {
		if order.ID == id {
			found := copyOrder(order)
			return &found, nil
		}
	}
	return nil, ErrOrderNotFound
}

// UpdateStatus changes the status of the matching order in place
func (m *MockOrderStore) UpdateStatus(ctx context.Context, id uint, status string) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.orders {
		if m.orders[i].ID == id {
			m.orders[i].Status = status
			updated := copyOrder(m.orders[i])
			return &updated, nil
		}
	}
	return nil, ErrOrderNotFound
}

// copyOrder returns an order that shares no slices or pointers with o
func copyOrder(o models.Order) models.Order {
	if o.Items != nil {
		o.Items = append([]string(nil), o.Items...)
	}
	if o.Total != nil {
		total := *o.Total
		o.Total = &total
	}
	return o
}

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/kendall-kelly/driver-dashboard-api/models"
	"gorm.io/gorm"
)

// ErrOrderNotFound is returned when no order has the requested id
var ErrOrderNotFound = errors.New("order not found")

// OrderStore holds the authoritative set of orders. All reads and writes of
// order state go through it.
type OrderStore interface {
	// ListAll returns every order in insertion order
	ListAll(ctx context.Context) ([]models.Order, error)

	// FindByID returns the order with the given id or ErrOrderNotFound
	FindByID(ctx context.Context, id uint) (*models.Order, error)

	// UpdateStatus stores status verbatim on the order and returns the updated
	// record, or ErrOrderNotFound without modifying anything
	UpdateStatus(ctx context.Context, id uint, status string) (*models.Order, error)
}

// GormOrderStore implements OrderStore on top of gorm
type GormOrderStore struct {
	db *gorm.DB
}

var orderStoreInstance OrderStore

// NewGormOrderStore creates an order store backed by db
func NewGormOrderStore(db *gorm.DB) *GormOrderStore {
	return &GormOrderStore{db: db}
}

// InitOrderStore initializes the order store with a gorm backend
func InitOrderStore(db *gorm.DB) OrderStore {
	orderStoreInstance = NewGormOrderStore(db)
	return orderStoreInstance
}

// GetOrderStore returns the initialized order store instance
func GetOrderStore() OrderStore {
	return orderStoreInstance
}

// SetOrderStore sets the order store instance (primarily for testing)
func SetOrderStore(store OrderStore) {
	orderStoreInstance = store
}

// ListAll returns all orders ordered by id, which is their insertion order
func (s *GormOrderStore) ListAll(ctx context.Context) ([]models.Order, error) {
	orders := []models.Order{}
	if err := s.db.WithContext(ctx).Order("id asc").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// FindByID fetches a single order
func (s *GormOrderStore) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.WithContext(ctx).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to fetch order %d: %w", id, err)
	}
	return &order, nil
}

// UpdateStatus looks the order up and changes its status in one transaction
func (s *GormOrderStore) UpdateStatus(ctx context.Context, id uint, status string) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return fmt.Errorf("failed to fetch order %d: %w", id, err)
		}

		if err := tx.Model(&order).Update("status", status).Error; err != nil {
			return fmt.Errorf("failed to update order %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	order.Status = status
	return &order, nil
}

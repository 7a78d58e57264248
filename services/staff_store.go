package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/kendall-kelly/driver-dashboard-api/models"
	"gorm.io/gorm"
)

// StaffStore checks dashboard login credentials
type StaffStore interface {
	// Authenticate reports whether username and password exactly match a
	// seeded staff member. It never says which of the two was wrong.
	Authenticate(ctx context.Context, username, password string) (bool, error)
}

// GormStaffStore implements StaffStore on top of gorm
type GormStaffStore struct {
	db *gorm.DB
}

var staffStoreInstance StaffStore

// NewGormStaffStore creates a staff store backed by db
func NewGormStaffStore(db *gorm.DB) *GormStaffStore {
	return &GormStaffStore{db: db}
}

// InitStaffStore initializes the staff store with a gorm backend
func InitStaffStore(db *gorm.DB) StaffStore {
	staffStoreInstance = NewGormStaffStore(db)
	return staffStoreInstance
}

// GetStaffStore returns the initialized staff store instance
func GetStaffStore() StaffStore {
	return staffStoreInstance
}

// SetStaffStore sets the staff store instance (primarily for testing)
func SetStaffStore(store StaffStore) {
	staffStoreInstance = store
}

// Authenticate looks the username up and compares the plaintext password
func (s *GormStaffStore) Authenticate(ctx context.Context, username, password string) (bool, error) {
	if username == "" {
		return false, nil
	}

	var staff models.Staff
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&staff).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to look up staff member: %w", err)
	}

	// The column comparison may be collation dependent, so confirm both
	// fields byte for byte.
	return staff.Username == username && staff.Password == password, nil
}

package services

import (
	"fmt"
	"log"
	"time"

	"github.com/kendall-kelly/driver-dashboard-api/models"
	"gorm.io/gorm"
)

// SeedOrders returns the orders loaded into an empty store at start-up
func SeedOrders() []models.Order {
	johnTotal := 24.99
	janeTotal := 18.50

	return []models.Order{
		{
			ID:        1,
			Customer:  "John Doe",
			Status:    models.StatusPreparing,
			Location:  models.Location{Lat: 40.7128, Lng: -74.0060},
			Items:     []string{"Large Pizza", "Garlic Bread", "Soda"},
			Address:   "123 Main St, New York, NY 10001",
			Phone:     "+1 (555) 123-4567",
			Email:     "john.doe@example.com",
			Total:     &johnTotal,
			CreatedAt: time.Date(2023, 9, 20, 12, 34, 56, 789000000, time.UTC),
		},
		{
			ID:        2,
			Customer:  "Jane Smith",
			Status:    models.StatusReady,
			Location:  models.Location{Lat: 34.0522, Lng: -118.2437},
			Items:     []string{"Burger", "Fries", "Milkshake"},
			Address:   "456 Oak St, Los Angeles, CA 90001",
			Phone:     "+1 (555) 987-6543",
			Email:     "jane.smith@example.com",
			Total:     &janeTotal,
			CreatedAt: time.Date(2023, 9, 20, 13, 45, 30, 123000000, time.UTC),
		},
	}
}

// MigrateDatabase creates or updates the tables used by the service
func MigrateDatabase(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Order{}, &models.Staff{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// SeedDatabase loads orders and staff into empty tables. Tables that
// already hold rows are left untouched.
func SeedDatabase(db *gorm.DB, orders []models.Order, staff []models.Staff) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var orderCount int64
		if err := tx.Model(&models.Order{}).Count(&orderCount).Error; err != nil {
			return fmt.Errorf("failed to count orders: %w", err)
		}
		if orderCount == 0 && len(orders) > 0 {
			if err := tx.Create(&orders).Error; err != nil {
				return fmt.Errorf("failed to seed orders: %w", err)
			}
			log.Printf("Seeded %d orders", len(orders))
		}

		var staffCount int64
		if err := tx.Model(&models.Staff{}).Count(&staffCount).Error; err != nil {
			return fmt.Errorf("failed to count staff: %w", err)
		}
		if staffCount == 0 && len(staff) > 0 {
			if err := tx.Create(&staff).Error; err != nil {
				return fmt.Errorf("failed to seed staff: %w", err)
			}
			log.Printf("Seeded %d staff members", len(staff))
		}

		return nil
	})
}

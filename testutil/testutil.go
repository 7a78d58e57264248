// Package testutil wires a seeded in-memory API backend for end-to-end tests.
package testutil

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/driver-dashboard-api/config"
	"github.com/kendall-kelly/driver-dashboard-api/models"
	"github.com/kendall-kelly/driver-dashboard-api/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Default staff login seeded by NewSeededDB
const (
	StaffUsername = "admin"
	StaffPassword = "admin123"
)

// NewTestDB opens a private in-memory SQLite database with the schema applied.
// The pool is pinned to one connection so every query sees the same database.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get database instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := services.MigrateDatabase(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

// NewSeededDB returns a test database holding the two demo orders and the default staff login
func NewSeededDB(t *testing.T) *gorm.DB {
	t.Helper()

	db := NewTestDB(t)
	staff := []models.Staff{{Username: StaffUsername, Password: StaffPassword}}
	if err := services.SeedDatabase(db, services.SeedOrders(), staff); err != nil {
		t.Fatalf("Failed to seed test database: %v", err)
	}
	return db
}

// SetupServices installs gorm-backed stores over db and a recording
// dispatcher as the process singletons, and resets them when t finishes
func SetupServices(t *testing.T, db *gorm.DB) *services.MockNotifier {
	t.Helper()
	gin.SetMode(gin.TestMode)

	config.SetDB(db)
	services.InitOrderStore(db)
	services.InitStaffStore(db)

	notifier := services.NewMockNotifier()
	notifier.SetAsMockForTesting()

	t.Cleanup(func() {
		config.SetDB(nil)
		services.SetOrderStore(nil)
		services.SetStaffStore(nil)
		services.SetDispatcher(nil)
	})
	return notifier
}

// TestConfig returns a valid configuration for a test server
func TestConfig() *config.Config {
	return &config.Config{
		Port:                "3000",
		GoEnv:               "test",
		StaffUsername:       StaffUsername,
		StaffPassword:       StaffPassword,
		CORSAllowedOrigins:  []string{"*"},
		NotificationQueue:   10,
		NotificationTimeout: 10 * time.Second,
		LogLevel:            "info",
	}
}

package config

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InMemoryDSN is the SQLite DSN used when no DATABASE_URL is configured
const InMemoryDSN = "file::memory:?cache=shared"

var DB *gorm.DB

// GormLogLevel maps LOG_LEVEL onto gorm's logger. Every SQL statement is
// traced at debug; info and warn report slow queries and failures only.
func GormLogLevel(level string) logger.LogLevel {
	switch level {
	case "debug":
		return logger.Info
	case "error":
		return logger.Error
	default:
		return logger.Warn
	}
}

// NewGormLogger writes gorm's log output to w at the given LOG_LEVEL
func NewGormLogger(w io.Writer, level string) logger.Interface {
	return logger.New(log.New(w, "\r\n", log.LstdFlags), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  GormLogLevel(level),
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

// ConnectDatabase opens the order database. An empty databaseURL selects an
// in-memory SQLite database; anything else is treated as a PostgreSQL DSN.
// logLevel is the LOG_LEVEL setting used for gorm's logger.
func ConnectDatabase(databaseURL, logLevel string) error {
	var dialector gorm.Dialector
	if databaseURL == "" {
		log.Println("DATABASE_URL not set, using in-memory SQLite database")
		dialector = sqlite.Open(InMemoryDSN)
	} else {
		dialector = postgres.Open(databaseURL)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: NewGormLogger(os.Stdout, logLevel),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if databaseURL == "" {
		// Every connection to :memory: is a separate database, so pin the pool
		// to one connection. This also serialises writes to the order table.
		sqlDB, err := db.DB()
		if err != nil {
			return fmt.Errorf("failed to get database instance: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	DB = db
	log.Println("Database connection established successfully")
	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}

// SetDB sets the database instance (primarily for testing)
func SetDB(db *gorm.DB) {
	DB = db
}

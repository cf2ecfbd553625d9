package config

import (
	"errors"
	"os"
	"time"

	"github.com/manabi09/job-portal/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewPostgres opens the database and runs migrations. The handle is owned by
// the caller and injected into the repositories; there is no package-level
// singleton.
func NewPostgres() (*gorm.DB, error) {
	uri := os.Getenv("POSTGRES_URI")
	if uri == "" {
		return nil, errors.New("POSTGRES_URI environment variable is not set")
	}
	db, err := gorm.Open(postgres.Open(uri), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// Connection Pooling settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Company{},
		&models.Job{},
		&models.Application{},
	); err != nil {
		return nil, err
	}

	return db, nil
}

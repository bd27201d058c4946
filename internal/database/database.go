package database

import (
	"strings"

	"github.com/kgrubic/boston-energy/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open opens a GORM DB from the configured DSN. A postgres:// URL uses the
// Postgres driver with simple protocol (pooler-safe); anything else is
// treated as a sqlite path for local development.
// TranslateError is on so unique-index violations surface as
// gorm.ErrDuplicatedKey across both drivers.
func Open(dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	}
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), cfg)
	}
	return gorm.Open(sqlite.Open(dsn), cfg)
}

// AutoMigrate runs migrations for the marketplace models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Contract{}, &models.PortfolioItem{})
}

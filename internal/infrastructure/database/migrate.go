package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/praxishq/praxis-backend/internal/domain/model"
)

// Migrate runs database migrations
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	logger.Info("Running database migrations...")

	if err := createExtensions(db); err != nil {
		logger.Error("Failed to create extensions", zap.Error(err))
		return err
	}

	err := db.AutoMigrate(
		&model.Profile{},
		&model.Subscriber{},
		&model.Website{},
		&model.SitePlan{},
	)
	if err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return err
	}

	if err := createCustomIndexes(db); err != nil {
		logger.Error("Failed to create custom indexes", zap.Error(err))
		return err
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

// createCustomIndexes creates custom indexes that GORM doesn't handle automatically
func createCustomIndexes(db *gorm.DB) error {
	// Listing a user's sites is the hot query on the dashboard
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_websites_userid_created_at ON websites (userid, created_at DESC)`).Error; err != nil {
		return err
	}

	// Custom domains must be unique when set
	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS unique_website_custom_domain ON websites (custom_domain) WHERE custom_domain IS NOT NULL`).Error; err != nil {
		return err
	}

	// Webhook lookups resolve subscribers by processor customer ID
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_subscribers_provider_customer_id ON subscribers (provider_customer_id) WHERE provider_customer_id IS NOT NULL`).Error; err != nil {
		return err
	}

	return nil
}

// createExtensions creates required PostgreSQL extensions
func createExtensions(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`).Error; err != nil {
		return err
	}
	return nil
}

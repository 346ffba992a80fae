package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/CIPMABUJA/hr-hub-backend/internal/domain/model"
)

// Migrate runs database migrations
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	logger.Info("Running database migrations...")

	if err := createExtensions(db); err != nil {
		logger.Error("Failed to create extensions", zap.Error(err))
		return err
	}

	err := db.AutoMigrate(
		&model.Member{},
		&model.Membership{},
		&model.Application{},
		&model.Payment{},
		&model.Event{},
		&model.EventRegistration{},
		&model.CPDRecord{},
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

// createExtensions creates required PostgreSQL extensions
func createExtensions(db *gorm.DB) error {
	return db.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`).Error
}

// createCustomIndexes creates partial indexes GORM tags cannot express.
func createCustomIndexes(db *gorm.DB) error {
	// One open application per member.
	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS unique_open_application_per_member ON applications (member_id) WHERE status = 'pending'`).Error; err != nil {
		return err
	}

	// One membership row per member.
	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS unique_membership_per_member ON memberships (member_id)`).Error; err != nil {
		return err
	}

	// Reconciler scan: pending payments by age.
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_payments_stale_pending ON payments (created_at) WHERE status = 'pending'`).Error; err != nil {
		return err
	}

	return nil
}

package database

import (
	"rentease/internal/models"
	"rentease/pkg/logger"
)

// Migrate 执行数据库迁移
func Migrate() error {
	appLogger := logger.GetLogger()
	appLogger.Info("Starting database migration...")

	err := DB.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.Unit{},
		&models.Application{},
		&models.Lease{},
		&models.Payment{},
		&models.MaintenanceRequest{},
		&models.MaintenanceComment{},
		&models.Message{},
		&models.Activity{},
	)

	if err != nil {
		appLogger.Errorf("Database migration failed: %v", err)
		return err
	}

	appLogger.Info("Database migration completed successfully")

	return nil
}

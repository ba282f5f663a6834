package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"trippilot/skyview/internal/logging"
	gormModels "trippilot/skyview/internal/models/gorm"
)

func InitPostgresORM(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if err := db.AutoMigrate(gormModels.HistoryModels()...); err != nil {
		return nil, fmt.Errorf("failed to migrate history tables: %w", err)
	}

	logging.Info("Connected to Postgres via GORM")
	return db, nil
}

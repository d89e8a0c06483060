package database

import (
	"fmt"
	"log"
	"strings"

	"blogapi/config"
	"blogapi/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the single PostgreSQL handle shared by every request.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL()), GormConfig(cfg.DBLogLevel))
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	log.Println("Database connected successfully")
	return db, nil
}

// GormConfig translates driver errors so unique violations surface as
// gorm.ErrDuplicatedKey on every dialect.
func GormConfig(logLevel string) *gorm.Config {
	return &gorm.Config{
		Logger:         logger.Default.LogMode(LogLevel(logLevel)),
		TranslateError: true,
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
	); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	log.Println("Database migrated successfully")
	return nil
}

// LogLevel maps DB_LOG_LEVEL onto GORM's levels; unknown values mean warn.
func LogLevel(level string) logger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

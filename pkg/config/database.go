package config

import (
	"fmt"
	"strings"

	"github.com/anonto42/foodgram/backend/pkg/logger"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Dialector picks the gorm driver for a database URL.
func Dialector(url string) (gorm.Dialector, error) {
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return postgres.Open(url), nil
	case strings.HasPrefix(url, "sqlite://"):
		dsn := strings.TrimPrefix(url, "sqlite://")
		if !strings.Contains(dsn, "_pragma=foreign_keys") {
			sep := "?"
			if strings.Contains(dsn, "?") {
				sep = "&"
			}
			dsn += sep + "_pragma=foreign_keys(1)"
		}
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database url: %q", url)
	}
}

// InitDB opens and pings the database
func InitDB(cfg *Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg.Database.URL)
	if err != nil {
		return nil, err
	}

	level := gormlogger.Warn
	if !cfg.IsDevelopment() {
		level = gormlogger.Error
	}
	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormlogger.Default.LogMode(level)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err = sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().Str("dialect", dialector.Name()).Msg("connected to database")
	return db, nil
}

// CloseDB closes the underlying connection pool
func CloseDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		logger.Error().Err(err).Msg("error getting sql db from gorm")
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error().Err(err).Msg("error closing database connection")
		return
	}
	logger.Info().Msg("database connection closed")
}

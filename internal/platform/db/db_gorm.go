// Package db opens the report-archive database.
package db

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	gpostgres "gorm.io/driver/postgres"
	gsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	reportadapters "ashare_analyst/internal/feature/reports/adapters"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds database connection settings.
type Config struct {
	Driver   string // "sqlite" (default) or "postgres"
	Path     string // sqlite file path
	User     string
	Password string
	Name     string
	Host     string
	Port     string
	SSLMode  string
}

// LoadConfig loads database configuration from environment variables.
func LoadConfig() Config {
	cfg := Config{
		Driver:   os.Getenv("DB_DRIVER"),
		Path:     os.Getenv("DB_PATH"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		Name:     os.Getenv("DB_NAME"),
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		SSLMode:  os.Getenv("DB_SSLMODE"),
	}
	if cfg.Driver == "" {
		cfg.Driver = DriverSQLite
	}
	if cfg.Path == "" {
		cfg.Path = "reports.db"
	}
	if cfg.Port == "" {
		cfg.Port = "5432"
	}
	if cfg.SSLMode == "" {
		cfg.SSLMode = "disable"
	}
	return cfg
}

// BuildDSN renders the connection string for the configured driver.
func BuildDSN(cfg Config) string {
	if cfg.Driver == DriverPostgres {
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=Asia/Shanghai",
			cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, cfg.SSLMode)
	}
	return cfg.Path
}

// OpenDB opens the database, retrying for up to a minute, and runs the
// archive migration when RUN_MIGRATIONS=true.
func OpenDB(cfg Config) (*gorm.DB, error) {
	dsn := BuildDSN(cfg)

	open := func() (*gorm.DB, error) {
		if cfg.Driver == DriverPostgres {
			return gorm.Open(gpostgres.Open(dsn), &gorm.Config{})
		}
		return gorm.Open(gsqlite.Open(dsn), &gorm.Config{})
	}

	var (
		db  *gorm.DB
		err error
	)
	deadline := time.Now().Add(60 * time.Second)
	for {
		db, err = open()
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after 60s: %w", err)
		}
		slog.Warn("db connect failed, retrying", "driver", cfg.Driver, "error", err)
		time.Sleep(3 * time.Second)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		if err := db.AutoMigrate(&reportadapters.ReportModel{}); err != nil {
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
	}
	return db, nil
}

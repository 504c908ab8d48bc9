package db

import (
	"testing"
)

func TestBuildDSN_Postgres(t *testing.T) {
	t.Parallel()

	cfg := Config{
		Driver:   DriverPostgres,
		User:     "testuser",
		Password: "testpass",
		Name:     "testdb",
		Host:     "localhost",
		Port:     "5432",
		SSLMode:  "disable",
	}

	dsn := BuildDSN(cfg)

	expected := "host=localhost user=testuser password=testpass dbname=testdb port=5432 sslmode=disable TimeZone=Asia/Shanghai"
	if dsn != expected {
		t.Errorf("expected DSN %q, got %q", expected, dsn)
	}
}

func TestBuildDSN_SQLite(t *testing.T) {
	t.Parallel()

	dsn := BuildDSN(Config{Driver: DriverSQLite, Path: "/var/data/reports.db"})
	if dsn != "/var/data/reports.db" {
		t.Errorf("expected sqlite path DSN, got %q", dsn)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DB_PATH", "")
	t.Setenv("DB_PORT", "")
	t.Setenv("DB_SSLMODE", "")

	cfg := LoadConfig()
	if cfg.Driver != DriverSQLite {
		t.Errorf("driver = %q, want sqlite", cfg.Driver)
	}
	if cfg.Path != "reports.db" {
		t.Errorf("path = %q, want reports.db", cfg.Path)
	}
	if cfg.Port != "5432" || cfg.SSLMode != "disable" {
		t.Errorf("postgres defaults not applied: %+v", cfg)
	}
}

func TestOpenDB_SQLiteInMemory(t *testing.T) {
	t.Setenv("RUN_MIGRATIONS", "true")

	db, err := OpenDB(Config{Driver: DriverSQLite, Path: ":memory:"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !db.Migrator().HasTable("reports") {
		t.Error("migration did not create reports table")
	}
}

package config

import (
	"strings"
	"testing"
	"time"
)

var envKeys = []string{
	"PORT", "SERVER_PORT", "MAX_UPLOAD_SIZE",
	"DB_DRIVER", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
	"MYSQLHOST", "MYSQLPORT", "MYSQLUSER", "MYSQLPASSWORD", "MYSQLDATABASE",
	"STORAGE_BACKEND", "UPLOAD_FOLDER", "MINIO_ENDPOINT", "LOG_LEVEL",
}

// clearEnv blanks every variable Load reads so the host environment does not leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Server.MaxUploadSize != 10<<20 {
		t.Errorf("Expected 10MiB upload limit, got %d", cfg.Server.MaxUploadSize)
	}
	if cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Errorf("Unexpected shutdown timeout %v", cfg.Server.ShutdownTimeout)
	}
	if cfg.Database.Driver != DriverPostgres || cfg.Database.Port != 5432 {
		t.Errorf("Unexpected database defaults %s:%d", cfg.Database.Driver, cfg.Database.Port)
	}
	if cfg.Storage.Backend != StorageLocal || cfg.Storage.UploadDir != "./uploads" {
		t.Errorf("Unexpected storage defaults %+v", cfg.Storage)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PASSWORD", "s3cret")
	t.Setenv("UPLOAD_FOLDER", "/data/uploads")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Database.Host != "db.internal" || cfg.Database.Password != "s3cret" {
		t.Errorf("Unexpected database %+v", cfg.Database)
	}
	if cfg.Storage.UploadDir != "/data/uploads" {
		t.Errorf("Unexpected upload dir %s", cfg.Storage.UploadDir)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Unexpected log level %s", cfg.Log.Level)
	}
	if strings.Contains(cfg.Database.Redacted(), "s3cret") {
		t.Errorf("Redacted DSN leaks password: %s", cfg.Database.Redacted())
	}
}

func TestLoadMySQLDeployment(t *testing.T) {
	clearEnv(t)
	t.Setenv("MYSQLHOST", "mysql.railway.internal")
	t.Setenv("MYSQLUSER", "root")
	t.Setenv("MYSQLDATABASE", "railway")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Driver != DriverMySQL || cfg.Database.Port != 3306 {
		t.Fatalf("Expected mysql on 3306, got %s:%d", cfg.Database.Driver, cfg.Database.Port)
	}
	dsn := cfg.Database.DSN()
	if !strings.HasPrefix(dsn, "root:@tcp(mysql.railway.internal:3306)/railway?") || !strings.Contains(dsn, "parseTime=True") {
		t.Errorf("Unexpected DSN %s", dsn)
	}

	// an explicit driver wins
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("MYSQLPORT", "5433")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Driver != DriverPostgres || cfg.Database.Port != 5433 {
		t.Errorf("Expected postgres on 5433, got %s:%d", cfg.Database.Driver, cfg.Database.Port)
	}
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	bad := *cfg
	bad.Database.Driver = "sqlite"
	if err := bad.Validate(); err == nil {
		t.Error("Expected error for unsupported driver")
	}

	bad = *cfg
	bad.Storage.Backend = StorageMinIO
	if err := bad.Validate(); err == nil {
		t.Error("Expected error for minio without endpoint")
	}
	bad.MinIO.Endpoint = "minio:9000"
	if err := bad.Validate(); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}

	bad = *cfg
	bad.Server.MaxUploadSize = 0
	if err := bad.Validate(); err == nil {
		t.Error("Expected error for zero upload limit")
	}
}

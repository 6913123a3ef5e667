package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/domain"
)

var envKeys = []string{
	"PORT", "CORS_ORIGINS", "STORAGE_DRIVER", "DATABASE_URL", "SQLITE_PATH",
	"DYNAMODB_TABLE", "DYNAMODB_ENDPOINT", "AWS_REGION", "JWT_SECRET",
	"TIMEZONE", "LOG_LEVEL",
}

// isolate runs the test from an empty directory with every config variable
// removed from the environment.
func isolate(t *testing.T) string {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("", discardLogger())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:5173", "http://127.0.0.1:5173"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, DefaultDatabaseURL, cfg.Storage.DatabaseURL)
	assert.Equal(t, "America/Sao_Paulo", cfg.Timezone)
	assert.Empty(t, cfg.TruckTypes)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	yamlDoc := `
server:
  port: "9090"
  cors_origins: ["https://doca.example.com"]
  shutdown_timeout: 30s
storage:
  driver: sqlite
  sqlite_path: /var/lib/recebimento/data.db
auth:
  jwt_secret: from-file
timezone: UTC
log_level: debug
truck_types:
  - code: Truck
    limit: 6
  - code: carreta
    limit: 3
`
	require.NoError(t, os.WriteFile(path, []byte(yamlDoc), 0o600))

	cfg, err := Load(path, discardLogger())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, []string{"https://doca.example.com"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "/var/lib/recebimento/data.db", cfg.Storage.SQLitePath)
	assert.Equal(t, DefaultDatabaseURL, cfg.Storage.DatabaseURL, "unset keys keep defaults")
	assert.Equal(t, "from-file", cfg.Auth.JWTSecret)
	assert.Equal(t, []domain.CapacityLimit{
		{TruckType: "truck", MaxPerDay: 6},
		{TruckType: "carreta", MaxPerDay: 3},
	}, cfg.SeedLimits())
}

func TestLoad_DefaultFileIsOptional(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "missing.yaml"), discardLogger())
	require.Error(t, err, "an explicit path must exist")

	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte("log_level: warn\n"), 0o600))
	cfg, err := Load("", discardLogger())
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: \"9090\"\nstorage:\n  driver: sqlite\n"), 0o600))

	t.Setenv("PORT", "7070")
	t.Setenv("STORAGE_DRIVER", "dynamodb")
	t.Setenv("DYNAMODB_ENDPOINT", "http://localhost:8000")
	t.Setenv("CORS_ORIGINS", " https://a.example.com , ,https://b.example.com")

	cfg, err := Load(path, discardLogger())
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, DriverDynamoDB, cfg.Storage.Driver)
	assert.Equal(t, "http://localhost:8000", cfg.Storage.DynamoDB.Endpoint)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Server.CORSOrigins)
}

func TestLoad_EnvFileDoesNotOverrideEnvironment(t *testing.T) {
	dir := isolate(t)
	envFile := "JWT_SECRET=from-dotenv\nLOG_LEVEL=\"error\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(envFile), 0o600))

	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load("", discardLogger())
	require.NoError(t, err)

	assert.Equal(t, "from-dotenv", cfg.Auth.JWTSecret)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{name: "driver", mutate: func(c *Config) { c.Storage.Driver = "mysql" }, want: "storage.driver"},
		{name: "timezone", mutate: func(c *Config) { c.Timezone = "Mars/Olympus" }, want: "timezone"},
		{name: "level", mutate: func(c *Config) { c.LogLevel = "loud" }, want: "log_level"},
		{name: "shutdown", mutate: func(c *Config) { c.Server.ShutdownTimeout = 0 }, want: "shutdown_timeout"},
		{name: "seed code", mutate: func(c *Config) { c.TruckTypes = []TruckTypeSeed{{Code: " ", Limit: 1}} }, want: "truck_types[0].code"},
		{name: "seed limit", mutate: func(c *Config) { c.TruckTypes = []TruckTypeSeed{{Code: "van", Limit: -1}} }, want: "truck_types[0].limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	require.NoError(t, Default().Validate())
}

func TestNewLogger_Level(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "warn"

	var buf bytes.Buffer
	logger, err := cfg.NewLogger(&buf)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown key=value")
}

func TestParseCSV(t *testing.T) {
	assert.Nil(t, ParseCSV(""))
	assert.Equal(t, []string{"a", "b"}, ParseCSV(" a,,b ,"))
}

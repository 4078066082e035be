package cmd_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/carlsonrocha-octa/softtek-backend/cmd"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test from an empty directory so a developer's .env is not picked up.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoadConfig_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := cmd.LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, cmd.StorageDriverSQLite, cfg.StorageDriver)
	assert.Equal(t, "orders.db", cfg.SQLitePath)
	assert.True(t, cfg.EventBusAsync)
	assert.Equal(t, 8, cfg.EventBusMaxConcurrency)
	assert.Equal(t, 100*time.Millisecond, cfg.SAPLatency)
	assert.Zero(t, cfg.SAPFailureRate)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:3001"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "none", cfg.OtelExporter)
	assert.Equal(t, "@every 1m", cfg.StatusReportSchedule)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoadConfig_Environment(t *testing.T) {
	isolate(t)
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("STORAGE_DRIVER", "Memory")
	t.Setenv("EVENT_BUS_ASYNC", "false")
	t.Setenv("EVENT_BUS_MAX_CONCURRENCY", "2")
	t.Setenv("SAP_LATENCY", "5ms")
	t.Setenv("SAP_FAILURE_RATE", "0.25")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , https://b.example,")
	t.Setenv("STATUS_REPORT_SCHEDULE", "")

	cfg, err := cmd.LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, cmd.StorageDriverMemory, cfg.StorageDriver)
	assert.False(t, cfg.EventBusAsync)
	assert.Equal(t, 2, cfg.EventBusMaxConcurrency)
	assert.Equal(t, 5*time.Millisecond, cfg.SAPLatency)
	assert.InDelta(t, 0.25, cfg.SAPFailureRate, 1e-9)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Empty(t, cfg.StatusReportSchedule)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("HTTP_PORT=7070\nSQLITE_PATH=from-dotenv.db\n"), 0o600))
	t.Setenv("SQLITE_PATH", "from-process.db")
	// godotenv writes into the process environment; t.Setenv only restores what it set itself.
	t.Cleanup(func() { _ = os.Unsetenv("HTTP_PORT") })

	cfg, err := cmd.LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.HTTPPort)
	assert.Equal(t, "from-process.db", cfg.SQLitePath)
}

func TestLoadConfig_Invalid(t *testing.T) {
	isolate(t)
	t.Setenv("STORAGE_DRIVER", "mongo")
	t.Setenv("SAP_FAILURE_RATE", "1.5")
	t.Setenv("EVENT_BUS_MAX_CONCURRENCY", "0")

	_, err := cmd.LoadConfig()

	require.Error(t, err)
	assert.ErrorContains(t, err, `STORAGE_DRIVER "mongo" is not supported`)
	assert.ErrorContains(t, err, "SAP_FAILURE_RATE")
	assert.ErrorContains(t, err, "EVENT_BUS_MAX_CONCURRENCY")
}

func TestConfig_Validate(t *testing.T) {
	valid := cmd.Config{
		HTTPPort:               "8080",
		StorageDriver:          cmd.StorageDriverMemory,
		EventBusMaxConcurrency: 1,
		SAPFailureRate:         1,
		ShutdownTimeout:        time.Second,
	}
	require.NoError(t, valid.Validate())

	noPath := valid
	noPath.StorageDriver = cmd.StorageDriverSQLite
	require.ErrorContains(t, noPath.Validate(), "SQLITE_PATH")

	negativeLatency := valid
	negativeLatency.SAPLatency = -time.Millisecond
	require.ErrorContains(t, negativeLatency.Validate(), "SAP_LATENCY")
}

func TestConfig_PostgresDSN(t *testing.T) {
	cfg := cmd.Config{
		DBHost:     "db",
		DBPort:     "5432",
		DBUser:     "orders",
		DBPassword: "p@ss word",
		DBName:     "supply",
		DBSslMode:  "disable",
	}

	assert.Equal(t, "postgres://orders:p%40ss%20word@db:5432/supply?sslmode=disable", cfg.PostgresDSN())
}

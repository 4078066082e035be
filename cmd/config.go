package cmd

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	StorageDriverSQLite   = "sqlite"
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

const dotEnvFile = ".env"

// Config holds all application configuration.
type Config struct {
	HTTPPort string

	StorageDriver string
	SQLitePath    string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSslMode     string

	EventBusAsync          bool
	EventBusMaxConcurrency int

	SAPLatency     time.Duration
	SAPFailureRate float64

	CORSAllowedOrigins []string

	LogLevel     string
	OtelExporter string

	StatusReportSchedule string
	ShutdownTimeout      time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http_port", "8080")
	v.SetDefault("storage_driver", StorageDriverSQLite)
	v.SetDefault("sqlite_path", "orders.db")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_password", "postgres")
	v.SetDefault("db_name", "orders")
	v.SetDefault("db_sslmode", "disable")
	v.SetDefault("event_bus_async", true)
	v.SetDefault("event_bus_max_concurrency", 8)
	v.SetDefault("sap_latency", "100ms")
	v.SetDefault("sap_failure_rate", 0.0)
	v.SetDefault("cors_allowed_origins", "http://localhost:3000,http://localhost:3001")
	v.SetDefault("log_level", "info")
	v.SetDefault("otel_exporter", "none")
	v.SetDefault("status_report_schedule", "@every 1m")
	v.SetDefault("shutdown_timeout", "10s")
}

// LoadConfig reads the configuration from the environment.
// Variables from a .env file in the working directory are loaded first when
// the file exists; variables already set in the process take precedence.
func LoadConfig() (Config, error) {
	if _, err := os.Stat(dotEnvFile); err == nil {
		if err := godotenv.Load(dotEnvFile); err != nil {
			return Config{}, fmt.Errorf("loading %s: %w", dotEnvFile, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	v.AllowEmptyEnv(true)
	setDefaults(v)

	cfg := Config{
		HTTPPort:               v.GetString("http_port"),
		StorageDriver:          strings.ToLower(strings.TrimSpace(v.GetString("storage_driver"))),
		SQLitePath:             v.GetString("sqlite_path"),
		DBHost:                 v.GetString("db_host"),
		DBPort:                 v.GetString("db_port"),
		DBUser:                 v.GetString("db_user"),
		DBPassword:             v.GetString("db_password"),
		DBName:                 v.GetString("db_name"),
		DBSslMode:              v.GetString("db_sslmode"),
		EventBusAsync:          v.GetBool("event_bus_async"),
		EventBusMaxConcurrency: v.GetInt("event_bus_max_concurrency"),
		SAPLatency:             v.GetDuration("sap_latency"),
		SAPFailureRate:         v.GetFloat64("sap_failure_rate"),
		CORSAllowedOrigins:     splitList(v.GetString("cors_allowed_origins")),
		LogLevel:               v.GetString("log_level"),
		OtelExporter:           strings.ToLower(strings.TrimSpace(v.GetString("otel_exporter"))),
		StatusReportSchedule:   strings.TrimSpace(v.GetString("status_report_schedule")),
		ShutdownTimeout:        v.GetDuration("shutdown_timeout"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks values that would otherwise fail late, after the server started.
func (c Config) Validate() error {
	var errs []error

	if c.HTTPPort == "" {
		errs = append(errs, errors.New("HTTP_PORT is required"))
	}

	switch c.StorageDriver {
	case StorageDriverSQLite:
		if c.SQLitePath == "" {
			errs = append(errs, errors.New("SQLITE_PATH is required for the sqlite driver"))
		}
	case StorageDriverPostgres:
		if c.DBHost == "" || c.DBName == "" {
			errs = append(errs, errors.New("DB_HOST and DB_NAME are required for the postgres driver"))
		}
	case StorageDriverMemory:
	default:
		errs = append(errs, fmt.Errorf("STORAGE_DRIVER %q is not supported", c.StorageDriver))
	}

	if c.EventBusMaxConcurrency <= 0 {
		errs = append(errs, fmt.Errorf("EVENT_BUS_MAX_CONCURRENCY must be positive, got %d", c.EventBusMaxConcurrency))
	}
	if c.SAPLatency < 0 {
		errs = append(errs, fmt.Errorf("SAP_LATENCY must not be negative, got %s", c.SAPLatency))
	}
	if c.SAPFailureRate < 0 || c.SAPFailureRate > 1 {
		errs = append(errs, fmt.Errorf("SAP_FAILURE_RATE must be within [0,1], got %v", c.SAPFailureRate))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", c.ShutdownTimeout))
	}

	return errors.Join(errs...)
}

// PostgresDSN builds a connection URL from the DB_* settings.
func (c Config) PostgresDSN() string {
	dsn := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.DBUser, c.DBPassword),
		Host:   c.DBHost + ":" + c.DBPort,
		Path:   "/" + c.DBName,
	}
	if c.DBSslMode != "" {
		dsn.RawQuery = url.Values{"sslmode": []string{c.DBSslMode}}.Encode()
	}
	return dsn.String()
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

package api

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	platformobservability "github.com/Apurer/go-gin-dog-shelter/internal/platform/observability"
)

// Store backends selectable through DOG_STORE.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port        string
	Store       string
	PostgresDSN string
	SQLitePath  string
	SeedFile    string
	Environment string

	// Used when SeedFile is an s3:// URI.
	SeedS3Region    string
	SeedS3Endpoint  string
	SeedS3PathStyle bool

	TraceExporter string
	OTLPEndpoint  string
	OTLPInsecure  bool
	LogLevel      slog.Level
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:        envDefault("PORT", "8080"),
		Store:       strings.ToLower(envDefault("DOG_STORE", StoreMemory)),
		PostgresDSN: strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		SQLitePath:  envDefault("SQLITE_PATH", "dogshelter.db"),
		SeedFile:    strings.TrimSpace(os.Getenv("SEED_FILE")),
		Environment: envDefault("ENVIRONMENT", "development"),

		SeedS3Region:    strings.TrimSpace(os.Getenv("SEED_S3_REGION")),
		SeedS3Endpoint:  strings.TrimSpace(os.Getenv("SEED_S3_ENDPOINT")),
		SeedS3PathStyle: isTruthy(os.Getenv("SEED_S3_PATH_STYLE")),

		TraceExporter: envDefault("OTEL_TRACES_EXPORTER", platformobservability.ExporterOTLP),
		OTLPEndpoint:  strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")),
		OTLPInsecure:  isTruthy(os.Getenv("OTEL_EXPORTER_OTLP_INSECURE")),
	}
	if raw := strings.TrimSpace(os.Getenv("LOG_LEVEL")); raw != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(raw)); err != nil {
			return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings that can be overridden after LoadConfig.
func (c Config) Validate() error {
	switch c.Store {
	case StoreMemory, StorePostgres, StoreSQLite:
	default:
		return fmt.Errorf("DOG_STORE must be one of %s, %s, %s; got %q", StoreMemory, StorePostgres, StoreSQLite, c.Store)
	}
	if strings.TrimSpace(c.Port) == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	return nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}

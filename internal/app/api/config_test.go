package api

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DOG_STORE", "POSTGRES_DSN", "SQLITE_PATH", "SEED_FILE", "ENVIRONMENT", "OTEL_TRACES_EXPORTER", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, StoreMemory, cfg.Store)
	require.Equal(t, "dogshelter.db", cfg.SQLitePath)
	require.Empty(t, cfg.SeedFile)
	require.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DOG_STORE", "SQLite")
	t.Setenv("SQLITE_PATH", "/var/lib/dogs.db")
	t.Setenv("SEED_FILE", " testdata/dogs.json ")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "yes")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, StoreSQLite, cfg.Store)
	require.Equal(t, "/var/lib/dogs.db", cfg.SQLitePath)
	require.Equal(t, "testdata/dogs.json", cfg.SeedFile)
	require.True(t, cfg.OTLPInsecure)
	require.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoadConfig_RejectsUnknownStore(t *testing.T) {
	t.Setenv("DOG_STORE", "redis")
	_, err := LoadConfig()
	require.ErrorContains(t, err, "redis")
}

func TestLoadConfig_RejectsBadLogLevel(t *testing.T) {
	t.Setenv("DOG_STORE", "")
	t.Setenv("LOG_LEVEL", "loud")
	_, err := LoadConfig()
	require.ErrorContains(t, err, "LOG_LEVEL")
}

func TestConfig_ValidateAfterOverride(t *testing.T) {
	cfg := Config{Port: "8080", Store: StorePostgres}
	require.NoError(t, cfg.Validate())

	cfg.Port = " "
	require.Error(t, cfg.Validate())
}

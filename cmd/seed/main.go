package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	dogspostgres "github.com/Apurer/go-gin-dog-shelter/internal/domains/dogs/adapters/persistence/postgres"
	dogssqlite "github.com/Apurer/go-gin-dog-shelter/internal/domains/dogs/adapters/persistence/sqlite"
	dogsseed "github.com/Apurer/go-gin-dog-shelter/internal/domains/dogs/adapters/seed"
	"github.com/Apurer/go-gin-dog-shelter/internal/domains/dogs/ports"
	"github.com/Apurer/go-gin-dog-shelter/internal/platform/migrations"
	platformpostgres "github.com/Apurer/go-gin-dog-shelter/internal/platform/postgres"
)

const usage = "usage: seed [--store postgres|sqlite] <fixture.json>"

var errUsage = errors.New(usage)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	if err := run(context.Background(), os.Args[1:], logger); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, args []string, logger *slog.Logger) error {
	flags := flag.NewFlagSet("seed", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	store := flags.String("store", "sqlite", "target store: postgres or sqlite")
	sqlitePath := flags.String("sqlite-path", envDefault("SQLITE_PATH", "dogshelter.db"), "sqlite database file")
	dsn := flags.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "postgres connection string")
	if err := flags.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if flags.NArg() != 1 {
		return errUsage
	}
	target := strings.ToLower(strings.TrimSpace(*store))

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	seeder, cleanup, err := openSeeder(ctx, target, *sqlitePath, *dsn)
	if err != nil {
		return err
	}
	defer cleanup()

	n, err := dogsseed.LoadFile(ctx, flags.Arg(0), seeder)
	if err != nil {
		return fmt.Errorf("failed to seed dogs: %w", err)
	}
	logger.Info("dog seed completed", slog.String("store", target), slog.Int("dogs", n))
	return nil
}

func openSeeder(ctx context.Context, store, sqlitePath, dsn string) (ports.Seeder, func(), error) {
	switch store {
	case "sqlite":
		repo, err := dogssqlite.Open(ctx, sqlitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		return repo, func() { _ = repo.Close() }, nil
	case "postgres":
		if dsn == "" {
			return nil, nil, errors.New("POSTGRES_DSN not set; cannot seed postgres")
		}
		db, closeDB, err := platformpostgres.Connect(ctx, dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		if err := migrations.Run(db); err != nil {
			_ = closeDB()
			return nil, nil, fmt.Errorf("failed to migrate postgres: %w", err)
		}
		return dogspostgres.NewRepository(db), func() { _ = closeDB() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q", store)
	}
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

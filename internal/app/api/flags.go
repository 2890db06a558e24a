package api

import (
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// ApplyFlags overrides cfg with any command line flags present in args.
func ApplyFlags(cfg Config, args []string) (Config, error) {
	flagSet := flag.NewFlagSet("dogshelter-api", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	port := flagSet.String("port", cfg.Port, "HTTP listen port")
	store := flagSet.String("store", cfg.Store, "dog store backend: memory, postgres or sqlite")
	seedFile := flagSet.String("seed-file", cfg.SeedFile, "JSON fixture loaded into the store at startup")
	sqlitePath := flagSet.String("sqlite-path", cfg.SQLitePath, "database file for the sqlite store")

	if err := flagSet.Parse(args); err != nil {
		return Config{}, err
	}

	if flagSet.Changed("port") {
		cfg.Port = *port
	}
	if flagSet.Changed("store") {
		cfg.Store = strings.ToLower(strings.TrimSpace(*store))
	}
	if flagSet.Changed("seed-file") {
		cfg.SeedFile = *seedFile
	}
	if flagSet.Changed("sqlite-path") {
		cfg.SQLitePath = *sqlitePath
	}
	return cfg, cfg.Validate()
}

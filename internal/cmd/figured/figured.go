// Package figured parses figure service flags and composes its entrypoint.
package figured

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/louisbranch/habbohub/internal/figure/figuredata"
	entrypoint "github.com/louisbranch/habbohub/internal/platform/cmd"
	server "github.com/louisbranch/habbohub/internal/services/figure/app"
)

// Config holds figured command configuration. Environment variables carry
// the HABBOHUB_ prefix, e.g. HABBOHUB_FIGURED_HTTP_ADDR.
type Config struct {
	HTTPAddr string `env:"FIGURED_HTTP_ADDR" envDefault:":8095"`
	Hotel    string `env:"HOTEL"             envDefault:"com"`
	// Catalog lists figuredata sources tried in order. Empty fetches the
	// hotel figuredata.
	Catalog []string `env:"FIGURED_CATALOG"  envSeparator:","`
	// Families restricts the catalog. Empty keeps the wearable families;
	// "all" keeps every family of the document.
	Families       []string `env:"FIGURED_FAMILIES"        envSeparator:","`
	DBDriver       string   `env:"FIGURED_DB_DRIVER"       envDefault:"sqlite"`
	DBPath         string   `env:"FIGURED_DB_PATH"         envDefault:"data/figures.db"`
	PostgresDSN    string   `env:"FIGURED_POSTGRES_DSN"`
	PostgresSchema string   `env:"FIGURED_POSTGRES_SCHEMA"`
	ImagingBaseURL string   `env:"IMAGING_BASE_URL"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "figure HTTP listen address")
	fs.StringVar(&cfg.Hotel, "hotel", cfg.Hotel, "hotel domain, e.g. com or com.br")
	fs.Func("catalog", "comma separated figuredata paths or URLs", func(value string) error {
		cfg.Catalog = splitList(value)
		return nil
	})
	fs.Func("families", `comma separated families to keep, or "all"`, func(value string) error {
		cfg.Families = splitList(value)
		return nil
	})
	fs.StringVar(&cfg.DBDriver, "db-driver", cfg.DBDriver, "figure store driver: sqlite, postgres or none")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "sqlite figure store path")
	fs.StringVar(&cfg.PostgresDSN, "postgres-dsn", cfg.PostgresDSN, "postgres connection string")
	fs.StringVar(&cfg.PostgresSchema, "postgres-schema", cfg.PostgresSchema, "postgres schema for the figure tables")
	fs.StringVar(&cfg.ImagingBaseURL, "imaging-base-url", cfg.ImagingBaseURL, "avatar imaging endpoint")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the figure service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceFigured, func(context.Context) error {
		if err := ensureDBDir(cfg); err != nil {
			return err
		}
		if err := server.Run(ctx, serverConfig(cfg)); err != nil {
			return fmt.Errorf("serve figured: %w", err)
		}
		return nil
	})
}

func serverConfig(cfg Config) server.Config {
	return server.Config{
		HTTPAddr:       cfg.HTTPAddr,
		CatalogSources: cfg.Catalog,
		Families:       families(cfg.Families),
		Hotel:          cfg.Hotel,
		DBDriver:       cfg.DBDriver,
		DBPath:         cfg.DBPath,
		PostgresDSN:    cfg.PostgresDSN,
		PostgresSchema: cfg.PostgresSchema,
		ImagingBaseURL: cfg.ImagingBaseURL,
	}
}

func families(values []string) []string {
	if len(values) == 0 {
		return figuredata.WearableFamilies
	}
	if len(values) == 1 && strings.EqualFold(values[0], "all") {
		return nil
	}
	return values
}

func ensureDBDir(cfg Config) error {
	driver := strings.ToLower(strings.TrimSpace(cfg.DBDriver))
	if (driver != "" && driver != server.DriverSQLite) || strings.TrimSpace(cfg.DBPath) == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}
	return nil
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

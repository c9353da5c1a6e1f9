// Package gateway parses gateway command flags and composes the HTTP
// entrypoint.
package gateway

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"

	entrypoint "github.com/louisbranch/agenthub/internal/platform/cmd"
	server "github.com/louisbranch/agenthub/internal/services/gateway/app"
)

// Config holds gateway command configuration.
type Config struct {
	Port        int      `env:"AGENTHUB_GATEWAY_PORT"         envDefault:"8000"`
	Store       string   `env:"AGENTHUB_GATEWAY_STORE"        envDefault:"postgrest"`
	SupabaseURL string   `env:"SUPABASE_URL"`
	ServiceRole string   `env:"SUPABASE_SERVICE_ROLE"`
	AnonKey     string   `env:"SUPABASE_ANON_KEY"`
	DatabaseURL string   `env:"AGENTHUB_GATEWAY_DATABASE_URL"`
	SQLitePath  string   `env:"AGENTHUB_GATEWAY_SQLITE_PATH"  envDefault:"data/agenthub-gateway.db"`
	CORSOrigins []string `env:"AGENTHUB_GATEWAY_CORS_ORIGINS" envSeparator:","`
	MCPEnabled  bool     `env:"AGENTHUB_GATEWAY_MCP_ENABLED"  envDefault:"true"`
}

// ParseConfig parses environment and flags into a Config. Credentials are
// environment-only.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.IntVar(&cfg.Port, "port", cfg.Port, "gateway HTTP port")
	fs.StringVar(&cfg.Store, "store", cfg.Store, "store backend (postgrest, postgres, sqlite)")
	fs.StringVar(&cfg.SQLitePath, "sqlite-path", cfg.SQLitePath, "sqlite store file")
	fs.BoolVar(&cfg.MCPEnabled, "mcp", cfg.MCPEnabled, "serve MCP tools at /mcp")
	fs.Func("cors-origins", "comma-separated allowed CORS origins", func(value string) error {
		cfg.CORSOrigins = strings.Split(value, ",")
		return nil
	})
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid port %d", cfg.Port)
	}
	return cfg, nil
}

// Run builds the gateway app and serves until ctx ends.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceGateway, func(context.Context) error {
		if err := server.Run(ctx, serverConfig(cfg)); err != nil {
			return fmt.Errorf("serve gateway: %w", err)
		}
		return nil
	})
}

func serverConfig(cfg Config) server.Config {
	return server.Config{
		HTTPAddr: ":" + strconv.Itoa(cfg.Port),
		Store: server.StoreConfig{
			Backend:        cfg.Store,
			SupabaseURL:    cfg.SupabaseURL,
			ServiceRoleKey: cfg.ServiceRole,
			AnonKey:        cfg.AnonKey,
			DatabaseURL:    cfg.DatabaseURL,
			SQLitePath:     cfg.SQLitePath,
		},
		CORSOrigins: cfg.CORSOrigins,
		MCPEnabled:  cfg.MCPEnabled,
	}
}

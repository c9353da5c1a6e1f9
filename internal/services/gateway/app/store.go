package server

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/louisbranch/agenthub/internal/platform/config"
	"github.com/louisbranch/agenthub/internal/services/gateway/storage"
	"github.com/louisbranch/agenthub/internal/services/gateway/storage/postgres"
	"github.com/louisbranch/agenthub/internal/services/gateway/storage/postgrest"
	"github.com/louisbranch/agenthub/internal/services/gateway/storage/sqlite"
)

// Store backends.
const (
	BackendPostgREST = "postgrest"
	BackendPostgres  = "postgres"
	BackendSQLite    = "sqlite"
)

// StoreConfig selects and configures the store backend.
type StoreConfig struct {
	Backend        string
	SupabaseURL    string
	ServiceRoleKey string
	AnonKey        string
	DatabaseURL    string
	SQLitePath     string
}

// newStoreOpener returns the opener for cfg.Backend. Credentials are checked
// by the opener on first use, not here.
func newStoreOpener(cfg StoreConfig) (storage.Opener, error) {
	backend := strings.ToLower(strings.TrimSpace(cfg.Backend))
	switch backend {
	case "", BackendPostgREST:
		return func(context.Context) (storage.Inserter, error) {
			key := config.FirstNonEmpty(cfg.ServiceRoleKey, cfg.AnonKey)
			client, err := postgrest.New(postgrest.Config{URL: cfg.SupabaseURL, Key: key})
			if err != nil {
				return nil, err
			}
			log.Printf("store backend %s host=%s key_role=%s", BackendPostgREST, client.Host(), postgrest.KeyRole(key))
			return client, nil
		}, nil
	case BackendPostgres:
		return func(ctx context.Context) (storage.Inserter, error) {
			store, err := postgres.Open(ctx, cfg.DatabaseURL)
			if err != nil {
				return nil, err
			}
			log.Printf("store backend %s connected", BackendPostgres)
			return store, nil
		}, nil
	case BackendSQLite:
		return func(ctx context.Context) (storage.Inserter, error) {
			store, err := sqlite.Open(ctx, cfg.SQLitePath)
			if err != nil {
				return nil, err
			}
			log.Printf("store backend %s path=%s", BackendSQLite, cfg.SQLitePath)
			return store, nil
		}, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// Package sqlite keeps gateway rows in a local SQLite file.
//
// It mirrors the remote tables closely enough for development and tests
// without a hosted store; ids and created_at are filled in the way the remote
// database defaults them.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	sqlitemigrate "github.com/louisbranch/agenthub/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/agenthub/internal/services/gateway/storage"
	"github.com/louisbranch/agenthub/internal/services/gateway/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// tableColumns lists the writable columns of each known table.
var tableColumns = map[string]map[string]bool{
	"messages":  {"id": true, "client_id": true, "direction": true, "channel": true, "body": true, "created_at": true},
	"documents": {"id": true, "client_id": true, "title": true, "status": true, "content": true, "created_at": true},
	"events":    {"id": true, "client_id": true, "type": true, "meta": true, "created_at": true},
}

// Store implements storage.Inserter over SQLite.
type Store struct {
	sqlDB *sql.DB
	clock func() time.Time
	newID func() string
}

var _ storage.Inserter = (*Store)(nil)

// Open opens the SQLite file at path, creating its directory, and applies
// bundled migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}

	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(ctx, sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{
		sqlDB: sqlDB,
		clock: time.Now,
		newID: uuid.NewString,
	}, nil
}

// DB returns the raw database handle.
func (s *Store) DB() *sql.DB {
	if s == nil {
		return nil
	}
	return s.sqlDB
}

// Close releases the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Insert writes row into table and returns it with generated id and
// created_at. Nested values such as event meta are stored as JSON text.
func (s *Store) Insert(ctx context.Context, table string, row storage.Row) ([]storage.Row, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("sqlite store is not open")
	}
	columns, ok := tableColumns[table]
	if !ok {
		return nil, fmt.Errorf("insert into %s: %w", table, storage.ErrUnknownTable)
	}

	stored := make(storage.Row, len(row)+2)
	for name, value := range row {
		stored[name] = value
	}
	if _, ok := stored["id"]; !ok {
		stored["id"] = s.newID()
	}
	if _, ok := stored["created_at"]; !ok {
		stored["created_at"] = s.clock().UTC().Format(time.RFC3339Nano)
	}

	names := make([]string, 0, len(stored))
	for name := range stored {
		if !columns[name] {
			return nil, fmt.Errorf("insert into %s: unknown column %q", table, name)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	args := make([]any, len(names))
	for i, name := range names {
		value, err := columnValue(stored[name])
		if err != nil {
			return nil, fmt.Errorf("encode %s.%s: %w", table, name, err)
		}
		args[i] = value
	}

	query := "INSERT INTO " + quoteIdent(table) +
		" (" + joinIdents(names) + ") VALUES (" + placeholders(len(names)) + ")"
	if _, err := s.sqlDB.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("insert into %s: %w", table, err)
	}
	return []storage.Row{stored}, nil
}

// columnValue passes scalars through and encodes composite values as JSON.
func columnValue(value any) (any, error) {
	switch v := value.(type) {
	case nil, string, bool, int, int32, int64, float64:
		return v, nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		return string(data), nil
	}
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func joinIdents(names []string) string {
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = quoteIdent(name)
	}
	return strings.Join(quoted, ", ")
}

func placeholders(n int) string {
	if n == 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// Package postgres writes gateway rows straight into the hosted Postgres
// database over a pooled connection, bypassing the REST layer.
//
// The remote database owns the schema; this package never creates tables.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	apperrors "github.com/louisbranch/agenthub/internal/platform/errors"
	"github.com/louisbranch/agenthub/internal/services/gateway/storage"
)

// Store implements storage.Inserter backed by a pgx pool.
type Store struct {
	pool *pgxpool.Pool
}

var _ storage.Inserter = (*Store)(nil)

// Open parses dsn, connects, and verifies the database answers.
func Open(ctx context.Context, dsn string) (*Store, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, apperrors.New(apperrors.CodeConfigurationMissing, "store env not configured: AGENTHUB_GATEWAY_DATABASE_URL is required")
	}
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, apperrors.New(apperrors.CodeConfigurationMissing, fmt.Sprintf("store env not configured: invalid database url: %v", err))
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Close releases pooled connections.
func (s *Store) Close() error {
	if s == nil || s.pool == nil {
		return nil
	}
	s.pool.Close()
	return nil
}

// Insert writes row into table and returns the stored row, including
// database defaults, as decoded JSON.
func (s *Store) Insert(ctx context.Context, table string, row storage.Row) ([]storage.Row, error) {
	if s == nil || s.pool == nil {
		return nil, fmt.Errorf("postgres store is not open")
	}
	query, args, err := buildInsert(table, row)
	if err != nil {
		return nil, err
	}

	var raw []byte
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&raw); err != nil {
		return nil, fmt.Errorf("insert into %s: %w", table, err)
	}
	var stored storage.Row
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, fmt.Errorf("decode %s insert result: %w", table, err)
	}
	return []storage.Row{stored}, nil
}

// buildInsert renders a single-row INSERT with sorted columns so statements
// are stable across calls. Composite values bind as JSON.
func buildInsert(table string, row storage.Row) (string, []any, error) {
	table = strings.TrimSpace(table)
	if table == "" {
		return "", nil, fmt.Errorf("insert: table is required")
	}

	names := make([]string, 0, len(row))
	for name := range row {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(pgx.Identifier{table}.Sanitize())
	b.WriteString(" AS t")
	if len(names) == 0 {
		b.WriteString(" DEFAULT VALUES")
	} else {
		columns := make([]string, len(names))
		params := make([]string, len(names))
		for i, name := range names {
			columns[i] = pgx.Identifier{name}.Sanitize()
			params[i] = "$" + strconv.Itoa(i+1)
		}
		b.WriteString(" (" + strings.Join(columns, ", ") + ")")
		b.WriteString(" VALUES (" + strings.Join(params, ", ") + ")")
	}
	b.WriteString(" RETURNING to_jsonb(t.*)")

	args := make([]any, len(names))
	for i, name := range names {
		args[i] = row[name]
	}
	return b.String(), args, nil
}

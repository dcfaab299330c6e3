package localstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	qb "github.com/riskibarqy/matchday-favorites/internal/platform/querybuilder"
	_ "modernc.org/sqlite"
)

const kvTable = "kv_entries"

const kvSchema = `CREATE TABLE IF NOT EXISTS kv_entries (
	key TEXT PRIMARY KEY,
	value BLOB NOT NULL,
	updated_at TEXT NOT NULL
)`

// SQLiteStore persists device entries in a single-file SQLite database.
type SQLiteStore struct {
	db *sqlx.DB
}

// OpenSQLite opens (and creates when missing) the database at path.
// ":memory:" gives a private in-memory database.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// One writer keeps ":memory:" on a single connection and avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", path, err)
	}

	for _, stmt := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		kvSchema,
	} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("prepare sqlite %s: %w", path, err)
		}
	}

	return &SQLiteStore{db: db}, nil
}

type kvRow struct {
	Value []byte `db:"value"`
}

func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query, args, err := qb.Select("value").
		From(kvTable).
		Where(qb.Eq("key", key)).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, false, fmt.Errorf("build select kv query: %w", err)
	}

	var row kvRow
	if err := s.db.GetContext(ctx, &row, qb.Rebind(query), args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("select kv key=%s: %w", key, err)
	}
	return row.Value, true, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key string, value []byte) error {
	query, args, err := qb.InsertInto(kvTable).
		Columns("key", "value", "updated_at").
		Values(key, value, time.Now().UTC().Format(time.RFC3339Nano)).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert kv query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, qb.Rebind(query), args...); err != nil {
		return fmt.Errorf("upsert kv key=%s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	query, args, err := qb.DeleteFrom(kvTable).
		Where(qb.Eq("key", key)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete kv query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, qb.Rebind(query), args...); err != nil {
		return fmt.Errorf("delete kv key=%s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gastos/internal/contextutil"
	"gastos/logging"

	_ "modernc.org/sqlite"
)

// InitSQLite opens (and creates if needed) the local database file and
// ensures the kv table. This is the single-binary local deployment.
func InitSQLite(path string) (*sql.DB, error) {
	if path == "" {
		path = "./data/gastos.db"
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create sqlite directory '%s': %v", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite handle: %v", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("sqlite database unreachable: %v", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS ledger_kv (
        k TEXT PRIMARY KEY,
        v TEXT NOT NULL
    );`); err != nil {
		return nil, fmt.Errorf("failed to ensure ledger_kv table: %v", err)
	}

	logging.Logger.Infof("Connected to sqlite database at %s", path)
	return db, nil
}

type SQLiteKV struct {
	db *sql.DB
}

func NewSQLiteKV(db *sql.DB) *SQLiteKV {
	return &SQLiteKV{db: db}
}

func (lite *SQLiteKV) Type() string {
	return "sqlite"
}

func (lite *SQLiteKV) Get(ctx context.Context, key string) (string, bool, error) {
	traceID := contextutil.TraceIDFromContext(ctx)

	var value string
	err := lite.db.QueryRowContext(ctx, "SELECT v FROM ledger_kv WHERE k = ?", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		logging.Logger.Errorf("[TraceID=%s] | failed to read key '%s' in Storage.Get() function | Error: %v", traceID, key, err)
		return "", false, fmt.Errorf("failed to read '%s' from storage: %w", key, err)
	}
	return value, true, nil
}

func (lite *SQLiteKV) Set(ctx context.Context, key string, value string) error {
	traceID := contextutil.TraceIDFromContext(ctx)

	query := "INSERT INTO ledger_kv (k, v) VALUES (?, ?) ON CONFLICT(k) DO UPDATE SET v = excluded.v;"
	if _, err := lite.db.ExecContext(ctx, query, key, value); err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to write key '%s' in Storage.Set() function | Error: %v", traceID, key, err)
		return fmt.Errorf("failed to write '%s' to storage: %w", key, err)
	}
	return nil
}

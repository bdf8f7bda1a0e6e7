package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// DefaultDSN keeps the journal in memory for the life of the process.
const DefaultDSN = "file:astraplay-journal?mode=memory&cache=shared"

// ResolveDSN expands a bare file path (including a leading ~) to an absolute
// path. DSNs with a "file:" prefix and the empty string pass through, the
// latter resolving to DefaultDSN.
func ResolveDSN(dsn string) (string, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return DefaultDSN, nil
	}
	if strings.HasPrefix(dsn, "file:") || dsn == ":memory:" {
		return dsn, nil
	}
	if strings.HasPrefix(dsn, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("get home dir: %w", err)
		}
		dsn = filepath.Join(homeDir, dsn[2:])
	}
	abs, err := filepath.Abs(dsn)
	if err != nil {
		return "", fmt.Errorf("resolve journal path: %w", err)
	}
	return abs, nil
}

// Open opens the SQLite journal at dsn and applies the schema.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	dsn, err := ResolveDSN(dsn)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single connection keeps an in-memory database alive and serializes writers.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Package respcache persists successful remote API responses in SQLite so
// repeated runs over the same titles avoid the rate-limited network.
package respcache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const (
	schemaVersion = 1

	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL);
CREATE TABLE IF NOT EXISTS responses (
	key        TEXT PRIMARY KEY,
	body       BLOB NOT NULL,
	stored_at  INTEGER NOT NULL
);
`

// ErrSchemaMismatch indicates the cache file was written by an incompatible version.
var ErrSchemaMismatch = errors.New("response cache schema version mismatch")

// Store is a TTL-bounded response cache.
type Store struct {
	db   *sql.DB
	path string
	ttl  time.Duration
	now  func() time.Time
}

// Open creates or connects to the cache database at path. Entries older than
// ttl are treated as misses; a non-positive ttl never expires entries.
func Open(path string, ttl time.Duration) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("response cache path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path, ttl: ttl, now: time.Now}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Get returns the cached body for key when present and not expired.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var (
		body     []byte
		storedAt int64
	)
	err := retryOnBusy(ctx, func() error {
		return s.db.QueryRowContext(ctx,
			"SELECT body, stored_at FROM responses WHERE key = ?", key,
		).Scan(&body, &storedAt)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read cached response: %w", err)
	}
	if s.expired(storedAt) {
		return nil, false, nil
	}
	return body, true, nil
}

// Put stores body under key, replacing any previous entry.
func (s *Store) Put(ctx context.Context, key string, body []byte) error {
	err := retryOnBusy(ctx, func() error {
		_, execErr := s.db.ExecContext(ctx,
			`INSERT INTO responses (key, body, stored_at) VALUES (?, ?, ?)
			 ON CONFLICT(key) DO UPDATE SET body = excluded.body, stored_at = excluded.stored_at`,
			key, body, s.now().Unix(),
		)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("store cached response: %w", err)
	}
	return nil
}

// Prune deletes expired entries and returns how many were removed.
func (s *Store) Prune(ctx context.Context) (int64, error) {
	if s.ttl <= 0 {
		return 0, nil
	}
	cutoff := s.now().Add(-s.ttl).Unix()
	var removed int64
	err := retryOnBusy(ctx, func() error {
		res, execErr := s.db.ExecContext(ctx, "DELETE FROM responses WHERE stored_at < ?", cutoff)
		if execErr != nil {
			return execErr
		}
		removed, execErr = res.RowsAffected()
		return execErr
	})
	if err != nil {
		return 0, fmt.Errorf("prune response cache: %w", err)
	}
	return removed, nil
}

func (s *Store) expired(storedAt int64) bool {
	if s.ttl <= 0 {
		return false
	}
	return s.now().Sub(time.Unix(storedAt, 0)) > s.ttl
}

func (s *Store) initSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	var version int
	err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		if _, err := s.db.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
			return fmt.Errorf("record schema version: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: %s has version %d, expected %d (delete the file to rebuild it)",
			ErrSchemaMismatch, s.path, version, schemaVersion)
	}
	return nil
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/sw33tLie/medimind/internal/utils"
	_ "modernc.org/sqlite"
)

// DB is the durable key/value store backing the client's local state.
// Reads and writes are synchronous; writes are serialized across processes
// with a lock file next to the database.
type DB struct {
	sql  *sql.DB
	path string

	// mu serializes writers of this process; the file lock only excludes
	// other processes since its handle is shared by every goroutine.
	mu   sync.Mutex
	lock *utils.DBLock
}

// Open opens (and creates if needed) the store at path. An empty path uses the
// default location under ~/.config/medimind.
func Open(path string) (*DB, error) {
	absPath, err := utils.GetAbsDBPath(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return nil, err
	}

	dsn := "file:" + absPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	// Ensure schema exists for convenience.
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS local_storage (
  key        TEXT PRIMARY KEY,
  value      TEXT NOT NULL,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
    `); err != nil {
		db.Close()
		return nil, err
	}

	lock, err := utils.NewDBLock(absPath)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &DB{sql: db, lock: lock, path: absPath}, nil
}

func (d *DB) Close() error {
	if d == nil || d.sql == nil {
		return nil
	}
	return d.sql.Close()
}

// Path is the absolute location of the database file.
func (d *DB) Path() string { return d.path }

// Get returns the value stored under key. ok is false when the key is absent.
func (d *DB) Get(ctx context.Context, key string) (value string, ok bool, err error) {
	err = d.sql.QueryRowContext(ctx, "SELECT value FROM local_storage WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set stores value under key, overwriting any previous value.
func (d *DB) Set(ctx context.Context, key, value string) error {
	return d.withLock(func() error {
		_, err := d.sql.ExecContext(ctx, `INSERT INTO local_storage(key, value, updated_at) VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`, key, value)
		return err
	})
}

// Delete removes key entirely. Deleting a missing key is not an error.
func (d *DB) Delete(ctx context.Context, key string) error {
	return d.withLock(func() error {
		_, err := d.sql.ExecContext(ctx, "DELETE FROM local_storage WHERE key = ?", key)
		return err
	})
}

// Keys lists the stored keys, sorted.
func (d *DB) Keys(ctx context.Context) ([]string, error) {
	rows, err := d.sql.QueryContext(ctx, "SELECT key FROM local_storage ORDER BY key")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

func (d *DB) withLock(fn func() error) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.lock.Lock(); err != nil {
		return err
	}
	defer func() {
		if err := d.lock.Unlock(); err != nil {
			utils.Log.Warnf("%v", err)
		}
	}()
	return fn()
}

package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/louisbranch/holectl/internal/platform/storage/sqlitemigrate"
	adliststorage "github.com/louisbranch/holectl/internal/services/adlist/storage"
	"github.com/louisbranch/holectl/internal/services/adlist/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store provides SQLite-backed persistence for ad-list subscriptions.
type Store struct {
	sqlDB *sql.DB
}

// Open opens and migrates an ad-list SQLite store at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	return open(dsn, 0)
}

// OpenMemory opens a transient in-memory store. Nothing touches the disk;
// the contents vanish when the store is closed.
func OpenMemory() (*Store, error) {
	// A single connection keeps every statement on the same in-memory
	// database; database/sql would otherwise open fresh empty ones.
	return open(":memory:", 1)
}

func open(dsn string, maxConns int) (*Store, error) {
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, &adliststorage.WriteError{Op: "open sqlite db", Err: err}
	}
	if maxConns > 0 {
		sqlDB.SetMaxOpenConns(maxConns)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, &adliststorage.WriteError{Op: "ping sqlite db", Err: err}
	}

	store := &Store{sqlDB: sqlDB}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, &adliststorage.WriteError{Op: "run migrations", Err: err}
	}
	return store, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// InsertAddress inserts one address if absent and reports whether a new row
// was created. A duplicate address is absorbed by the UNIQUE constraint via
// INSERT OR IGNORE and is not an error.
func (s *Store) InsertAddress(ctx context.Context, address string) (bool, error) {
	if s == nil || s.sqlDB == nil {
		return false, fmt.Errorf("storage is not configured")
	}
	if address == "" {
		return false, fmt.Errorf("address is required")
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT OR IGNORE INTO adlist (address, enabled, date_added, comment)
		 VALUES (?, 1, ?, '')`,
		address,
		time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return false, &adliststorage.WriteError{Op: "insert adlist address", Err: err}
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, &adliststorage.WriteError{Op: "count inserted rows", Err: err}
	}
	return affected > 0, nil
}

// InsertAddresses inserts each address if absent and returns the number of
// rows actually created. Duplicates do not count and do not abort the batch;
// any other write failure aborts immediately.
func (s *Store) InsertAddresses(ctx context.Context, addresses []string) (int, error) {
	inserted := 0
	for _, address := range addresses {
		log.Printf("processing ad-list source %s", address)
		created, err := s.InsertAddress(ctx, address)
		if err != nil {
			return inserted, err
		}
		if created {
			inserted++
		}
	}
	return inserted, nil
}

// ListEntries returns all ad-list entries ordered by insertion.
func (s *Store) ListEntries(ctx context.Context) ([]adliststorage.Entry, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, address, enabled, date_added, comment
		 FROM adlist
		 ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list adlist entries: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	entries := make([]adliststorage.Entry, 0)
	for rows.Next() {
		var entry adliststorage.Entry
		var enabledInt int64
		var dateAdded int64
		if err := rows.Scan(&entry.ID, &entry.Address, &enabledInt, &dateAdded, &entry.Comment); err != nil {
			return nil, fmt.Errorf("scan adlist entry: %w", err)
		}
		entry.Enabled = enabledInt != 0
		if dateAdded > 0 {
			entry.DateAdded = time.UnixMilli(dateAdded).UTC()
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate adlist entries: %w", err)
	}
	return entries, nil
}

var _ adliststorage.Store = (*Store)(nil)

package shared

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"
)

// NewDatabase opens a connection to a SQLite database at the specified path.
// The path can be ":memory:" for an in-memory database.
// Returns an open database connection or an error if connection fails.
func NewDatabase(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// OpenExistingDatabase opens a song store that must already exist on disk.
//
// SQLite silently creates missing files, which would turn a typo into an empty store.
func OpenExistingDatabase(path string) (*sql.DB, error) {
	if err := CheckStore(path); err != nil {
		return nil, err
	}
	return NewDatabase(path)
}

// CheckStore verifies that path names an existing regular file.
func CheckStore(path string) error {
	if path == "" {
		return ErrMissingStore
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrStoreNotFound, path)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrStoreNotFound, path)
	}
	return nil
}

// ConfigureDatabase sets connection pool settings for the database.
// Zero values keep the driver defaults.
func ConfigureDatabase(db *sql.DB, maxOpenConns, maxIdleConns int) {
	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
	}
	if maxIdleConns > 0 {
		db.SetMaxIdleConns(maxIdleConns)
	}
}

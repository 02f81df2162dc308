package sqlite

import (
	"context"

	webscrape "github.com/codermillat/WebScrape-sub000"
)

// Compile-time interface verification.
var _ webscrape.LineStore = (*LineStore)(nil)

// LineStore implements webscrape.LineStore using SQLite.
type LineStore struct {
	db *DB
}

// NewLineStore creates a new LineStore.
func NewLineStore(db *DB) *LineStore {
	return &LineStore{db: db}
}

// SaveKeys replaces the persisted key set.
func (s *LineStore) SaveKeys(ctx context.Context, keys []string) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM memory_keys"); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT OR IGNORE INTO memory_keys (key) VALUES (?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, key := range keys {
		if _, err := stmt.ExecContext(ctx, key); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadKeys returns the persisted key set.
func (s *LineStore) LoadKeys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT key FROM memory_keys")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}

	return keys, rows.Err()
}

package metadata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/tranduymanh111/Cuoi-Kiiiii/internal/dbx"
)

const upsertEntry = `
	INSERT INTO metadata (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

// SQLiteRepository implements Repository over the `metadata` table. Pass a
// *sql.Tx to make a multi-entry Put atomic.
type SQLiteRepository struct {
	db dbx.DBTX
}

var _ Repository = (*SQLiteRepository)(nil)

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("get metadata[%s]: %w", key, err)
	}
	return value, nil
}

// Put upserts entries in order, stopping at the first failure.
func (r *SQLiteRepository) Put(ctx context.Context, entries ...Entry) error {
	for _, e := range entries {
		if _, err := r.db.ExecContext(ctx, upsertEntry, e.Key, e.Value); err != nil {
			return fmt.Errorf("put metadata[%s]: %w", e.Key, err)
		}
	}
	return nil
}

// Delete removes all keys in a single statement.
func (r *SQLiteRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	args := make([]any, len(keys))
	for i, k := range keys {
		args[i] = k
	}
	query := `DELETE FROM metadata WHERE key IN (?` + strings.Repeat(`, ?`, len(keys)-1) + `)`
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete metadata%v: %w", keys, err)
	}
	return nil
}

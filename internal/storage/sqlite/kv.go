package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sandevgo/remindme/internal/core"
)

// KV stores each collection as a single keyed JSON blob, mirroring the
// localStorage layout the original data was migrated from. Writes larger
// than maxValueBytes are rejected with core.ErrStorageFull.
type KV struct {
	db            *sql.DB
	maxValueBytes int64
}

func NewKV(db *sql.DB, maxValueBytes int64) *KV {
	return &KV{db: db, maxValueBytes: maxValueBytes}
}

// Get returns the stored blob, or nil when the key is absent.
func (kv *KV) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := kv.db.QueryRowContext(ctx, `SELECT value FROM collections WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read collection %s: %w", key, err)
	}
	return []byte(value), nil
}

func (kv *KV) Put(ctx context.Context, key string, value []byte) error {
	if kv.maxValueBytes > 0 && int64(len(value)) > kv.maxValueBytes {
		return core.ErrStorageFull
	}

	query := `INSERT INTO collections (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`
	if _, err := kv.db.ExecContext(ctx, query, key, string(value)); err != nil {
		return fmt.Errorf("failed to write collection %s: %w", key, err)
	}
	return nil
}

func (kv *KV) Delete(ctx context.Context, key string) error {
	if _, err := kv.db.ExecContext(ctx, `DELETE FROM collections WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete collection %s: %w", key, err)
	}
	return nil
}

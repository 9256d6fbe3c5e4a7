package db

import (
	"context"
	"database/sql"
)

// KVRow is one raw entry of the kv_store table. Timestamps are unix
// nanoseconds; ExpiresAt is null for entries without a TTL.
type KVRow struct {
	Key       string
	Value     []byte
	ExpiresAt sql.NullInt64
	CreatedAt int64
	UpdatedAt int64
}

// KVGet returns the row for key. Returns sql.ErrNoRows when absent.
func (db *DB) KVGet(ctx context.Context, key string) (KVRow, error) {
	var row KVRow
	err := db.conn.QueryRowContext(ctx,
		`SELECT key, value, expires_at, created_at, updated_at FROM kv_store WHERE key = ?`, key,
	).Scan(&row.Key, &row.Value, &row.ExpiresAt, &row.CreatedAt, &row.UpdatedAt)
	return row, err
}

// KVSet inserts or replaces a row, preserving created_at on update.
func (db *DB) KVSet(ctx context.Context, row KVRow) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO kv_store (key, value, expires_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET
			value = excluded.value,
			expires_at = excluded.expires_at,
			updated_at = excluded.updated_at`,
		row.Key, row.Value, row.ExpiresAt, row.CreatedAt, row.UpdatedAt)
	return err
}

// KVDelete removes a row. Deleting a missing key is not an error.
func (db *DB) KVDelete(ctx context.Context, key string) error {
	_, err := db.conn.ExecContext(ctx, `DELETE FROM kv_store WHERE key = ?`, key)
	return err
}

// KVHas reports whether a row exists for key, ignoring expiry.
func (db *DB) KVHas(ctx context.Context, key string) (bool, error) {
	var count int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM kv_store WHERE key = ?`, key).Scan(&count)
	return count > 0, err
}

// KVListKeys returns all non-expired keys with the given prefix, sorted.
func (db *DB) KVListKeys(ctx context.Context, prefix string, nowNanos int64) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT key FROM kv_store
		WHERE key LIKE ? || '%' AND (expires_at IS NULL OR expires_at >= ?)
		ORDER BY key`, prefix, nowNanos)
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

// KVSweepExpired deletes every row whose TTL has passed.
func (db *DB) KVSweepExpired(ctx context.Context, nowNanos int64) error {
	_, err := db.conn.ExecContext(ctx,
		`DELETE FROM kv_store WHERE expires_at IS NOT NULL AND expires_at < ?`, nowNanos)
	return err
}

package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
)

// ErrVersionConflict is returned by Put when the stored document's version
// does not match the version the caller read. The caller should reload and
// reapply its change.
var ErrVersionConflict = errors.New("storage: version conflict")

// KV is a versioned JSON document store over the kv table. Keys are flat
// strings; values are whole JSON documents replaced on every write.
type KV struct {
	db *sql.DB
}

func NewKV(db *sql.DB) *KV {
	return &KV{db: db}
}

// Get returns the raw value and its version. ok is false when the key is
// absent.
func (s *KV) Get(ctx context.Context, key string) (raw string, version int64, ok bool, err error) {
	row := s.db.QueryRowContext(ctx, `SELECT value, version FROM kv WHERE key = ?`, key)
	if err := row.Scan(&raw, &version); err != nil {
		if err == sql.ErrNoRows {
			return "", 0, false, nil
		}
		return "", 0, false, fmt.Errorf("kv get %q: %w", key, err)
	}
	return raw, version, true, nil
}

// Put writes value under key with a check-and-set on version: pass the
// version returned by Get, or 0 to create. A mismatch (including creating a
// key that already exists) returns ErrVersionConflict.
func (s *KV) Put(ctx context.Context, key, value string, expectVersion int64) error {
	if expectVersion == 0 {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO kv (key, value, version) VALUES (?, ?, 1)`, key, value)
		if err != nil {
			if _, _, exists, getErr := s.Get(ctx, key); getErr == nil && exists {
				return ErrVersionConflict
			}
			return fmt.Errorf("kv insert %q: %w", key, err)
		}
		return nil
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE kv
		SET value = ?, version = version + 1, updated_at = CURRENT_TIMESTAMP
		WHERE key = ? AND version = ?
	`, value, key, expectVersion)
	if err != nil {
		return fmt.Errorf("kv update %q: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("kv update %q: %w", key, err)
	}
	if n == 0 {
		return ErrVersionConflict
	}
	return nil
}

// Force writes value under key regardless of the stored version. Used by
// writers that have no prior read (seeding, migration).
func (s *KV) Force(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, version) VALUES (?, ?, 1)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			version = kv.version + 1,
			updated_at = CURRENT_TIMESTAMP
	`, key, value)
	if err != nil {
		return fmt.Errorf("kv force %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is a no-op.
func (s *KV) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("kv delete %q: %w", key, err)
	}
	return nil
}

// ListKeys returns all keys with the given prefix in ascending order.
func (s *KV) ListKeys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key FROM kv WHERE key LIKE ? || '%' ORDER BY key ASC`, prefix)
	if err != nil {
		return nil, fmt.Errorf("kv list %q: %w", prefix, err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("kv list scan: %w", err)
		}
		out = append(out, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("kv list rows: %w", err)
	}
	return out, nil
}

// GetJSON decodes the document at key into dst. A missing value and a value
// that fails to parse are treated identically: ok=false, version 0, and a
// diagnostic log for the malformed case. Neither is an error.
func (s *KV) GetJSON(ctx context.Context, key string, dst any) (version int64, ok bool, err error) {
	raw, version, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return 0, false, err
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		log.Printf("storage: discarding malformed document at %q: %v", key, err)
		return 0, false, nil
	}
	return version, true, nil
}

// PutJSON encodes src and writes it under key with a check-and-set.
func (s *KV) PutJSON(ctx context.Context, key string, src any, expectVersion int64) error {
	data, err := json.Marshal(src)
	if err != nil {
		return fmt.Errorf("kv marshal %q: %w", key, err)
	}
	return s.Put(ctx, key, string(data), expectVersion)
}

// ForceJSON encodes src and writes it under key unconditionally.
func (s *KV) ForceJSON(ctx context.Context, key string, src any) error {
	data, err := json.Marshal(src)
	if err != nil {
		return fmt.Errorf("kv marshal %q: %w", key, err)
	}
	return s.Force(ctx, key, string(data))
}

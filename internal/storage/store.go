package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// KeyPrefix is shared by every key StudyStream owns. Bulk clear removes
// exactly the keys under this prefix and nothing else.
const KeyPrefix = "studystream_"

// ErrWrite wraps store write failures (disk full, locked database) so
// callers can distinguish them from read errors. The policy for a failed
// write is: surface it for that one action, keep the in-memory state.
var ErrWrite = errors.New("store write failed")

// Store defines the key/value operations StudyStream persists through.
// Values are UTF-8 JSON text; the store itself is schema-agnostic.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
	DeletePrefix(ctx context.Context, prefix string) (int64, error)
	Close() error
}

// SQLiteStore implements Store backed by a single SQLite table.
type SQLiteStore struct {
	db *sql.DB

	// Prepared statements
	getValue  *sql.Stmt
	setValue  *sql.Stmt
	delValue  *sql.Stmt
	listKeys  *sql.Stmt
	delPrefix *sql.Stmt
}

// NewSQLiteStore creates a new SQLiteStore from an already-opened and
// migrated database.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db}

	if err := s.prepareStatements(); err != nil {
		return nil, fmt.Errorf("prepare statements: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) prepareStatements() error {
	var err error

	s.getValue, err = s.db.Prepare(`SELECT value FROM kv WHERE key = ?`)
	if err != nil {
		return err
	}

	s.setValue, err = s.db.Prepare(`
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`)
	if err != nil {
		return err
	}

	s.delValue, err = s.db.Prepare(`DELETE FROM kv WHERE key = ?`)
	if err != nil {
		return err
	}

	s.listKeys, err = s.db.Prepare(`SELECT key FROM kv WHERE key LIKE ? ESCAPE '\' ORDER BY key`)
	if err != nil {
		return err
	}

	s.delPrefix, err = s.db.Prepare(`DELETE FROM kv WHERE key LIKE ? ESCAPE '\'`)
	if err != nil {
		return err
	}

	return nil
}

// likePrefix converts a literal key prefix into a LIKE pattern, escaping
// the LIKE metacharacters so a prefix containing '_' (all of ours do)
// matches literally.
func likePrefix(prefix string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(prefix) + "%"
}

// Get returns the stored value for key. The second return is false when
// the key is absent.
func (s *SQLiteStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.getValue.QueryRowContext(ctx, key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

// Set writes value under key, replacing any previous value. Failures are
// wrapped in ErrWrite.
func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	if _, err := s.setValue.ExecContext(ctx, key, value); err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrWrite, key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.delValue.ExecContext(ctx, key); err != nil {
		return fmt.Errorf("%w: delete %s: %v", ErrWrite, key, err)
	}
	return nil
}

// Keys returns all keys sharing prefix, sorted.
func (s *SQLiteStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := s.listKeys.QueryContext(ctx, likePrefix(prefix))
	if err != nil {
		return nil, fmt.Errorf("list keys %s: %w", prefix, err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		keys = append(keys, k)
	}

	return keys, rows.Err()
}

// DeletePrefix removes every key under prefix and reports how many were
// deleted.
func (s *SQLiteStore) DeletePrefix(ctx context.Context, prefix string) (int64, error) {
	res, err := s.delPrefix.ExecContext(ctx, likePrefix(prefix))
	if err != nil {
		return 0, fmt.Errorf("%w: delete prefix %s: %v", ErrWrite, prefix, err)
	}
	return res.RowsAffected()
}

// Close releases all prepared statements. The underlying *sql.DB is NOT
// closed; that is the caller's responsibility.
func (s *SQLiteStore) Close() error {
	stmts := []*sql.Stmt{
		s.getValue, s.setValue, s.delValue, s.listKeys, s.delPrefix,
	}
	for _, stmt := range stmts {
		if stmt != nil {
			stmt.Close()
		}
	}
	return nil
}

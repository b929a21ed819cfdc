package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	entsql "entgo.io/ent/dialect/sql"
)

// DictItem is one stored state value.
type DictItem struct {
	Key   string
	Value json.RawMessage
}

// PutDict stores value under key, replacing any previous value.
func (s *Store) PutDict(ctx context.Context, key string, value json.RawMessage) error {
	query, args := builder().Insert(dictTable.Name).
		Columns("key", "value").
		Values(key, string(value)).
		OnConflict(entsql.ConflictColumns("key"), entsql.ResolveWithNewValues()).
		Query()
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("put dict: %w", err)
	}
	return nil
}

// DeleteDict removes key. Deleting a missing key is not an error.
func (s *Store) DeleteDict(ctx context.Context, key string) error {
	query, args := builder().Delete(dictTable.Name).
		Where(entsql.EQ("key", key)).
		Query()
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete dict: %w", err)
	}
	return nil
}

// ListDict returns every stored value, ordered by key.
func (s *Store) ListDict(ctx context.Context) ([]DictItem, error) {
	query, args := builder().Select("key", "value").
		From(entsql.Table(dictTable.Name)).
		OrderBy("key").
		Query()
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list dict: %w", err)
	}
	defer rows.Close()

	var items []DictItem
	for rows.Next() {
		var (
			key   string
			value []byte
		)
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan dict: %w", err)
		}
		items = append(items, DictItem{Key: key, Value: value})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list dict: %w", err)
	}
	return items, nil
}

// DeleteDictPrefix removes every key that starts with prefix and returns how
// many were removed.
func (s *Store) DeleteDictPrefix(ctx context.Context, prefix string) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	query, args := builder().Select("key").
		From(entsql.Table(dictTable.Name)).
		Where(entsql.HasPrefix("key", prefix)).
		Query()
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("select prefix: %w", err)
	}
	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			rows.Close()
			return 0, fmt.Errorf("scan key: %w", err)
		}
		// LIKE is case-insensitive in SQLite; keep exact matches only.
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("select prefix: %w", err)
	}

	for _, key := range keys {
		query, args := builder().Delete(dictTable.Name).
			Where(entsql.EQ("key", key)).
			Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return 0, fmt.Errorf("delete %q: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return len(keys), nil
}

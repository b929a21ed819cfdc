package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// GetCache returns the cached body for url in the named cache.
func (s *Store) GetCache(ctx context.Context, cache, url string) ([]byte, bool, error) {
	query, args := builder().Select("body").
		From(entsql.Table(cacheTable.Name)).
		Where(entsql.And(entsql.EQ("cache", cache), entsql.EQ("url", url))).
		Query()
	var body []byte
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get cache: %w", err)
	}
	return body, true, nil
}

// PutCache stores body for url in the named cache.
func (s *Store) PutCache(ctx context.Context, cache, url string, body []byte) error {
	query, args := builder().Insert(cacheTable.Name).
		Columns("cache", "url", "body", "fetched_at").
		Values(cache, url, body, time.Now().UTC()).
		OnConflict(entsql.ConflictColumns("cache", "url"), entsql.ResolveWithNewValues()).
		Query()
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("put cache: %w", err)
	}
	return nil
}

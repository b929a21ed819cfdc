package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

// PutProfileID registers a profile id. Registering a known id is a no-op.
func (s *Store) PutProfileID(ctx context.Context, id string) error {
	query, args := builder().Insert(profileIDTable.Name).
		Columns("id").
		Values(id).
		OnConflict(entsql.ConflictColumns("id"), entsql.DoNothing()).
		Query()
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("put profile id: %w", err)
	}
	return nil
}

// DeleteProfileID unregisters a profile id.
func (s *Store) DeleteProfileID(ctx context.Context, id string) error {
	query, args := builder().Delete(profileIDTable.Name).
		Where(entsql.EQ("id", id)).
		Query()
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete profile id: %w", err)
	}
	return nil
}

// ListProfileIDs returns every registered profile id, sorted.
func (s *Store) ListProfileIDs(ctx context.Context) ([]string, error) {
	query, args := builder().Select("id").
		From(entsql.Table(profileIDTable.Name)).
		OrderBy("id").
		Query()
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list profile ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan profile id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// SchemaVersion is the current layout version, kept in PRAGMA user_version.
//
//	1: a single "dict" table (legacy)
//	2: "dict" and "profile_ids" as independent record sets, plus "cache_entries"
const SchemaVersion = 2

var (
	dictColumns = []*schema.Column{
		{Name: "key", Type: field.TypeString},
		{Name: "value", Type: field.TypeJSON},
	}
	dictTable = &schema.Table{
		Name:       "dict",
		Columns:    dictColumns,
		PrimaryKey: []*schema.Column{dictColumns[0]},
	}

	profileIDColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
	}
	profileIDTable = &schema.Table{
		Name:       "profile_ids",
		Columns:    profileIDColumns,
		PrimaryKey: []*schema.Column{profileIDColumns[0]},
	}

	cacheColumns = []*schema.Column{
		{Name: "cache", Type: field.TypeString},
		{Name: "url", Type: field.TypeString},
		{Name: "body", Type: field.TypeBytes},
		{Name: "fetched_at", Type: field.TypeTime},
	}
	cacheTable = &schema.Table{
		Name:       "cache_entries",
		Columns:    cacheColumns,
		PrimaryKey: []*schema.Column{cacheColumns[0], cacheColumns[1]},
	}

	tables = []*schema.Table{dictTable, profileIDTable, cacheTable}
)

// migrate brings the database to SchemaVersion. Running it against a store
// that is already current changes nothing.
func (s *Store) migrate(ctx context.Context) error {
	version, err := s.userVersion(ctx)
	if err != nil {
		return err
	}
	if version > SchemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported version %d", version, SchemaVersion)
	}

	if version == 1 {
		// The legacy dict mixed profile lists into the state snapshot; its
		// contents cannot be split reliably, so it is dropped.
		if _, err := s.db.ExecContext(ctx, "DROP TABLE IF EXISTS `dict`"); err != nil {
			return fmt.Errorf("drop legacy dict: %w", err)
		}
	}

	m, err := schema.NewMigrate(s.drv)
	if err != nil {
		return fmt.Errorf("new migrate: %w", err)
	}
	if err := m.Create(ctx, tables...); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}

	if version != SchemaVersion {
		if _, err := s.db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", SchemaVersion)); err != nil {
			return fmt.Errorf("set schema version: %w", err)
		}
	}
	return nil
}

func (s *Store) userVersion(ctx context.Context) (int, error) {
	var v int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&v); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return v, nil
}

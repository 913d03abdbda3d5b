package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// kvRepo implements KVRepo using ent's SQL builders over the SQLite driver.
type kvRepo struct {
	drv *entsql.Driver
}

func (r *kvRepo) builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *kvRepo) Get(ctx context.Context, key string) ([]byte, error) {
	query, args := r.builder().
		Select("value").
		From(entsql.Table(kvTable)).
		Where(entsql.EQ("name", key)).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query %q: %w", key, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("query %q: %w", key, err)
		}
		return nil, nil
	}
	var value string
	if err := rows.Scan(&value); err != nil {
		return nil, fmt.Errorf("scan %q: %w", key, err)
	}
	return []byte(value), nil
}

func (r *kvRepo) Put(ctx context.Context, key string, value []byte) error {
	query, args := r.builder().
		Insert(kvTable).
		Columns("name", "value", "updated_at").
		Values(key, string(value), time.Now().UnixMilli()).
		OnConflict(
			entsql.ConflictColumns("name"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				u.SetExcluded("value")
				u.SetExcluded("updated_at")
			}),
		).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}
	return nil
}

func (r *kvRepo) Delete(ctx context.Context, key string) error {
	query, args := r.builder().
		Delete(kvTable).
		Where(entsql.EQ("name", key)).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

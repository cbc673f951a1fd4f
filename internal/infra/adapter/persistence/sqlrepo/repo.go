// Package sqlrepo implements repository.Repository on top of database/sql.
// One generic Repo serves every record type; the per-type differences live
// in a Mapping and the per-driver differences in a Dialect.
package sqlrepo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Executor is the subset of *sql.DB used by Repo. It is also satisfied by
// circuitbreaker.DBCircuitBreaker so queries can be guarded by a breaker.
type Executor interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// Scanner is implemented by *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// Mapping describes how a record type maps onto a table.
type Mapping[T any, K comparable] struct {
	Table     string
	KeyColumn string
	// Columns lists the non-key columns in the order Values returns them
	// and Scan reads them (after the key).
	Columns []string
	// GeneratedKey is true when the database assigns the key on insert.
	GeneratedKey bool

	Key    func(*T) K
	SetKey func(*T, K)
	Values func(*T) []any
	Scan   func(Scanner) (*T, error)
}

// Repo is a generic SQL repository.
type Repo[T any, K comparable] struct {
	db      Executor
	dialect Dialect
	m       Mapping[T, K]

	selectAll  string
	selectByID string
	insert     string
	update     string
	upsert     string
	deleteByID string
	count      string
}

// New builds a Repo and renders its statements once.
func New[T any, K comparable](db Executor, dialect Dialect, m Mapping[T, K]) *Repo[T, K] {
	r := &Repo[T, K]{db: db, dialect: dialect, m: m}
	r.buildQueries()
	return r
}

// Table returns the table name backing this repository.
func (r *Repo[T, K]) Table() string { return r.m.Table }

func (r *Repo[T, K]) buildQueries() {
	m := r.m
	ph := r.dialect.Placeholder
	cols := strings.Join(append([]string{m.KeyColumn}, m.Columns...), ", ")

	// #nosec G201 -- table and column names come from static mappings, values are bound
	r.selectAll = fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC`, cols, m.Table, m.KeyColumn)
	r.selectByID = fmt.Sprintf(`SELECT %s FROM %s WHERE %s = %s LIMIT 1`, cols, m.Table, m.KeyColumn, ph(1))
	r.deleteByID = fmt.Sprintf(`DELETE FROM %s WHERE %s = %s`, m.Table, m.KeyColumn, ph(1))
	r.count = fmt.Sprintf(`SELECT COUNT(*) FROM %s`, m.Table)

	sets := make([]string, len(m.Columns))
	for i, c := range m.Columns {
		sets[i] = fmt.Sprintf("%s = %s", c, ph(i+1))
	}
	r.update = fmt.Sprintf(`UPDATE %s SET %s WHERE %s = %s`,
		m.Table, strings.Join(sets, ", "), m.KeyColumn, ph(len(m.Columns)+1))

	if m.GeneratedKey {
		vals := make([]string, len(m.Columns))
		for i := range m.Columns {
			vals[i] = ph(i + 1)
		}
		r.insert = fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING %s`,
			m.Table, strings.Join(m.Columns, ", "), strings.Join(vals, ", "), m.KeyColumn)
		return
	}

	vals := make([]string, len(m.Columns)+1)
	for i := range vals {
		vals[i] = ph(i + 1)
	}
	excluded := make([]string, len(m.Columns))
	for i, c := range m.Columns {
		excluded[i] = fmt.Sprintf("%s = excluded.%s", c, c)
	}
	r.upsert = fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO UPDATE SET %s`,
		m.Table, cols, strings.Join(vals, ", "), m.KeyColumn, strings.Join(excluded, ", "))
}

func (r *Repo[T, K]) FindAll(ctx context.Context) ([]*T, error) {
	rows, err := r.db.QueryContext(ctx, r.selectAll)
	if err != nil {
		return nil, fmt.Errorf("FindAll: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]*T, 0, 16)
	for rows.Next() {
		rec, err := r.m.Scan(rows)
		if err != nil {
			return nil, fmt.Errorf("FindAll: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("FindAll: %w", err)
	}
	return out, nil
}

func (r *Repo[T, K]) FindByID(ctx context.Context, id K) (*T, error) {
	rows, err := r.db.QueryContext(ctx, r.selectByID, id)
	if err != nil {
		return nil, fmt.Errorf("FindByID: %w", err)
	}
	defer func() { _ = rows.Close() }()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("FindByID: %w", err)
		}
		return nil, nil
	}
	rec, err := r.m.Scan(rows)
	if err != nil {
		return nil, fmt.Errorf("FindByID: %w", err)
	}
	return rec, nil
}

func (r *Repo[T, K]) Save(ctx context.Context, rec *T) (*T, error) {
	var zero K
	key := r.m.Key(rec)

	switch {
	case !r.m.GeneratedKey:
		args := append([]any{key}, r.m.Values(rec)...)
		if _, err := r.db.ExecContext(ctx, r.upsert, args...); err != nil {
			return nil, fmt.Errorf("Save: %w", err)
		}
	case key == zero:
		rows, err := r.db.QueryContext(ctx, r.insert, r.m.Values(rec)...)
		if err != nil {
			return nil, fmt.Errorf("Save: %w", err)
		}
		defer func() { _ = rows.Close() }()
		if !rows.Next() {
			if err := rows.Err(); err != nil {
				return nil, fmt.Errorf("Save: %w", err)
			}
			return nil, fmt.Errorf("Save: insert into %s returned no key", r.m.Table)
		}
		var id K
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("Save: %w", err)
		}
		r.m.SetKey(rec, id)
	default:
		args := append(r.m.Values(rec), key)
		if _, err := r.db.ExecContext(ctx, r.update, args...); err != nil {
			return nil, fmt.Errorf("Save: %w", err)
		}
	}
	return rec, nil
}

func (r *Repo[T, K]) Delete(ctx context.Context, id K) error {
	if _, err := r.db.ExecContext(ctx, r.deleteByID, id); err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	return nil
}

func (r *Repo[T, K]) Count(ctx context.Context) (int64, error) {
	rows, err := r.db.QueryContext(ctx, r.count)
	if err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var n int64
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return 0, fmt.Errorf("Count: %w", err)
		}
	}
	return n, rows.Err()
}

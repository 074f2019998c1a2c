package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Executor is the query surface a Store needs. *DB and *sqlx.DB satisfy it.
type Executor interface {
	sqlx.ExtContext
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

// Store runs the five CRUD statements for one Table, scanning rows into T.
type Store[T any] struct {
	db    Executor
	table Table
}

func NewStore[T any](x Executor, t Table) *Store[T] {
	return &Store[T]{db: x, table: t}
}

// Table returns the table the store operates on.
func (s *Store[T]) Table() Table { return s.table }

// List returns every row ordered by key; never nil.
func (s *Store[T]) List(ctx context.Context) ([]T, error) {
	out := []T{}
	if err := sqlx.SelectContext(ctx, s.db, &out, s.table.listQuery()); err != nil {
		return nil, classify(err)
	}
	return out, nil
}

// Get returns the row with the given key or ErrNotFound.
func (s *Store[T]) Get(ctx context.Context, id int64) (*T, error) {
	var row T
	if err := sqlx.GetContext(ctx, s.db, &row, s.table.getQuery(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, classify(err)
	}
	return &row, nil
}

// Create inserts values (one per mutable column, in order) and returns the
// stored row. Insert and read-back share one transaction.
func (s *Store[T]) Create(ctx context.Context, values []any) (_ *T, err error) {
	if err := s.checkArity(values); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, classify(err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, s.table.insertQuery(), values...)
	if err != nil {
		return nil, classify(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, classify(err)
	}

	var row T
	if err = tx.GetContext(ctx, &row, s.table.getQuery(), id); err != nil {
		return nil, classify(err)
	}
	if err = tx.Commit(); err != nil {
		return nil, classify(err)
	}
	return &row, nil
}

// Update overwrites every mutable column of the row with the given key.
// Zero matched rows is not an error.
func (s *Store[T]) Update(ctx context.Context, id int64, values []any) error {
	if err := s.checkArity(values); err != nil {
		return err
	}
	args := append(append(make([]any, 0, len(values)+1), values...), id)
	if _, err := s.db.ExecContext(ctx, s.table.updateQuery(), args...); err != nil {
		return classify(err)
	}
	return nil
}

// Delete removes the row with the given key. Zero matched rows is not an error.
func (s *Store[T]) Delete(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, s.table.deleteQuery(), id); err != nil {
		return classify(err)
	}
	return nil
}

func (s *Store[T]) checkArity(values []any) error {
	if len(values) != len(s.table.Columns) {
		return classify(fmt.Errorf("%s: got %d values for %d columns", s.table.Name, len(values), len(s.table.Columns)))
	}
	return nil
}

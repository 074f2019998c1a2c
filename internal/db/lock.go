package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Lock is a MySQL advisory lock (GET_LOCK) held on one pinned connection.
// Statements that must run while the lock is held go through ExecContext so
// they share the locking session.
type Lock struct {
	conn *sql.Conn
	name string
}

// AcquireLock waits up to timeoutSeconds for the named lock.
func AcquireLock(ctx context.Context, db *sql.DB, name string, timeoutSeconds int) (*Lock, error) {
	c, err := db.Conn(ctx)
	if err != nil {
		return nil, err
	}

	qctx := ctx
	if timeoutSeconds > 0 {
		var cancel context.CancelFunc
		qctx, cancel = context.WithTimeout(ctx, time.Duration(timeoutSeconds)*time.Second+500*time.Millisecond)
		defer cancel()
	}

	var got sql.NullInt64
	if err := c.QueryRowContext(qctx, "SELECT GET_LOCK(?, ?)", name, timeoutSeconds).Scan(&got); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("advisory lock %q: %w", name, err)
	}
	if !got.Valid || got.Int64 != 1 {
		_ = c.Close()
		return nil, fmt.Errorf("could not acquire advisory lock %q (result=%s)", name, lockResult(got))
	}
	return &Lock{conn: c, name: name}, nil
}

// ExecContext runs a statement on the locking session.
func (l *Lock) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return l.conn.ExecContext(ctx, query, args...)
}

// Release frees the lock and returns the connection to the pool. It reports
// an error when the server says the lock was not held by this session.
func (l *Lock) Release() error {
	if l == nil || l.conn == nil {
		return nil
	}
	defer func() {
		_ = l.conn.Close()
		l.conn = nil
	}()

	var got sql.NullInt64
	if err := l.conn.QueryRowContext(context.Background(), "SELECT RELEASE_LOCK(?)", l.name).Scan(&got); err != nil {
		return fmt.Errorf("release advisory lock %q: %w", l.name, err)
	}
	if !got.Valid || got.Int64 != 1 {
		return fmt.Errorf("advisory lock %q was not held (result=%s)", l.name, lockResult(got))
	}
	return nil
}

func lockResult(v sql.NullInt64) string {
	if !v.Valid {
		return "NULL"
	}
	return fmt.Sprint(v.Int64)
}

package db

import (
	"context"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
)

type DB struct {
	*sqlx.DB
}

// Pool holds connection pool limits.
type Pool struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	// Retries is how many one-second-spaced pings Open attempts before giving up.
	Retries int
}

// Open connects to MySQL and waits until the server answers a ping.
func Open(ctx context.Context, dsn string, p Pool) (*DB, error) {
	xdb, err := sqlx.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	xdb.SetMaxOpenConns(p.MaxOpenConns)
	xdb.SetMaxIdleConns(p.MaxIdleConns)
	xdb.SetConnMaxLifetime(p.ConnMaxLifetime)

	retries := p.Retries
	if retries <= 0 {
		retries = 1
	}
	log := zerolog.Ctx(ctx)
	for i := 0; i < retries; i++ {
		if err = xdb.PingContext(ctx); err == nil {
			return &DB{DB: xdb}, nil
		}
		log.Warn().Err(err).Int("attempt", i+1).Msg("database not reachable yet")
		if i == retries-1 {
			break
		}
		select {
		case <-ctx.Done():
			_ = xdb.Close()
			return nil, ctx.Err()
		case <-time.After(time.Second):
		}
	}
	_ = xdb.Close()
	return nil, fmt.Errorf("database not reachable: %w", err)
}

func (d *DB) Close() error { return d.DB.Close() }

// Ping checks the database answers within ctx.
func (d *DB) Ping(ctx context.Context) error { return d.PingContext(ctx) }

// schemaLock serializes schema creation across instances starting together.
const schemaLock = "happierhour-schema"

// schemaLockTimeout is how many seconds GET_LOCK waits for another instance.
const schemaLockTimeout = 30

// EnsureSchema creates the resource tables if they do not exist. The DDL
// runs on the session holding the schema lock.
func (d *DB) EnsureSchema(ctx context.Context) (err error) {
	l, err := AcquireLock(ctx, d.DB.DB, schemaLock, schemaLockTimeout)
	if err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	defer func() {
		if rerr := l.Release(); rerr != nil {
			if err == nil {
				err = fmt.Errorf("schema: %w", rerr)
				return
			}
			zerolog.Ctx(ctx).Warn().Err(rerr).Msg("schema lock release failed")
		}
	}()

	for _, t := range Tables {
		if _, err := l.ExecContext(ctx, t.DDL()); err != nil {
			return fmt.Errorf("schema: %s: %w", t.Name, err)
		}
	}
	return nil
}

// Package database provides the SQL connection and transaction plumbing used by the
// PostgreSQL and MySQL credential stores.
package database

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"

	apperrors "github.com/allisson/credstash/internal/errors"
)

// DefaultPingTimeout bounds the connectivity check made by Connect.
const DefaultPingTimeout = 5 * time.Second

// Config holds database configuration settings.
type Config struct {
	Driver             string
	ConnectionString   string
	MaxOpenConnections int
	MaxIdleConnections int
	ConnMaxLifetime    time.Duration
	// PingTimeout defaults to DefaultPingTimeout when zero.
	PingTimeout time.Duration
}

// Connect opens a pool for cfg and verifies it with a ping. Failures are storage errors.
func Connect(ctx context.Context, cfg Config) (*sql.DB, error) {
	db, err := sql.Open(cfg.Driver, cfg.ConnectionString)
	if err != nil {
		return nil, apperrors.WithCause(apperrors.Wrap(apperrors.ErrStorage, "failed to open database"), err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConnections)
	db.SetMaxIdleConns(cfg.MaxIdleConnections)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = DefaultPingTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, apperrors.WithCause(apperrors.Wrap(apperrors.ErrStorage, "failed to ping database"), err)
	}

	return db, nil
}

// Package catalogstore persists a generated universe.Catalog to
// PostgreSQL and loads it back. It is an optional consumer of the
// generator core: nothing in internal/universe, internal/astro, or the
// generator packages imports this package, so a caller that never
// passes -save can run the generator without a database at all.
//
// Grounded on JoshuaAFerguson-terminal-velocity's internal/database
// package: a Config struct read from environment variables with
// getEnv/getEnvAsInt-style helpers, a DB wrapper adding metrics and
// retry around the driver, and migrations.go's schema-file loader.
// Where the teacher goes through database/sql with the pgx stdlib
// shim, this package talks to pgxpool.Pool directly, since nothing
// here needs database/sql portability. The bulk save path issues one
// Exec per row inside a single transaction; it uses no batch or copy
// operations.
package catalogstore

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sargonas/stellar-forge/internal/logger"
)

var log = logger.WithComponent("CatalogStore")

// DB wraps a pgxpool.Pool and adds metrics tracking to the operations
// the repository layer uses.
type DB struct {
	*pgxpool.Pool
	metrics *Metrics
}

// Config holds connection parameters for the catalog store.
//
// Environment variables:
//   - CATALOGSTORE_HOST: database hostname (default: localhost)
//   - CATALOGSTORE_PORT: database port (default: 5432)
//   - CATALOGSTORE_USER: database username (default: stellarforge)
//   - CATALOGSTORE_PASSWORD: database password (no default)
//   - CATALOGSTORE_NAME: database name (default: stellarforge)
//   - CATALOGSTORE_SSLMODE: SSL mode (default: disable)
//   - CATALOGSTORE_MAX_CONNS: pool size ceiling (default: 10)
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string

	MaxConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// DefaultConfig returns a Config with defaults overridden by whichever
// CATALOGSTORE_* environment variables are set.
func DefaultConfig() *Config {
	cfg := &Config{
		Host:            getEnv("CATALOGSTORE_HOST", "localhost"),
		Port:            getEnvAsInt("CATALOGSTORE_PORT", 5432),
		User:            getEnv("CATALOGSTORE_USER", "stellarforge"),
		Password:        getEnv("CATALOGSTORE_PASSWORD", ""),
		Database:        getEnv("CATALOGSTORE_NAME", "stellarforge"),
		SSLMode:         getEnv("CATALOGSTORE_SSLMODE", "disable"),
		MaxConns:        int32(getEnvAsInt("CATALOGSTORE_MAX_CONNS", 10)),
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: 10 * time.Minute,
	}

	if cfg.Password == "" {
		log.Warn("catalog store password not set, set CATALOGSTORE_PASSWORD for a non-local deployment")
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Warn("invalid integer value for %s: %s, using default %d", key, v, defaultValue)
	}
	return defaultValue
}

// NewDB opens a connection pool against cfg (DefaultConfig() if nil),
// retrying transient connection failures with exponential backoff
// before giving up.
func NewDB(ctx context.Context, cfg *Config) (*DB, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database, cfg.SSLMode)

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse catalog store dsn: %w", err)
	}
	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	poolCfg.MaxConnIdleTime = cfg.MaxConnIdleTime

	log.Info("connecting to catalog store: host=%s port=%d database=%s", cfg.Host, cfg.Port, cfg.Database)

	var pool *pgxpool.Pool
	err = retry(ctx, 5, 200*time.Millisecond, func() error {
		var dialErr error
		pool, dialErr = pgxpool.NewWithConfig(ctx, poolCfg)
		if dialErr != nil {
			return dialErr
		}
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if pingErr := pool.Ping(pingCtx); pingErr != nil {
			pool.Close()
			return pingErr
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("connect to catalog store: %w", err)
	}

	log.Info("catalog store connection established")
	return &DB{Pool: pool, metrics: NewMetrics()}, nil
}

// retry runs op up to attempts times with exponential backoff, stopping
// early if ctx is cancelled. Grounded on the teacher's
// internal/errors.Retry, trimmed to the one policy this package needs
// (every connection failure here is transient — DNS hiccups, the
// database still starting up in a compose stack).
func retry(ctx context.Context, attempts int, initialDelay time.Duration, op func() error) error {
	delay := initialDelay
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := op(); err == nil {
			return nil
		} else {
			lastErr = err
		}

		if attempt == attempts {
			break
		}
		log.Warn("catalog store connection attempt %d/%d failed: %v", attempt, attempts, lastErr)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		delay *= 2
	}
	return lastErr
}

// Close releases every pooled connection.
func (db *DB) Close() {
	log.Info("closing catalog store connection")
	db.Pool.Close()
}

// WithTransaction runs fn inside a transaction, committing on success
// and rolling back on error or panic.
func (db *DB) WithTransaction(ctx context.Context, fn func(pgx.Tx) error) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("transaction error: %v, rollback error: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Exec runs a statement with metrics tracking (mirrors the teacher's
// DB.ExecContext in internal/database/connection.go).
func (db *DB) Exec(ctx context.Context, sql string, args ...interface{}) error {
	db.metrics.recordQuery()
	_, err := db.Pool.Exec(ctx, sql, args...)
	if err != nil {
		db.metrics.recordError()
	}
	return err
}

// Query runs a query with metrics tracking.
func (db *DB) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	db.metrics.recordQuery()
	rows, err := db.Pool.Query(ctx, sql, args...)
	if err != nil {
		db.metrics.recordError()
	}
	return rows, err
}

// QueryRow runs a single-row query with metrics tracking.
func (db *DB) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	db.metrics.recordQuery()
	return db.Pool.QueryRow(ctx, sql, args...)
}

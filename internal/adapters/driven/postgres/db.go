package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

// DB is the catalog connection pool
type DB struct {
	*sql.DB
}

// Config holds catalog connection settings
type Config struct {
	// URL is a postgres:// URL or a key=value connection string
	URL string

	// ApplicationName tags sessions in pg_stat_activity
	ApplicationName string

	// ReadOnly opens every session with default_transaction_read_only,
	// so nothing issued through the pool can modify content_repo.
	ReadOnly bool

	// StatementTimeout cancels slow catalog queries server side; 0 keeps
	// the server default.
	StatementTimeout time.Duration

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultConfig returns a read-only pool configuration for url
func DefaultConfig(url string) Config {
	return Config{
		URL:              url,
		ApplicationName:  "docfinder",
		ReadOnly:         true,
		StatementTimeout: 10 * time.Second,
		MaxOpenConns:     25,
		MaxIdleConns:     5,
		ConnMaxLifetime:  5 * time.Minute,
		ConnMaxIdleTime:  1 * time.Minute,
	}
}

type sessionParam struct {
	key, value string
}

func (c Config) sessionParams() []sessionParam {
	var params []sessionParam
	if c.ApplicationName != "" {
		params = append(params, sessionParam{"application_name", c.ApplicationName})
	}
	if c.ReadOnly {
		params = append(params, sessionParam{"default_transaction_read_only", "on"})
	}
	if c.StatementTimeout > 0 {
		params = append(params, sessionParam{"statement_timeout", strconv.FormatInt(c.StatementTimeout.Milliseconds(), 10)})
	}
	return params
}

// DSN returns the connection string with the session parameters added.
// Parameters already present in URL win.
func (c Config) DSN() (string, error) {
	raw := strings.TrimSpace(c.URL)
	if raw == "" {
		return "", errors.New("database url is empty")
	}

	if strings.HasPrefix(raw, "postgres://") || strings.HasPrefix(raw, "postgresql://") {
		u, err := url.Parse(raw)
		if err != nil {
			return "", fmt.Errorf("invalid database url: %w", err)
		}
		q := u.Query()
		for _, p := range c.sessionParams() {
			if !q.Has(p.key) {
				q.Set(p.key, p.value)
			}
		}
		u.RawQuery = q.Encode()
		return u.String(), nil
	}

	// key=value form; lib/pq forwards unknown keys as runtime parameters
	dsn := raw
	for _, p := range c.sessionParams() {
		if !strings.Contains(dsn, p.key+"=") {
			dsn += " " + p.key + "=" + p.value
		}
	}
	return dsn, nil
}

// Connect opens the pool and verifies the database is reachable.
// The catalog schema is owned by the ingestion process, so nothing is
// migrated here.
func Connect(ctx context.Context, cfg Config) (*DB, error) {
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db}, nil
}

// Ping checks if the database is reachable
func (db *DB) Ping(ctx context.Context) error {
	return db.PingContext(ctx)
}

package postgres

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config holds PostgreSQL connection parameters.
type Config struct {
	Host            string
	User            string
	Password        string
	Database        string
	SSLMode         string
	ApplicationName string
	Port            int
	MaxConns        int32
	MinConns        int32
}

// DSN returns a PostgreSQL connection URL built from the config fields.
// Credentials are percent-encoded.
func (c Config) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "require"
	}

	q := url.Values{}
	q.Set("sslmode", sslMode)
	if c.ApplicationName != "" {
		q.Set("application_name", c.ApplicationName)
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     "/" + c.Database,
		RawQuery: q.Encode(),
	}
	return u.String()
}

// NewPool creates a new pgxpool.Pool with the given config.
// It applies MaxConns and MinConns when they are greater than zero and
// verifies connectivity by pinging the database before returning.
func NewPool(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	return NewPoolFromDSN(ctx, cfg.DSN(), cfg.MaxConns, cfg.MinConns)
}

// NewPoolFromDSN is NewPool for callers that already hold a connection string.
func NewPoolFromDSN(ctx context.Context, dsn string, maxConns, minConns int32) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse config: %w", err)
	}

	if maxConns > 0 {
		poolCfg.MaxConns = maxConns
	}
	if minConns > 0 {
		poolCfg.MinConns = minConns
	}

	poolCfg.MaxConnLifetime = 1 * time.Hour
	poolCfg.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}

	return pool, nil
}

// HealthCheck pings the database and returns an error if the connection is unhealthy.
func HealthCheck(ctx context.Context, pool *pgxpool.Pool) error {
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check: %w", err)
	}
	return nil
}

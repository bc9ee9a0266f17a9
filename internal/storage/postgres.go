package storage

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/000001_console_storage.up.sql
var schemaUp string

// Postgres is a Backend stored in the console_storage table.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres opens a pool on databaseURL and applies the schema.
func NewPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	// Connection pool settings
	config.MaxConns = 10
	config.MinConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, schemaUp); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to apply storage schema: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

// Get returns the value for key. Expired rows are reported as absent.
func (p *Postgres) Get(ctx context.Context, key string) (string, bool, error) {
	query := `
		SELECT value
		FROM console_storage
		WHERE key = $1 AND (expires_at IS NULL OR expires_at > now())
	`

	var value string
	err := p.pool.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get storage entry: %w", err)
	}

	return value, true, nil
}

// Set upserts value under key.
func (p *Postgres) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	query := `
		INSERT INTO console_storage (key, value, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at
	`

	var expiresAt *time.Time
	if ttl > 0 {
		t := time.Now().Add(ttl)
		expiresAt = &t
	}

	if _, err := p.pool.Exec(ctx, query, key, value, expiresAt); err != nil {
		return fmt.Errorf("failed to set storage entry: %w", err)
	}
	return nil
}

// Delete removes key.
func (p *Postgres) Delete(ctx context.Context, key string) error {
	if _, err := p.pool.Exec(ctx, `DELETE FROM console_storage WHERE key = $1`, key); err != nil {
		return fmt.Errorf("failed to delete storage entry: %w", err)
	}
	return nil
}

// PurgeExpired deletes rows whose expiry has passed and reports how many.
func (p *Postgres) PurgeExpired(ctx context.Context) (int64, error) {
	tag, err := p.pool.Exec(ctx, `DELETE FROM console_storage WHERE expires_at <= now()`)
	if err != nil {
		return 0, fmt.Errorf("failed to purge storage entries: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Ping checks database connectivity.
func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Close closes the connection pool.
func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

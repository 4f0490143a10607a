package db

import (
	"context"
	"fmt"

	"class-order/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect opens a pgx pool against the shared store. The pool is handed to
// the store explicitly instead of living in a package-level variable, so
// tests and callers control its lifetime.
func Connect(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	connStr := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database,
	)
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return pool, nil
}

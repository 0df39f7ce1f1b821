package database

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vancomm/minesweeper/internal/config"
)

func Connect(ctx context.Context, cfg config.Database) (*pgxpool.Pool, error) {
	poolConfig, err := cfg.PgxpoolConfig()
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}
	return pool, nil
}

// Migrate applies every pending migration found under "migrations/" in
// migrations. An up-to-date database is not an error.
func Migrate(cfg config.Database, migrations fs.FS) (*migrate.Migrate, error) {
	url, err := cfg.ConnURL()
	if err != nil {
		return nil, err
	}
	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("unable to create migrations iofs: %w", err)
	}
	migrator, err := migrate.NewWithSourceInstance("iofs", source, url)
	if err != nil {
		return nil, fmt.Errorf("unable to create migrator: %w", err)
	}
	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return migrator, nil
}

// ConnectAndMigrate brings the schema up to date before handing out a pool.
func ConnectAndMigrate(
	ctx context.Context, cfg config.Database, migrations fs.FS,
) (*pgxpool.Pool, error) {
	migrator, err := Migrate(cfg, migrations)
	if err != nil {
		return nil, err
	}
	if srcErr, dbErr := migrator.Close(); srcErr != nil || dbErr != nil {
		return nil, fmt.Errorf("unable to close migrator: %w", errors.Join(srcErr, dbErr))
	}
	return Connect(ctx, cfg)
}

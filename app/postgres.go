package app

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/accesscore/core/config"
	"github.com/dmitrymomot/accesscore/integration/database/pg"
)

// OpenPostgres connects a pool from PG_* variables.
func OpenPostgres(ctx context.Context) (*pgxpool.Pool, error) {
	var pc pg.Config
	if err := config.Load(&pc); err != nil {
		return nil, err
	}
	pool, err := pg.Connect(ctx, pc)
	if err != nil {
		return nil, errors.Join(ErrBackendConnect, err)
	}
	return pool, nil
}

// PostgresConfig returns the loaded pg.Config, for migrations.
func PostgresConfig() (pg.Config, error) {
	var pc pg.Config
	err := config.Load(&pc)
	return pc, err
}

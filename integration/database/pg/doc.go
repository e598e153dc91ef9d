// Package pg provides PostgreSQL connection pooling, health checking, embedded
// goose migrations and transaction propagation on top of pgx/v5.
//
// # Configuration
//
//	type Config struct {
//		ConnectionString  string        `env:"PG_CONN_URL,required"`
//		MaxOpenConns      int32         `env:"PG_MAX_OPEN_CONNS" envDefault:"10"`
//		MaxIdleConns      int32         `env:"PG_MAX_IDLE_CONNS" envDefault:"5"`
//		HealthCheckPeriod time.Duration `env:"PG_HEALTHCHECK_PERIOD" envDefault:"1m"`
//		MaxConnIdleTime   time.Duration `env:"PG_MAX_CONN_IDLE_TIME" envDefault:"10m"`
//		MaxConnLifetime   time.Duration `env:"PG_MAX_CONN_LIFETIME" envDefault:"30m"`
//		RetryAttempts     int           `env:"PG_RETRY_ATTEMPTS" envDefault:"3"`
//		RetryInterval     time.Duration `env:"PG_RETRY_INTERVAL" envDefault:"5s"`
//		MigrationsTable   string        `env:"PG_MIGRATIONS_TABLE" envDefault:"schema_migrations"`
//	}
//
// # Usage
//
//	cfg := config.MustLoad[pg.Config]()
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, migrations.FS, log); err != nil {
//		return err
//	}
//
// Migrate wraps the pool with the pgx stdlib adapter because goose works on
// database/sql.
//
// # Transactions
//
// Repositories call Conn(ctx, pool) so they join a transaction started by
// InTx (or attached with WithTx) without changing their signatures:
//
//	err := pg.InTx(ctx, pool, func(ctx context.Context) error {
//		_, err := pg.Conn(ctx, pool).Exec(ctx, `INSERT INTO roles (name) VALUES ($1)`, "admin")
//		return err
//	})
//
// # Errors
//
// IsNotFoundError, IsDuplicateKeyError, IsForeignKeyViolationError,
// IsCheckViolationError and IsTxClosedError classify driver errors.
package pg

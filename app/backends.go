package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/accesscore/core/config"
	"github.com/dmitrymomot/accesscore/core/health"
	"github.com/dmitrymomot/accesscore/core/logger"
	"github.com/dmitrymomot/accesscore/core/rbac"
	"github.com/dmitrymomot/accesscore/core/session"
	mongodb "github.com/dmitrymomot/accesscore/integration/database/mongo"
	"github.com/dmitrymomot/accesscore/integration/database/pg"
	redisdb "github.com/dmitrymomot/accesscore/integration/database/redis"
	"github.com/dmitrymomot/accesscore/pkg/idcodec"
)

// Backend is an opened dependency with its readiness probe and cleanup.
// Check is nil for in-process backends.
type Backend[T any] struct {
	Value T
	Check *health.Check
	Close func(context.Context) error
}

func noopClose(context.Context) error { return nil }

// OpenSessionStore opens the store selected by cfg.SessionBackend.
func OpenSessionStore(ctx context.Context, cfg Config, log *slog.Logger) (Backend[session.Store], error) {
	switch cfg.SessionBackend {
	case BackendMemory:
		return Backend[session.Store]{Value: session.NewMemoryStore(), Close: noopClose}, nil

	case BackendRedis:
		var rc redisdb.Config
		if err := config.Load(&rc); err != nil {
			return Backend[session.Store]{}, err
		}
		client, err := redisdb.Connect(ctx, rc)
		if err != nil {
			return Backend[session.Store]{}, errors.Join(ErrBackendConnect, err)
		}
		log.InfoContext(ctx, "session store connected", logger.Component("app"), slog.String("backend", BackendRedis))
		return Backend[session.Store]{
			Value: session.NewRedisStore(client),
			Check: &health.Check{Name: "redis", Fn: redisdb.Healthcheck(client)},
			Close: func(context.Context) error { return client.Close() },
		}, nil

	case BackendMongo:
		var mc mongodb.Config
		if err := config.Load(&mc); err != nil {
			return Backend[session.Store]{}, err
		}
		client, err := mongodb.New(ctx, mc)
		if err != nil {
			return Backend[session.Store]{}, errors.Join(ErrBackendConnect, err)
		}
		store, err := session.NewMongoStore(ctx, client.Database(mc.Database).Collection(cfg.SessionCollection))
		if err != nil {
			_ = client.Disconnect(context.WithoutCancel(ctx))
			return Backend[session.Store]{}, errors.Join(ErrBackendConnect, err)
		}
		log.InfoContext(ctx, "session store connected", logger.Component("app"), slog.String("backend", BackendMongo))
		return Backend[session.Store]{
			Value: store,
			Check: &health.Check{Name: "mongo", Fn: mongodb.Healthcheck(client)},
			Close: client.Disconnect,
		}, nil
	}
	return Backend[session.Store]{}, fmt.Errorf("%w: session backend %q", ErrUnknownBackend, cfg.SessionBackend)
}

// Roles bundles the read side and the admin side of the role graph.
type Roles struct {
	Repository rbac.Repository
	Admin      rbac.Administrator
}

// OpenRoles opens the role graph selected by cfg.RoleBackend. The memory
// backend is seeded from cfg.SeedFile when set.
func OpenRoles(ctx context.Context, cfg Config, log *slog.Logger) (Backend[Roles], error) {
	switch cfg.RoleBackend {
	case BackendMemory:
		repo := rbac.NewMemoryRepository()
		if cfg.SeedFile != "" {
			seed, err := rbac.LoadSeedFile(cfg.SeedFile)
			if err != nil {
				return Backend[Roles]{}, err
			}
			if err := repo.ApplySeed(ctx, seed); err != nil {
				return Backend[Roles]{}, err
			}
			log.InfoContext(ctx, "role graph seeded",
				logger.Component("app"),
				logger.Count("roles", len(seed.Roles)),
			)
		}
		return Backend[Roles]{Value: Roles{Repository: repo, Admin: repo}, Close: noopClose}, nil

	case BackendPostgres:
		pool, err := OpenPostgres(ctx)
		if err != nil {
			return Backend[Roles]{}, err
		}
		log.InfoContext(ctx, "role graph connected", logger.Component("app"), slog.String("backend", BackendPostgres))
		return Backend[Roles]{
			Value: Roles{Repository: rbac.NewPostgresRepository(pool), Admin: rbac.NewSeeder(pool)},
			Check: &health.Check{Name: "postgres", Fn: pg.Healthcheck(pool)},
			Close: func(context.Context) error { pool.Close(); return nil },
		}, nil
	}
	return Backend[Roles]{}, fmt.Errorf("%w: role backend %q", ErrUnknownBackend, cfg.RoleBackend)
}

// OpenCodec builds the identifier codec from IDCODEC_* variables.
func OpenCodec() (*idcodec.Codec, error) {
	var cc idcodec.Config
	if err := config.Load(&cc); err != nil {
		return nil, err
	}
	return idcodec.New(cc)
}

package rbac

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/accesscore/integration/database/pg"
)

const grantsQuery = `
SELECT r.id, r.name, c.name
FROM user_roles ur
JOIN roles r ON r.id = ur.role_id
JOIN role_capabilities rc ON rc.role_id = ur.role_id
JOIN capabilities c ON c.id = rc.capability_id
WHERE ur.user_id = $1`

// PostgresRepository reads the role graph from PostgreSQL.
// Queries join a transaction carried in the context (pg.WithTx).
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a repository over pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("rbac: postgres pool is required")
	}
	return &PostgresRepository{pool: pool}
}

// Grants implements Repository with a single JOIN.
func (p *PostgresRepository) Grants(ctx context.Context, userID int64) ([]Grant, error) {
	rows, err := pg.Conn(ctx, p.pool).Query(ctx, grantsQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: query grants: %w", ErrResolverUnavailable, err)
	}
	defer rows.Close()

	var grants []Grant
	for rows.Next() {
		var g Grant
		if err := rows.Scan(&g.RoleID, &g.RoleName, &g.Capability); err != nil {
			return nil, fmt.Errorf("%w: scan grant: %w", ErrResolverUnavailable, err)
		}
		grants = append(grants, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: read grants: %w", ErrResolverUnavailable, err)
	}
	return grants, nil
}

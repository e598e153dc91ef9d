package rbac

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/accesscore/integration/database/pg"
)

// SeedFile is the YAML description of roles and their capabilities:
//
//	roles:
//	  - name: catalog_admin
//	    capabilities: [products.create, products.read, products.update, products.delete]
//	  - name: viewer
//	    capabilities: [products.read]
type SeedFile struct {
	Roles []SeedRole `yaml:"roles"`
}

// SeedRole is one role entry in a SeedFile.
type SeedRole struct {
	Name         string   `yaml:"name"`
	Capabilities []string `yaml:"capabilities"`
}

// Validate checks every role and capability name.
func (f SeedFile) Validate() error {
	if len(f.Roles) == 0 {
		return fmt.Errorf("%w: no roles", ErrInvalidSeed)
	}
	seen := make(map[string]struct{}, len(f.Roles))
	for _, r := range f.Roles {
		if err := ValidateRoleName(r.Name); err != nil {
			return errors.Join(ErrInvalidSeed, err)
		}
		if _, dup := seen[r.Name]; dup {
			return fmt.Errorf("%w: duplicate role %q", ErrInvalidSeed, r.Name)
		}
		seen[r.Name] = struct{}{}
		for _, c := range r.Capabilities {
			if _, err := ParseCapability(c); err != nil {
				return errors.Join(ErrInvalidSeed, err)
			}
		}
	}
	return nil
}

// ParseSeed decodes and validates a seed document.
func ParseSeed(r io.Reader) (SeedFile, error) {
	var f SeedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return SeedFile{}, errors.Join(ErrInvalidSeed, err)
	}
	if err := f.Validate(); err != nil {
		return SeedFile{}, err
	}
	return f, nil
}

// LoadSeedFile reads and validates the seed file at path.
func LoadSeedFile(path string) (SeedFile, error) {
	fh, err := os.Open(path)
	if err != nil {
		return SeedFile{}, errors.Join(ErrInvalidSeed, err)
	}
	defer fh.Close()
	return ParseSeed(fh)
}

// Seeder writes the role graph. It is admin tooling; the resolver never writes.
type Seeder struct {
	pool *pgxpool.Pool
}

// NewSeeder creates a seeder over pool.
func NewSeeder(pool *pgxpool.Pool) *Seeder {
	if pool == nil {
		panic("rbac: postgres pool is required")
	}
	return &Seeder{pool: pool}
}

// ApplySeed upserts every role, capability and role grant of seed in one
// transaction. Grants not listed in the file are left in place.
func (s *Seeder) ApplySeed(ctx context.Context, seed SeedFile) error {
	if err := seed.Validate(); err != nil {
		return err
	}

	err := pg.InTx(ctx, s.pool, func(ctx context.Context) error {
		q := pg.Conn(ctx, s.pool)
		for _, r := range seed.Roles {
			var roleID int64
			if err := q.QueryRow(ctx,
				`INSERT INTO roles (name) VALUES ($1)
				 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
				 RETURNING id`, r.Name).Scan(&roleID); err != nil {
				return fmt.Errorf("upsert role %q: %w", r.Name, err)
			}

			for _, c := range r.Capabilities {
				var capID int64
				if err := q.QueryRow(ctx,
					`INSERT INTO capabilities (name) VALUES ($1)
					 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
					 RETURNING id`, c).Scan(&capID); err != nil {
					return fmt.Errorf("upsert capability %q: %w", c, err)
				}
				if _, err := q.Exec(ctx,
					`INSERT INTO role_capabilities (role_id, capability_id) VALUES ($1, $2)
					 ON CONFLICT DO NOTHING`, roleID, capID); err != nil {
					return fmt.Errorf("grant %q to %q: %w", c, r.Name, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return errors.Join(ErrSeedFailed, err)
	}
	return nil
}

// AssignRole links userID to the named role.
func (s *Seeder) AssignRole(ctx context.Context, userID int64, role string) error {
	if userID <= 0 {
		return ErrInvalidUserID
	}

	q := pg.Conn(ctx, s.pool)
	var roleID int64
	if err := q.QueryRow(ctx, `SELECT id FROM roles WHERE name = $1`, role).Scan(&roleID); err != nil {
		if pg.IsNotFoundError(err) {
			return fmt.Errorf("%w: %q", ErrRoleNotFound, role)
		}
		return fmt.Errorf("lookup role %q: %w", role, err)
	}

	if _, err := q.Exec(ctx,
		`INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		userID, roleID); err != nil {
		return fmt.Errorf("assign role %q: %w", role, err)
	}
	return nil
}

// UnassignRole removes the link between userID and the named role. It returns
// ErrRoleNotFound when the user does not hold the role.
func (s *Seeder) UnassignRole(ctx context.Context, userID int64, role string) error {
	tag, err := pg.Conn(ctx, s.pool).Exec(ctx,
		`DELETE FROM user_roles ur USING roles r
		 WHERE ur.role_id = r.id AND ur.user_id = $1 AND r.name = $2`,
		userID, role)
	if err != nil {
		return fmt.Errorf("unassign role %q: %w", role, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %q", ErrRoleNotFound, role)
	}
	return nil
}

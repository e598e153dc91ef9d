package rbac

import "context"

// Grant is one (role, capability) edge reachable from a user.
type Grant struct {
	RoleID     int64
	RoleName   string
	Capability string
}

// Repository reads the role graph. Implementations answer with a single
// round trip and never write.
type Repository interface {
	Grants(ctx context.Context, userID int64) ([]Grant, error)
}

// Administrator writes the role graph. Seeder and MemoryRepository implement it.
type Administrator interface {
	ApplySeed(ctx context.Context, seed SeedFile) error
	AssignRole(ctx context.Context, userID int64, role string) error
	UnassignRole(ctx context.Context, userID int64, role string) error
}

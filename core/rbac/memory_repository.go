package rbac

import (
	"context"
	"slices"
	"sync"
)

// MemoryRepository is an in-memory role graph for tests and development.
type MemoryRepository struct {
	mu        sync.RWMutex
	nextID    int64
	roles     map[string]int64
	roleCaps  map[int64][]string
	userRoles map[int64][]int64
}

// NewMemoryRepository creates an empty role graph.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		roles:     make(map[string]int64),
		roleCaps:  make(map[int64][]string),
		userRoles: make(map[int64][]int64),
	}
}

// Grants implements Repository.
func (m *MemoryRepository) Grants(ctx context.Context, userID int64) ([]Grant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make(map[int64]string, len(m.roles))
	for name, id := range m.roles {
		names[id] = name
	}

	var grants []Grant
	for _, roleID := range m.userRoles[userID] {
		for _, c := range m.roleCaps[roleID] {
			grants = append(grants, Grant{RoleID: roleID, RoleName: names[roleID], Capability: c})
		}
	}
	return grants, nil
}

// Grant adds capabilities to role, creating the role if needed.
func (m *MemoryRepository) Grant(role string, capabilities ...string) error {
	if err := ValidateRoleName(role); err != nil {
		return err
	}
	for _, c := range capabilities {
		if _, err := ParseCapability(c); err != nil {
			return err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.ensureRole(role)
	for _, c := range capabilities {
		if !slices.Contains(m.roleCaps[id], c) {
			m.roleCaps[id] = append(m.roleCaps[id], c)
		}
	}
	return nil
}

// Revoke removes capabilities from role.
func (m *MemoryRepository) Revoke(role string, capabilities ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.roles[role]
	if !ok {
		return
	}
	m.roleCaps[id] = slices.DeleteFunc(m.roleCaps[id], func(c string) bool {
		return slices.Contains(capabilities, c)
	})
}

// AssignRole attaches an existing role to userID.
func (m *MemoryRepository) AssignRole(_ context.Context, userID int64, role string) error {
	if userID <= 0 {
		return ErrInvalidUserID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.roles[role]
	if !ok {
		return ErrRoleNotFound
	}
	if !slices.Contains(m.userRoles[userID], id) {
		m.userRoles[userID] = append(m.userRoles[userID], id)
	}
	return nil
}

// UnassignRole detaches role from userID. It returns ErrRoleNotFound when
// the user does not hold the role.
func (m *MemoryRepository) UnassignRole(_ context.Context, userID int64, role string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.roles[role]
	if !ok || !slices.Contains(m.userRoles[userID], id) {
		return ErrRoleNotFound
	}
	m.userRoles[userID] = slices.DeleteFunc(m.userRoles[userID], func(r int64) bool { return r == id })
	return nil
}

// ApplySeed loads every role of seed into the graph.
func (m *MemoryRepository) ApplySeed(_ context.Context, seed SeedFile) error {
	if err := seed.Validate(); err != nil {
		return err
	}
	for _, r := range seed.Roles {
		if err := m.Grant(r.Name, r.Capabilities...); err != nil {
			return err
		}
	}
	return nil
}

func (m *MemoryRepository) ensureRole(role string) int64 {
	if id, ok := m.roles[role]; ok {
		return id
	}
	m.nextID++
	m.roles[role] = m.nextID
	return m.nextID
}

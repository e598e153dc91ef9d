package rbac

import (
	"fmt"
	"regexp"
	"strings"
)

// Action is the verb half of a capability name.
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Actions returns the canonical actions in expansion order.
func Actions() []Action {
	return []Action{ActionCreate, ActionRead, ActionUpdate, ActionDelete}
}

// Capability is a parsed "resource.action" name.
type Capability struct {
	Resource string
	Action   Action
}

// String returns the dotted capability name.
func (c Capability) String() string {
	return c.Resource + "." + string(c.Action)
}

var (
	resourcePattern = regexp.MustCompile(`^[a-z0-9_]+$`)
	rolePattern     = regexp.MustCompile(`^[a-z0-9_][a-z0-9_.-]*$`)
)

// ParseCapability validates a capability name for seeding. Checks never call
// it: an unknown or malformed name simply is not in any CapabilitySet.
func ParseCapability(name string) (Capability, error) {
	resource, action, ok := strings.Cut(name, ".")
	if !ok || !resourcePattern.MatchString(resource) {
		return Capability{}, fmt.Errorf("%w: %q", ErrInvalidCapability, name)
	}
	switch Action(action) {
	case ActionCreate, ActionRead, ActionUpdate, ActionDelete:
		return Capability{Resource: resource, Action: Action(action)}, nil
	default:
		return Capability{}, fmt.Errorf("%w: %q", ErrInvalidCapability, name)
	}
}

// ValidateRoleName checks a role name for seeding.
func ValidateRoleName(name string) error {
	if !rolePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidRole, name)
	}
	return nil
}

package rbac

// Requirement describes what a protected action needs. Explicit Permissions
// win over Resource; a Resource alone expands to all four canonical actions.
type Requirement struct {
	Permissions []string
	Resource    string
}

// Permissions builds a requirement from explicit capability names.
func Permissions(names ...string) Requirement {
	return Requirement{Permissions: names}
}

// Resource builds a requirement for full access to resource.
func Resource(resource string) Requirement {
	return Requirement{Resource: resource}
}

// Expand returns the capability names the requirement stands for.
// Explicit permissions are deduplicated in order. An empty requirement
// expands to nil, which every check treats as false.
func (r Requirement) Expand() []string {
	if len(r.Permissions) > 0 {
		seen := make(map[string]struct{}, len(r.Permissions))
		names := make([]string, 0, len(r.Permissions))
		for _, p := range r.Permissions {
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			names = append(names, p)
		}
		return names
	}

	if r.Resource != "" {
		actions := Actions()
		names := make([]string, 0, len(actions))
		for _, a := range actions {
			names = append(names, Capability{Resource: r.Resource, Action: a}.String())
		}
		return names
	}

	return nil
}

// IsEmpty reports whether the requirement expands to nothing.
func (r Requirement) IsEmpty() bool {
	return len(r.Permissions) == 0 && r.Resource == ""
}

package rbac

import "slices"

// CapabilitySet is the union of capability names granted through all of a
// user's roles.
type CapabilitySet map[string]struct{}

// Union collects the capabilities of every grant.
func Union(grants []Grant) CapabilitySet {
	set := make(CapabilitySet, len(grants))
	for _, g := range grants {
		set[g.Capability] = struct{}{}
	}
	return set
}

// Contains reports whether name is in the set.
func (s CapabilitySet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// ContainsAll reports whether every name is in the set.
// It returns false for an empty list.
func (s CapabilitySet) ContainsAll(names []string) bool {
	if len(names) == 0 {
		return false
	}
	for _, n := range names {
		if !s.Contains(n) {
			return false
		}
	}
	return true
}

// Names returns the sorted capability names.
func (s CapabilitySet) Names() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

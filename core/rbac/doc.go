// Package rbac decides whether a user holds a set of capabilities.
//
// Users are linked to roles, roles to capabilities. A capability is a dotted
// "resource.action" name where action is one of create, read, update or
// delete. A user's effective capabilities are the union across all of their
// roles, and a check passes only when every requested capability is in that
// union.
//
//	repo := rbac.NewPostgresRepository(pool)
//	resolver := rbac.NewResolver(repo, rbac.WithLogger(log))
//
//	ok, err := resolver.HasPermissions(ctx, userID, rbac.Permissions("products.update"))
//	ok, err = resolver.HasPermissions(ctx, userID, rbac.Resource("products")) // all four actions
//
// Checks are fail-closed: an empty requirement is false, a capability name
// that exists nowhere is false, and a repository failure yields false with an
// error wrapping ErrResolverUnavailable. Authorize turns a false result into
// ErrPermissionDenied.
//
// The resolver never caches and never writes. Role graph changes go through
// an Administrator (Seeder for PostgreSQL, MemoryRepository for tests), usually
// fed by a YAML SeedFile.
package rbac

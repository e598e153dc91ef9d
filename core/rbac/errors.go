package rbac

import "errors"

var (
	// ErrPermissionDenied is returned by Authorize when the check evaluates false.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrResolverUnavailable wraps every role graph read failure, timeouts included.
	ErrResolverUnavailable = errors.New("capability resolver unavailable")

	ErrInvalidCapability = errors.New("invalid capability name")
	ErrInvalidRole       = errors.New("invalid role name")
	ErrRoleNotFound      = errors.New("role not found")
	ErrInvalidUserID     = errors.New("invalid user id")
	ErrInvalidSeed       = errors.New("invalid seed file")
	ErrSeedFailed        = errors.New("failed to apply seed")
)

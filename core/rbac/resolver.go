package rbac

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dmitrymomot/accesscore/core/logger"
)

// Resolver answers whether a user holds every capability a requirement names.
// It does not cache: every check reads the role graph once, so grant changes
// are visible on the next request.
type Resolver struct {
	repo Repository
	cfg  Config
	log  *slog.Logger
}

// NewResolver creates a resolver over repo.
func NewResolver(repo Repository, opts ...Option) *Resolver {
	if repo == nil {
		panic("rbac: repository is required")
	}

	r := &Resolver{
		repo: repo,
		cfg:  DefaultConfig(),
		log:  defaultLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.With(logger.Component("rbac"))
	return r
}

// HasPermissions reports whether userID holds all capabilities of req.
// An empty requirement is false without touching the repository. On a
// repository failure the result is false and the error wraps
// ErrResolverUnavailable.
func (r *Resolver) HasPermissions(ctx context.Context, userID int64, req Requirement) (bool, error) {
	names := req.Expand()
	if len(names) == 0 || userID <= 0 {
		return false, nil
	}

	set, err := r.Capabilities(ctx, userID)
	if err != nil {
		return false, err
	}

	ok := set.ContainsAll(names)
	r.log.DebugContext(ctx, "permission check",
		logger.UserID(userID),
		logger.Permissions(names),
		logger.Result(allowed(ok)),
	)
	return ok, nil
}

// Authorize is HasPermissions returning ErrPermissionDenied instead of false.
func (r *Resolver) Authorize(ctx context.Context, userID int64, req Requirement) error {
	ok, err := r.HasPermissions(ctx, userID, req)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPermissionDenied
	}
	return nil
}

// Capabilities returns the union of capabilities across the user's roles.
func (r *Resolver) Capabilities(ctx context.Context, userID int64) (CapabilitySet, error) {
	if userID <= 0 {
		return nil, ErrInvalidUserID
	}

	ctx, cancel := context.WithTimeout(ctx, r.cfg.QueryTimeout)
	defer cancel()

	grants, err := r.repo.Grants(ctx, userID)
	if err != nil {
		r.log.ErrorContext(ctx, "failed to load grants",
			logger.UserID(userID),
			logger.Error(err),
		)
		if errors.Is(err, ErrResolverUnavailable) {
			return nil, err
		}
		return nil, errors.Join(ErrResolverUnavailable, err)
	}
	return Union(grants), nil
}

func allowed(ok bool) string {
	if ok {
		return "allowed"
	}
	return "denied"
}

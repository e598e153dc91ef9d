package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dmitrymomot/accesscore/core/logger"
)

// Manager maps opaque tokens to identities through a Store.
// Resolve never mutates session state; only Create and Destroy write.
type Manager struct {
	store Store
	cfg   Config
	log   *slog.Logger
	now   func() time.Time
}

// NewManager creates a session manager backed by store.
func NewManager(store Store, opts ...Option) *Manager {
	if store == nil {
		panic("session: store is required")
	}

	m := &Manager{
		store: store,
		cfg:   DefaultConfig(),
		log:   defaultLogger(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.log = m.log.With(logger.Component("session"))
	return m
}

// Create issues a new session for userID and persists it.
// The returned Session carries the token; it is the only place the token exists.
func (m *Manager) Create(ctx context.Context, userID int64) (Session, error) {
	sess, err := newAt(userID, m.cfg.TTL, m.now())
	if err != nil {
		return Session{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, m.cfg.StoreTimeout)
	defer cancel()

	if err := m.store.Save(ctx, m.key(sess.Token), sess.record()); err != nil {
		m.log.ErrorContext(ctx, "failed to save session",
			logger.Error(err),
			logger.UserID(userID),
		)
		return Session{}, errors.Join(ErrSaveSession, unavailable(err))
	}

	m.log.InfoContext(ctx, "session created",
		logger.SessionID(sess.ID.String()),
		logger.UserID(userID),
	)
	return sess, nil
}

// Lookup classifies token as valid, expired or unknown.
// The error is non-nil only for store failures and always wraps ErrStoreUnavailable.
func (m *Manager) Lookup(ctx context.Context, token string) (Resolution, error) {
	if !wellFormed(token) {
		return Resolution{Status: StatusUnknown}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, m.cfg.StoreTimeout)
	defer cancel()

	rec, err := m.store.Get(ctx, m.key(token))
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		return Resolution{Status: StatusUnknown}, nil
	case errors.Is(err, ErrExpired):
		return Resolution{Status: StatusExpired}, nil
	case errors.Is(err, ErrCorruptRecord):
		m.log.WarnContext(ctx, "corrupt session record treated as unknown", logger.Error(err))
		return Resolution{Status: StatusUnknown}, nil
	default:
		return Resolution{Status: StatusUnknown}, unavailable(err)
	}

	if rec.UserID <= 0 {
		m.log.WarnContext(ctx, "session record without user treated as unknown",
			logger.SessionID(rec.ID.String()),
		)
		return Resolution{Status: StatusUnknown}, nil
	}

	// Covers stores whose clock runs behind the manager's.
	if !m.now().Before(rec.ExpiresAt) {
		return Resolution{Status: StatusExpired}, nil
	}

	return Resolution{
		Status: StatusValid,
		Identity: Identity{
			SessionID: rec.ID,
			UserID:    rec.UserID,
			ExpiresAt: rec.ExpiresAt,
		},
	}, nil
}

// Resolve returns the identity behind token. ok is false for absent, expired
// and unknown tokens. err is non-nil only when the store is unavailable, in
// which case callers must deny.
func (m *Manager) Resolve(ctx context.Context, token string) (Identity, bool, error) {
	res, err := m.Lookup(ctx, token)
	if err != nil {
		return Identity{}, false, err
	}
	return res.Identity, res.Valid(), nil
}

// Destroy removes the session behind token. Unknown and empty tokens are a no-op.
func (m *Manager) Destroy(ctx context.Context, token string) error {
	if !wellFormed(token) {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, m.cfg.StoreTimeout)
	defer cancel()

	if err := m.store.Delete(ctx, m.key(token)); err != nil && !errors.Is(err, ErrNotFound) {
		m.log.ErrorContext(ctx, "failed to delete session", logger.Error(err))
		return errors.Join(ErrDeleteSession, unavailable(err))
	}
	return nil
}

// TTL returns the session time-to-live duration.
func (m *Manager) TTL() time.Duration {
	return m.cfg.TTL
}

func (m *Manager) key(token string) string {
	return storageKey(m.cfg.KeyPrefix, token)
}

// unavailable makes sure every store failure carries ErrStoreUnavailable,
// including context deadline errors returned by stores that do not wrap.
func unavailable(err error) error {
	if errors.Is(err, ErrStoreUnavailable) {
		return err
	}
	return errors.Join(ErrStoreUnavailable, err)
}

package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/accesscore/core/session"
)

// mockStore implements session.Store interface for testing
type mockStore struct {
	mock.Mock
}

func (m *mockStore) Get(ctx context.Context, key string) (session.Record, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(session.Record), args.Error(1)
}

func (m *mockStore) Save(ctx context.Context, key string, rec session.Record) error {
	args := m.Called(ctx, key, rec)
	return args.Error(0)
}

func (m *mockStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

const unknownToken = "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

func TestNewManager(t *testing.T) {
	t.Parallel()

	t.Run("default ttl", func(t *testing.T) {
		t.Parallel()
		m := session.NewManager(session.NewMemoryStore())
		assert.Equal(t, 24*time.Hour, m.TTL())
	})

	t.Run("options override config", func(t *testing.T) {
		t.Parallel()
		m := session.NewManager(session.NewMemoryStore(),
			session.WithConfig(session.Config{TTL: time.Minute}),
			session.WithTTL(time.Hour),
		)
		assert.Equal(t, time.Hour, m.TTL())
	})

	t.Run("panics without store", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { session.NewManager(nil) })
	})
}

func TestManager_CreateAndResolve(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := session.NewManager(session.NewMemoryStore(), session.WithTTL(time.Hour))

	sess, err := m.Create(ctx, 42)
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)
	assert.NotEqual(t, uuid.Nil, sess.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), sess.ExpiresAt, time.Second)

	id, ok, err := m.Resolve(ctx, sess.Token)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(42), id.UserID)
	assert.Equal(t, sess.ID, id.SessionID)

	// resolving is read-only: expiry does not slide
	id2, ok, err := m.Resolve(ctx, sess.Token)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, id.ExpiresAt, id2.ExpiresAt)
}

func TestManager_Create(t *testing.T) {
	t.Parallel()

	t.Run("rejects invalid user id", func(t *testing.T) {
		t.Parallel()
		store := &mockStore{}
		m := session.NewManager(store)

		_, err := m.Create(context.Background(), 0)
		assert.ErrorIs(t, err, session.ErrInvalidUserID)
		store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("store failure", func(t *testing.T) {
		t.Parallel()
		store := &mockStore{}
		store.On("Save", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("connection refused"))
		m := session.NewManager(store)

		_, err := m.Create(context.Background(), 1)
		assert.ErrorIs(t, err, session.ErrSaveSession)
		assert.ErrorIs(t, err, session.ErrStoreUnavailable)
		store.AssertExpectations(t)
	})

	t.Run("stored key does not contain the token", func(t *testing.T) {
		t.Parallel()
		store := &mockStore{}
		var key string
		store.On("Save", mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { key = args.String(1) }).
			Return(nil)
		m := session.NewManager(store, session.WithKeyPrefix("acl:"))

		sess, err := m.Create(context.Background(), 5)
		require.NoError(t, err)
		assert.Contains(t, key, "acl:")
		assert.NotContains(t, key, sess.Token)
	})
}

func TestManager_Lookup(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	t.Run("malformed tokens skip the store", func(t *testing.T) {
		t.Parallel()
		store := &mockStore{}
		m := session.NewManager(store)

		for _, token := range []string{"", "short", "not a token at all but long enough!!!!!!!!!"} {
			res, err := m.Lookup(context.Background(), token)
			require.NoError(t, err)
			assert.Equal(t, session.StatusUnknown, res.Status)
		}
		store.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("not found is unknown", func(t *testing.T) {
		t.Parallel()
		store := &mockStore{}
		store.On("Get", mock.Anything, mock.Anything).Return(session.Record{}, session.ErrNotFound)
		m := session.NewManager(store)

		res, err := m.Lookup(context.Background(), unknownToken)
		require.NoError(t, err)
		assert.Equal(t, session.StatusUnknown, res.Status)
		assert.False(t, res.Valid())
	})

	t.Run("expired record", func(t *testing.T) {
		t.Parallel()
		store := &mockStore{}
		store.On("Get", mock.Anything, mock.Anything).Return(session.Record{
			ID:        uuid.New(),
			UserID:    9,
			IssuedAt:  now.Add(-2 * time.Hour),
			ExpiresAt: now,
		}, nil)
		m := session.NewManager(store, session.WithClock(clock))

		res, err := m.Lookup(context.Background(), unknownToken)
		require.NoError(t, err)
		assert.Equal(t, session.StatusExpired, res.Status)

		id, ok, err := m.Resolve(context.Background(), unknownToken)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Zero(t, id)
	})

	t.Run("store reports expired", func(t *testing.T) {
		t.Parallel()
		store := &mockStore{}
		store.On("Get", mock.Anything, mock.Anything).Return(session.Record{}, session.ErrExpired)
		m := session.NewManager(store)

		res, err := m.Lookup(context.Background(), unknownToken)
		require.NoError(t, err)
		assert.Equal(t, session.StatusExpired, res.Status)
	})

	t.Run("valid record", func(t *testing.T) {
		t.Parallel()
		sid := uuid.New()
		store := &mockStore{}
		store.On("Get", mock.Anything, mock.Anything).Return(session.Record{
			ID:        sid,
			UserID:    9,
			IssuedAt:  now.Add(-time.Hour),
			ExpiresAt: now.Add(time.Nanosecond),
		}, nil)
		m := session.NewManager(store, session.WithClock(clock))

		res, err := m.Lookup(context.Background(), unknownToken)
		require.NoError(t, err)
		require.Equal(t, session.StatusValid, res.Status)
		assert.Equal(t, sid, res.Identity.SessionID)
		assert.Equal(t, int64(9), res.Identity.UserID)
	})

	t.Run("corrupt record is unknown", func(t *testing.T) {
		t.Parallel()
		store := &mockStore{}
		store.On("Get", mock.Anything, mock.Anything).Return(session.Record{}, session.ErrCorruptRecord)
		m := session.NewManager(store)

		res, err := m.Lookup(context.Background(), unknownToken)
		require.NoError(t, err)
		assert.Equal(t, session.StatusUnknown, res.Status)
	})

	t.Run("record without user is unknown", func(t *testing.T) {
		t.Parallel()
		store := &mockStore{}
		store.On("Get", mock.Anything, mock.Anything).Return(session.Record{
			ID:        uuid.New(),
			ExpiresAt: now.Add(time.Hour),
		}, nil)
		m := session.NewManager(store, session.WithClock(clock))

		res, err := m.Lookup(context.Background(), unknownToken)
		require.NoError(t, err)
		assert.Equal(t, session.StatusUnknown, res.Status)
	})

	t.Run("store outage fails closed", func(t *testing.T) {
		t.Parallel()
		store := &mockStore{}
		store.On("Get", mock.Anything, mock.Anything).Return(session.Record{}, errors.New("i/o timeout"))
		m := session.NewManager(store)

		id, ok, err := m.Resolve(context.Background(), unknownToken)
		require.Error(t, err)
		assert.ErrorIs(t, err, session.ErrStoreUnavailable)
		assert.False(t, ok)
		assert.Zero(t, id)
	})

	t.Run("store call is bounded by timeout", func(t *testing.T) {
		t.Parallel()
		store := &mockStore{}
		store.On("Get", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				ctx := args.Get(0).(context.Context)
				<-ctx.Done()
			}).
			Return(session.Record{}, context.DeadlineExceeded)
		m := session.NewManager(store, session.WithStoreTimeout(20*time.Millisecond))

		start := time.Now()
		_, _, err := m.Resolve(context.Background(), unknownToken)
		assert.ErrorIs(t, err, session.ErrStoreUnavailable)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Less(t, time.Since(start), time.Second)
	})
}

func TestManager_Destroy(t *testing.T) {
	t.Parallel()

	t.Run("destroyed session no longer resolves", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		m := session.NewManager(session.NewMemoryStore())

		sess, err := m.Create(ctx, 3)
		require.NoError(t, err)
		require.NoError(t, m.Destroy(ctx, sess.Token))

		_, ok, err := m.Resolve(ctx, sess.Token)
		require.NoError(t, err)
		assert.False(t, ok)

		// idempotent
		require.NoError(t, m.Destroy(ctx, sess.Token))
	})

	t.Run("malformed token is a no-op", func(t *testing.T) {
		t.Parallel()
		store := &mockStore{}
		m := session.NewManager(store)
		require.NoError(t, m.Destroy(context.Background(), "nope"))
		store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("store failure", func(t *testing.T) {
		t.Parallel()
		store := &mockStore{}
		store.On("Delete", mock.Anything, mock.Anything).Return(errors.New("broken pipe"))
		m := session.NewManager(store)

		err := m.Destroy(context.Background(), unknownToken)
		assert.ErrorIs(t, err, session.ErrDeleteSession)
		assert.ErrorIs(t, err, session.ErrStoreUnavailable)
	})
}

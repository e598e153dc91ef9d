package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/accesscore/core/session"
)

func newRedisStore(t *testing.T) (*session.RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return session.NewRedisStore(client), mr
}

func TestRedisStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Now().Truncate(time.Millisecond)
	rec := session.Record{
		ID:        uuid.New(),
		UserID:    77,
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Minute),
	}

	t.Run("save and get", func(t *testing.T) {
		t.Parallel()
		store, mr := newRedisStore(t)

		require.NoError(t, store.Save(ctx, "session:abc", rec))
		assert.True(t, mr.Exists("session:abc"))
		assert.Greater(t, mr.TTL("session:abc"), time.Duration(0))

		got, err := store.Get(ctx, "session:abc")
		require.NoError(t, err)
		assert.Equal(t, rec.ID, got.ID)
		assert.Equal(t, rec.UserID, got.UserID)
		assert.True(t, rec.IssuedAt.Equal(got.IssuedAt))
		assert.True(t, rec.ExpiresAt.Equal(got.ExpiresAt))
	})

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()
		store, _ := newRedisStore(t)

		_, err := store.Get(ctx, "session:missing")
		assert.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("key expires natively", func(t *testing.T) {
		t.Parallel()
		store, mr := newRedisStore(t)

		require.NoError(t, store.Save(ctx, "session:ttl", rec))
		mr.FastForward(2 * time.Minute)

		_, err := store.Get(ctx, "session:ttl")
		assert.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		t.Parallel()
		store, mr := newRedisStore(t)

		require.NoError(t, store.Save(ctx, "session:del", rec))
		require.NoError(t, store.Delete(ctx, "session:del"))
		require.NoError(t, store.Delete(ctx, "session:del"))
		assert.False(t, mr.Exists("session:del"))
	})

	t.Run("corrupt hash", func(t *testing.T) {
		t.Parallel()
		store, mr := newRedisStore(t)

		mr.HSet("session:bad", "id", "not-a-uuid", "uid", "1")
		_, err := store.Get(ctx, "session:bad")
		assert.ErrorIs(t, err, session.ErrCorruptRecord)
	})

	t.Run("server down", func(t *testing.T) {
		t.Parallel()
		store, mr := newRedisStore(t)
		mr.Close()

		_, err := store.Get(ctx, "session:abc")
		assert.ErrorIs(t, err, session.ErrStoreUnavailable)
		assert.ErrorIs(t, store.Save(ctx, "session:abc", rec), session.ErrStoreUnavailable)
		assert.ErrorIs(t, store.Delete(ctx, "session:abc"), session.ErrStoreUnavailable)
	})
}

func TestManager_WithRedisStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, mr := newRedisStore(t)
	m := session.NewManager(store, session.WithTTL(time.Minute))

	sess, err := m.Create(ctx, 11)
	require.NoError(t, err)

	id, ok, err := m.Resolve(ctx, sess.Token)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(11), id.UserID)

	mr.FastForward(2 * time.Minute)
	_, ok, err = m.Resolve(ctx, sess.Token)
	require.NoError(t, err)
	assert.False(t, ok)

	mr.Close()
	_, ok, err = m.Resolve(ctx, sess.Token)
	assert.ErrorIs(t, err, session.ErrStoreUnavailable)
	assert.False(t, ok)
}

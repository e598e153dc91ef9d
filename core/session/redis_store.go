package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	fieldID        = "id"
	fieldUserID    = "uid"
	fieldIssuedAt  = "iat"
	fieldExpiresAt = "exp"
)

// RedisStore persists sessions as Redis hashes. Each key carries an absolute
// PEXPIREAT so Redis evicts the record at Record.ExpiresAt.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	if client == nil {
		panic("session: redis client is required")
	}
	return &RedisStore{client: client}
}

// Get implements Store.
func (s *RedisStore) Get(ctx context.Context, key string) (Record, error) {
	fields, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return Record{}, fmt.Errorf("%w: redis hgetall: %w", ErrStoreUnavailable, err)
	}
	if len(fields) == 0 {
		return Record{}, ErrNotFound
	}
	return decodeRedisRecord(fields)
}

// Save implements Store.
func (s *RedisStore) Save(ctx context.Context, key string, rec Record) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key,
			fieldID, rec.ID.String(),
			fieldUserID, strconv.FormatInt(rec.UserID, 10),
			fieldIssuedAt, strconv.FormatInt(rec.IssuedAt.UnixMilli(), 10),
			fieldExpiresAt, strconv.FormatInt(rec.ExpiresAt.UnixMilli(), 10),
		)
		pipe.PExpireAt(ctx, key, rec.ExpiresAt)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: redis save: %w", ErrStoreUnavailable, err)
	}
	return nil
}

// Delete implements Store.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("%w: redis del: %w", ErrStoreUnavailable, err)
	}
	return nil
}

func decodeRedisRecord(fields map[string]string) (Record, error) {
	id, err := uuid.Parse(fields[fieldID])
	if err != nil {
		return Record{}, fmt.Errorf("%w: id: %w", ErrCorruptRecord, err)
	}
	userID, err := strconv.ParseInt(fields[fieldUserID], 10, 64)
	if err != nil {
		return Record{}, fmt.Errorf("%w: user id: %w", ErrCorruptRecord, err)
	}
	iat, err := strconv.ParseInt(fields[fieldIssuedAt], 10, 64)
	if err != nil {
		return Record{}, fmt.Errorf("%w: issued at: %w", ErrCorruptRecord, err)
	}
	exp, err := strconv.ParseInt(fields[fieldExpiresAt], 10, 64)
	if err != nil {
		return Record{}, fmt.Errorf("%w: expires at: %w", ErrCorruptRecord, err)
	}
	return Record{
		ID:        id,
		UserID:    userID,
		IssuedAt:  time.UnixMilli(iat),
		ExpiresAt: time.UnixMilli(exp),
	}, nil
}

package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoStore persists sessions in a MongoDB collection. A TTL index on
// expires_at lets the server remove records; Get also checks expiry because
// the TTL monitor runs only about once a minute.
type MongoStore struct {
	coll *mongo.Collection
	now  func() time.Time
}

type mongoRecord struct {
	Key       string    `bson:"_id"`
	ID        string    `bson:"session_id"`
	UserID    int64     `bson:"user_id"`
	IssuedAt  time.Time `bson:"issued_at"`
	ExpiresAt time.Time `bson:"expires_at"`
}

// NewMongoStore creates a MongoDB-backed session store and ensures the TTL index.
func NewMongoStore(ctx context.Context, coll *mongo.Collection) (*MongoStore, error) {
	if coll == nil {
		return nil, errors.New("session: mongo collection is required")
	}

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0).SetName("session_expires_at_ttl"),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create ttl index: %w", ErrStoreUnavailable, err)
	}

	return &MongoStore{coll: coll, now: time.Now}, nil
}

// Get implements Store.
func (s *MongoStore) Get(ctx context.Context, key string) (Record, error) {
	var doc mongoRecord
	err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: key}}).Decode(&doc)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return Record{}, ErrNotFound
	case err != nil:
		return Record{}, fmt.Errorf("%w: mongo find: %w", ErrStoreUnavailable, err)
	}

	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return Record{}, fmt.Errorf("%w: id: %w", ErrCorruptRecord, err)
	}
	if !s.now().Before(doc.ExpiresAt) {
		return Record{}, ErrExpired
	}

	return Record{
		ID:        id,
		UserID:    doc.UserID,
		IssuedAt:  doc.IssuedAt,
		ExpiresAt: doc.ExpiresAt,
	}, nil
}

// Save implements Store.
func (s *MongoStore) Save(ctx context.Context, key string, rec Record) error {
	doc := mongoRecord{
		Key:       key,
		ID:        rec.ID.String(),
		UserID:    rec.UserID,
		IssuedAt:  rec.IssuedAt.UTC(),
		ExpiresAt: rec.ExpiresAt.UTC(),
	}
	_, err := s.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: key}}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("%w: mongo replace: %w", ErrStoreUnavailable, err)
	}
	return nil
}

// Delete implements Store.
func (s *MongoStore) Delete(ctx context.Context, key string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: key}}); err != nil {
		return fmt.Errorf("%w: mongo delete: %w", ErrStoreUnavailable, err)
	}
	return nil
}

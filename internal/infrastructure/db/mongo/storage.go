package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/medicocare/hospital-portal/internal/core/domain"
	"github.com/medicocare/hospital-portal/internal/core/ports"
)

const storageCollection = "storage"

// Storage implements ports.DurableStorage with one document per key. The
// version field makes every conditional write a single filtered update.
type Storage struct {
	coll   *mongo.Collection
	prefix string
}

func NewStorage(db *mongo.Database, prefix string) *Storage {
	return &Storage{coll: db.Collection(storageCollection), prefix: prefix}
}

type storageDoc struct {
	Key       string    `bson:"_id"`
	Data      []byte    `bson:"data"`
	Version   int64     `bson:"version"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (s *Storage) Get(ctx context.Context, key string) (ports.VersionedValue, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc storageDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": s.key(key)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ports.VersionedValue{}, ports.ErrKeyNotFound
	}
	if err != nil {
		return ports.VersionedValue{}, fmt.Errorf("mongo get %s: %w", key, err)
	}
	return ports.VersionedValue{Data: doc.Data, Version: doc.Version}, nil
}

func (s *Storage) CompareAndSet(ctx context.Context, key string, data []byte, expected int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	next := expected + 1
	now := time.Now().UTC()

	if expected == 0 {
		_, err := s.coll.InsertOne(ctx, storageDoc{Key: s.key(key), Data: data, Version: next, UpdatedAt: now})
		if mongo.IsDuplicateKeyError(err) {
			return 0, domain.ErrVersionConflict
		}
		if err != nil {
			return 0, fmt.Errorf("mongo cas %s: %w", key, err)
		}
		return next, nil
	}

	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": s.key(key), "version": expected},
		bson.M{"$set": bson.M{"data": data, "version": next, "updated_at": now}},
	)
	if err != nil {
		return 0, fmt.Errorf("mongo cas %s: %w", key, err)
	}
	if res.MatchedCount == 0 {
		return 0, domain.ErrVersionConflict
	}
	return next, nil
}

func (s *Storage) Set(ctx context.Context, key string, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": s.key(key)},
		bson.M{
			"$set": bson.M{"data": data, "updated_at": time.Now().UTC()},
			"$inc": bson.M{"version": int64(1)},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("mongo set %s: %w", key, err)
	}
	return nil
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": s.key(key)}); err != nil {
		return fmt.Errorf("mongo delete %s: %w", key, err)
	}
	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.coll.Database().Client().Ping(ctx, nil)
}

func (s *Storage) key(key string) string {
	return s.prefix + key
}

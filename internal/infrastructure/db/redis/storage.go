package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/medicocare/hospital-portal/internal/core/domain"
	"github.com/medicocare/hospital-portal/internal/core/ports"
)

const (
	fieldData    = "data"
	fieldVersion = "version"
)

// Storage implements ports.DurableStorage with one hash per key holding the
// payload and its version. Compare-and-set relies on WATCH/MULTI.
//
// Key format: <prefix><key>
type Storage struct {
	client *redis.Client
	prefix string
}

func NewStorage(client *redis.Client, prefix string) *Storage {
	return &Storage{client: client, prefix: prefix}
}

func (s *Storage) Get(ctx context.Context, key string) (ports.VersionedValue, error) {
	fields, err := s.client.HGetAll(ctx, s.key(key)).Result()
	if err != nil {
		return ports.VersionedValue{}, fmt.Errorf("redis get %s: %w", key, err)
	}
	data, ok := fields[fieldData]
	if !ok {
		return ports.VersionedValue{}, ports.ErrKeyNotFound
	}
	version, err := strconv.ParseInt(fields[fieldVersion], 10, 64)
	if err != nil {
		return ports.VersionedValue{}, fmt.Errorf("redis get %s: bad version: %w", key, err)
	}
	return ports.VersionedValue{Data: []byte(data), Version: version}, nil
}

func (s *Storage) CompareAndSet(ctx context.Context, key string, data []byte, expected int64) (int64, error) {
	k := s.key(key)
	var next int64

	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.HGet(ctx, k, fieldVersion).Int64()
		if errors.Is(err, redis.Nil) {
			current = 0
		} else if err != nil {
			return err
		}
		if current != expected {
			return domain.ErrVersionConflict
		}

		next = current + 1
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.HSet(ctx, k, fieldData, data, fieldVersion, next)
			return nil
		})
		return err
	}, k)

	switch {
	case err == nil:
		return next, nil
	case errors.Is(err, domain.ErrVersionConflict), errors.Is(err, redis.TxFailedErr):
		return 0, domain.ErrVersionConflict
	default:
		return 0, fmt.Errorf("redis cas %s: %w", key, err)
	}
}

func (s *Storage) Set(ctx context.Context, key string, data []byte) error {
	k := s.key(key)
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, k, fieldData, data)
		p.HIncrBy(ctx, k, fieldVersion, 1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("redis delete %s: %w", key, err)
	}
	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Storage) key(key string) string {
	return s.prefix + key
}

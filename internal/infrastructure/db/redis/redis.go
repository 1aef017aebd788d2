// Package redis implements the durable storage and change notification ports
// on Redis.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const defaultTimeout = 5 * time.Second

// Config captures the settings for establishing a Redis connection.
type Config struct {
	Addr    string
	DB      int
	Prefix  string
	Timeout time.Duration
}

// Backend bundles the storage and the notifier that share one client.
type Backend struct {
	Client   *redis.Client
	Storage  *Storage
	Notifier *Notifier
}

// Open connects to Redis, verifies connectivity with a ping and wires the
// storage and notifier on top of the client.
func Open(ctx context.Context, cfg Config, log zerolog.Logger) (*Backend, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:       cfg.Addr,
		DB:         cfg.DB,
		ClientName: "hospital-portal",
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &Backend{
		Client:   client,
		Storage:  NewStorage(client, cfg.Prefix),
		Notifier: NewNotifier(client, cfg.Prefix, log),
	}, nil
}

func (b *Backend) Close() error {
	return b.Client.Close()
}

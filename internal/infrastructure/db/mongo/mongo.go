// Package mongo implements the durable storage port on MongoDB.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

// Config captures the settings required to open the storage database.
type Config struct {
	URI      string
	Database string
	Prefix   string
	Timeout  time.Duration
}

// Backend holds the client together with the storage built on it.
type Backend struct {
	Client  *mongo.Client
	Storage *Storage
}

// Open establishes a MongoDB client, verifies connectivity with a ping and
// returns the storage for the configured database.
func Open(ctx context.Context, cfg Config) (*Backend, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().
		ApplyURI(cfg.URI).
		SetAppName("hospital-portal"))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return &Backend{
		Client:  client,
		Storage: NewStorage(client.Database(cfg.Database), cfg.Prefix),
	}, nil
}

func (b *Backend) Close(ctx context.Context) error {
	return b.Client.Disconnect(ctx)
}

package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/medicocare/hospital-portal/internal/core/domain"
)

// Notifier broadcasts storage changes over Redis pub/sub so that every
// instance sharing the backend hears about them.
//
// Channel: <prefix>storage:changed
type Notifier struct {
	client  *redis.Client
	channel string
	log     zerolog.Logger
}

func NewNotifier(client *redis.Client, prefix string, log zerolog.Logger) *Notifier {
	return &Notifier{client: client, channel: prefix + "storage:changed", log: log}
}

func (n *Notifier) Publish(ctx context.Context, change domain.StorageChange) error {
	payload, err := json.Marshal(change)
	if err != nil {
		return fmt.Errorf("encode storage change: %w", err)
	}
	if err := n.client.Publish(ctx, n.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish storage change: %w", err)
	}
	return nil
}

// Subscribe calls fn for every change until ctx is cancelled.
func (n *Notifier) Subscribe(ctx context.Context, fn func(domain.StorageChange)) error {
	sub := n.client.Subscribe(ctx, n.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", n.channel, err)
	}

	msgs := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			var change domain.StorageChange
			if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
				n.log.Warn().Err(err).Str("channel", n.channel).Msg("dropping malformed storage change")
				continue
			}
			fn(change)
		}
	}
}

package memory

import (
	"context"
	"sync"

	"github.com/medicocare/hospital-portal/internal/core/domain"
)

// Notifier fans changes out to in-process subscribers only.
type Notifier struct {
	mu   sync.RWMutex
	next int
	subs map[int]func(domain.StorageChange)
}

func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]func(domain.StorageChange))}
}

func (n *Notifier) Publish(_ context.Context, change domain.StorageChange) error {
	n.mu.RLock()
	fns := make([]func(domain.StorageChange), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.mu.RUnlock()

	for _, fn := range fns {
		fn(change)
	}
	return nil
}

// Subscribe registers fn and blocks until ctx is cancelled.
func (n *Notifier) Subscribe(ctx context.Context, fn func(domain.StorageChange)) error {
	n.mu.Lock()
	id := n.next
	n.next++
	n.subs[id] = fn
	n.mu.Unlock()

	<-ctx.Done()

	n.mu.Lock()
	delete(n.subs, id)
	n.mu.Unlock()
	return nil
}

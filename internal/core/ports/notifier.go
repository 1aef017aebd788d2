package ports

import (
	"context"

	"github.com/medicocare/hospital-portal/internal/core/domain"
)

// ChangeNotifier broadcasts storage changes to every interested listener,
// including other instances sharing the same storage backend.
type ChangeNotifier interface {
	Publish(ctx context.Context, change domain.StorageChange) error
	// Subscribe calls fn for every change until ctx is cancelled.
	Subscribe(ctx context.Context, fn func(domain.StorageChange)) error
}

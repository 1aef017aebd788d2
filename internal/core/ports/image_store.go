package ports

import (
	"context"
	"errors"
)

// ErrImageNotFound is returned when a user has no profile image.
var ErrImageNotFound = errors.New("profile image not found")

// ProfileImageStore keeps one data-URL encoded image per user.
type ProfileImageStore interface {
	Put(ctx context.Context, userID, dataURL string) error
	Get(ctx context.Context, userID string) (string, error)
	Delete(ctx context.Context, userID string) error
}

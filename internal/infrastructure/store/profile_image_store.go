package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/medicocare/hospital-portal/internal/core/domain"
	"github.com/medicocare/hospital-portal/internal/core/ports"
)

// ProfileImageStore keeps avatars as raw data URLs under
// "profile_image_{userId}".
type ProfileImageStore struct {
	storage ports.DurableStorage
}

func NewProfileImageStore(storage ports.DurableStorage) *ProfileImageStore {
	return &ProfileImageStore{storage: storage}
}

func (s *ProfileImageStore) Put(ctx context.Context, userID, dataURL string) error {
	if err := s.storage.Set(ctx, domain.ProfileImageKey(userID), []byte(dataURL)); err != nil {
		return fmt.Errorf("write profile image: %w", err)
	}
	return nil
}

func (s *ProfileImageStore) Get(ctx context.Context, userID string) (string, error) {
	v, err := s.storage.Get(ctx, domain.ProfileImageKey(userID))
	if errors.Is(err, ports.ErrKeyNotFound) {
		return "", ports.ErrImageNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read profile image: %w", err)
	}
	return string(v.Data), nil
}

func (s *ProfileImageStore) Delete(ctx context.Context, userID string) error {
	if err := s.storage.Delete(ctx, domain.ProfileImageKey(userID)); err != nil {
		return fmt.Errorf("delete profile image: %w", err)
	}
	return nil
}

package service

import (
	"context"

	"github.com/medicocare/hospital-portal/internal/core/domain"
	"github.com/medicocare/hospital-portal/internal/core/ports"
)

// ProfileImageService manages the avatar of whoever is logged in.
type ProfileImageService struct {
	sessions ports.SessionManager
	images   ports.ProfileImageStore
}

func NewProfileImageService(sessions ports.SessionManager, images ports.ProfileImageStore) *ProfileImageService {
	return &ProfileImageService{sessions: sessions, images: images}
}

// Upload stores dataURL for the logged-in user. The write happens under the
// session lock so a concurrent DeleteAccount cannot leave it orphaned.
func (s *ProfileImageService) Upload(ctx context.Context, dataURL string) error {
	return s.sessions.WithCurrentUser(ctx, func(user *domain.User) error {
		if _, _, err := domain.DecodeImageDataURL(dataURL); err != nil {
			return err
		}
		return s.images.Put(ctx, user.ID, dataURL)
	})
}

func (s *ProfileImageService) Get(ctx context.Context) (string, error) {
	var img string
	err := s.sessions.WithCurrentUser(ctx, func(user *domain.User) error {
		var err error
		img, err = s.images.Get(ctx, user.ID)
		return err
	})
	return img, err
}

func (s *ProfileImageService) Remove(ctx context.Context) error {
	return s.sessions.WithCurrentUser(ctx, func(user *domain.User) error {
		return s.images.Delete(ctx, user.ID)
	})
}

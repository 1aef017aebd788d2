package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/medicocare/hospital-portal/internal/core/domain"
	"github.com/medicocare/hospital-portal/internal/core/ports"
)

// SessionStore mirrors the logged-in user under the "user" key. The password
// hash is never written there.
type SessionStore struct {
	storage ports.DurableStorage
}

func NewSessionStore(storage ports.DurableStorage) *SessionStore {
	return &SessionStore{storage: storage}
}

func (s *SessionStore) Load(ctx context.Context) (*domain.User, error) {
	v, err := s.storage.Get(ctx, domain.KeySession)
	if errors.Is(err, ports.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	var su storedUser
	if err := json.Unmarshal(v.Data, &su); err != nil {
		return nil, fmt.Errorf("decode session: %w: %w", domain.ErrCorruptRecord, err)
	}
	return su.toDomain()
}

func (s *SessionStore) Save(ctx context.Context, user *domain.User) error {
	su := toStored(user)
	su.PasswordHash = ""

	data, err := json.Marshal(su)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.storage.Set(ctx, domain.KeySession, data); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func (s *SessionStore) Clear(ctx context.Context) error {
	if err := s.storage.Delete(ctx, domain.KeySession); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

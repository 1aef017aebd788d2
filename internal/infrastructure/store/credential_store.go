// Package store implements the account, session and avatar stores on top of
// a ports.DurableStorage backend.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/medicocare/hospital-portal/internal/core/domain"
	"github.com/medicocare/hospital-portal/internal/core/ports"
	"github.com/medicocare/hospital-portal/internal/pkg/metrics"
)

// maxAttempts bounds the optimistic retry loop on version conflicts.
const maxAttempts = 5

// Seed administrator credentials.
const (
	SeedAdminID       = "1"
	SeedAdminEmail    = "admin@gmail.com"
	SeedAdminPassword = "admin123"
)

// CredentialStore keeps every account as one JSON array under the "users"
// key. Each call reads and rewrites the whole collection; writes are
// compare-and-set against the version that was read.
type CredentialStore struct {
	storage ports.DurableStorage
	hasher  ports.PasswordHasher
	log     zerolog.Logger
	now     func() time.Time
}

func NewCredentialStore(storage ports.DurableStorage, hasher ports.PasswordHasher, log zerolog.Logger) *CredentialStore {
	return &CredentialStore{
		storage: storage,
		hasher:  hasher,
		log:     log,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Initialize seeds the administrator when the collection does not exist yet.
// An existing collection is never touched, even when empty.
func (s *CredentialStore) Initialize(ctx context.Context) error {
	_, err := s.storage.Get(ctx, domain.KeyUsers)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ports.ErrKeyNotFound) {
		return fmt.Errorf("initialize users: %w", err)
	}

	data, err := s.seedCollection()
	if err != nil {
		return err
	}
	if _, err := s.storage.CompareAndSet(ctx, domain.KeyUsers, data, 0); err != nil {
		if errors.Is(err, domain.ErrVersionConflict) {
			// Another writer seeded first.
			return nil
		}
		return fmt.Errorf("initialize users: %w", err)
	}

	s.log.Info().Str("email", SeedAdminEmail).Msg("seeded administrator account")
	return nil
}

func (s *CredentialStore) FindByCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	users, _, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Email != email {
			continue
		}
		if !s.hasher.Compare(u.PasswordHash, password) {
			return nil, domain.ErrInvalidCredentials
		}
		return u.toDomain()
	}
	return nil, domain.ErrInvalidCredentials
}

func (s *CredentialStore) FindByID(ctx context.Context, id string) (*domain.User, error) {
	users, _, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.ID == id {
			return u.toDomain()
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *CredentialStore) Exists(ctx context.Context, email string) (bool, error) {
	users, _, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	return indexByEmail(users, email) >= 0, nil
}

func (s *CredentialStore) Insert(ctx context.Context, user *domain.User) error {
	return s.mutate(ctx, func(users []storedUser) ([]storedUser, error) {
		if indexByEmail(users, user.Email) >= 0 {
			return nil, domain.ErrEmailTaken
		}
		return append(users, toStored(user)), nil
	})
}

func (s *CredentialStore) UpdateByID(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	var updated *domain.User
	err := s.mutate(ctx, func(users []storedUser) ([]storedUser, error) {
		i := indexByID(users, id)
		if i < 0 {
			return nil, domain.ErrUserNotFound
		}
		if patch.ChangesEmail(users[i].Email) && indexByEmail(users, *patch.Email) >= 0 {
			return nil, domain.ErrEmailTaken
		}

		u, err := users[i].toDomain()
		if err != nil {
			return nil, err
		}
		if err := u.Apply(patch, s.now()); err != nil {
			return nil, err
		}
		users[i] = toStored(u)
		updated = u
		return users, nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *CredentialStore) DeleteByID(ctx context.Context, id string) error {
	return s.mutate(ctx, func(users []storedUser) ([]storedUser, error) {
		i := indexByID(users, id)
		if i < 0 {
			return nil, domain.ErrUserNotFound
		}
		return append(users[:i], users[i+1:]...), nil
	})
}

func (s *CredentialStore) List(ctx context.Context) ([]*domain.User, error) {
	users, _, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.User, 0, len(users))
	for _, su := range users {
		u, err := su.toDomain()
		if err != nil {
			s.log.Warn().Err(err).Str("user_id", su.ID).Msg("skipping unreadable user record")
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (s *CredentialStore) Reset(ctx context.Context) error {
	data, err := s.seedCollection()
	if err != nil {
		return err
	}
	if err := s.storage.Set(ctx, domain.KeyUsers, data); err != nil {
		return fmt.Errorf("reset users: %w", err)
	}
	s.log.Warn().Msg("credential store reset to seed administrator")
	return nil
}

// load returns the collection and its version; an absent key is an empty
// collection at version 0.
func (s *CredentialStore) load(ctx context.Context) ([]storedUser, int64, error) {
	v, err := s.storage.Get(ctx, domain.KeyUsers)
	if errors.Is(err, ports.ErrKeyNotFound) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("read users: %w", err)
	}

	var users []storedUser
	if len(v.Data) > 0 {
		if err := json.Unmarshal(v.Data, &users); err != nil {
			return nil, 0, fmt.Errorf("decode users: %w", err)
		}
	}
	return users, v.Version, nil
}

// mutate applies fn to a fresh read of the collection and writes the result
// back, retrying from a new read when another writer got in between.
func (s *CredentialStore) mutate(ctx context.Context, fn func([]storedUser) ([]storedUser, error)) error {
	for attempt := 1; ; attempt++ {
		users, version, err := s.load(ctx)
		if err != nil {
			return err
		}
		next, err := fn(users)
		if err != nil {
			return err
		}
		if next == nil {
			next = []storedUser{}
		}
		data, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("encode users: %w", err)
		}

		_, err = s.storage.CompareAndSet(ctx, domain.KeyUsers, data, version)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrVersionConflict) {
			return fmt.Errorf("write users: %w", err)
		}

		metrics.StorageConflictsTotal.WithLabelValues(domain.KeyUsers).Inc()
		if attempt == maxAttempts {
			return fmt.Errorf("write users after %d attempts: %w", attempt, err)
		}
		s.log.Debug().Int("attempt", attempt).Msg("users collection changed underneath, retrying")
	}
}

func (s *CredentialStore) seedCollection() ([]byte, error) {
	hash, err := s.hasher.Hash(SeedAdminPassword)
	if err != nil {
		return nil, err
	}
	now := s.now()
	admin := storedUser{
		ID:           SeedAdminID,
		Name:         "Admin User",
		Email:        SeedAdminEmail,
		PasswordHash: hash,
		Phone:        "9876543210",
		DateOfBirth:  "1980-01-01",
		Address:      "123 Admin Street",
		Role:         string(domain.RoleAdmin),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	data, err := json.Marshal([]storedUser{admin})
	if err != nil {
		return nil, fmt.Errorf("encode seed: %w", err)
	}
	return data, nil
}

func indexByEmail(users []storedUser, email string) int {
	for i, u := range users {
		if u.Email == email {
			return i
		}
	}
	return -1
}

func indexByID(users []storedUser, id string) int {
	for i, u := range users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

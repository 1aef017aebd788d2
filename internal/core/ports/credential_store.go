package ports

import (
	"context"

	"github.com/medicocare/hospital-portal/internal/core/domain"
)

// CredentialStore is the system of record for accounts, keyed by email.
type CredentialStore interface {
	// Initialize seeds the built-in administrator when no collection exists.
	Initialize(ctx context.Context) error
	FindByCredentials(ctx context.Context, email, password string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Exists(ctx context.Context, email string) (bool, error)
	// Insert adds user atomically with the uniqueness check; a taken email
	// yields domain.ErrEmailTaken.
	Insert(ctx context.Context, user *domain.User) error
	UpdateByID(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error)
	DeleteByID(ctx context.Context, id string) error
	List(ctx context.Context) ([]*domain.User, error)
	// Reset replaces the whole collection with the seed administrator.
	Reset(ctx context.Context) error
}

// PasswordHasher turns secrets into salted slow hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// SessionStore persists the logged-in user so the session survives restarts.
type SessionStore interface {
	// Load returns nil, nil when no session is persisted.
	Load(ctx context.Context) (*domain.User, error)
	Save(ctx context.Context, user *domain.User) error
	Clear(ctx context.Context) error
}

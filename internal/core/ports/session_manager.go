package ports

import (
	"context"

	"github.com/medicocare/hospital-portal/internal/core/domain"
)

// RegisterInput carries the registration form.
type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	Phone           string
	DateOfBirth     string
	Address         string
	Role            string
	Specialization  string
	AssignedDoctor  string
	Department      string
}

// ProfileInput is a partial profile update. Nil fields are left untouched.
type ProfileInput struct {
	Name           *string
	Email          *string
	Phone          *string
	DateOfBirth    *string
	Address        *string
	Specialization *string
	AssignedDoctor *string
	Department     *string
}

// PasswordChangeInput carries the settings-screen password form.
type PasswordChangeInput struct {
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

// SessionManager tracks who is logged in for this application instance.
type SessionManager interface {
	Bootstrap(ctx context.Context) error
	Current() domain.Session
	Login(ctx context.Context, email, password string) (*domain.User, error)
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Logout(ctx context.Context) error
	UpdateProfile(ctx context.Context, in ProfileInput) (*domain.User, error)
	ChangePassword(ctx context.Context, in PasswordChangeInput) error
	DeleteAccount(ctx context.Context) error
	ResetAllUsers(ctx context.Context) error
	Revalidate(ctx context.Context) error
	// WithCurrentUser runs fn for the logged-in user while no other session
	// operation can run.
	WithCurrentUser(ctx context.Context, fn func(user *domain.User) error) error
}

// UserFilter narrows the admin user directory.
type UserFilter struct {
	Search string
	Role   domain.Role
}

// UserDirectory lists accounts for the user-management screen.
type UserDirectory interface {
	ListUsers(ctx context.Context, filter UserFilter) ([]*domain.User, error)
}

// PreferenceService persists UI preferences shared by every view.
type PreferenceService interface {
	Language(ctx context.Context) (domain.Locale, error)
	SetLanguage(ctx context.Context, locale domain.Locale) error
}

// ProfileImageService manages the avatar of the logged-in user.
type ProfileImageService interface {
	Upload(ctx context.Context, dataURL string) error
	Get(ctx context.Context) (string, error)
	Remove(ctx context.Context) error
}

// TokenIssuer signs bearer tokens for the account API.
type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
}

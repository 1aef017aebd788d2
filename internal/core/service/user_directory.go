package service

import (
	"context"
	"strings"

	"github.com/medicocare/hospital-portal/internal/core/domain"
	"github.com/medicocare/hospital-portal/internal/core/ports"
)

// UserDirectory backs the user-management screen.
type UserDirectory struct {
	store ports.CredentialStore
}

func NewUserDirectory(store ports.CredentialStore) *UserDirectory {
	return &UserDirectory{store: store}
}

// ListUsers returns every account matching filter, without password hashes.
// Search matches name, email or phone, ignoring case.
func (d *UserDirectory) ListUsers(ctx context.Context, filter ports.UserFilter) ([]*domain.User, error) {
	users, err := d.store.List(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(filter.Search))
	out := make([]*domain.User, 0, len(users))
	for _, u := range users {
		if filter.Role != "" && u.Role() != filter.Role {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(u.Name), q) &&
			!strings.Contains(strings.ToLower(u.Email), q) &&
			!strings.Contains(strings.ToLower(u.Phone), q) {
			continue
		}
		out = append(out, u.Public())
	}
	return out, nil
}

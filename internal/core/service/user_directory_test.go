package service

import (
	"context"
	"testing"

	"github.com/medicocare/hospital-portal/internal/core/domain"
	"github.com/medicocare/hospital-portal/internal/core/ports"
)

func TestUserDirectory_ListUsers(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	m := f.bootstrapped(t)

	doc := validRegistration("house@example.com")
	doc.Name, doc.Role, doc.Specialization = "Gregory House", "doctor", "Diagnostics"
	if _, err := m.Register(ctx, doc); err != nil {
		t.Fatalf("register doctor: %v", err)
	}
	nurse := validRegistration("joy@example.com")
	nurse.Name, nurse.Role, nurse.Department, nurse.Phone = "Nurse Joy", "nurse", "ER", "9555500000"
	if _, err := m.Register(ctx, nurse); err != nil {
		t.Fatalf("register nurse: %v", err)
	}

	dir := NewUserDirectory(f.store)
	cases := []struct {
		name   string
		filter ports.UserFilter
		want   int
	}{
		{"all", ports.UserFilter{}, 3},
		{"by role", ports.UserFilter{Role: domain.RoleDoctor}, 1},
		{"name ignores case", ports.UserFilter{Search: "HOUSE"}, 1},
		{"email", ports.UserFilter{Search: "gmail"}, 1},
		{"phone", ports.UserFilter{Search: "95555"}, 1},
		{"search and role", ports.UserFilter{Search: "joy", Role: domain.RoleDoctor}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			users, err := dir.ListUsers(ctx, tc.filter)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(users) != tc.want {
				t.Fatalf("expected %d users, got %d", tc.want, len(users))
			}
			for _, u := range users {
				if u.PasswordHash != "" {
					t.Fatalf("directory leaked a password hash")
				}
			}
		})
	}
}

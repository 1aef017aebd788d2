package service

import (
	"testing"

	"github.com/medicocare/hospital-portal/internal/core/domain"
)

func sessionFor(role domain.Role) domain.Session {
	d, _ := domain.NewRoleDetails(role, "Cardiology", "d1", "ER")
	return domain.Session{
		State: domain.SessionAuthenticated,
		User:  &domain.User{ID: "u1", Email: "u@example.com", Details: d},
	}
}

func TestAccessGuard_Evaluate(t *testing.T) {
	admins := []domain.Role{domain.RoleAdmin}

	cases := []struct {
		name     string
		session  domain.Session
		path     string
		allowed  []domain.Role
		kind     DecisionKind
		location string
	}{
		{"loading waits", domain.Session{State: domain.SessionLoading}, "/dashboard", nil, Wait, ""},
		{"anonymous to login", domain.Session{State: domain.SessionUnauthenticated}, "/records", nil, RedirectLogin, "/login?from=%2Frecords"},
		{"anonymous admin area", domain.Session{State: domain.SessionUnauthenticated}, "/admin/users", admins, RedirectLogin, "/login?from=%2Fadmin%2Fusers"},
		{"any role allowed", sessionFor(domain.RoleNurse), "/records", nil, Render, ""},
		{"admin allowed", sessionFor(domain.RoleAdmin), "/admin/users", admins, Render, ""},
		{"doctor bounced", sessionFor(domain.RoleDoctor), "/admin/users", admins, RedirectLanding, "/dashboard"},
		{"patient bounced", sessionFor(domain.RolePatient), "/admin/billing", admins, RedirectLanding, "/dashboard"},
		{"admin bounced to admin landing", sessionFor(domain.RoleAdmin), "/doctor", []domain.Role{domain.RoleDoctor}, RedirectLanding, "/admin/dashboard"},
	}

	g := NewAccessGuard()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := g.Evaluate(tc.session, tc.path, tc.allowed)
			if d.Kind != tc.kind {
				t.Fatalf("expected %v, got %v", tc.kind, d.Kind)
			}
			if d.Location != tc.location {
				t.Fatalf("expected location %q, got %q", tc.location, d.Location)
			}
		})
	}
}

func TestReturnPath(t *testing.T) {
	cases := []struct {
		from string
		role domain.Role
		want string
	}{
		{"/records", domain.RolePatient, "/records"},
		{"/admin/users?q=a", domain.RoleAdmin, "/admin/users?q=a"},
		{"", domain.RoleAdmin, "/admin/dashboard"},
		{"", domain.RoleDoctor, "/dashboard"},
		{"https://evil.example.com/", domain.RoleNurse, "/dashboard"},
		{"//evil.example.com", domain.RoleNurse, "/dashboard"},
		{"/\\evil.example.com", domain.RoleNurse, "/dashboard"},
		{"/login", domain.RoleNurse, "/dashboard"},
	}
	for _, tc := range cases {
		if got := ReturnPath(tc.from, tc.role); got != tc.want {
			t.Errorf("ReturnPath(%q, %s) = %q, want %q", tc.from, tc.role, got, tc.want)
		}
	}
}

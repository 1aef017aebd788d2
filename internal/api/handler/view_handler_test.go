package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/medicocare/hospital-portal/internal/core/domain"
)

func TestViewHandler_Index(t *testing.T) {
	cases := map[string]struct {
		session  domain.Session
		code     int
		location string
	}{
		"loading":         {session: domain.Session{State: domain.SessionLoading}, code: http.StatusServiceUnavailable},
		"unauthenticated": {session: domain.Session{State: domain.SessionUnauthenticated}, code: http.StatusFound, location: "/login"},
		"admin":           {session: authenticated(testUser(domain.RoleAdmin)), code: http.StatusFound, location: "/admin/dashboard"},
		"receptionist":    {session: authenticated(testUser(domain.RoleReceptionist)), code: http.StatusFound, location: "/dashboard"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			h := NewViewHandler(&stubSessions{current: tc.session})

			c, rec := newContext(http.MethodGet, "/", "")
			if err := h.Index(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			if got := rec.Header().Get("Location"); got != tc.location {
				t.Fatalf("location: got %q, want %q", got, tc.location)
			}
		})
	}
}

func TestViewHandler_Login_EchoesFrom(t *testing.T) {
	h := NewViewHandler(&stubSessions{})

	c, rec := newContext(http.MethodGet, "/login?from=%2Fadmin%2Fusers", "")
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp viewResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.View != "login" || resp.From != "/admin/users" {
		t.Fatalf("unexpected view: %+v", resp)
	}
}

func TestViewHandler_Screen(t *testing.T) {
	h := NewViewHandler(&stubSessions{current: authenticated(testUser(domain.RoleDoctor))})

	c, rec := newContext(http.MethodGet, "/records", "")
	if err := h.Screen("medical-records")(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp viewResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.View != "medical-records" || resp.User == nil || resp.User.Role != "doctor" {
		t.Fatalf("unexpected view: %+v", resp)
	}
	if len(resp.Menu) != len(domain.MenuFor(domain.RoleDoctor)) {
		t.Fatalf("expected the doctor menu, got %+v", resp.Menu)
	}
}

package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/medicocare/hospital-portal/internal/core/domain"
	"github.com/medicocare/hospital-portal/internal/core/ports"
)

type stubSessions struct {
	current    domain.Session
	loginFn    func(ctx context.Context, email, password string) (*domain.User, error)
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	updateFn   func(ctx context.Context, in ports.ProfileInput) (*domain.User, error)
	changeFn   func(ctx context.Context, in ports.PasswordChangeInput) error
	deleteFn   func(ctx context.Context) error
	resetFn    func(ctx context.Context) error
	loggedOut  bool
}

func (s *stubSessions) Bootstrap(ctx context.Context) error  { return nil }
func (s *stubSessions) Current() domain.Session              { return s.current }
func (s *stubSessions) Revalidate(ctx context.Context) error { return nil }

func (s *stubSessions) Login(ctx context.Context, email, password string) (*domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubSessions) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubSessions) Logout(ctx context.Context) error {
	s.loggedOut = true
	return nil
}

func (s *stubSessions) UpdateProfile(ctx context.Context, in ports.ProfileInput) (*domain.User, error) {
	return s.updateFn(ctx, in)
}

func (s *stubSessions) ChangePassword(ctx context.Context, in ports.PasswordChangeInput) error {
	return s.changeFn(ctx, in)
}

func (s *stubSessions) DeleteAccount(ctx context.Context) error { return s.deleteFn(ctx) }

func (s *stubSessions) WithCurrentUser(ctx context.Context, fn func(user *domain.User) error) error {
	if !s.current.Authenticated() {
		return domain.ErrNoSession
	}
	return fn(s.current.User)
}
func (s *stubSessions) ResetAllUsers(ctx context.Context) error { return s.resetFn(ctx) }

type stubTokens struct {
	token string
	err   error
}

func (s stubTokens) Issue(user *domain.User) (string, error) { return s.token, s.err }

func testUser(role domain.Role) *domain.User {
	ts := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	u := &domain.User{
		ID:        "user-1",
		Name:      "Asha Rao",
		Email:     "asha@example.com",
		Phone:     "555-0101",
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	switch role {
	case domain.RoleAdmin:
		u.Details = domain.AdminDetails{}
	case domain.RoleDoctor:
		u.Details = domain.DoctorDetails{Specialization: "Cardiology"}
	case domain.RoleNurse:
		u.Details = domain.NurseDetails{Department: "ICU"}
	case domain.RoleReceptionist:
		u.Details = domain.ReceptionistDetails{}
	default:
		u.Details = domain.PatientDetails{AssignedDoctor: "doc-1"}
	}
	return u
}

func authenticated(u *domain.User) domain.Session {
	return domain.Session{State: domain.SessionAuthenticated, User: u}
}

// newContext builds an echo context for method and target with an optional
// JSON body. The echo instance carries the request validator.
func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/medicocare/hospital-portal/internal/core/domain"
	"github.com/medicocare/hospital-portal/internal/core/ports"
	"github.com/medicocare/hospital-portal/internal/pkg/metrics"
)

// SessionManager owns the single session of this application instance.
//
// Every transition runs under opMu, one at a time, so a slow password hash
// cannot interleave with a logout. The snapshot returned by Current is
// guarded by its own lock and never blocks on an operation in flight.
type SessionManager struct {
	opMu sync.Mutex

	mu    sync.RWMutex
	state domain.SessionState
	user  *domain.User

	store    ports.CredentialStore
	sessions ports.SessionStore
	images   ports.ProfileImageStore
	hasher   ports.PasswordHasher
	notifier ports.ChangeNotifier
	log      zerolog.Logger

	now   func() time.Time
	newID func() string
}

func NewSessionManager(
	store ports.CredentialStore,
	sessions ports.SessionStore,
	images ports.ProfileImageStore,
	hasher ports.PasswordHasher,
	notifier ports.ChangeNotifier,
	log zerolog.Logger,
) *SessionManager {
	return &SessionManager{
		state:    domain.SessionLoading,
		store:    store,
		sessions: sessions,
		images:   images,
		hasher:   hasher,
		notifier: notifier,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
}

// Current returns a snapshot of the session. The user is a private copy.
func (m *SessionManager) Current() domain.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return domain.Session{State: m.state, User: m.user.Public()}
}

// Bootstrap seeds the credential store, then restores the persisted session
// only if its user still exists. The fresh record from the store replaces
// the persisted copy. A persisted session that cannot be read is dropped like
// a stale one. On any other error the session stays in the loading state so
// the caller can retry.
func (m *SessionManager) Bootstrap(ctx context.Context) error {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	if err := m.store.Initialize(ctx); err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}

	persisted, err := m.sessions.Load(ctx)
	if errors.Is(err, domain.ErrCorruptRecord) {
		m.log.Warn().Err(err).Msg("dropping unreadable persisted session")
		return m.dropStaleSession(ctx)
	}
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	if persisted == nil {
		m.setUnauthenticated("bootstrap")
		return nil
	}

	fresh, err := m.store.FindByID(ctx, persisted.ID)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		m.log.Info().Str("user_id", persisted.ID).Msg("dropping persisted session of deleted user")
		return m.dropStaleSession(ctx)
	case errors.Is(err, domain.ErrCorruptRecord):
		m.log.Warn().Err(err).Str("user_id", persisted.ID).Msg("dropping persisted session of unreadable user")
		return m.dropStaleSession(ctx)
	case err != nil:
		return fmt.Errorf("bootstrap: %w", err)
	}

	if err := m.sessions.Save(ctx, fresh); err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	m.setAuthenticated(fresh, "bootstrap")
	m.log.Info().Str("user_id", fresh.ID).Str("role", fresh.Role().String()).Msg("session restored")
	return nil
}

// dropStaleSession clears a persisted session that must not be restored.
func (m *SessionManager) dropStaleSession(ctx context.Context) error {
	if err := m.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	m.setUnauthenticated("stale")
	return nil
}

func (m *SessionManager) Login(ctx context.Context, email, password string) (*domain.User, error) {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	if err := m.ready(); err != nil {
		return nil, err
	}

	user, err := m.store.FindByCredentials(ctx, email, password)
	if err != nil {
		result := "error"
		if errors.Is(err, domain.ErrInvalidCredentials) {
			result = "invalid_credentials"
		}
		metrics.LoginsTotal.WithLabelValues(result).Inc()
		return nil, err
	}
	if err := m.sessions.Save(ctx, user); err != nil {
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	m.setAuthenticated(user, "login")
	m.log.Info().Str("user_id", user.ID).Str("role", user.Role().String()).Msg("user logged in")
	return user.Public(), nil
}

func (m *SessionManager) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	if err := m.ready(); err != nil {
		return nil, err
	}

	role := in.Role
	if _, ok := domain.ParseRole(role); !ok {
		role = "unknown"
	}

	user, err := m.buildUser(ctx, in)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues(role, "invalid").Inc()
		return nil, err
	}

	if err := m.store.Insert(ctx, user); err != nil {
		result := "error"
		if errors.Is(err, domain.ErrEmailTaken) {
			result = "email_taken"
		}
		metrics.RegistrationsTotal.WithLabelValues(role, result).Inc()
		return nil, err
	}
	metrics.RegistrationsTotal.WithLabelValues(role, "success").Inc()
	m.publish(ctx, domain.KeyUsers)

	if err := m.sessions.Save(ctx, user); err != nil {
		return nil, err
	}
	m.setAuthenticated(user, "register")
	m.log.Info().Str("user_id", user.ID).Str("role", user.Role().String()).Msg("user registered")
	return user.Public(), nil
}

// Logout always succeeds for the caller; a failure to clear the persisted copy
// is only logged.
func (m *SessionManager) Logout(ctx context.Context) error {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	if err := m.sessions.Clear(ctx); err != nil {
		m.log.Warn().Err(err).Msg("clear persisted session on logout")
	}
	m.setUnauthenticated("logout")
	return nil
}

func (m *SessionManager) UpdateProfile(ctx context.Context, in ports.ProfileInput) (*domain.User, error) {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	current, err := m.currentUser()
	if err != nil {
		return nil, err
	}

	patch := domain.UserPatch{
		Name:           in.Name,
		Email:          in.Email,
		Phone:          in.Phone,
		DateOfBirth:    in.DateOfBirth,
		Address:        in.Address,
		Specialization: in.Specialization,
		AssignedDoctor: in.AssignedDoctor,
		Department:     in.Department,
	}
	if in.AssignedDoctor != nil && current.Role() == domain.RolePatient {
		if err := m.checkDoctor(ctx, *in.AssignedDoctor); err != nil {
			return nil, err
		}
	}

	updated, err := m.store.UpdateByID(ctx, current.ID, patch)
	if err != nil {
		return nil, err
	}
	m.publish(ctx, domain.KeyUsers)

	if err := m.sessions.Save(ctx, updated); err != nil {
		return nil, err
	}
	m.setAuthenticated(updated, "")
	return updated.Public(), nil
}

func (m *SessionManager) ChangePassword(ctx context.Context, in ports.PasswordChangeInput) error {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	current, err := m.currentUser()
	if err != nil {
		return err
	}

	verr := domain.NewValidationError()
	if msg := domain.PasswordPolicyViolation(in.NewPassword); msg != "" {
		verr.Add("newPassword", msg)
	}
	if in.NewPassword != in.ConfirmPassword {
		verr.Add("confirmPassword", "Passwords do not match")
	}
	if err := verr.ErrOrNil(); err != nil {
		return err
	}

	if _, err := m.store.FindByCredentials(ctx, current.Email, in.CurrentPassword); err != nil {
		return err
	}

	hash, err := m.hasher.Hash(in.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	updated, err := m.store.UpdateByID(ctx, current.ID, domain.UserPatch{PasswordHash: &hash})
	if err != nil {
		return err
	}
	m.publish(ctx, domain.KeyUsers)

	if err := m.sessions.Save(ctx, updated); err != nil {
		return err
	}
	m.setAuthenticated(updated, "")
	m.log.Info().Str("user_id", updated.ID).Msg("password changed")
	return nil
}

func (m *SessionManager) DeleteAccount(ctx context.Context) error {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	current, err := m.currentUser()
	if err != nil {
		return err
	}

	if err := m.store.DeleteByID(ctx, current.ID); err != nil {
		return err
	}
	m.publish(ctx, domain.KeyUsers)

	if err := m.images.Delete(ctx, current.ID); err != nil {
		m.log.Warn().Err(err).Str("user_id", current.ID).Msg("remove profile image of deleted account")
	}
	if err := m.sessions.Clear(ctx); err != nil {
		m.log.Warn().Err(err).Msg("clear persisted session after account deletion")
	}
	m.setUnauthenticated("delete")
	m.log.Info().Str("user_id", current.ID).Msg("account deleted")
	return nil
}

// WithCurrentUser holds the operation lock while fn runs, so the user cannot
// be logged out or deleted underneath it.
func (m *SessionManager) WithCurrentUser(ctx context.Context, fn func(user *domain.User) error) error {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	current, err := m.currentUser()
	if err != nil {
		return err
	}
	return fn(current)
}

// ResetAllUsers restores the seed collection and logs out whoever is logged in.
func (m *SessionManager) ResetAllUsers(ctx context.Context) error {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	if err := m.store.Reset(ctx); err != nil {
		return err
	}
	m.publish(ctx, domain.KeyUsers)

	if err := m.sessions.Clear(ctx); err != nil {
		m.log.Warn().Err(err).Msg("clear persisted session on reset")
	}
	m.setUnauthenticated("reset")
	return nil
}

// Revalidate re-reads the logged-in user from the credential store. A user
// that no longer exists is logged out; otherwise the session adopts the
// store's current record.
func (m *SessionManager) Revalidate(ctx context.Context) error {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	m.mu.RLock()
	current, state := m.user, m.state
	m.mu.RUnlock()
	if state != domain.SessionAuthenticated || current == nil {
		return nil
	}

	fresh, err := m.store.FindByID(ctx, current.ID)
	if errors.Is(err, domain.ErrUserNotFound) {
		m.log.Info().Str("user_id", current.ID).Msg("logged-in user disappeared, ending session")
		if err := m.sessions.Clear(ctx); err != nil {
			m.log.Warn().Err(err).Msg("clear persisted session on revalidation")
		}
		m.setUnauthenticated("revalidate")
		return nil
	}
	if err != nil {
		return fmt.Errorf("revalidate: %w", err)
	}

	if fresh.UpdatedAt.Equal(current.UpdatedAt) {
		return nil
	}
	if err := m.sessions.Save(ctx, fresh); err != nil {
		return err
	}
	m.setAuthenticated(fresh, "")
	return nil
}

// buildUser validates the registration form and returns the record to insert.
// All field problems are reported together.
func (m *SessionManager) buildUser(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	verr := domain.NewValidationError()

	required := []struct{ field, label, value string }{
		{"name", "Name", in.Name},
		{"email", "Email", in.Email},
		{"phone", "Phone", in.Phone},
		{"dateOfBirth", "Date of birth", in.DateOfBirth},
		{"address", "Address", in.Address},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			verr.Add(r.field, r.label+" is required")
		}
	}
	if msg := domain.PasswordPolicyViolation(in.Password); msg != "" {
		verr.Add("password", msg)
	}
	if in.Password != in.ConfirmPassword {
		verr.Add("confirmPassword", "Passwords do not match")
	}

	details, err := domain.NewRoleDetails(domain.Role(in.Role), in.Specialization, in.AssignedDoctor, in.Department)
	var detailErr *domain.ValidationError
	if errors.As(err, &detailErr) {
		for field, msg := range detailErr.Fields {
			verr.Add(field, msg)
		}
	} else if err != nil {
		return nil, err
	}

	if pd, ok := details.(domain.PatientDetails); ok && strings.TrimSpace(pd.AssignedDoctor) != "" {
		if err := m.checkDoctor(ctx, pd.AssignedDoctor); err != nil {
			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				return nil, err
			}
			for field, msg := range ve.Fields {
				verr.Add(field, msg)
			}
		}
	}

	if err := verr.ErrOrNil(); err != nil {
		return nil, err
	}

	hash, err := m.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := m.now()
	return &domain.User{
		ID:           m.newID(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Phone:        in.Phone,
		DateOfBirth:  in.DateOfBirth,
		Address:      in.Address,
		Details:      details,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// checkDoctor verifies that id names an existing doctor account.
func (m *SessionManager) checkDoctor(ctx context.Context, id string) error {
	doc, err := m.store.FindByID(ctx, id)
	if errors.Is(err, domain.ErrUserNotFound) || (err == nil && doc.Role() != domain.RoleDoctor) {
		verr := domain.NewValidationError()
		verr.Add("assignedDoctor", "Assigned doctor must be an existing doctor")
		return verr
	}
	return err
}

func (m *SessionManager) ready() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state == domain.SessionLoading {
		return domain.ErrSessionLoading
	}
	return nil
}

func (m *SessionManager) currentUser() (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	switch {
	case m.state == domain.SessionLoading:
		return nil, domain.ErrSessionLoading
	case m.user == nil:
		return nil, domain.ErrNoSession
	}
	return m.user.Clone(), nil
}

// publish announces a rewritten key. Delivery is best effort.
func (m *SessionManager) publish(ctx context.Context, key string) {
	metrics.StorageChangesTotal.WithLabelValues(key).Inc()
	if m.notifier == nil {
		return
	}
	if err := m.notifier.Publish(ctx, domain.StorageChange{Key: key, At: m.now()}); err != nil {
		m.log.Warn().Err(err).Str("key", key).Msg("publish storage change")
	}
}

// setAuthenticated stores a copy of user. An empty cause marks a self-loop
// that is not counted as a transition.
func (m *SessionManager) setAuthenticated(user *domain.User, cause string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = user.Public()
	if m.state != domain.SessionAuthenticated {
		metrics.SessionAuthenticated.Set(1)
	}
	m.state = domain.SessionAuthenticated
	if cause != "" {
		metrics.SessionTransitionsTotal.WithLabelValues(domain.SessionAuthenticated.String(), cause).Inc()
	}
}

func (m *SessionManager) setUnauthenticated(cause string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = nil
	m.state = domain.SessionUnauthenticated
	metrics.SessionAuthenticated.Set(0)
	metrics.SessionTransitionsTotal.WithLabelValues(domain.SessionUnauthenticated.String(), cause).Inc()
}

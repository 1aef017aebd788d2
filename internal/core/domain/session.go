package domain

// SessionState is the lifecycle state of the application's session.
type SessionState int

const (
	// SessionLoading is the state before bootstrap has read durable storage.
	SessionLoading SessionState = iota
	SessionUnauthenticated
	SessionAuthenticated
)

func (s SessionState) String() string {
	switch s {
	case SessionLoading:
		return "loading"
	case SessionAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// Session is a point-in-time view of who is logged in. User is a private copy
// and is nil unless State is SessionAuthenticated.
type Session struct {
	State SessionState
	User  *User
}

// Authenticated reports whether a user is logged in.
func (s Session) Authenticated() bool {
	return s.State == SessionAuthenticated && s.User != nil
}

// Loading reports whether the session has not been bootstrapped yet.
func (s Session) Loading() bool {
	return s.State == SessionLoading
}

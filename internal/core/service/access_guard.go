package service

import (
	"net/url"

	"github.com/medicocare/hospital-portal/internal/core/domain"
	"github.com/medicocare/hospital-portal/internal/pkg/metrics"
)

// DecisionKind is the outcome of an access check.
type DecisionKind int

const (
	// Render lets the protected view through.
	Render DecisionKind = iota
	// Wait means the session has not been bootstrapped yet.
	Wait
	RedirectLogin
	RedirectLanding
)

func (k DecisionKind) String() string {
	switch k {
	case Render:
		return "render"
	case Wait:
		return "wait"
	case RedirectLogin:
		return "redirect_login"
	case RedirectLanding:
		return "redirect_landing"
	}
	return "unknown"
}

// Decision tells the caller what to do with a navigation. Location is set for
// the redirect kinds only.
type Decision struct {
	Kind     DecisionKind
	Location string
}

// AccessGuard gates views on the session state and role. It only ever
// navigates; it never produces an error page.
type AccessGuard struct{}

func NewAccessGuard() *AccessGuard {
	return &AccessGuard{}
}

// Evaluate decides on a navigation to requested. An empty allowed list admits
// every authenticated role.
func (g *AccessGuard) Evaluate(session domain.Session, requested string, allowed []domain.Role) Decision {
	d := evaluate(session, requested, allowed)
	metrics.GuardDecisionsTotal.WithLabelValues(d.Kind.String()).Inc()
	return d
}

func evaluate(session domain.Session, requested string, allowed []domain.Role) Decision {
	if session.Loading() {
		return Decision{Kind: Wait}
	}
	if !session.Authenticated() {
		return Decision{Kind: RedirectLogin, Location: LoginLocation(requested)}
	}

	role := session.User.Role()
	if len(allowed) > 0 && !containsRole(allowed, role) {
		return Decision{Kind: RedirectLanding, Location: role.LandingPath()}
	}
	return Decision{Kind: Render}
}

// LoginLocation is the login URL that remembers where the user was headed.
func LoginLocation(from string) string {
	if from == "" {
		return domain.LoginPath
	}
	return domain.LoginPath + "?" + url.Values{"from": {from}}.Encode()
}

// ReturnPath picks where to send a user after login: from, when it is a local
// absolute path other than the login screen, else the role's landing view.
func ReturnPath(from string, role domain.Role) string {
	if from == "" || from[0] != '/' || (len(from) > 1 && (from[1] == '/' || from[1] == '\\')) {
		return role.LandingPath()
	}
	u, err := url.Parse(from)
	if err != nil || u.IsAbs() || u.Host != "" || u.Path == domain.LoginPath {
		return role.LandingPath()
	}
	return from
}

func containsRole(roles []domain.Role, r domain.Role) bool {
	for _, x := range roles {
		if x == r {
			return true
		}
	}
	return false
}

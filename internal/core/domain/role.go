package domain

// Role is the closed set of account kinds. A role never changes after the
// account is created.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleDoctor       Role = "doctor"
	RoleNurse        Role = "nurse"
	RoleReceptionist Role = "receptionist"
	RolePatient      Role = "patient"
)

// Navigation targets used by the access guard and the index redirect.
const (
	LoginPath        = "/login"
	AdminLandingPath = "/admin/dashboard"
	UserLandingPath  = "/dashboard"
)

// Roles lists every valid role in display order.
var Roles = []Role{RoleAdmin, RoleDoctor, RoleNurse, RoleReceptionist, RolePatient}

// ParseRole reports whether s names a known role.
func ParseRole(s string) (Role, bool) {
	for _, r := range Roles {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

// LandingPath is the default screen for the role: administrators land on the
// admin dashboard, everyone else on the generic dashboard.
func (r Role) LandingPath() string {
	if r == RoleAdmin {
		return AdminLandingPath
	}
	return UserLandingPath
}

func (r Role) String() string { return string(r) }

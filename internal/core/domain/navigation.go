package domain

// MenuItem is one entry of the role-specific sidebar.
type MenuItem struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// MenuFor returns the sidebar for role. Unknown roles get the patient menu.
func MenuFor(role Role) []MenuItem {
	home := MenuItem{Label: "Dashboard", Path: role.LandingPath()}

	switch role {
	case RoleAdmin:
		return []MenuItem{
			home,
			{Label: "User Management", Path: "/admin/users"},
			{Label: "Patient Records", Path: "/admin/patients"},
			{Label: "Appointments", Path: "/admin/appointments"},
			{Label: "Billing", Path: "/admin/billing"},
			{Label: "Inventory", Path: "/admin/inventory"},
			{Label: "Settings", Path: "/admin/settings"},
		}
	case RoleDoctor:
		return []MenuItem{
			home,
			{Label: "My Patients", Path: "/doctor"},
			{Label: "Appointments", Path: "/appointments"},
			{Label: "Medical Records", Path: "/records"},
			{Label: "Prescriptions", Path: "/prescriptions"},
		}
	case RoleNurse:
		return []MenuItem{
			home,
			{Label: "Appointments", Path: "/appointments"},
			{Label: "Medical Records", Path: "/records"},
		}
	case RoleReceptionist:
		return []MenuItem{
			home,
			{Label: "Appointments", Path: "/appointments"},
			{Label: "Book Appointment", Path: "/appointments/book"},
			{Label: "Billing", Path: "/billing"},
		}
	default:
		return []MenuItem{
			home,
			{Label: "My Appointments", Path: "/appointments"},
			{Label: "Medical Records", Path: "/records"},
			{Label: "Prescriptions", Path: "/prescriptions"},
			{Label: "Billing", Path: "/billing"},
		}
	}
}

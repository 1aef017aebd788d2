package domain

import (
	"strings"
	"time"
)

// RoleDetails carries the attributes that only exist for one role. Every role
// has exactly one variant, so a record can never hold a field for the wrong
// role.
type RoleDetails interface {
	Role() Role
	isRoleDetails()
}

type AdminDetails struct{}

type DoctorDetails struct {
	Specialization string
}

type NurseDetails struct {
	Department string
}

type ReceptionistDetails struct{}

// PatientDetails references the ID of the patient's doctor.
type PatientDetails struct {
	AssignedDoctor string
}

func (AdminDetails) Role() Role        { return RoleAdmin }
func (DoctorDetails) Role() Role       { return RoleDoctor }
func (NurseDetails) Role() Role        { return RoleNurse }
func (ReceptionistDetails) Role() Role { return RoleReceptionist }
func (PatientDetails) Role() Role      { return RolePatient }

func (AdminDetails) isRoleDetails()        {}
func (DoctorDetails) isRoleDetails()       {}
func (NurseDetails) isRoleDetails()        {}
func (ReceptionistDetails) isRoleDetails() {}
func (PatientDetails) isRoleDetails()      {}

// NewRoleDetails builds the variant for role, requiring the field that role
// needs. Fields belonging to other roles are ignored.
func NewRoleDetails(role Role, specialization, assignedDoctor, department string) (RoleDetails, error) {
	verr := NewValidationError()
	var d RoleDetails

	switch role {
	case RoleAdmin:
		d = AdminDetails{}
	case RoleReceptionist:
		d = ReceptionistDetails{}
	case RoleDoctor:
		if strings.TrimSpace(specialization) == "" {
			verr.Add("specialization", "Specialization is required")
		}
		d = DoctorDetails{Specialization: specialization}
	case RolePatient:
		if strings.TrimSpace(assignedDoctor) == "" {
			verr.Add("assignedDoctor", "Assigned doctor is required")
		}
		d = PatientDetails{AssignedDoctor: assignedDoctor}
	case RoleNurse:
		if strings.TrimSpace(department) == "" {
			verr.Add("department", "Department is required")
		}
		d = NurseDetails{Department: department}
	default:
		verr.Add("role", "Role must be one of admin, doctor, nurse, receptionist, patient")
	}

	if err := verr.ErrOrNil(); err != nil {
		return nil, err
	}
	return d, nil
}

// DetailFields flattens d into its three optional attributes. At most one of
// the returned strings is non-empty.
func DetailFields(d RoleDetails) (specialization, assignedDoctor, department string) {
	switch v := d.(type) {
	case DoctorDetails:
		return v.Specialization, "", ""
	case PatientDetails:
		return "", v.AssignedDoctor, ""
	case NurseDetails:
		return "", "", v.Department
	}
	return "", "", ""
}

// User models an account in the credential store.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	DateOfBirth  string
	Address      string
	Details      RoleDetails
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Role is derived from the details variant.
func (u *User) Role() Role {
	if u == nil || u.Details == nil {
		return ""
	}
	return u.Details.Role()
}

// Clone returns a copy that shares nothing mutable with u.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

// Public returns a copy without the password hash.
func (u *User) Public() *User {
	c := u.Clone()
	if c != nil {
		c.PasswordHash = ""
	}
	return c
}

// UserPatch is a partial update. Nil fields are left untouched.
type UserPatch struct {
	Name           *string
	Email          *string
	Phone          *string
	DateOfBirth    *string
	Address        *string
	Specialization *string
	AssignedDoctor *string
	Department     *string
	PasswordHash   *string
}

// ChangesEmail reports whether the patch moves the account to a new email.
func (p UserPatch) ChangesEmail(current string) bool {
	return p.Email != nil && *p.Email != current
}

// Apply merges p into u and stamps UpdatedAt with now, bumped past the
// previous value when the clock has not advanced. u is left untouched when p
// is invalid.
func (u *User) Apply(p UserPatch, now time.Time) error {
	next := *u
	verr := NewValidationError()

	setRequired := func(field, label string, src *string, dst *string) {
		if src == nil {
			return
		}
		if strings.TrimSpace(*src) == "" {
			verr.Add(field, label+" is required")
			return
		}
		*dst = *src
	}
	setRequired("name", "Name", p.Name, &next.Name)
	setRequired("email", "Email", p.Email, &next.Email)
	setRequired("password", "Password", p.PasswordHash, &next.PasswordHash)

	if p.Phone != nil {
		next.Phone = *p.Phone
	}
	if p.DateOfBirth != nil {
		next.DateOfBirth = *p.DateOfBirth
	}
	if p.Address != nil {
		next.Address = *p.Address
	}

	switch d := next.Details.(type) {
	case DoctorDetails:
		setRequired("specialization", "Specialization", p.Specialization, &d.Specialization)
		next.Details = d
	case PatientDetails:
		setRequired("assignedDoctor", "Assigned doctor", p.AssignedDoctor, &d.AssignedDoctor)
		next.Details = d
	case NurseDetails:
		setRequired("department", "Department", p.Department, &d.Department)
		next.Details = d
	}

	role := next.Role()
	if p.Specialization != nil && role != RoleDoctor {
		verr.Add("specialization", "Only doctors have a specialization")
	}
	if p.AssignedDoctor != nil && role != RolePatient {
		verr.Add("assignedDoctor", "Only patients have an assigned doctor")
	}
	if p.Department != nil && role != RoleNurse {
		verr.Add("department", "Only nurses have a department")
	}

	if err := verr.ErrOrNil(); err != nil {
		return err
	}

	if !now.After(u.UpdatedAt) {
		now = u.UpdatedAt.Add(time.Nanosecond)
	}
	next.UpdatedAt = now
	*u = next
	return nil
}

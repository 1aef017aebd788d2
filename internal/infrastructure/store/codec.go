package store

import (
	"fmt"
	"time"

	"github.com/medicocare/hospital-portal/internal/core/domain"
)

// storedUser is the JSON shape of one account inside the "users" and "user"
// keys.
type storedUser struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"passwordHash,omitempty"`
	Phone          string    `json:"phone"`
	DateOfBirth    string    `json:"dateOfBirth"`
	Address        string    `json:"address"`
	Role           string    `json:"role"`
	Specialization string    `json:"specialization,omitempty"`
	AssignedDoctor string    `json:"assignedDoctor,omitempty"`
	Department     string    `json:"department,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func toStored(u *domain.User) storedUser {
	spec, doctor, dept := domain.DetailFields(u.Details)
	return storedUser{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		PasswordHash:   u.PasswordHash,
		Phone:          u.Phone,
		DateOfBirth:    u.DateOfBirth,
		Address:        u.Address,
		Role:           string(u.Role()),
		Specialization: spec,
		AssignedDoctor: doctor,
		Department:     dept,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

// toDomain does not re-run registration validation, but a record without a
// known role cannot be represented and reports ErrCorruptRecord.
func (s storedUser) toDomain() (*domain.User, error) {
	var details domain.RoleDetails
	switch domain.Role(s.Role) {
	case domain.RoleAdmin:
		details = domain.AdminDetails{}
	case domain.RoleDoctor:
		details = domain.DoctorDetails{Specialization: s.Specialization}
	case domain.RoleNurse:
		details = domain.NurseDetails{Department: s.Department}
	case domain.RoleReceptionist:
		details = domain.ReceptionistDetails{}
	case domain.RolePatient:
		details = domain.PatientDetails{AssignedDoctor: s.AssignedDoctor}
	default:
		return nil, fmt.Errorf("decode user %s: unknown role %q: %w", s.ID, s.Role, domain.ErrCorruptRecord)
	}

	return &domain.User{
		ID:           s.ID,
		Name:         s.Name,
		Email:        s.Email,
		PasswordHash: s.PasswordHash,
		Phone:        s.Phone,
		DateOfBirth:  s.DateOfBirth,
		Address:      s.Address,
		Details:      details,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}, nil
}

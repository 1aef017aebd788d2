package domain

import (
	"errors"
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }

func nurse(updated time.Time) *User {
	return &User{
		ID:        "n-1",
		Name:      "Meera",
		Email:     "meera@example.com",
		Phone:     "555-0102",
		Details:   NurseDetails{Department: "ICU"},
		CreatedAt: updated,
		UpdatedAt: updated,
	}
}

func TestNewRoleDetails(t *testing.T) {
	cases := map[string]struct {
		role    Role
		spec    string
		doctor  string
		dept    string
		want    RoleDetails
		errKeys []string
	}{
		"admin":                {role: RoleAdmin, want: AdminDetails{}},
		"receptionist":         {role: RoleReceptionist, dept: "ignored", want: ReceptionistDetails{}},
		"doctor":               {role: RoleDoctor, spec: "Cardiology", want: DoctorDetails{Specialization: "Cardiology"}},
		"doctor without spec":  {role: RoleDoctor, errKeys: []string{"specialization"}},
		"patient":              {role: RolePatient, doctor: "d-1", want: PatientDetails{AssignedDoctor: "d-1"}},
		"patient blank doctor": {role: RolePatient, doctor: "  ", errKeys: []string{"assignedDoctor"}},
		"nurse":                {role: RoleNurse, dept: "ICU", spec: "ignored", want: NurseDetails{Department: "ICU"}},
		"nurse without dept":   {role: RoleNurse, errKeys: []string{"department"}},
		"unknown role":         {role: "janitor", errKeys: []string{"role"}},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := NewRoleDetails(tc.role, tc.spec, tc.doctor, tc.dept)
			if len(tc.errKeys) > 0 {
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("expected ValidationError, got %v", err)
				}
				for _, k := range tc.errKeys {
					if verr.Fields[k] == "" {
						t.Errorf("missing message for %s: %+v", k, verr.Fields)
					}
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %#v, want %#v", got, tc.want)
			}
			if got.Role() != tc.role {
				t.Fatalf("role: got %s, want %s", got.Role(), tc.role)
			}
		})
	}
}

func TestDetailFields(t *testing.T) {
	spec, doctor, dept := DetailFields(NurseDetails{Department: "ER"})
	if spec != "" || doctor != "" || dept != "ER" {
		t.Fatalf("unexpected fields: %q %q %q", spec, doctor, dept)
	}
	spec, doctor, dept = DetailFields(AdminDetails{})
	if spec != "" || doctor != "" || dept != "" {
		t.Fatalf("admin must have no role fields: %q %q %q", spec, doctor, dept)
	}
}

func TestUser_Apply(t *testing.T) {
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	u := nurse(created)

	later := created.Add(time.Minute)
	err := u.Apply(UserPatch{Name: strPtr("Meera K."), Department: strPtr("Oncology")}, later)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if u.Name != "Meera K." || u.Details != (NurseDetails{Department: "Oncology"}) {
		t.Fatalf("patch not applied: %+v", u)
	}
	if u.Email != "meera@example.com" || u.Phone != "555-0102" {
		t.Fatalf("absent fields must be untouched: %+v", u)
	}
	if !u.UpdatedAt.Equal(later) || !u.CreatedAt.Equal(created) {
		t.Fatalf("timestamps: created=%v updated=%v", u.CreatedAt, u.UpdatedAt)
	}
}

func TestUser_Apply_BumpsStaleClock(t *testing.T) {
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	u := nurse(created)

	if err := u.Apply(UserPatch{Phone: strPtr("555-0199")}, created.Add(-time.Hour)); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !u.UpdatedAt.After(created) {
		t.Fatalf("updatedAt must move forward, got %v", u.UpdatedAt)
	}
}

func TestUser_Apply_RejectsWholePatch(t *testing.T) {
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	cases := map[string]struct {
		patch UserPatch
		field string
	}{
		"blank name":          {patch: UserPatch{Name: strPtr(" "), Phone: strPtr("1")}, field: "name"},
		"blank email":         {patch: UserPatch{Email: strPtr(""), Phone: strPtr("1")}, field: "email"},
		"blank department":    {patch: UserPatch{Department: strPtr(""), Phone: strPtr("1")}, field: "department"},
		"specialization":      {patch: UserPatch{Specialization: strPtr("Cardiology"), Phone: strPtr("1")}, field: "specialization"},
		"assigned doctor":     {patch: UserPatch{AssignedDoctor: strPtr("d-1"), Phone: strPtr("1")}, field: "assignedDoctor"},
		"blank password hash": {patch: UserPatch{PasswordHash: strPtr(""), Phone: strPtr("1")}, field: "password"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			u := nurse(created)
			before := *u

			err := u.Apply(tc.patch, created.Add(time.Minute))

			var verr *ValidationError
			if !errors.As(err, &verr) || verr.Fields[tc.field] == "" {
				t.Fatalf("expected a %s error, got %v", tc.field, err)
			}
			if *u != before {
				t.Fatalf("user must be untouched on failure:\n got %+v\nwant %+v", *u, before)
			}
		})
	}
}

func TestUserPatch_ChangesEmail(t *testing.T) {
	if (UserPatch{}).ChangesEmail("a@example.com") {
		t.Fatal("nil email is not a change")
	}
	if (UserPatch{Email: strPtr("a@example.com")}).ChangesEmail("a@example.com") {
		t.Fatal("same email is not a change")
	}
	if !(UserPatch{Email: strPtr("b@example.com")}).ChangesEmail("a@example.com") {
		t.Fatal("different email is a change")
	}
}

func TestUser_PublicDropsHash(t *testing.T) {
	u := nurse(time.Now())
	u.PasswordHash = "$2a$hash"

	pub := u.Public()
	if pub.PasswordHash != "" {
		t.Fatal("public copy must not carry the hash")
	}
	if u.PasswordHash == "" {
		t.Fatal("original must keep its hash")
	}
	if (*User)(nil).Public() != nil || (*User)(nil).Role() != "" {
		t.Fatal("nil user helpers must be nil-safe")
	}
}

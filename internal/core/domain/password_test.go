package domain

import "testing"

func TestPasswordPolicyViolation(t *testing.T) {
	cases := map[string]string{
		"":            "Password is required",
		"secret1!":    "Password must start with an uppercase letter",
		"1Secret!":    "Password must start with an uppercase letter",
		"Ésecret1!":   "Password must start with an uppercase letter",
		"Secret!":     "Password must contain at least one number",
		"Secret1":     "Password must contain at least one special character",
		"Secret1-":    "Password must contain at least one special character",
		"Secret1!":    "",
		"A1{":         "",
		"Pass word9?": "",
	}

	for pw, want := range cases {
		if got := PasswordPolicyViolation(pw); got != want {
			t.Errorf("PasswordPolicyViolation(%q) = %q, want %q", pw, got, want)
		}
	}
}

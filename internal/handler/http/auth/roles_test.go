package auth

import "testing"

func TestNormalizeRole(t *testing.T) {
	tests := map[string]string{
		"ADMIN":       "ADMIN",
		"admin":       "ADMIN",
		"ROLE_ADMIN":  "ADMIN",
		"role_user":   "USER",
		"  User ":     "USER",
		"":            "",
		"ROLE_VIEWER": "VIEWER",
	}
	for in, want := range tests {
		if got := NormalizeRole(in); got != want {
			t.Errorf("NormalizeRole(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestHasRole(t *testing.T) {
	tests := []struct {
		name     string
		roles    []string
		required string
		want     bool
	}{
		{"admin implies user", []string{"ADMIN"}, RoleUser, true},
		{"admin has admin", []string{"ROLE_ADMIN"}, RoleAdmin, true},
		{"user lacks admin", []string{"USER"}, RoleAdmin, false},
		{"user has user", []string{"ROLE_USER"}, RoleUser, true},
		{"anonymous lacks user", nil, RoleUser, false},
		{"empty requirement", nil, "", true},
		{"unknown role grants nothing", []string{"VIEWER"}, RoleUser, false},
		{"case insensitive requirement", []string{"ADMIN"}, "role_user", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasRole(tt.roles, tt.required); got != tt.want {
				t.Errorf("HasRole(%v, %q) = %v, want %v", tt.roles, tt.required, got, tt.want)
			}
		})
	}
}

func TestIsKnownRole(t *testing.T) {
	for _, r := range []string{"USER", "admin", "ROLE_ADMIN"} {
		if !IsKnownRole(r) {
			t.Errorf("IsKnownRole(%q) = false", r)
		}
	}
	for _, r := range []string{"", "viewer", "ROLE_"} {
		if IsKnownRole(r) {
			t.Errorf("IsKnownRole(%q) = true", r)
		}
	}
}

func TestPrincipal(t *testing.T) {
	var anon *Principal
	if anon.HasRole(RoleUser) || anon.IsAdmin() {
		t.Error("nil principal must hold no role")
	}

	admin := &Principal{Subject: "a@ucsb.edu", Roles: []string{"ADMIN"}}
	if !admin.IsAdmin() || !admin.HasRole(RoleUser) {
		t.Error("admin must hold ADMIN and USER")
	}

	user := &Principal{Subject: "u@ucsb.edu", Roles: []string{"USER"}}
	if user.IsAdmin() {
		t.Error("user must not be admin")
	}
}

package auth

import "strings"

// Role constants. Tokens may carry them with a "ROLE_" prefix and in any case.
const (
	// RoleUser may read every resource.
	RoleUser = "USER"
	// RoleAdmin may do everything RoleUser may and write every resource.
	RoleAdmin = "ADMIN"
)

// implied lists the roles each role grants in addition to itself.
var implied = map[string][]string{
	RoleAdmin: {RoleUser},
}

// NormalizeRole maps "role_admin", "ROLE_ADMIN" and "admin" to "ADMIN".
func NormalizeRole(role string) string {
	r := strings.ToUpper(strings.TrimSpace(role))
	return strings.TrimPrefix(r, "ROLE_")
}

// HasRole reports whether roles grant required. ADMIN implies USER.
// An empty required role is granted to everybody, including anonymous callers.
func HasRole(roles []string, required string) bool {
	required = NormalizeRole(required)
	if required == "" {
		return true
	}
	for _, r := range roles {
		r = NormalizeRole(r)
		if r == required {
			return true
		}
		for _, imp := range implied[r] {
			if imp == required {
				return true
			}
		}
	}
	return false
}

// IsKnownRole reports whether role is USER or ADMIN after normalization.
func IsKnownRole(role string) bool {
	switch NormalizeRole(role) {
	case RoleUser, RoleAdmin:
		return true
	}
	return false
}

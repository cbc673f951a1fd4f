package auth

import (
	"fmt"
	"maps"
	"slices"

	"campus-api/internal/config"
)

// Resource names as they appear in the URL path under /api/.
const (
	ResourceHelpRequest           = "helprequest"
	ResourceMenuItem              = "ucsbdiningcommonsmenuitem"
	ResourceRecommendationRequest = "recommendationrequests"
	ResourceOrganization          = "ucsborganization"
	ResourceArticle               = "articles"
	ResourceMenuItemReview        = "menuitemreviews"
)

// Access is the role required to read (list, get) and to write (create,
// update, delete) one resource.
type Access struct {
	Read  string
	Write string
}

// Policy maps resource names to their Access.
type Policy map[string]Access

// DefaultAccess is read = USER, write = ADMIN.
var DefaultAccess = Access{Read: RoleUser, Write: RoleAdmin}

// DefaultPolicy returns DefaultAccess for every resource.
func DefaultPolicy() Policy {
	p := Policy{}
	for _, r := range []string{
		ResourceHelpRequest,
		ResourceMenuItem,
		ResourceRecommendationRequest,
		ResourceOrganization,
		ResourceArticle,
		ResourceMenuItemReview,
	} {
		p[r] = DefaultAccess
	}
	return p
}

// For returns the Access for resource, falling back to DefaultAccess.
func (p Policy) For(resource string) Access {
	if a, ok := p[resource]; ok {
		return a
	}
	return DefaultAccess
}

// Apply returns a copy of p with overrides merged in. Empty fields in an
// override keep the current role. Unknown resources and roles are rejected.
func (p Policy) Apply(overrides map[string]config.AccessRule) (Policy, error) {
	out := maps.Clone(p)
	if out == nil {
		out = Policy{}
	}
	for _, resource := range slices.Sorted(maps.Keys(overrides)) {
		cur, ok := out[resource]
		if !ok {
			return nil, fmt.Errorf("access policy: unknown resource %q", resource)
		}
		rule := overrides[resource]
		if rule.Read != "" {
			if !IsKnownRole(rule.Read) {
				return nil, fmt.Errorf("access policy: %s.read: invalid role %q", resource, rule.Read)
			}
			cur.Read = NormalizeRole(rule.Read)
		}
		if rule.Write != "" {
			if !IsKnownRole(rule.Write) {
				return nil, fmt.Errorf("access policy: %s.write: invalid role %q", resource, rule.Write)
			}
			cur.Write = NormalizeRole(rule.Write)
		}
		out[resource] = cur
	}
	return out, nil
}

package auth

import "context"

type ctxKey string

const ctxPrincipal ctxKey = "principal"

// Principal is the authenticated caller.
type Principal struct {
	Subject string   `json:"subject"`
	Roles   []string `json:"roles"`
}

// HasRole reports whether the principal holds required. A nil principal holds
// only the empty role.
func (p *Principal) HasRole(required string) bool {
	if p == nil {
		return HasRole(nil, required)
	}
	return HasRole(p.Roles, required)
}

// IsAdmin reports whether the principal holds ADMIN.
func (p *Principal) IsAdmin() bool {
	return p != nil && HasRole(p.Roles, RoleAdmin)
}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, ctxPrincipal, p)
}

// FromContext returns the principal stored by Authenticate, if any.
func FromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(ctxPrincipal).(*Principal)
	return p, ok && p != nil
}

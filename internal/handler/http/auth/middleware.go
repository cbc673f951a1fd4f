package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"campus-api/internal/handler/http/respond"
	"campus-api/internal/observability/logging"
)

var errForbidden = errors.New("forbidden")

// Authenticate resolves the caller from an HS256 bearer token and stores
// the Principal in the request context. It never rejects a request: a
// missing or invalid token leaves the caller anonymous and RequireRole
// decides what an anonymous caller may do.
func Authenticate(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || IsPublicEndpoint(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			p, err := validateJWT(header, secret)
			recordTokenValidation(err == nil, time.Since(start).Seconds())
			if err != nil {
				logging.WithRequestID(r.Context(), slog.Default()).Debug("bearer token rejected",
					slog.String("path", r.URL.Path),
					slog.String("reason", err.Error()))
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

// RequireRole rejects callers that do not hold role with 403.
// Anonymous callers are rejected the same way.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, _ := FromContext(r.Context())
			if !p.HasRole(role) {
				recordAccessDenied(role, topRole(p), r.Method)
				respond.SafeError(w, http.StatusForbidden, errForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func topRole(p *Principal) string {
	switch {
	case p == nil:
		return "none"
	case p.HasRole(RoleAdmin):
		return RoleAdmin
	case p.HasRole(RoleUser):
		return RoleUser
	default:
		return "other"
	}
}

func validateJWT(authz string, secret []byte) (*Principal, error) {
	const prefix = "Bearer "
	if !strings.HasPrefix(authz, prefix) {
		return nil, errors.New("missing bearer token")
	}
	tokenString := strings.TrimPrefix(authz, prefix)
	tok, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !tok.Valid {
		return nil, errors.New("invalid token")
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, errors.New("invalid sub claim")
	}

	var roles []string
	switch v := claims["roles"].(type) {
	case []interface{}:
		for _, r := range v {
			s, ok := r.(string)
			if !ok {
				return nil, errors.New("invalid roles claim")
			}
			roles = append(roles, NormalizeRole(s))
		}
	case nil:
	default:
		return nil, errors.New("invalid roles claim")
	}
	if role, ok := claims["role"].(string); ok && role != "" {
		roles = append(roles, NormalizeRole(role))
	}

	return &Principal{Subject: sub, Roles: roles}, nil
}

// Package authtest signs bearer tokens for tests.
package authtest

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Secret is a JWT secret long enough to pass config validation.
const Secret = "test-secret-key-at-least-32-characters-long-for-testing"

// Token returns an HS256 token for sub holding roles, valid for an hour.
func Token(t testing.TB, sub string, roles ...string) string {
	t.Helper()
	return Sign(t, jwt.MapClaims{
		"sub":   sub,
		"roles": roles,
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
}

// Sign signs claims with Secret.
func Sign(t testing.TB, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(Secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

// Bearer returns the Authorization header value for Token.
func Bearer(t testing.TB, sub string, roles ...string) string {
	t.Helper()
	return "Bearer " + Token(t, sub, roles...)
}

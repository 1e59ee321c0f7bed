package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/incident-desk/backend/internal/config"
)

func signToken(t *testing.T, method jwt.SigningMethod, key any, claims jwt.RegisteredClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return token
}

func TestAuthPolicyDemoMode(t *testing.T) {
	if !NewAuthPolicy(config.AuthConfig{JWTSecret: "  "}).DemoMode() {
		t.Fatalf("blank secret should be demo mode")
	}
	if NewAuthPolicy(config.AuthConfig{JWTSecret: "s"}).DemoMode() {
		t.Fatalf("configured secret should not be demo mode")
	}
}

func TestAuthResolver(t *testing.T) {
	secret := []byte("top-secret")
	now := time.Now()
	valid := jwt.RegisteredClaims{Subject: "user-1", ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))}

	resolver := NewAuthResolver(AuthPolicy{Secret: string(secret)})
	tests := []struct {
		name   string
		header string
		want   string
		ok     bool
	}{
		{name: "valid-hs256", header: "Bearer " + signToken(t, jwt.SigningMethodHS256, secret, valid), want: "user-1", ok: true},
		{name: "valid-hs512-lowercase-scheme", header: "bearer " + signToken(t, jwt.SigningMethodHS512, secret, valid), want: "user-1", ok: true},
		{name: "no-header", header: ""},
		{name: "not-bearer", header: "Basic dXNlcjpwYXNz"},
		{name: "garbage", header: "Bearer not.a.jwt"},
		{name: "wrong-secret", header: "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte("other"), valid)},
		{
			name:   "expired",
			header: "Bearer " + signToken(t, jwt.SigningMethodHS256, secret, jwt.RegisteredClaims{Subject: "user-1", ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour))}),
		},
		{
			name:   "no-subject",
			header: "Bearer " + signToken(t, jwt.SigningMethodHS256, secret, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))}),
		},
		{name: "alg-none", header: "Bearer " + signToken(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, valid)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := resolver.Resolve(tt.header)
			if got != tt.want || ok != tt.ok {
				t.Fatalf("Resolve = %q, %v; want %q, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestAuthResolverDemoModeIgnoresTokens(t *testing.T) {
	token := signToken(t, jwt.SigningMethodHS256, []byte("any-secret"), jwt.RegisteredClaims{Subject: "user-1"})
	if id, ok := NewAuthResolver(AuthPolicy{}).Resolve("Bearer " + token); ok || id != "" {
		t.Fatalf("demo mode must resolve anonymous, got %q", id)
	}
}

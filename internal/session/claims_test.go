package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signed(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("any-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return token
}

func TestInspectToken(t *testing.T) {
	exp := time.Now().Add(-time.Minute).Truncate(time.Second)
	token := signed(t, jwt.RegisteredClaims{Subject: "ada@example.com", ExpiresAt: jwt.NewNumericDate(exp)})

	claims, err := InspectToken(token)
	if err != nil {
		t.Fatalf("InspectToken: %v", err)
	}
	if claims.Subject != "ada@example.com" {
		t.Fatalf("unexpected subject %q", claims.Subject)
	}
	if !claims.ExpiresAt.Equal(exp) {
		t.Fatalf("unexpected expiry %v, want %v", claims.ExpiresAt, exp)
	}
	if !claims.Expired(time.Now()) {
		t.Fatal("expected token to be expired")
	}
}

func TestInspectTokenWithoutExpiry(t *testing.T) {
	claims, err := InspectToken(signed(t, jwt.RegisteredClaims{Subject: "x"}))
	if err != nil {
		t.Fatalf("InspectToken: %v", err)
	}
	if claims.HasExpiry() || claims.Expired(time.Now()) {
		t.Fatalf("token without exp must never expire: %+v", claims)
	}
}

func TestInspectOpaqueToken(t *testing.T) {
	if _, err := InspectToken("opaque-session-token"); err == nil {
		t.Fatal("expected error for non-JWT token")
	}
}

package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewAccessTokenClaims(t *testing.T) {
	const secret = "test-secret"

	at, err := NewAccessToken(secret, 42, "MEMBER", "trusted", 15)
	if err != nil {
		t.Fatalf("NewAccessToken() error = %v", err)
	}
	if at.Token == "" {
		t.Fatal("NewAccessToken() returned an empty token")
	}
	if remaining := time.Until(at.Exp); remaining < 14*time.Minute || remaining > 16*time.Minute {
		t.Errorf("expiry %v is not about 15 minutes out", remaining)
	}

	tok, err := jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		t.Fatalf("issued token failed to parse: %v", err)
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("claims are not a MapClaims")
	}
	if sub, _ := claims["sub"].(float64); uint64(sub) != 42 {
		t.Errorf("sub = %v, want 42", claims["sub"])
	}
	if claims["role"] != "MEMBER" {
		t.Errorf("role = %v, want MEMBER", claims["role"])
	}
	if claims["trust"] != "trusted" {
		t.Errorf("trust = %v, want trusted", claims["trust"])
	}
}

func TestNewAccessTokenWrongSecret(t *testing.T) {
	at, err := NewAccessToken("secret-a", 1, "MEMBER", "untrusted", 15)
	if err != nil {
		t.Fatalf("NewAccessToken() error = %v", err)
	}
	if _, err := jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("secret-b"), nil
	}); err == nil {
		t.Error("token parsed with the wrong secret")
	}
}

func TestHashRefreshRaw(t *testing.T) {
	a := HashRefreshRaw("raw-token")
	b := HashRefreshRaw("raw-token")
	c := HashRefreshRaw("other-token")
	if a != b {
		t.Error("hash is not deterministic")
	}
	if a == c {
		t.Error("different inputs produced the same hash")
	}
	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(a))
	}
}

func TestNewRefreshToken(t *testing.T) {
	r1, err := NewRefreshToken(30)
	if err != nil {
		t.Fatalf("NewRefreshToken() error = %v", err)
	}
	r2, err := NewRefreshToken(30)
	if err != nil {
		t.Fatalf("NewRefreshToken() error = %v", err)
	}
	if r1.Raw == r2.Raw {
		t.Error("two refresh tokens share the same raw value")
	}
	if len(r1.Raw) != 96 {
		t.Errorf("raw length = %d, want 96 hex chars", len(r1.Raw))
	}
}

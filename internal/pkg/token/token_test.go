package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestManager_IssueAndParse(t *testing.T) {
	m := NewManager("secret", time.Hour)

	raw, err := m.Issue(7, "alice", "editor")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := m.Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.ID != 7 || claims.Username != "alice" || claims.Role != "editor" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != time.Hour {
		t.Fatalf("expected 1h lifetime, got %s", got)
	}
}

func TestManager_DefaultTTL(t *testing.T) {
	m := NewManager("secret", 0)
	if m.ttl != DefaultTTL {
		t.Fatalf("expected default ttl, got %s", m.ttl)
	}
}

func TestManager_RejectsExpired(t *testing.T) {
	m := NewManager("secret", time.Hour)
	issuedAt := time.Now().Add(-2 * time.Hour)
	m.now = func() time.Time { return issuedAt }

	raw, err := m.Issue(1, "alice", "user")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	m.now = time.Now
	if _, err := m.Parse(raw); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestManager_RejectsWrongSecret(t *testing.T) {
	raw, err := NewManager("one", time.Hour).Issue(1, "alice", "user")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := NewManager("two", time.Hour).Parse(raw); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestManager_RejectsOtherAlgorithms(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		ID: 1, Username: "alice", Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})
	raw, err := tok.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := NewManager("secret", time.Hour).Parse(raw); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestManager_RejectsGarbage(t *testing.T) {
	if _, err := NewManager("secret", time.Hour).Parse("not-a-token"); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

// Package token issues and verifies the HS256 access tokens handed out at
// login. Tokens carry the identity as it was at issuance and are not checked
// against the user record afterwards.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultTTL = 24 * time.Hour

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the token payload.
type Claims struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Manager signs and parses tokens with a shared secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for the given identity.
func (m *Manager) Issue(id int64, username, role string) (string, error) {
	now := m.now()
	claims := Claims{
		ID:       id,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.secret)
}

// Parse verifies signature and expiry. Every failure maps to ErrInvalidToken.
func (m *Manager) Parse(raw string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.ID <= 0 || claims.Role == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

package ports

import (
	"context"

	"github.com/twittoo/twittoo-api/internal/core/domain"
)

// AuthResult is returned by both registration and login.
type AuthResult struct {
	Token string
	User  *domain.User
}

type AuthService interface {
	Register(ctx context.Context, username, password string) (*AuthResult, error)
	Login(ctx context.Context, username, password string) (*AuthResult, error)
}

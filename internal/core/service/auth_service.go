package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/twittoo/twittoo-api/internal/core/domain"
	"github.com/twittoo/twittoo-api/internal/core/ports"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 32
	minPasswordLength = 6
	maxPasswordBytes  = 72
)

// AuthService implements registration and login.
type AuthService struct {
	users  ports.UserRepository
	tokens ports.TokenIssuer
	logger zerolog.Logger
	cost   int
}

// AuthOption configures an AuthService.
type AuthOption func(*AuthService)

// WithHashCost overrides the bcrypt cost. Values outside bcrypt's range fall
// back to the default.
func WithHashCost(cost int) AuthOption {
	return func(s *AuthService) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			s.cost = cost
		}
	}
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenIssuer, logger zerolog.Logger, opts ...AuthOption) *AuthService {
	s := &AuthService{users: users, tokens: tokens, logger: logger, cost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func validateCredentials(username, password string) error {
	if username == "" || password == "" {
		return domain.ErrCredentialsRequired
	}
	switch n := utf8.RuneCountInString(username); {
	case n < minUsernameLength:
		return domain.ErrUsernameTooShort
	case n > maxUsernameLength:
		return domain.ErrUsernameTooLong
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return domain.ErrPasswordTooShort
	}
	if len(password) > maxPasswordBytes {
		return domain.ErrPasswordTooLong
	}
	return nil
}

// Register creates a base-role account and signs a token for it.
func (s *AuthService) Register(ctx context.Context, username, password string) (*ports.AuthResult, error) {
	if err := validateCredentials(username, password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user, err := s.users.Create(ctx, &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		DisplayName:  username,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.logger.Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("user registered")
	return &ports.AuthResult{Token: token, User: user}, nil
}

// Login verifies credentials. Unknown usernames and wrong passwords are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.AuthResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrCredentialsRequired
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &ports.AuthResult{Token: token, User: user}, nil
}

package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"mrp/internal/apperror"
	"mrp/internal/microservices/http-api/models"
	"mrp/internal/microservices/http-api/repository"
	"mrp/internal/middleware/auth"
)

const (
	MaxUsernameLength = 50
	MinPasswordLength = 3
)

type AuthService interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	Authenticate(ctx context.Context, authorizationHeader string) (*models.User, error)
}

type authService struct {
	users  repository.UserRepository
	tokens *auth.TokenService
}

func NewAuthService(users repository.UserRepository, tokens *auth.TokenService) AuthService {
	return &authService{
		users:  users,
		tokens: tokens,
	}
}

// Register creates a user with a hashed password and no token.
func (s *authService) Register(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperror.Validation("username is required")
	}
	if utf8.RuneCountInString(username) > MaxUsernameLength {
		return nil, apperror.Validation("username must be at most %d characters", MaxUsernameLength)
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return nil, apperror.Validation("password must be at least %d characters", MinPasswordLength)
	}

	// Check if user exists
	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, apperror.Conflict("username already exists")
	} else if !isNotFound(err) {
		return nil, apperror.Internal(err)
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hashed,
		Role:         models.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// lost the race against a concurrent registration
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.Conflict("username already exists")
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}

// Login verifies the credentials and rotates the user's token.
func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", apperror.InvalidCredentials()
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if !isNotFound(err) {
			return "", apperror.Internal(err)
		}
		// same cost as a real verification so unknown users are not distinguishable by timing
		auth.BurnVerify(password)
		return "", apperror.InvalidCredentials()
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return "", apperror.InvalidCredentials()
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return "", apperror.Internal(err)
	}
	if err := s.users.UpdateToken(ctx, user.ID, token); err != nil {
		return "", apperror.Internal(err)
	}
	return token, nil
}

func (s *authService) Authenticate(ctx context.Context, authorizationHeader string) (*models.User, error) {
	return s.tokens.Authenticate(ctx, authorizationHeader, s.users)
}

package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"mrp/internal/apperror"
	"mrp/internal/microservices/http-api/models"
)

const bearerPrefix = "Bearer "

// UserLookup is the slice of the user store the token service needs.
type UserLookup interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// Claims carried by a bearer token. ID (jti) is a fresh random value per issuance,
// so two logins never produce the same token.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenService issues and resolves bearer tokens. A token is only accepted while it is
// the current token persisted on its user row; logging in again rotates it.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

func NewTokenService(secret []byte) *TokenService {
	return &TokenService{secret: secret, now: time.Now}
}

// RandomSecret returns a 32-byte key for processes started without TOKEN_SECRET.
func RandomSecret() ([]byte, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("generate token secret: %w", err)
	}
	return b, nil
}

// Issue signs a new token for the user. The caller persists it on the user row.
func (s *TokenService) Issue(userID, username string) (string, error) {
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  userID,
			ID:       uuid.New().String(),
			IssuedAt: jwt.NewNumericDate(s.now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse validates the signature and returns the claims.
func (s *TokenService) Parse(tokenString string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid || claims.Subject == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// Authenticate resolves an Authorization header value to the user owning the token.
// Missing, malformed, wrong-scheme, unparseable, unknown-user and rotated tokens all
// yield an Unauthenticated error. Store failures yield Internal.
func (s *TokenService) Authenticate(ctx context.Context, header string, users UserLookup) (*models.User, error) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return nil, apperror.Unauthenticated("missing bearer token")
	}
	raw := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	if raw == "" {
		return nil, apperror.Unauthenticated("missing bearer token")
	}

	claims, err := s.Parse(raw)
	if err != nil {
		return nil, apperror.Unauthenticated("invalid token")
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return nil, apperror.Unauthenticated("invalid token")
	}

	user, err := users.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Unauthenticated("invalid token")
		}
		return nil, apperror.Internal(err)
	}

	// tokens are random, a plain comparison is enough
	if user.Token == nil || *user.Token != raw {
		return nil, apperror.Unauthenticated("invalid token")
	}
	return user, nil
}

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"mrp/internal/apperror"
	"mrp/internal/microservices/http-api/models"
)

const (
	userKey   = "user"
	userIDKey = "userID"
)

// Authenticator resolves an Authorization header to a user.
type Authenticator interface {
	Authenticate(ctx context.Context, authorizationHeader string) (*models.User, error)
}

// Moderators decides who may use the moderation endpoints.
type Moderators interface {
	CanModerate(user *models.User) bool
}

// AuthMiddleware rejects requests without a valid bearer token and stores the
// authenticated user in the context for handlers to use.
func AuthMiddleware(authn Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := authn.Authenticate(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			kind := apperror.KindOf(err)
			if kind == apperror.KindInternal {
				slog.ErrorContext(c.Request.Context(), "authentication failed", "path", c.Request.URL.Path, "error", err)
			}
			c.AbortWithStatusJSON(apperror.HTTPStatus(kind), gin.H{"error": apperror.Message(err)})
			return
		}

		c.Set(userKey, user)
		c.Set(userIDKey, user.ID)
		c.Next()
	}
}

// RequireModerator must run after AuthMiddleware.
func RequireModerator(policy Moderators) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok || !policy.CanModerate(user) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "moderator role required"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user stored by AuthMiddleware.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(userKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}

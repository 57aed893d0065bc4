package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"mrp/internal/apperror"
	"mrp/internal/microservices/http-api/middleware"
	"mrp/internal/microservices/http-api/models"
)

const requestTimeout = 5 * time.Second

// respondError maps a service error to its status and a JSON {"error": message} body.
// Internal causes are logged and never sent to the client.
func respondError(c *gin.Context, err error) {
	kind := apperror.KindOf(err)
	if kind == apperror.KindInternal {
		slog.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err,
		)
	}
	c.JSON(apperror.HTTPStatus(kind), gin.H{"error": apperror.Message(err)})
}

func respondBadBody(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
}

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

// currentUser is only called behind AuthMiddleware; a missing user means the route is miswired.
func currentUser(c *gin.Context) (*models.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
	}
	return user, ok
}

// optionalInt parses an integer query parameter; absent or empty yields nil.
func optionalInt(c *gin.Context, key string) (*int, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apperror.Validation("%s must be an integer", key)
	}
	return &v, nil
}

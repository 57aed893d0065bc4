package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"mrp/internal/apperror"
	"mrp/internal/microservices/http-api/models"
)

type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Authenticate(ctx context.Context, header string) (*models.User, error) {
	args := m.Called(ctx, header)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type rolePolicy struct{}

func (rolePolicy) CanModerate(u *models.User) bool { return u != nil && u.Role == models.RoleModerator }

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func whoAmI(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.Status(http.StatusTeapot)
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": user.Username})
}

func TestAuthMiddleware_SetsUser(t *testing.T) {
	authn := new(MockAuthenticator)
	authn.On("Authenticate", mock.Anything, "Bearer good").Return(&models.User{ID: "u1", Username: "alice"}, nil)

	router := setupRouter()
	router.GET("/me", AuthMiddleware(authn), whoAmI)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer good")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"username":"alice"}`, w.Body.String())
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	authn := new(MockAuthenticator)
	authn.On("Authenticate", mock.Anything, "").Return(nil, apperror.Unauthenticated("missing bearer token"))
	authn.On("Authenticate", mock.Anything, "Bearer broken-db").Return(nil, apperror.Internal(errors.New("db down")))

	router := setupRouter()
	router.GET("/me", AuthMiddleware(authn), whoAmI)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/me", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"missing bearer token"}`, w.Body.String())

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer broken-db")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "db down")
}

func TestRequireModerator(t *testing.T) {
	authn := new(MockAuthenticator)
	authn.On("Authenticate", mock.Anything, "Bearer user").Return(&models.User{ID: "u1", Role: models.RoleUser}, nil)
	authn.On("Authenticate", mock.Anything, "Bearer mod").Return(&models.User{ID: "u2", Username: "mod", Role: models.RoleModerator}, nil)

	router := setupRouter()
	router.GET("/queue", AuthMiddleware(authn), RequireModerator(rolePolicy{}), whoAmI)

	for header, want := range map[string]int{"Bearer user": http.StatusForbidden, "Bearer mod": http.StatusOK} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/queue", nil)
		req.Header.Set("Authorization", header)
		router.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, header)
	}
}

func TestCORS_Preflight(t *testing.T) {
	router := setupRouter()
	router.Use(CORS("*"))
	router.POST("/api/media", func(c *gin.Context) { c.Status(http.StatusCreated) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodOptions, "/api/media", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodPost, "/api/media", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	router := setupRouter()
	router.Use(RequestLogger(logger))
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	assert.Contains(t, buf.String(), `"path":"/health"`)
	assert.Contains(t, buf.String(), `"status":200`)
}

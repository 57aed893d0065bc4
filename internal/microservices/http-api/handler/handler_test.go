package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mrp/internal/apperror"
	"mrp/internal/microservices/http-api/models"
	"mrp/internal/microservices/http-api/service"
)

const (
	aliceToken = "Bearer alice-token"
	bobToken   = "Bearer bob-token"
	mediaID    = "7b0e4c4e-3a43-4a8e-9a52-4f4e2c6f1a10"
	ratingID   = "c1f1f5a2-6c1d-4b8e-8f55-0b7b1c2d3e4f"
)

var (
	alice = &models.User{ID: "0f8fad5b-d9cb-469f-a165-70867728950e", Username: "alice", Role: models.RoleUser}
	bob   = &models.User{ID: "7c9e6679-7425-40de-944b-e07fc1f90ae7", Username: "bob", Role: models.RoleModerator}
)

type testServer struct {
	router    *gin.Engine
	auth      *MockAuthService
	profiles  *MockProfileService
	media     *MockMediaService
	ratings   *MockRatingService
	favorites *MockFavoriteService
}

func setupServer(t *testing.T, opts ...func(*RouterOptions)) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &testServer{
		auth:      new(MockAuthService),
		profiles:  new(MockProfileService),
		media:     new(MockMediaService),
		ratings:   new(MockRatingService),
		favorites: new(MockFavoriteService),
	}
	s.auth.On("Authenticate", mock.Anything, aliceToken).Return(alice, nil).Maybe()
	s.auth.On("Authenticate", mock.Anything, bobToken).Return(bob, nil).Maybe()
	s.auth.On("Authenticate", mock.Anything, mock.Anything).
		Return(nil, apperror.Unauthenticated("invalid token")).Maybe()

	options := RouterOptions{}
	for _, o := range opts {
		o(&options)
	}
	s.router = NewRouter(Services{
		Auth:       s.auth,
		Profiles:   s.profiles,
		Media:      s.media,
		Ratings:    s.ratings,
		Favorites:  s.favorites,
		Moderation: service.NewModerationPolicy("role"),
	}, options)
	return s
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewBuffer(raw)
	}

	req, _ := http.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

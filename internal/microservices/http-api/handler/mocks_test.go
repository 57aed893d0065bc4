package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"mrp/internal/microservices/http-api/models"
	"mrp/internal/microservices/http-api/repository"
	"mrp/internal/microservices/http-api/service"
)

// MockAuthService mocks the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) Authenticate(ctx context.Context, header string) (*models.User, error) {
	args := m.Called(ctx, header)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockProfileService mocks the ProfileService interface
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) Profile(ctx context.Context, actor *models.User, username string) (*models.User, error) {
	args := m.Called(ctx, actor, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockProfileService) Ratings(ctx context.Context, actor *models.User, username string) ([]models.Rating, error) {
	args := m.Called(ctx, actor, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Rating), args.Error(1)
}

func (m *MockProfileService) Statistics(ctx context.Context, actor *models.User, username string) (*service.Statistics, error) {
	args := m.Called(ctx, actor, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Statistics), args.Error(1)
}

func (m *MockProfileService) Activity(ctx context.Context, actor *models.User, username string) (*service.Activity, error) {
	args := m.Called(ctx, actor, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Activity), args.Error(1)
}

// MockMediaService mocks the MediaService interface
type MockMediaService struct {
	mock.Mock
}

func (m *MockMediaService) Create(ctx context.Context, ownerID string, in service.MediaInput) (*models.MediaEntry, error) {
	args := m.Called(ctx, ownerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MediaEntry), args.Error(1)
}

func (m *MockMediaService) Get(ctx context.Context, id string) (*models.MediaEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MediaEntry), args.Error(1)
}

func (m *MockMediaService) Detail(ctx context.Context, id string) (*service.MediaDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.MediaDetail), args.Error(1)
}

func (m *MockMediaService) List(ctx context.Context, query string) ([]models.MediaEntry, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MediaEntry), args.Error(1)
}

func (m *MockMediaService) FilterAndSort(ctx context.Context, filter repository.MediaFilter, sortBy, sortOrder string) ([]models.MediaEntry, error) {
	args := m.Called(ctx, filter, sortBy, sortOrder)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MediaEntry), args.Error(1)
}

func (m *MockMediaService) Update(ctx context.Context, id, ownerID string, in service.MediaInput) (*models.MediaEntry, error) {
	args := m.Called(ctx, id, ownerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MediaEntry), args.Error(1)
}

func (m *MockMediaService) Delete(ctx context.Context, id, ownerID string) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

func (m *MockMediaService) AverageScore(ctx context.Context, id string) (float64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(float64), args.Error(1)
}

// MockRatingService mocks the RatingService interface
type MockRatingService struct {
	mock.Mock
}

func (m *MockRatingService) Create(ctx context.Context, mediaID, userID string, stars int, comment *string) (*models.Rating, error) {
	args := m.Called(ctx, mediaID, userID, stars, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rating), args.Error(1)
}

func (m *MockRatingService) Update(ctx context.Context, id, userID string, patch repository.RatingPatch) (*models.Rating, error) {
	args := m.Called(ctx, id, userID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rating), args.Error(1)
}

func (m *MockRatingService) Delete(ctx context.Context, id, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockRatingService) ListByMedia(ctx context.Context, mediaID string) ([]models.Rating, error) {
	args := m.Called(ctx, mediaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Rating), args.Error(1)
}

func (m *MockRatingService) ListByUser(ctx context.Context, userID string) ([]models.Rating, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Rating), args.Error(1)
}

func (m *MockRatingService) Pending(ctx context.Context, actor *models.User) ([]models.Rating, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Rating), args.Error(1)
}

func (m *MockRatingService) Approve(ctx context.Context, actor *models.User, id string) (*models.Rating, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rating), args.Error(1)
}

func (m *MockRatingService) Reject(ctx context.Context, actor *models.User, id string) (*models.Rating, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rating), args.Error(1)
}

// MockFavoriteService mocks the FavoriteService interface
type MockFavoriteService struct {
	mock.Mock
}

func (m *MockFavoriteService) Add(ctx context.Context, userID, mediaID string) (bool, error) {
	args := m.Called(ctx, userID, mediaID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteService) Remove(ctx context.Context, userID, mediaID string) error {
	args := m.Called(ctx, userID, mediaID)
	return args.Error(0)
}

func (m *MockFavoriteService) IsFavorite(ctx context.Context, userID, mediaID string) (bool, error) {
	args := m.Called(ctx, userID, mediaID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteService) ListForUser(ctx context.Context, userID string) ([]models.MediaEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MediaEntry), args.Error(1)
}

func (m *MockFavoriteService) CountForMedia(ctx context.Context, mediaID string) (int64, error) {
	args := m.Called(ctx, mediaID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFavoriteService) Toggle(ctx context.Context, userID, mediaID string) (bool, error) {
	args := m.Called(ctx, userID, mediaID)
	return args.Bool(0), args.Error(1)
}

type stubPinger struct {
	err error
}

func (p stubPinger) PingContext(context.Context) error { return p.err }

package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"mrp/internal/microservices/http-api/models"
	"mrp/internal/microservices/http-api/repository"
)

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateToken(ctx context.Context, id, token string) error {
	args := m.Called(ctx, id, token)
	return args.Error(0)
}

// MockMediaRepository mocks the MediaRepository interface
type MockMediaRepository struct {
	mock.Mock
}

func (m *MockMediaRepository) FindByID(ctx context.Context, id string) (*models.MediaEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MediaEntry), args.Error(1)
}

func (m *MockMediaRepository) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockMediaRepository) Search(ctx context.Context, query string) ([]models.MediaEntry, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MediaEntry), args.Error(1)
}

func (m *MockMediaRepository) Filter(ctx context.Context, filter repository.MediaFilter, sortBy string, desc bool) ([]models.MediaEntry, error) {
	args := m.Called(ctx, filter, sortBy, desc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MediaEntry), args.Error(1)
}

func (m *MockMediaRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.MediaEntry, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MediaEntry), args.Error(1)
}

func (m *MockMediaRepository) AverageScore(ctx context.Context, id string) (float64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockMediaRepository) Create(ctx context.Context, entry *models.MediaEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockMediaRepository) UpdateOwned(ctx context.Context, entry *models.MediaEntry) (bool, error) {
	args := m.Called(ctx, entry)
	return args.Bool(0), args.Error(1)
}

func (m *MockMediaRepository) DeleteOwned(ctx context.Context, id, ownerID string) (bool, error) {
	args := m.Called(ctx, id, ownerID)
	return args.Bool(0), args.Error(1)
}

// MockRatingRepository mocks the RatingRepository interface
type MockRatingRepository struct {
	mock.Mock
}

func (m *MockRatingRepository) FindByID(ctx context.Context, id string) (*models.Rating, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rating), args.Error(1)
}

func (m *MockRatingRepository) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRatingRepository) ListByMedia(ctx context.Context, mediaID string) ([]models.Rating, error) {
	args := m.Called(ctx, mediaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Rating), args.Error(1)
}

func (m *MockRatingRepository) ListByUser(ctx context.Context, userID string) ([]models.Rating, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Rating), args.Error(1)
}

func (m *MockRatingRepository) ListPending(ctx context.Context) ([]models.Rating, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Rating), args.Error(1)
}

func (m *MockRatingRepository) CountApproved(ctx context.Context, mediaID string) (int64, error) {
	args := m.Called(ctx, mediaID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRatingRepository) Create(ctx context.Context, rating *models.Rating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *MockRatingRepository) UpdateOwned(ctx context.Context, id, userID string, patch repository.RatingPatch) (bool, error) {
	args := m.Called(ctx, id, userID, patch)
	return args.Bool(0), args.Error(1)
}

func (m *MockRatingRepository) DeleteOwned(ctx context.Context, id, userID string) (bool, error) {
	args := m.Called(ctx, id, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRatingRepository) SetStatus(ctx context.Context, id, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// MockFavoriteRepository mocks the FavoriteRepository interface
type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) Add(ctx context.Context, userID, mediaID string) (bool, error) {
	args := m.Called(ctx, userID, mediaID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteRepository) Remove(ctx context.Context, userID, mediaID string) (bool, error) {
	args := m.Called(ctx, userID, mediaID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteRepository) Exists(ctx context.Context, userID, mediaID string) (bool, error) {
	args := m.Called(ctx, userID, mediaID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteRepository) ListMedia(ctx context.Context, userID string) ([]models.MediaEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MediaEntry), args.Error(1)
}

func (m *MockFavoriteRepository) CountForMedia(ctx context.Context, mediaID string) (int64, error) {
	args := m.Called(ctx, mediaID)
	return args.Get(0).(int64), args.Error(1)
}

// MockScoreCache mocks the ScoreCache interface
type MockScoreCache struct {
	mock.Mock
}

func (m *MockScoreCache) Get(ctx context.Context, mediaID string) (float64, int64, bool) {
	args := m.Called(ctx, mediaID)
	return args.Get(0).(float64), args.Get(1).(int64), args.Bool(2)
}

func (m *MockScoreCache) Set(ctx context.Context, mediaID string, gen int64, score float64) {
	m.Called(ctx, mediaID, gen, score)
}

func (m *MockScoreCache) Invalidate(ctx context.Context, mediaID string) {
	m.Called(ctx, mediaID)
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

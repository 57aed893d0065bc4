package service

import (
	"context"
	"strings"

	"mrp/internal/apperror"
	"mrp/internal/microservices/http-api/models"
	"mrp/internal/microservices/http-api/repository"
)

// Accepted ranges for optional media attributes.
const (
	MinReleaseYear    = 1800
	MaxReleaseYear    = 2100
	MinAgeRestriction = 0
	MaxAgeRestriction = 21
)

// MediaInput is the editable part of a media entry.
type MediaInput struct {
	Title          string
	Description    string
	MediaType      string
	ReleaseYear    *int
	Genres         string
	AgeRestriction *int
}

// MediaDetail is the public view of a single entry.
type MediaDetail struct {
	Entry         *models.MediaEntry
	FavoriteCount int64
	RatingCount   int64
}

type MediaService interface {
	Create(ctx context.Context, ownerID string, in MediaInput) (*models.MediaEntry, error)
	Get(ctx context.Context, id string) (*models.MediaEntry, error)
	Detail(ctx context.Context, id string) (*MediaDetail, error)
	List(ctx context.Context, query string) ([]models.MediaEntry, error)
	FilterAndSort(ctx context.Context, filter repository.MediaFilter, sortBy, sortOrder string) ([]models.MediaEntry, error)
	Update(ctx context.Context, id, ownerID string, in MediaInput) (*models.MediaEntry, error)
	Delete(ctx context.Context, id, ownerID string) error
	AverageScore(ctx context.Context, id string) (float64, error)
}

type approvedCounter interface {
	CountApproved(ctx context.Context, mediaID string) (int64, error)
}

type favoriteCounter interface {
	CountForMedia(ctx context.Context, mediaID string) (int64, error)
}

type mediaService struct {
	repo      repository.MediaRepository
	ratings   approvedCounter
	favorites favoriteCounter
	scores    ScoreCache
}

func NewMediaService(repo repository.MediaRepository, ratings approvedCounter, favorites favoriteCounter, scores ScoreCache) MediaService {
	return &mediaService{
		repo:      repo,
		ratings:   ratings,
		favorites: favorites,
		scores:    orNoop(scores),
	}
}

func (s *mediaService) Create(ctx context.Context, ownerID string, in MediaInput) (*models.MediaEntry, error) {
	if err := normalizeMediaInput(&in); err != nil {
		return nil, err
	}
	entry := &models.MediaEntry{OwnerID: ownerID}
	applyMediaInput(entry, in)

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, apperror.Internal(err)
	}
	return entry, nil
}

// Get returns the entry with its average score.
func (s *mediaService) Get(ctx context.Context, id string) (*models.MediaEntry, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperror.NotFound("media not found")
		}
		return nil, apperror.Internal(err)
	}
	score, err := s.AverageScore(ctx, id)
	if err != nil {
		return nil, err
	}
	entry.AverageScore = score
	return entry, nil
}

func (s *mediaService) Detail(ctx context.Context, id string) (*MediaDetail, error) {
	entry, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	favorites, err := s.favorites.CountForMedia(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	ratings, err := s.ratings.CountApproved(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &MediaDetail{Entry: entry, FavoriteCount: favorites, RatingCount: ratings}, nil
}

// List matches query against title and description; an empty query lists everything by title.
func (s *mediaService) List(ctx context.Context, query string) ([]models.MediaEntry, error) {
	list, err := s.repo.Search(ctx, strings.TrimSpace(query))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return list, nil
}

// FilterAndSort defaults to title ascending; unknown keys fall back to title, unknown orders to asc.
func (s *mediaService) FilterAndSort(ctx context.Context, filter repository.MediaFilter, sortBy, sortOrder string) ([]models.MediaEntry, error) {
	if filter.MediaType != "" {
		filter.MediaType = strings.ToLower(strings.TrimSpace(filter.MediaType))
	}
	filter.Genre = strings.TrimSpace(filter.Genre)

	switch strings.ToLower(sortBy) {
	case repository.SortByYear, repository.SortByScore:
		sortBy = strings.ToLower(sortBy)
	default:
		sortBy = repository.SortByTitle
	}
	desc := strings.EqualFold(sortOrder, "desc")

	list, err := s.repo.Filter(ctx, filter, sortBy, desc)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return list, nil
}

// Update overwrites the editable fields. Only the owner may update.
func (s *mediaService) Update(ctx context.Context, id, ownerID string, in MediaInput) (*models.MediaEntry, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	if err := normalizeMediaInput(&in); err != nil {
		return nil, err
	}

	entry := &models.MediaEntry{ID: id, OwnerID: ownerID}
	applyMediaInput(entry, in)

	updated, err := s.repo.UpdateOwned(ctx, entry)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if !updated {
		return nil, ownership(ctx, s.repo.Exists, id, "media")
	}
	return s.Get(ctx, id)
}

// Delete removes the entry with its ratings and favorites. Only the owner may delete.
func (s *mediaService) Delete(ctx context.Context, id, ownerID string) error {
	if err := requireID("id", id); err != nil {
		return err
	}
	deleted, err := s.repo.DeleteOwned(ctx, id, ownerID)
	if err != nil {
		return apperror.Internal(err)
	}
	if !deleted {
		return ownership(ctx, s.repo.Exists, id, "media")
	}
	s.scores.Invalidate(ctx, id)
	return nil
}

// AverageScore is the mean of approved stars, 0 when there are none.
func (s *mediaService) AverageScore(ctx context.Context, id string) (float64, error) {
	score, gen, ok := s.scores.Get(ctx, id)
	if ok {
		return score, nil
	}
	score, err := s.repo.AverageScore(ctx, id)
	if err != nil {
		return 0, apperror.Internal(err)
	}
	s.scores.Set(ctx, id, gen, score)
	return score, nil
}

func normalizeMediaInput(in *MediaInput) error {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return apperror.Validation("title is required")
	}

	in.MediaType = strings.ToLower(strings.TrimSpace(in.MediaType))
	if !models.ValidMediaType(in.MediaType) {
		return apperror.Validation("mediaType must be one of movie, series, game")
	}

	if in.ReleaseYear != nil && (*in.ReleaseYear < MinReleaseYear || *in.ReleaseYear > MaxReleaseYear) {
		return apperror.Validation("releaseYear must be between %d and %d", MinReleaseYear, MaxReleaseYear)
	}
	if in.AgeRestriction != nil && (*in.AgeRestriction < MinAgeRestriction || *in.AgeRestriction > MaxAgeRestriction) {
		return apperror.Validation("ageRestriction must be between %d and %d", MinAgeRestriction, MaxAgeRestriction)
	}

	in.Description = strings.TrimSpace(in.Description)
	in.Genres = normalizeGenres(in.Genres)
	return nil
}

// normalizeGenres trims each comma separated element and drops empty ones.
func normalizeGenres(genres string) string {
	parts := strings.Split(genres, ",")
	kept := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ",")
}

func applyMediaInput(entry *models.MediaEntry, in MediaInput) {
	entry.Title = in.Title
	entry.Description = in.Description
	entry.MediaType = in.MediaType
	entry.ReleaseYear = in.ReleaseYear
	entry.Genres = in.Genres
	entry.AgeRestriction = in.AgeRestriction
}

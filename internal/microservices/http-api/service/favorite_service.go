package service

import (
	"context"

	"mrp/internal/apperror"
	"mrp/internal/microservices/http-api/models"
	"mrp/internal/microservices/http-api/repository"
)

type FavoriteService interface {
	Add(ctx context.Context, userID, mediaID string) (bool, error)
	Remove(ctx context.Context, userID, mediaID string) error
	IsFavorite(ctx context.Context, userID, mediaID string) (bool, error)
	ListForUser(ctx context.Context, userID string) ([]models.MediaEntry, error)
	CountForMedia(ctx context.Context, mediaID string) (int64, error)
	Toggle(ctx context.Context, userID, mediaID string) (bool, error)
}

type favoriteService struct {
	repo  repository.FavoriteRepository
	media mediaExistence
}

func NewFavoriteService(repo repository.FavoriteRepository, media mediaExistence) FavoriteService {
	return &favoriteService{
		repo:  repo,
		media: media,
	}
}

// Add is idempotent and reports whether the pair was new. The media must exist.
func (s *favoriteService) Add(ctx context.Context, userID, mediaID string) (bool, error) {
	if err := requireID("mediaId", mediaID); err != nil {
		return false, err
	}
	found, err := s.media.Exists(ctx, mediaID)
	if err != nil {
		return false, apperror.Internal(err)
	}
	if !found {
		return false, apperror.Validation("media %s does not exist", mediaID)
	}

	added, err := s.repo.Add(ctx, userID, mediaID)
	if err != nil {
		return false, apperror.Internal(err)
	}
	return added, nil
}

// Remove is idempotent.
func (s *favoriteService) Remove(ctx context.Context, userID, mediaID string) error {
	if err := requireID("mediaId", mediaID); err != nil {
		return err
	}
	if _, err := s.repo.Remove(ctx, userID, mediaID); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (s *favoriteService) IsFavorite(ctx context.Context, userID, mediaID string) (bool, error) {
	if err := requireID("mediaId", mediaID); err != nil {
		return false, err
	}
	exists, err := s.repo.Exists(ctx, userID, mediaID)
	if err != nil {
		return false, apperror.Internal(err)
	}
	return exists, nil
}

func (s *favoriteService) ListForUser(ctx context.Context, userID string) ([]models.MediaEntry, error) {
	list, err := s.repo.ListMedia(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return list, nil
}

func (s *favoriteService) CountForMedia(ctx context.Context, mediaID string) (int64, error) {
	if err := requireID("mediaId", mediaID); err != nil {
		return 0, err
	}
	count, err := s.repo.CountForMedia(ctx, mediaID)
	if err != nil {
		return 0, apperror.Internal(err)
	}
	return count, nil
}

// Toggle returns true when the media was added, false when it was removed.
func (s *favoriteService) Toggle(ctx context.Context, userID, mediaID string) (bool, error) {
	if err := requireID("mediaId", mediaID); err != nil {
		return false, err
	}
	removed, err := s.repo.Remove(ctx, userID, mediaID)
	if err != nil {
		return false, apperror.Internal(err)
	}
	if removed {
		return false, nil
	}
	if _, err := s.Add(ctx, userID, mediaID); err != nil {
		return false, err
	}
	return true, nil
}

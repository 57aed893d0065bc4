package repository

import (
	"context"
	"fmt"

	"mrp/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FavoriteRepository interface {
	// Add reports whether a new row was inserted; an existing pair is left as is.
	Add(ctx context.Context, userID, mediaID string) (bool, error)
	// Remove reports whether a row was deleted.
	Remove(ctx context.Context, userID, mediaID string) (bool, error)
	Exists(ctx context.Context, userID, mediaID string) (bool, error)
	ListMedia(ctx context.Context, userID string) ([]models.MediaEntry, error)
	CountForMedia(ctx context.Context, mediaID string) (int64, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Add(ctx context.Context, userID, mediaID string) (bool, error) {
	fav := &models.Favorite{
		UserID:  userID,
		MediaID: mediaID,
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "media_id"}},
			DoNothing: true,
		}).
		Create(fav)
	if result.Error != nil {
		return false, fmt.Errorf("add favorite: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *favoriteRepository) Remove(ctx context.Context, userID, mediaID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND media_id = ?", userID, mediaID).
		Delete(&models.Favorite{})
	if result.Error != nil {
		return false, fmt.Errorf("remove favorite: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *favoriteRepository) Exists(ctx context.Context, userID, mediaID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ? AND media_id = ?", userID, mediaID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("favorite exists: %w", err)
	}
	return count > 0, nil
}

// ListMedia returns the user's favorited entries with their scores, most recently favorited first.
func (r *favoriteRepository) ListMedia(ctx context.Context, userID string) ([]models.MediaEntry, error) {
	var list []models.MediaEntry
	if err := r.db.WithContext(ctx).
		Model(&models.MediaEntry{}).
		Select(averageScoreSelect, models.StatusApproved).
		Joins("JOIN favorites ON favorites.media_id = media.id AND favorites.user_id = ?", userID).
		Joins("LEFT JOIN ratings ON ratings.media_id = media.id").
		Group("media.id, favorites.created_at").
		Order("favorites.created_at DESC, media.id ASC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return list, nil
}

func (r *favoriteRepository) CountForMedia(ctx context.Context, mediaID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("media_id = ?", mediaID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count favorites: %w", err)
	}
	return count, nil
}

package repository

import (
	"context"
	"fmt"

	"mrp/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// RatingPatch carries the fields an author may change. Nil fields are left untouched.
type RatingPatch struct {
	Stars   *int
	Comment *string
}

type RatingReader interface {
	FindByID(ctx context.Context, id string) (*models.Rating, error)
	Exists(ctx context.Context, id string) (bool, error)
	ListByMedia(ctx context.Context, mediaID string) ([]models.Rating, error)
	ListByUser(ctx context.Context, userID string) ([]models.Rating, error)
	ListPending(ctx context.Context) ([]models.Rating, error)
	CountApproved(ctx context.Context, mediaID string) (int64, error)
}

type RatingWriter interface {
	Create(ctx context.Context, rating *models.Rating) error
	UpdateOwned(ctx context.Context, id, userID string, patch RatingPatch) (bool, error)
	DeleteOwned(ctx context.Context, id, userID string) (bool, error)
	SetStatus(ctx context.Context, id, status string) error
}

type RatingRepository interface {
	RatingReader
	RatingWriter
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) Create(ctx context.Context, rating *models.Rating) error {
	if err := r.db.WithContext(ctx).Create(rating).Error; err != nil {
		return fmt.Errorf("create rating: %w", err)
	}
	return nil
}

func (r *ratingRepository) FindByID(ctx context.Context, id string) (*models.Rating, error) {
	var rating models.Rating
	if err := r.db.WithContext(ctx).First(&rating, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("find rating: %w", err)
	}
	return &rating, nil
}

func (r *ratingRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("rating exists: %w", err)
	}
	return count > 0, nil
}

// UpdateOwned applies patch in a single statement guarded by id and author.
// A changed comment on an approved or rejected rating sends it back to pending;
// the CASE reads the pre-update comment. A missing comment and an empty one are equal.
func (r *ratingRepository) UpdateOwned(ctx context.Context, id, userID string, patch RatingPatch) (bool, error) {
	updates := map[string]interface{}{}
	if patch.Stars != nil {
		updates["stars"] = *patch.Stars
	}
	if patch.Comment != nil {
		updates["comment"] = *patch.Comment
		updates["status"] = gorm.Expr(
			"CASE WHEN status IN (?, ?) AND COALESCE(comment, '') <> ? THEN ? ELSE status END",
			models.StatusApproved, models.StatusRejected, *patch.Comment, models.StatusPending,
		)
	}
	if len(updates) == 0 {
		return false, fmt.Errorf("update rating: empty patch")
	}

	result := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	if result.Error != nil {
		return false, fmt.Errorf("update rating: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *ratingRepository) DeleteOwned(ctx context.Context, id, userID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Rating{})
	if result.Error != nil {
		return false, fmt.Errorf("delete rating: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *ratingRepository) SetStatus(ctx context.Context, id, status string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("set rating status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("set rating status: %w", gorm.ErrRecordNotFound)
	}
	return nil
}

// ListByMedia returns the approved ratings of a media entry, newest first.
func (r *ratingRepository) ListByMedia(ctx context.Context, mediaID string) ([]models.Rating, error) {
	var ratings []models.Rating
	if err := r.db.WithContext(ctx).
		Where("media_id = ? AND status = ?", mediaID, models.StatusApproved).
		Order("created_at DESC, id DESC").
		Find(&ratings).Error; err != nil {
		return nil, fmt.Errorf("list ratings by media: %w", err)
	}
	return ratings, nil
}

// ListByUser returns every rating of the author regardless of status, newest first.
func (r *ratingRepository) ListByUser(ctx context.Context, userID string) ([]models.Rating, error) {
	var ratings []models.Rating
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&ratings).Error; err != nil {
		return nil, fmt.Errorf("list ratings by user: %w", err)
	}
	return ratings, nil
}

// ListPending is the moderation queue, oldest first.
func (r *ratingRepository) ListPending(ctx context.Context) ([]models.Rating, error) {
	var ratings []models.Rating
	if err := r.db.WithContext(ctx).
		Where("status = ?", models.StatusPending).
		Order("created_at ASC, id ASC").
		Find(&ratings).Error; err != nil {
		return nil, fmt.Errorf("list pending ratings: %w", err)
	}
	return ratings, nil
}

func (r *ratingRepository) CountApproved(ctx context.Context, mediaID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Where("media_id = ? AND status = ?", mediaID, models.StatusApproved).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count ratings: %w", err)
	}
	return count, nil
}

package repository

import (
	"context"
	"fmt"
	"strings"

	"mrp/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// averageScoreSelect computes the mean of approved stars; it needs a LEFT JOIN on ratings
// and GROUP BY media.id.
const averageScoreSelect = "media.*, COALESCE(AVG(ratings.stars::float8) FILTER (WHERE ratings.status = ?), 0) AS average_score"

// Sort keys accepted by Filter.
const (
	SortByTitle = "title"
	SortByYear  = "year"
	SortByScore = "score"
)

// MediaFilter holds the optional filters of a media listing. Nil or empty fields do not filter.
type MediaFilter struct {
	Genre     string
	MediaType string
	Year      *int
	MinYear   *int
	MaxYear   *int
	MaxAge    *int // entries without an age restriction always pass
}

// MediaReader serves lookups and listings. Listings carry AverageScore; FindByID does not.
type MediaReader interface {
	FindByID(ctx context.Context, id string) (*models.MediaEntry, error)
	Exists(ctx context.Context, id string) (bool, error)
	Search(ctx context.Context, query string) ([]models.MediaEntry, error)
	Filter(ctx context.Context, filter MediaFilter, sortBy string, desc bool) ([]models.MediaEntry, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.MediaEntry, error)
	AverageScore(ctx context.Context, id string) (float64, error)
}

// MediaWriter mutates entries. UpdateOwned and DeleteOwned report false when no row
// matched both id and owner.
type MediaWriter interface {
	Create(ctx context.Context, entry *models.MediaEntry) error
	UpdateOwned(ctx context.Context, entry *models.MediaEntry) (bool, error)
	DeleteOwned(ctx context.Context, id, ownerID string) (bool, error)
}

type MediaRepository interface {
	MediaReader
	MediaWriter
}

type mediaRepository struct {
	db *gorm.DB
}

func NewMediaRepository(db *gorm.DB) MediaRepository {
	return &mediaRepository{db: db}
}

func (r *mediaRepository) scored(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.MediaEntry{}).
		Select(averageScoreSelect, models.StatusApproved).
		Joins("LEFT JOIN ratings ON ratings.media_id = media.id").
		Group("media.id")
}

func (r *mediaRepository) Create(ctx context.Context, entry *models.MediaEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("create media: %w", err)
	}
	return nil
}

func (r *mediaRepository) FindByID(ctx context.Context, id string) (*models.MediaEntry, error) {
	var m models.MediaEntry
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("find media: %w", err)
	}
	return &m, nil
}

func (r *mediaRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.MediaEntry{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("media exists: %w", err)
	}
	return count > 0, nil
}

// Search matches query as a case-insensitive substring of title or description.
// An empty query lists everything. Results are ordered by title.
func (r *mediaRepository) Search(ctx context.Context, query string) ([]models.MediaEntry, error) {
	var list []models.MediaEntry
	db := r.scored(ctx)
	if query != "" {
		p := "%" + escapeLike(query) + "%"
		db = db.Where("(media.title ILIKE ? OR COALESCE(media.description, '') ILIKE ?)", p, p)
	}
	if err := db.Order("media.title ASC, media.id ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("search media: %w", err)
	}
	return list, nil
}

func (r *mediaRepository) Filter(ctx context.Context, filter MediaFilter, sortBy string, desc bool) ([]models.MediaEntry, error) {
	var list []models.MediaEntry
	db := r.scored(ctx)

	if filter.Genre != "" {
		db = db.Where("COALESCE(media.genres, '') ILIKE ?", "%"+escapeLike(filter.Genre)+"%")
	}
	if filter.MediaType != "" {
		db = db.Where("media.media_type = ?", strings.ToLower(filter.MediaType))
	}
	if filter.Year != nil {
		db = db.Where("media.release_year = ?", *filter.Year)
	}
	if filter.MinYear != nil {
		db = db.Where("media.release_year >= ?", *filter.MinYear)
	}
	if filter.MaxYear != nil {
		db = db.Where("media.release_year <= ?", *filter.MaxYear)
	}
	if filter.MaxAge != nil {
		db = db.Where("(media.age_restriction IS NULL OR media.age_restriction <= ?)", *filter.MaxAge)
	}

	if err := db.Order(orderClause(sortBy, desc)).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("filter media: %w", err)
	}
	return list, nil
}

// orderClause only ever interpolates constants. Unknown keys sort by title.
func orderClause(sortBy string, desc bool) string {
	dir := "ASC"
	if desc {
		dir = "DESC"
	}
	switch sortBy {
	case SortByYear:
		return "media.release_year " + dir + " NULLS LAST, media.title ASC, media.id ASC"
	case SortByScore:
		return "average_score " + dir + ", media.title ASC, media.id ASC"
	default:
		return "media.title " + dir + ", media.id ASC"
	}
}

func (r *mediaRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.MediaEntry, error) {
	var list []models.MediaEntry
	if err := r.scored(ctx).
		Where("media.owner_id = ?", ownerID).
		Order("media.created_at DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list media by owner: %w", err)
	}
	return list, nil
}

func (r *mediaRepository) AverageScore(ctx context.Context, id string) (float64, error) {
	var avg struct {
		Average float64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Select("COALESCE(AVG(stars::float8), 0) AS average").
		Where("media_id = ? AND status = ?", id, models.StatusApproved).
		Scan(&avg).Error
	if err != nil {
		return 0, fmt.Errorf("average score: %w", err)
	}
	return avg.Average, nil
}

// UpdateOwned overwrites the editable fields in one statement guarded by id and owner.
func (r *mediaRepository) UpdateOwned(ctx context.Context, entry *models.MediaEntry) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.MediaEntry{}).
		Where("id = ? AND owner_id = ?", entry.ID, entry.OwnerID).
		Updates(map[string]interface{}{
			"title":           entry.Title,
			"description":     entry.Description,
			"media_type":      entry.MediaType,
			"release_year":    entry.ReleaseYear,
			"genres":          entry.Genres,
			"age_restriction": entry.AgeRestriction,
		})
	if result.Error != nil {
		return false, fmt.Errorf("update media: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *mediaRepository) DeleteOwned(ctx context.Context, id, ownerID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&models.MediaEntry{})
	if result.Error != nil {
		return false, fmt.Errorf("delete media: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside an ILIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

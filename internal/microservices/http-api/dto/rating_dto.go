package dto

import (
	"time"

	"mrp/internal/microservices/http-api/models"
	"mrp/internal/microservices/http-api/repository"
)

// CreateRatingRequest used for POST /api/media/:id/ratings
type CreateRatingRequest struct {
	Stars   *int    `json:"stars" binding:"required"`
	Comment *string `json:"comment,omitempty"`
}

// UpdateRatingRequest used for PUT /api/ratings/:id; absent fields are left unchanged
type UpdateRatingRequest struct {
	Stars   *int    `json:"stars,omitempty"`
	Comment *string `json:"comment,omitempty"`
}

func (r UpdateRatingRequest) ToPatch() repository.RatingPatch {
	return repository.RatingPatch{Stars: r.Stars, Comment: r.Comment}
}

type RatingResponse struct {
	ID             string    `json:"id"`
	MediaID        string    `json:"mediaId"`
	UserID         string    `json:"userId"`
	Stars          int       `json:"stars"`
	Comment        *string   `json:"comment"`
	ApprovalStatus string    `json:"approvalStatus"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func FromRating(r models.Rating) RatingResponse {
	return RatingResponse{
		ID:             r.ID,
		MediaID:        r.MediaID,
		UserID:         r.UserID,
		Stars:          r.Stars,
		Comment:        r.Comment,
		ApprovalStatus: r.Status,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func FromRatings(list []models.Rating) []RatingResponse {
	out := make([]RatingResponse, 0, len(list))
	for _, r := range list {
		out = append(out, FromRating(r))
	}
	return out
}

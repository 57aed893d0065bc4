package dto

import (
	"time"

	"mrp/internal/microservices/http-api/models"
	"mrp/internal/microservices/http-api/service"
)

// MediaRequest used for POST /api/media and PUT /api/media/:id (full replacement)
type MediaRequest struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	MediaType      string `json:"mediaType"`
	ReleaseYear    *int   `json:"releaseYear,omitempty"`
	Genres         string `json:"genres,omitempty"` // comma separated
	AgeRestriction *int   `json:"ageRestriction,omitempty"`
}

func (r MediaRequest) ToInput() service.MediaInput {
	return service.MediaInput{
		Title:          r.Title,
		Description:    r.Description,
		MediaType:      r.MediaType,
		ReleaseYear:    r.ReleaseYear,
		Genres:         r.Genres,
		AgeRestriction: r.AgeRestriction,
	}
}

// MediaResponse DTO for responses
type MediaResponse struct {
	ID             string    `json:"id"`
	OwnerID        string    `json:"ownerId"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	MediaType      string    `json:"mediaType"`
	ReleaseYear    *int      `json:"releaseYear"`
	Genres         string    `json:"genres"`
	AgeRestriction *int      `json:"ageRestriction"`
	AverageScore   float64   `json:"averageScore"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// MediaDetailResponse is the single-entry view
type MediaDetailResponse struct {
	MediaResponse
	FavoriteCount int64 `json:"favoriteCount"`
	RatingCount   int64 `json:"ratingCount"`
}

// Converters
func FromMedia(m models.MediaEntry) MediaResponse {
	return MediaResponse{
		ID:             m.ID,
		OwnerID:        m.OwnerID,
		Title:          m.Title,
		Description:    m.Description,
		MediaType:      m.MediaType,
		ReleaseYear:    m.ReleaseYear,
		Genres:         m.Genres,
		AgeRestriction: m.AgeRestriction,
		AverageScore:   m.AverageScore,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func FromMediaList(list []models.MediaEntry) []MediaResponse {
	out := make([]MediaResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromMedia(m))
	}
	return out
}

func FromMediaDetail(d *service.MediaDetail) MediaDetailResponse {
	return MediaDetailResponse{
		MediaResponse: FromMedia(*d.Entry),
		FavoriteCount: d.FavoriteCount,
		RatingCount:   d.RatingCount,
	}
}

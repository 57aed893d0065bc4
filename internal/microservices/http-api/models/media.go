package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MediaTypeMovie  = "movie"
	MediaTypeSeries = "series"
	MediaTypeGame   = "game"
)

// ValidMediaType reports whether t is one of movie, series, game.
func ValidMediaType(t string) bool {
	switch t {
	case MediaTypeMovie, MediaTypeSeries, MediaTypeGame:
		return true
	}
	return false
}

type MediaEntry struct {
	ID             string    `gorm:"primaryKey;type:uuid" json:"id"`
	OwnerID        string    `gorm:"type:uuid;not null;index" json:"ownerId"`
	Title          string    `gorm:"not null" json:"title"`
	Description    string    `gorm:"type:text" json:"description"`
	MediaType      string    `gorm:"not null;index" json:"mediaType"`
	ReleaseYear    *int      `json:"releaseYear"`
	Genres         string    `json:"genres"` // comma separated
	AgeRestriction *int      `json:"ageRestriction"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	// AverageScore is only filled by queries that select it (mean of approved stars).
	AverageScore float64 `gorm:"->;-:migration" json:"averageScore"`

	// Associations
	Owner *User `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE;" json:"-"`
}

func (m *MediaEntry) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return
}

func (MediaEntry) TableName() string {
	return "media"
}

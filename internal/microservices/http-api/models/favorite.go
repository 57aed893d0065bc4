package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Favorite struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_media" json:"userId"`
	MediaID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_media;index" json:"mediaId"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`

	// Associations
	User  *User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"-"`
	Media *MediaEntry `gorm:"foreignKey:MediaID;constraint:OnDelete:CASCADE;" json:"media,omitempty"`
}

func (f *Favorite) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return
}

func (Favorite) TableName() string {
	return "favorites"
}

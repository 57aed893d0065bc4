package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Approval states of a rating.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

const (
	MinStars = 1
	MaxStars = 5
)

type Rating struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	MediaID   string    `json:"mediaId" gorm:"type:uuid;not null;index"`
	UserID    string    `json:"userId" gorm:"type:uuid;not null;index"`
	Stars     int       `json:"stars" gorm:"not null;check:stars >= 1 AND stars <= 5"`
	Comment   *string   `json:"comment" gorm:"type:text"`
	Status    string    `json:"approvalStatus" gorm:"not null;default:'pending';index"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`

	// Associations
	User  *User       `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Media *MediaEntry `json:"-" gorm:"foreignKey:MediaID;constraint:OnDelete:CASCADE;"`
}

func (r *Rating) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.Status == "" {
		r.Status = StatusPending
	}
	return
}

func (Rating) TableName() string {
	return "ratings"
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles. Only moderation looks at them; ownership is always owner-equals-actor.
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

type User struct {
	ID           string    `gorm:"primaryKey;type:uuid" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null;size:50" json:"username"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"` // Not show in JSON
	Token        *string   `gorm:"uniqueIndex" json:"-"`                   // current bearer token, nil until first login
	Role         string    `gorm:"default:'user';not null" json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Role == "" {
		user.Role = RoleUser
	}
	return
}

func (User) TableName() string {
	return "users"
}

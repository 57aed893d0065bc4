package service

import (
	"mrp/internal/config"
	"mrp/internal/microservices/http-api/models"
)

// ModerationPolicy is the single gate for listing, approving and rejecting ratings.
type ModerationPolicy interface {
	CanModerate(user *models.User) bool
}

type openModeration struct{}

// CanModerate lets any authenticated user moderate.
func (openModeration) CanModerate(user *models.User) bool {
	return user != nil
}

type roleModeration struct{}

func (roleModeration) CanModerate(user *models.User) bool {
	if user == nil {
		return false
	}
	return user.Role == models.RoleModerator || user.Role == models.RoleAdmin
}

// NewModerationPolicy maps MODERATION_MODE to a policy. Unknown modes are treated as role.
func NewModerationPolicy(mode string) ModerationPolicy {
	if mode == config.ModerationOpen {
		return openModeration{}
	}
	return roleModeration{}
}

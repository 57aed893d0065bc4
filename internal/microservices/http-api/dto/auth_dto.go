package dto

import (
	"time"

	"mrp/internal/microservices/http-api/models"
)

// Data Transfer Objects for user requests and responses

// RegisterRequest: payload for user registration. Rules are enforced by the service.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest: payload for user login. Keys match case-insensitively, so
// {"Username": ..., "Password": ...} binds as well.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse: bearer token to send as "Authorization: Bearer <token>"
type LoginResponse struct {
	Token string `json:"token"`
}

// RegisterResponse: response payload after successful registration
type RegisterResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// UserResponse: public view of a user, never carries the hash or the token
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func FromUser(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// IDResponse is returned by endpoints that create a resource.
type IDResponse struct {
	ID string `json:"id"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

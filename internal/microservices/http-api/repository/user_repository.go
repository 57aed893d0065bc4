package repository

import (
	"context"
	"fmt"

	"mrp/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// UserRepository defines the user data operations the services need.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateToken(ctx context.Context, id, token string) error
}

// userRepository is the GORM implementation of UserRepository.
type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		// return nil so a zero-value user is never mistaken for a hit
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, fmt.Errorf("find user by username: %w", err)
	}
	return &user, nil
}

// UpdateToken replaces the user's current bearer token, invalidating the previous one.
func (r *userRepository) UpdateToken(ctx context.Context, id, token string) error {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("token", token)
	if result.Error != nil {
		return fmt.Errorf("update token: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("update token: %w", gorm.ErrRecordNotFound)
	}
	return nil
}

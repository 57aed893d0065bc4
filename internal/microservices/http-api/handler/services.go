package handler

import (
	"gorm.io/gorm"

	"mrp/internal/microservices/http-api/repository"
	"mrp/internal/microservices/http-api/service"
	"mrp/internal/middleware/auth"
)

// NewServices wires the gorm repositories into the services the router calls.
// scores may be nil when the score cache is disabled.
func NewServices(db *gorm.DB, tokens *auth.TokenService, moderationMode string, scores service.ScoreCache) Services {
	userRepo := repository.NewUserRepository(db)
	mediaRepo := repository.NewMediaRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)

	moderation := service.NewModerationPolicy(moderationMode)
	return Services{
		Auth:       service.NewAuthService(userRepo, tokens),
		Profiles:   service.NewProfileService(ratingRepo, mediaRepo, favoriteRepo),
		Media:      service.NewMediaService(mediaRepo, ratingRepo, favoriteRepo, scores),
		Ratings:    service.NewRatingService(ratingRepo, mediaRepo, moderation, scores),
		Favorites:  service.NewFavoriteService(favoriteRepo, mediaRepo),
		Moderation: moderation,
	}
}

package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"mrp/internal/apperror"
	"mrp/internal/metrics"
	"mrp/internal/microservices/http-api/middleware"
	"mrp/internal/microservices/http-api/service"
)

// Services bundles what the HTTP surface calls into.
type Services struct {
	Auth       service.AuthService
	Profiles   service.ProfileService
	Media      service.MediaService
	Ratings    service.RatingService
	Favorites  service.FavoriteService
	Moderation service.ModerationPolicy
}

type RouterOptions struct {
	Logger      *slog.Logger
	CORSOrigins string
	Metrics     *metrics.Metrics // nil disables /metrics
	DB          Pinger           // nil disables /health
}

// NewRouter builds the gin engine with every route group of the API.
func NewRouter(svc Services, opts RouterOptions) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(middleware.CORS(opts.CORSOrigins))
	r.Use(middleware.RequestLogger(opts.Logger))
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware())
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}
	if opts.DB != nil {
		r.GET("/health", NewHealthHandler(opts.DB).Health)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		err := apperror.MethodNotAllowed()
		c.JSON(apperror.HTTPStatus(err.Kind), gin.H{"error": err.Message})
	})

	requireAuth := middleware.AuthMiddleware(svc.Auth)
	requireModerator := middleware.RequireModerator(svc.Moderation)

	api := r.Group("/api")
	NewUserHandler(svc.Auth, svc.Profiles, requireAuth).RegisterRoutes(api.Group("/users"))
	NewMediaHandler(svc.Media, svc.Ratings, requireAuth).RegisterRoutes(api.Group("/media"))
	NewRatingHandler(svc.Ratings, requireAuth, requireModerator).RegisterRoutes(api.Group("/ratings"))
	NewFavoriteHandler(svc.Favorites, requireAuth).RegisterRoutes(api.Group("/favorites"))

	return r
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mrp/internal/microservices/http-api/dto"
	"mrp/internal/microservices/http-api/service"
)

type UserHandler struct {
	auth        service.AuthService
	profiles    service.ProfileService
	requireAuth gin.HandlerFunc
}

func NewUserHandler(auth service.AuthService, profiles service.ProfileService, requireAuth gin.HandlerFunc) *UserHandler {
	return &UserHandler{auth: auth, profiles: profiles, requireAuth: requireAuth}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/register", h.Register)
	rg.POST("/login", h.Login)

	// own username only
	rg.GET("/:username/profile", h.requireAuth, h.Profile)
	rg.GET("/:username/statistics", h.requireAuth, h.Statistics)
	rg.GET("/:username/activity", h.requireAuth, h.Activity)
	rg.GET("/:username/ratings", h.requireAuth, h.Ratings)
}

func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.auth.Register(ctx, req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.RegisterResponse{ID: user.ID, Message: "user registered"})
}

func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	token, err := h.auth.Login(ctx, req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{Token: token})
}

func (h *UserHandler) Profile(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.profiles.Profile(ctx, actor, c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromUser(user))
}

func (h *UserHandler) Statistics(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	stats, err := h.profiles.Statistics(ctx, actor, c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *UserHandler) Activity(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	activity, err := h.profiles.Activity(ctx, actor, c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}

	resp := gin.H{
		"mostRecentRating":    nil,
		"ratingsDistribution": activity.RatingsDistribution,
	}
	if activity.MostRecentRating != nil {
		resp["mostRecentRating"] = dto.FromRating(*activity.MostRecentRating)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) Ratings(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	ratings, err := h.profiles.Ratings(ctx, actor, c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromRatings(ratings))
}
